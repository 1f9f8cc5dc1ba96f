package inkwell

import (
	"fmt"
	"sync"

	"github.com/grindlemire/go-inkwell/internal/debug"
	"github.com/muesli/termenv"
)

// RendererOption is a functional option for configuring a Renderer.
type RendererOption func(*Renderer) error

// WithColumns sets the available width in terminal columns. Default is 80.
func WithColumns(n int) RendererOption {
	return func(r *Renderer) error {
		if n < 1 {
			return fmt.Errorf("columns must be at least 1")
		}
		r.columns = n
		return nil
	}
}

// WithColorProfile sets the color profile used to encode SGR colors.
// Default is termenv.TrueColor.
func WithColorProfile(p termenv.Profile) RendererOption {
	return func(r *Renderer) error {
		r.profile = p
		return nil
	}
}

// WithFrameSink sets the consumer of committed frames. Default is a
// FrameLog available from Frames.
func WithFrameSink(s FrameSink) RendererOption {
	return func(r *Renderer) error {
		if s == nil {
			return fmt.Errorf("frame sink must not be nil")
		}
		r.sink = s
		return nil
	}
}

// Renderer owns a Tree and turns each commit into frames. Mutations go
// through the embedded Tree; Commit runs one layout and composite pass.
// Callers must not mutate the tree concurrently with Commit; Session
// provides that ordering.
type Renderer struct {
	*Tree

	mu      sync.Mutex
	columns int
	profile termenv.Profile
	sink    FrameSink
	log     *FrameLog
	commits int
}

// CommitResult holds the frames produced by one commit. Static is nil when
// no static items were pending.
type CommitResult struct {
	Static  *Frame
	Dynamic Frame
}

// NewRenderer creates a Renderer with an empty tree.
func NewRenderer(opts ...RendererOption) (*Renderer, error) {
	r := &Renderer{
		Tree:    NewTree(),
		columns: 80,
		profile: termenv.TrueColor,
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	if r.sink == nil {
		r.log = &FrameLog{}
		r.sink = r.log
	}
	return r, nil
}

// Columns returns the current available width.
func (r *Renderer) Columns() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.columns
}

// Resize changes the available width used by the next commit.
func (r *Renderer) Resize(columns int) {
	if columns < 1 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.columns = columns
	r.markDirty(r.root)
}

// Frames returns the built-in frame log, or nil when a custom sink was
// configured.
func (r *Renderer) Frames() *FrameLog {
	return r.log
}

// Commit syncs dirty nodes into the layout engine, computes layout,
// emits pending static items and composites the dynamic frame. The static
// frame, if any, is written to the sink before the dynamic frame. A layout
// failure aborts the commit before any frame is produced.
func (r *Renderer) Commit() (CommitResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stopped {
		return CommitResult{}, ErrUnmounted
	}
	r.commits++
	debug.Log("commit %d: start", r.commits)

	if err := r.syncLayout(r.columns); err != nil {
		debug.Log("commit %d: aborted: %v", r.commits, err)
		return CommitResult{}, err
	}

	var res CommitResult
	if static, ok := r.renderStatic(r.profile); ok {
		res.Static = &static
	}
	res.Dynamic = r.renderDynamic(r.profile)

	if res.Static != nil {
		if err := r.sink.WriteFrame(*res.Static); err != nil {
			return res, fmt.Errorf("writing static frame: %w", err)
		}
	}
	if err := r.sink.WriteFrame(res.Dynamic); err != nil {
		return res, fmt.Errorf("writing dynamic frame: %w", err)
	}

	staticRows := 0
	if res.Static != nil {
		staticRows = res.Static.Height
	}
	debug.Log("commit %d: done, static rows=%d dynamic rows=%d", r.commits, staticRows, res.Dynamic.Height)
	return res, nil
}

// Unmount destroys every node, cancelling node-owned hooks, and rejects
// further commits.
func (r *Renderer) Unmount() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Tree.Unmount()
}
