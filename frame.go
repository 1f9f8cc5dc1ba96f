package inkwell

import (
	"sync"
)

// FrameKind distinguishes the static and dynamic output of a commit.
type FrameKind uint8

const (
	// FrameDynamic is the live viewport, redrawn every commit.
	FrameDynamic FrameKind = iota
	// FrameStatic holds newly emitted static items, written once.
	FrameStatic
)

func (k FrameKind) String() string {
	if k == FrameStatic {
		return "static"
	}
	return "dynamic"
}

// Frame is one rendered output. Rows are separated by "\n" without a
// trailing newline.
type Frame struct {
	Kind    FrameKind
	Content string
	Height  int
}

// IsEmpty reports whether the frame has no content.
func (f Frame) IsEmpty() bool {
	return f.Content == ""
}

//go:generate mockgen -package=inkwell -destination=mock_frame_sink_test.go github.com/grindlemire/go-inkwell FrameSink

//go:generate mockgen -package=inkwell -destination=mock_frame_sink_test.go github.com/grindlemire/go-inkwell FrameSink

// FrameSink consumes frames in emission order. Within one commit a static
// frame always precedes the dynamic frame.
type FrameSink interface {
	WriteFrame(f Frame) error
}

// FrameLog is an in-memory FrameSink keeping the full frame history.
type FrameLog struct {
	mu     sync.Mutex
	frames []Frame
}

// WriteFrame appends f to the log.
func (l *FrameLog) WriteFrame(f Frame) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.frames = append(l.frames, f)
	return nil
}

// Frames returns a copy of every frame written so far.
func (l *FrameLog) Frames() []Frame {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Frame(nil), l.frames...)
}

// LastFrame returns the most recent non-empty frame.
func (l *FrameLog) LastFrame() (Frame, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := len(l.frames) - 1; i >= 0; i-- {
		if !l.frames[i].IsEmpty() {
			return l.frames[i], true
		}
	}
	return Frame{}, false
}

// StaticFrames returns the content of every static frame in order.
func (l *FrameLog) StaticFrames() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []string
	for _, f := range l.frames {
		if f.Kind == FrameStatic {
			out = append(out, f.Content)
		}
	}
	return out
}
