package inkwell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/grindlemire/go-inkwell/internal/debug"
	"golang.org/x/sync/errgroup"
)

const defaultQueueSize = 256

// SessionOption is a functional option for configuring a Session.
type SessionOption func(*Session) error

// WithInput sets the raw keyboard input stream. Without it the session
// receives no key events.
func WithInput(r io.Reader) SessionOption {
	return func(s *Session) error {
		s.in = r
		return nil
	}
}

// WithExitOnCtrlC controls whether Ctrl+C stops the session. Default is true.
func WithExitOnCtrlC(enabled bool) SessionOption {
	return func(s *Session) error {
		s.exitOnCtrlC = enabled
		return nil
	}
}

// WithQueueSize sets how many update batches may wait before Update blocks.
func WithQueueSize(n int) SessionOption {
	return func(s *Session) error {
		if n < 1 {
			return fmt.Errorf("queue size must be at least 1")
		}
		s.queueSize = n
		return nil
	}
}

// Session drives a Renderer from asynchronous sources. Update batches,
// input chunks and watcher ticks are applied one at a time in arrival
// order, each followed by one commit.
type Session struct {
	r     *Renderer
	focus *FocusNavigator
	input *InputDispatcher

	in          io.Reader
	exitOnCtrlC bool
	queueSize   int
	queue       chan Batch

	stopCh   chan struct{}
	stopOnce sync.Once

	mu        sync.Mutex
	nextWatch uint64
	cancels   map[uint64]func()
	watchers  errgroup.Group
}

// NewSession creates a session around r. It initializes debug logging from
// INKWELL_DEBUG.
func NewSession(r *Renderer, opts ...SessionOption) (*Session, error) {
	if err := debug.InitFromEnv(); err != nil {
		return nil, fmt.Errorf("initializing debug log: %w", err)
	}

	s := &Session{
		r:           r,
		focus:       NewFocusNavigator(),
		exitOnCtrlC: true,
		queueSize:   defaultQueueSize,
		stopCh:      make(chan struct{}),
		cancels:     make(map[uint64]func()),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	s.queue = make(chan Batch, s.queueSize)
	s.input = NewInputDispatcher(s.focus)
	if s.exitOnCtrlC {
		s.input.SetExitOnCtrlC(true, s.Stop)
	}
	return s, nil
}

// Renderer returns the renderer driven by the session.
func (s *Session) Renderer() *Renderer {
	return s.r
}

// Focus returns the session's focus navigator.
func (s *Session) Focus() *FocusNavigator {
	return s.focus
}

// Input returns the session's input dispatcher.
func (s *Session) Input() *InputDispatcher {
	return s.input
}

// Update queues a batch. It blocks while the queue is full and returns
// ErrStopped once the session has stopped.
func (s *Session) Update(b Batch) error {
	select {
	case <-s.stopCh:
		return ErrStopped
	default:
	}
	select {
	case s.queue <- b:
		return nil
	case <-s.stopCh:
		return ErrStopped
	}
}

// Watch starts w owned by node owner. The watcher stops when owner is
// destroyed, at unmount, or when the session stops. Call Watch before Run
// or from inside a batch.
func (s *Session) Watch(owner NodeID, w Watcher) error {
	stop := make(chan struct{})

	s.mu.Lock()
	select {
	case <-s.stopCh:
		s.mu.Unlock()
		return ErrStopped
	default:
	}
	s.nextWatch++
	id := s.nextWatch
	var once sync.Once
	cancel := func() {
		once.Do(func() {
			close(stop)
			s.mu.Lock()
			delete(s.cancels, id)
			s.mu.Unlock()
		})
	}
	s.cancels[id] = cancel
	s.mu.Unlock()

	if err := s.r.OnDestroy(owner, cancel); err != nil {
		cancel()
		return err
	}

	send := func(b Batch) bool {
		select {
		case s.queue <- b:
			return true
		case <-stop:
			return false
		case <-s.stopCh:
			return false
		}
	}
	s.watchers.Go(func() error {
		defer cancel()
		w.Run(send, stop)
		return nil
	})
	return nil
}

// Every runs fn on the session loop at the given interval for as long as
// owner lives.
func (s *Session) Every(owner NodeID, interval time.Duration, fn Batch) error {
	return s.Watch(owner, OnTimer(interval, fn))
}

// Watching returns the number of live watchers.
func (s *Session) Watching() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cancels)
}

// Stop ends the session. It is safe to call more than once and from any
// goroutine, including handlers.
func (s *Session) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)

		s.mu.Lock()
		cancels := make([]func(), 0, len(s.cancels))
		for _, c := range s.cancels {
			cancels = append(cancels, c)
		}
		s.mu.Unlock()

		for _, c := range cancels {
			c()
		}
		debug.Log("session: stopped")
	})
}

// Done is closed once Stop has been called.
func (s *Session) Done() <-chan struct{} {
	return s.stopCh
}

// Run commits the current tree, then applies queued work until ctx is
// cancelled, Stop is called, or a batch or commit fails. On return the
// tree is unmounted and every watcher has exited.
func (s *Session) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	if s.in != nil {
		// Not part of the group: a blocked Read cannot be interrupted.
		go s.readInput()
	}

	g.Go(func() error {
		select {
		case <-ctx.Done():
		case <-s.stopCh:
		}
		s.Stop()
		return nil
	})
	g.Go(s.loop)

	err := g.Wait()
	s.r.Unmount()
	_ = s.watchers.Wait()
	return err
}

func (s *Session) loop() error {
	if err := s.commit(); err != nil {
		return err
	}
	for {
		select {
		case <-s.stopCh:
			return nil
		case b := <-s.queue:
			if err := b(s.r.Tree); err != nil {
				s.Stop()
				return fmt.Errorf("applying update: %w", err)
			}
			if err := s.commit(); err != nil {
				return err
			}
		}
	}
}

func (s *Session) commit() error {
	_, err := s.r.Commit()
	if errors.Is(err, ErrUnmounted) {
		s.Stop()
		return nil
	}
	if err != nil {
		s.Stop()
		return err
	}
	return nil
}

func (s *Session) readInput() {
	buf := make([]byte, 1024)
	for {
		n, err := s.in.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			if s.Update(func(*Tree) error {
				s.input.Dispatch(chunk)
				return nil
			}) != nil {
				return
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				debug.Log("session: input read failed: %v", err)
			}
			return
		}
	}
}
