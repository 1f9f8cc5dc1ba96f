package inkwell

import (
	"time"

	"github.com/grindlemire/go-inkwell/internal/debug"
)

// Batch is one group of tree mutations applied on the session loop. Each
// batch is followed by exactly one commit.
type Batch func(t *Tree) error

// Watcher is an event source owned by a node. Run blocks until stop is
// closed, handing batches to send. send reports false once the watcher
// should exit.
type Watcher interface {
	Run(send func(Batch) bool, stop <-chan struct{})
}

// ChannelWatcher watches a channel and queues a batch for each value.
type ChannelWatcher[T any] struct {
	ch      <-chan T
	handler func(*Tree, T) error
}

// Watch creates a channel watcher. The handler runs on the session loop
// whenever data arrives on the channel.
func Watch[T any](ch <-chan T, handler func(*Tree, T) error) Watcher {
	return &ChannelWatcher[T]{ch: ch, handler: handler}
}

// Run forwards values until the channel closes or stop is closed.
func (w *ChannelWatcher[T]) Run(send func(Batch) bool, stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case val, ok := <-w.ch:
			if !ok {
				return
			}
			if !send(func(t *Tree) error { return w.handler(t, val) }) {
				return
			}
		}
	}
}

// timerWatcher fires at a regular interval.
type timerWatcher struct {
	interval time.Duration
	handler  Batch
}

// OnTimer creates a watcher that queues handler at the given interval.
func OnTimer(interval time.Duration, handler Batch) Watcher {
	return &timerWatcher{interval: interval, handler: handler}
}

// Run ticks until stop is closed.
func (w *timerWatcher) Run(send func(Batch) bool, stop <-chan struct{}) {
	debug.Log("timer started (%s)", w.interval)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			debug.Log("timer stopped (%s)", w.interval)
			return
		case <-ticker.C:
			if !send(w.handler) {
				return
			}
		}
	}
}
