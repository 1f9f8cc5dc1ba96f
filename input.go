package inkwell

import (
	"sync"

	"github.com/grindlemire/go-inkwell/internal/debug"
)

// KeyHandler receives parsed key events.
type KeyHandler func(KeyEvent)

type inputEntry struct {
	id      uint64
	focusID string
	handler KeyHandler
}

// InputDispatcher parses raw input chunks and fans each event out to
// subscribed handlers. It also drives focus navigation: Tab and Shift+Tab
// move focus while focus is enabled, Escape blurs.
type InputDispatcher struct {
	mu          sync.Mutex
	entries     []inputEntry
	nextID      uint64
	focus       *FocusNavigator
	exitOnCtrlC bool
	onExit      func()
}

// NewInputDispatcher creates a dispatcher bound to a focus navigator.
// A nil navigator disables focus handling and focus-gated delivery.
func NewInputDispatcher(focus *FocusNavigator) *InputDispatcher {
	return &InputDispatcher{focus: focus}
}

// SetExitOnCtrlC makes Ctrl+C call onExit instead of reaching handlers.
func (d *InputDispatcher) SetExitOnCtrlC(enabled bool, onExit func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.exitOnCtrlC = enabled
	d.onExit = onExit
}

// Subscribe registers fn. When focusID is non-empty, fn only receives events
// while that id holds focus. The returned func removes the subscription and
// is safe to call from inside a handler.
func (d *InputDispatcher) Subscribe(focusID string, fn KeyHandler) (unsubscribe func()) {
	d.mu.Lock()
	d.nextID++
	id := d.nextID
	d.entries = append(d.entries, inputEntry{id: id, focusID: focusID, handler: fn})
	d.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { d.remove(id) })
	}
}

func (d *InputDispatcher) remove(id uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, e := range d.entries {
		if e.id == id {
			d.entries = append(d.entries[:i:i], d.entries[i+1:]...)
			return
		}
	}
}

// Len returns the number of subscriptions.
func (d *InputDispatcher) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.entries)
}

// Dispatch parses a raw chunk and delivers each resulting event in order.
func (d *InputDispatcher) Dispatch(chunk []byte) {
	for _, ev := range parseInput(chunk) {
		d.DispatchEvent(ev)
	}
}

// DispatchEvent delivers one event. Handlers are taken from a snapshot made
// before any handler runs.
func (d *InputDispatcher) DispatchEvent(ev KeyEvent) {
	d.mu.Lock()
	snapshot := make([]inputEntry, len(d.entries))
	copy(snapshot, d.entries)
	exit := d.exitOnCtrlC && ev.Ctrl('c')
	onExit := d.onExit
	d.mu.Unlock()

	if exit {
		debug.Log("input: ctrl+c exit")
		if onExit != nil {
			onExit()
		}
		return
	}

	d.navigate(ev)

	for _, e := range snapshot {
		if e.focusID != "" && (d.focus == nil || !d.focus.IsFocused(e.focusID)) {
			continue
		}
		e.handler(ev)
	}
}

func (d *InputDispatcher) navigate(ev KeyEvent) {
	if d.focus == nil || !d.focus.Enabled() {
		return
	}
	switch {
	case ev.Key == KeyTab && ev.Mod.Has(ModShift):
		d.focus.FocusPrevious()
	case ev.Key == KeyTab && ev.Mod == ModNone:
		d.focus.FocusNext()
	case ev.Key == KeyEscape:
		d.focus.Blur()
	}
}
