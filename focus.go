package inkwell

import (
	"sync"

	"github.com/grindlemire/go-inkwell/internal/debug"
)

type focusEntry struct {
	id     string
	active bool
}

// FocusNavigator tracks focusable ids in registration order and a single
// active id. Navigation only visits entries that are currently active.
// All operations referencing unknown or inactive ids are no-ops.
type FocusNavigator struct {
	mu       sync.Mutex
	entries  []focusEntry
	activeID string
	hasFocus bool
	disabled bool
	everReg  bool
	onChange func(id string, ok bool)
}

// NewFocusNavigator creates an enabled navigator with no entries.
func NewFocusNavigator() *FocusNavigator {
	return &FocusNavigator{}
}

// OnChange sets a callback invoked after the observable active id changes.
func (f *FocusNavigator) OnChange(fn func(id string, ok bool)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onChange = fn
}

// Register appends id. It takes focus when autoFocus is set and nothing
// active is focused, or when it is the first entry ever registered while
// focus is enabled. Registering an existing id does nothing.
func (f *FocusNavigator) Register(id string, autoFocus bool) {
	f.update(func() {
		if f.index(id) >= 0 {
			return
		}
		first := !f.everReg
		f.everReg = true
		f.entries = append(f.entries, focusEntry{id: id, active: true})
		if (autoFocus && !f.focusedActive()) || (first && !f.disabled) {
			f.setActive(id)
		}
		debug.Log("focus: registered %q (entries=%d)", id, len(f.entries))
	})
}

// Unregister removes id. If it was focused, focus moves to the first
// remaining active entry.
func (f *FocusNavigator) Unregister(id string) {
	f.update(func() {
		i := f.index(id)
		if i < 0 {
			return
		}
		f.entries = append(f.entries[:i], f.entries[i+1:]...)
		if f.hasFocus && f.activeID == id {
			f.focusFirstActive()
		}
	})
}

// Activate makes id eligible for focus again.
func (f *FocusNavigator) Activate(id string) {
	f.update(func() {
		if i := f.index(id); i >= 0 {
			f.entries[i].active = true
		}
	})
}

// Deactivate makes id ineligible for focus without unregistering it. If it
// was focused, focus moves to the first remaining active entry.
func (f *FocusNavigator) Deactivate(id string) {
	f.update(func() {
		i := f.index(id)
		if i < 0 {
			return
		}
		f.entries[i].active = false
		if f.hasFocus && f.activeID == id {
			f.focusFirstActive()
		}
	})
}

// Focus moves focus to id if it is registered and active.
func (f *FocusNavigator) Focus(id string) {
	f.update(func() {
		if f.disabled {
			return
		}
		if i := f.index(id); i >= 0 && f.entries[i].active {
			f.setActive(id)
		}
	})
}

// FocusNext moves focus to the next active entry, wrapping around.
func (f *FocusNavigator) FocusNext() {
	f.update(func() { f.step(1) })
}

// FocusPrevious moves focus to the previous active entry, wrapping around.
func (f *FocusNavigator) FocusPrevious() {
	f.update(func() { f.step(-1) })
}

// Blur clears focus.
func (f *FocusNavigator) Blur() {
	f.update(func() {
		if !f.disabled {
			f.hasFocus = false
			f.activeID = ""
		}
	})
}

// Disable hides the active id from observers without forgetting it.
func (f *FocusNavigator) Disable() {
	f.update(func() { f.disabled = true })
}

// Enable restores the previous active id if it is still active, otherwise
// the first active entry.
func (f *FocusNavigator) Enable() {
	f.update(func() {
		if !f.disabled {
			return
		}
		f.disabled = false
		if !f.focusedActive() {
			f.focusFirstActive()
		}
	})
}

// Enabled reports whether focus is enabled.
func (f *FocusNavigator) Enabled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.disabled
}

// ActiveID returns the focused id. It reports none while focus is disabled.
func (f *FocusNavigator) ActiveID() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.observed()
}

// IsFocused reports whether id currently holds focus.
func (f *FocusNavigator) IsFocused(id string) bool {
	got, ok := f.ActiveID()
	return ok && got == id
}

// update runs fn under the lock and reports an observable change.
func (f *FocusNavigator) update(fn func()) {
	f.mu.Lock()
	beforeID, beforeOK := f.observed()
	fn()
	afterID, afterOK := f.observed()
	cb := f.onChange
	f.mu.Unlock()

	if beforeID != afterID || beforeOK != afterOK {
		debug.Log("focus: %q -> %q (focused=%v)", beforeID, afterID, afterOK)
		if cb != nil {
			cb(afterID, afterOK)
		}
	}
}

func (f *FocusNavigator) observed() (string, bool) {
	if f.disabled || !f.hasFocus {
		return "", false
	}
	return f.activeID, true
}

func (f *FocusNavigator) index(id string) int {
	for i, e := range f.entries {
		if e.id == id {
			return i
		}
	}
	return -1
}

func (f *FocusNavigator) focusedActive() bool {
	if !f.hasFocus {
		return false
	}
	i := f.index(f.activeID)
	return i >= 0 && f.entries[i].active
}

func (f *FocusNavigator) setActive(id string) {
	f.activeID = id
	f.hasFocus = true
}

func (f *FocusNavigator) focusFirstActive() {
	for _, e := range f.entries {
		if e.active {
			f.setActive(e.id)
			return
		}
	}
	f.hasFocus = false
	f.activeID = ""
}

// step moves focus dir entries through the active set.
func (f *FocusNavigator) step(dir int) {
	n := len(f.entries)
	if f.disabled || n == 0 {
		return
	}
	start := -1
	if f.hasFocus {
		start = f.index(f.activeID)
	}
	if start < 0 && dir < 0 {
		start = n
	}
	for i := 1; i <= n; i++ {
		j := ((start+dir*i)%n + n) % n
		if f.entries[j].active {
			f.setActive(f.entries[j].id)
			return
		}
	}
}
