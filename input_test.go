package inkwell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputDispatcher_Delivery(t *testing.T) {
	type tc struct {
		chunk   string
		focused string
		wantA   []string
		wantB   []string
		wantAll []string
	}

	tests := map[string]tc{
		"global handler sees everything": {
			chunk:   "hi",
			focused: "a",
			wantA:   []string{"hi"},
			wantAll: []string{"hi"},
		},
		"focus gates delivery": {
			chunk:   "x",
			focused: "b",
			wantB:   []string{"x"},
			wantAll: []string{"x"},
		},
		"tab moves focus before delivery": {
			chunk:   "\t",
			focused: "a",
			wantB:   []string{"Tab"},
			wantAll: []string{"Tab"},
		},
		"escape blurs everyone": {
			chunk:   "\x1b",
			focused: "a",
			wantAll: []string{"Escape"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			focus := newNavigator("a", "b")
			focus.Focus(tt.focused)
			d := NewInputDispatcher(focus)

			var gotA, gotB, gotAll []string
			d.Subscribe("a", func(e KeyEvent) { gotA = append(gotA, e.String()) })
			d.Subscribe("b", func(e KeyEvent) { gotB = append(gotB, e.String()) })
			d.Subscribe("", func(e KeyEvent) { gotAll = append(gotAll, e.String()) })

			d.Dispatch([]byte(tt.chunk))

			assert.Equal(t, tt.wantA, gotA)
			assert.Equal(t, tt.wantB, gotB)
			assert.Equal(t, tt.wantAll, gotAll)
		})
	}
}

func TestInputDispatcher_FocusKeys(t *testing.T) {
	focus := newNavigator("a", "b", "c")
	d := NewInputDispatcher(focus)

	d.Dispatch([]byte("\t\t"))
	requireActive(t, focus, "c")

	d.Dispatch([]byte("\x1b[Z"))
	requireActive(t, focus, "b")

	d.Dispatch([]byte{0x1b})
	requireActive(t, focus, "")

	focus.Disable()
	d.Dispatch([]byte("\t"))
	focus.Enable()
	requireActive(t, focus, "a")
}

func TestInputDispatcher_UnsubscribeDuringDispatch(t *testing.T) {
	d := NewInputDispatcher(nil)

	var calls []string
	var unsubB func()
	unsubA := d.Subscribe("", func(KeyEvent) {
		calls = append(calls, "a")
		unsubB()
	})
	unsubB = d.Subscribe("", func(KeyEvent) { calls = append(calls, "b") })
	d.Subscribe("", func(KeyEvent) { calls = append(calls, "c") })

	d.Dispatch([]byte("x"))
	assert.Equal(t, []string{"a", "b", "c"}, calls)
	require.Equal(t, 2, d.Len())

	calls = nil
	unsubA()
	unsubA()
	d.Dispatch([]byte("y"))
	assert.Equal(t, []string{"c"}, calls)
	assert.Equal(t, 1, d.Len())
}

func TestInputDispatcher_ExitOnCtrlC(t *testing.T) {
	type tc struct {
		exitOnCtrlC bool
		wantExit    int
		wantEvents  int
	}

	tests := map[string]tc{
		"exit swallows ctrl+c": {exitOnCtrlC: true, wantExit: 1, wantEvents: 0},
		"disabled delivers":    {exitOnCtrlC: false, wantExit: 0, wantEvents: 1},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			d := NewInputDispatcher(nil)
			exits := 0
			d.SetExitOnCtrlC(tt.exitOnCtrlC, func() { exits++ })

			events := 0
			d.Subscribe("", func(KeyEvent) { events++ })
			d.Dispatch([]byte{0x03})

			assert.Equal(t, tt.wantExit, exits)
			assert.Equal(t, tt.wantEvents, events)
		})
	}
}
