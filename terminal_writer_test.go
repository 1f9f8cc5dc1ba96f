package inkwell

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEraseLines(t *testing.T) {
	type tc struct {
		n    int
		want string
	}

	tests := map[string]tc{
		"zero":     {n: 0, want: ""},
		"negative": {n: -2, want: ""},
		"one":      {n: 1, want: ansi.EraseEntireLine + "\r"},
		"three": {
			n: 3,
			want: ansi.EraseEntireLine + ansi.CursorUp(1) +
				ansi.EraseEntireLine + ansi.CursorUp(1) +
				ansi.EraseEntireLine + "\r",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, eraseLines(tt.n))
		})
	}
}

func TestTerminalWriter_Sequence(t *testing.T) {
	type tc struct {
		frames []Frame
		want   string
	}

	dyn := func(s string) Frame { return Frame{Kind: FrameDynamic, Content: s} }
	static := func(s string) Frame { return Frame{Kind: FrameStatic, Content: s} }

	tests := map[string]tc{
		"first dynamic frame": {
			frames: []Frame{dyn("a\nb")},
			want:   ansi.HideCursor + "a\nb\n",
		},
		"redraw erases previous lines": {
			frames: []Frame{dyn("a\nb"), dyn("c")},
			want:   ansi.HideCursor + "a\nb\n" + eraseLines(3) + "c\n",
		},
		"identical frame skipped": {
			frames: []Frame{dyn("a"), dyn("a")},
			want:   ansi.HideCursor + "a\n",
		},
		"static goes above dynamic": {
			frames: []Frame{dyn("live"), static("log"), dyn("live")},
			want:   ansi.HideCursor + "live\n" + eraseLines(2) + "log\n" + "live\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			tw := NewTerminalWriter(&buf)
			for _, f := range tt.frames {
				require.NoError(t, tw.WriteFrame(f))
			}
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestTerminalWriter_ClearAndDone(t *testing.T) {
	var buf bytes.Buffer
	tw := NewTerminalWriter(&buf)

	require.NoError(t, tw.Clear())
	assert.Empty(t, buf.String())

	require.NoError(t, tw.WriteFrame(Frame{Content: "x"}))
	require.NoError(t, tw.Clear())
	assert.Equal(t, ansi.HideCursor+"x\n"+eraseLines(2), buf.String())

	buf.Reset()
	require.NoError(t, tw.WriteFrame(Frame{Content: "y"}))
	require.NoError(t, tw.Done())
	require.NoError(t, tw.Done())
	assert.Equal(t, "y\n"+ansi.ShowCursor, buf.String())
}

func TestTerminalWriter_WithRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(t, WithColumns(10), WithFrameSink(NewTerminalWriter(&buf)))
	addText(t, r, r.Root(), "hi", StyleRecord{})

	_, err := r.Commit()
	require.NoError(t, err)
	_, err = r.Commit()
	require.NoError(t, err)

	assert.Equal(t, ansi.HideCursor+"hi\n", buf.String())
}
