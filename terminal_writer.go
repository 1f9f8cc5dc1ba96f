package inkwell

import (
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/x/ansi"
)

// TerminalWriter is a FrameSink for an interactive terminal. Static frames
// are printed once and scroll up with the terminal history. The most
// recent dynamic frame stays below them and is erased and redrawn on each
// change.
type TerminalWriter struct {
	mu        sync.Mutex
	w         io.Writer
	prevLines int
	last      string
	hasLast   bool
	hidden    bool
}

// NewTerminalWriter creates a writer for w.
func NewTerminalWriter(w io.Writer) *TerminalWriter {
	return &TerminalWriter{w: w}
}

// WriteFrame writes one frame. A dynamic frame identical to the one on
// screen is skipped.
func (tw *TerminalWriter) WriteFrame(f Frame) error {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	var b strings.Builder
	if !tw.hidden {
		b.WriteString(ansi.HideCursor)
		tw.hidden = true
	}

	switch f.Kind {
	case FrameStatic:
		b.WriteString(eraseLines(tw.prevLines))
		b.WriteString(f.Content)
		b.WriteByte('\n')
		tw.prevLines = 0
		tw.hasLast = false
	default:
		if tw.hasLast && f.Content == tw.last {
			return nil
		}
		b.WriteString(eraseLines(tw.prevLines))
		b.WriteString(f.Content)
		b.WriteByte('\n')
		tw.prevLines = strings.Count(f.Content, "\n") + 2
		tw.last = f.Content
		tw.hasLast = true
	}

	_, err := io.WriteString(tw.w, b.String())
	return err
}

// Clear erases the dynamic frame on screen.
func (tw *TerminalWriter) Clear() error {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.prevLines == 0 {
		return nil
	}
	_, err := io.WriteString(tw.w, eraseLines(tw.prevLines))
	tw.prevLines = 0
	tw.hasLast = false
	return err
}

// Done leaves the last dynamic frame in place and restores the cursor.
// Later frames start below it.
func (tw *TerminalWriter) Done() error {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	tw.prevLines = 0
	tw.hasLast = false
	if !tw.hidden {
		return nil
	}
	tw.hidden = false
	_, err := io.WriteString(tw.w, ansi.ShowCursor)
	return err
}

// eraseLines clears n lines ending at the cursor row, moving up, and
// leaves the cursor at column 0 of the topmost cleared line.
func eraseLines(n int) string {
	if n <= 0 {
		return ""
	}
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteString(ansi.EraseEntireLine)
		if i < n-1 {
			b.WriteString(ansi.CursorUp(1))
		}
	}
	b.WriteByte('\r')
	return b.String()
}
