package inkwell

import (
	"strings"

	"github.com/muesli/termenv"
)

// escBuilder accumulates SGR runs and cell content for one rendered line
// set. It reuses its buffer across Reset calls.
type escBuilder struct {
	buf []byte
}

// newEscBuilder creates a new escape sequence builder with the given initial capacity.
func newEscBuilder(capacity int) *escBuilder {
	return &escBuilder{
		buf: make([]byte, 0, capacity),
	}
}

// Reset clears the buffer for reuse.
func (e *escBuilder) Reset() {
	e.buf = e.buf[:0]
}

// Bytes returns the built escape sequence.
func (e *escBuilder) Bytes() []byte {
	return e.buf
}

// String returns the built sequence as a string.
func (e *escBuilder) String() string {
	return string(e.buf)
}

// Len returns the current length of the buffer.
func (e *escBuilder) Len() int {
	return len(e.buf)
}

// writeCSI writes the Control Sequence Introducer (ESC [).
func (e *escBuilder) writeCSI() {
	e.buf = append(e.buf, '\x1b', '[')
}

// ResetStyle resets all text attributes to default.
func (e *escBuilder) ResetStyle() {
	e.writeCSI()
	e.buf = append(e.buf, '0', 'm')
}

// SetStyle opens an SGR run for s. Nothing is written when the style has no
// parameters under the profile.
func (e *escBuilder) SetStyle(s Style, p termenv.Profile) bool {
	params := sgrParams(s, p)
	if params == "" {
		return false
	}
	e.writeCSI()
	e.buf = append(e.buf, params...)
	e.buf = append(e.buf, 'm')
	return true
}

// WriteString appends a string to the buffer.
func (e *escBuilder) WriteString(s string) {
	e.buf = append(e.buf, s...)
}

// sgrParams returns the ";"-joined SGR parameters for s. The Ascii profile
// produces no parameters at all.
func sgrParams(s Style, p termenv.Profile) string {
	if p == termenv.Ascii || s.IsZero() {
		return ""
	}
	var codes []string
	for _, a := range sgrAttrs {
		if s.HasAttr(a.attr) {
			codes = append(codes, a.code)
		}
	}
	if seq := s.Fg.Sequence(p, false); seq != "" {
		codes = append(codes, seq)
	}
	if seq := s.Bg.Sequence(p, true); seq != "" {
		codes = append(codes, seq)
	}
	return strings.Join(codes, ";")
}

var sgrAttrs = []struct {
	attr Attr
	code string
}{
	{AttrBold, "1"},
	{AttrDim, "2"},
	{AttrItalic, "3"},
	{AttrUnderline, "4"},
	{AttrBlink, "5"},
	{AttrReverse, "7"},
	{AttrStrikethrough, "9"},
}
