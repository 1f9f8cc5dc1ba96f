package inkwell

// Attr is a bitset of SGR text attributes carried by a cell.
type Attr uint8

const (
	AttrNone Attr = 0
	// AttrBold is SGR 1.
	AttrBold Attr = 1 << iota
	// AttrDim is SGR 2. Node styles set it through dimColor.
	AttrDim
	AttrItalic
	AttrUnderline
	// AttrBlink only arrives through embedded escapes in text content.
	AttrBlink
	// AttrReverse is set by the inverse text property.
	AttrReverse
	AttrStrikethrough
)

// Style is the paint state of one grid cell. The zero value paints with the
// terminal defaults. Node-level properties live in StyleRecord and are
// flattened into a Style when text is painted.
type Style struct {
	Fg    Color
	Bg    Color
	Attrs Attr
}

// NewStyle returns the default cell style.
func NewStyle() Style {
	return Style{}
}

// Foreground sets the foreground color.
func (s Style) Foreground(c Color) Style {
	s.Fg = c
	return s
}

// Background sets the background color.
func (s Style) Background(c Color) Style {
	s.Bg = c
	return s
}

func (s Style) with(a Attr) Style {
	s.Attrs |= a
	return s
}

func (s Style) Bold() Style          { return s.with(AttrBold) }
func (s Style) Dim() Style           { return s.with(AttrDim) }
func (s Style) Italic() Style        { return s.with(AttrItalic) }
func (s Style) Underline() Style     { return s.with(AttrUnderline) }
func (s Style) Blink() Style         { return s.with(AttrBlink) }
func (s Style) Reverse() Style       { return s.with(AttrReverse) }
func (s Style) Strikethrough() Style { return s.with(AttrStrikethrough) }

// Inherit layers s over an enclosing text style: colors set on s win and
// attributes accumulate.
func (s Style) Inherit(parent Style) Style {
	out := parent
	if !s.Fg.IsDefault() {
		out.Fg = s.Fg
	}
	if !s.Bg.IsDefault() {
		out.Bg = s.Bg
	}
	out.Attrs |= s.Attrs
	return out
}

// Equal reports whether both styles paint identically.
func (s Style) Equal(other Style) bool {
	return s.Fg.Equal(other.Fg) && s.Bg.Equal(other.Bg) && s.Attrs == other.Attrs
}

// HasAttr reports whether every attribute in a is set.
func (s Style) HasAttr(a Attr) bool {
	return s.Attrs&a == a
}

// IsZero reports whether s is the default style.
func (s Style) IsZero() bool {
	return s.Fg.IsDefault() && s.Bg.IsDefault() && s.Attrs == AttrNone
}
