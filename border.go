package inkwell

import (
	"github.com/charmbracelet/lipgloss"
)

// BorderChars holds the glyphs used to draw a box border.
type BorderChars struct {
	TopLeft     string
	Top         string
	TopRight    string
	Right       string
	BottomRight string
	Bottom      string
	BottomLeft  string
	Left        string
}

func fromLipgloss(b lipgloss.Border) BorderChars {
	return BorderChars{
		TopLeft:     b.TopLeft,
		Top:         b.Top,
		TopRight:    b.TopRight,
		Right:       b.Right,
		BottomRight: b.BottomRight,
		Bottom:      b.Bottom,
		BottomLeft:  b.BottomLeft,
		Left:        b.Left,
	}
}

var borderTables = map[string]BorderChars{
	"single": fromLipgloss(lipgloss.NormalBorder()),
	"double": fromLipgloss(lipgloss.DoubleBorder()),
	"round":  fromLipgloss(lipgloss.RoundedBorder()),
	"bold":   fromLipgloss(lipgloss.ThickBorder()),
	"singleDouble": {
		TopLeft: "╓", Top: "─", TopRight: "╖", Right: "║",
		BottomRight: "╜", Bottom: "─", BottomLeft: "╙", Left: "║",
	},
	"doubleSingle": {
		TopLeft: "╒", Top: "═", TopRight: "╕", Right: "│",
		BottomRight: "╛", Bottom: "═", BottomLeft: "╘", Left: "│",
	},
	"classic": {
		TopLeft: "+", Top: "-", TopRight: "+", Right: "|",
		BottomRight: "+", Bottom: "-", BottomLeft: "+", Left: "|",
	},
	"arrow": {
		TopLeft: "↘", Top: "↓", TopRight: "↙", Right: "←",
		BottomRight: "↖", Bottom: "↑", BottomLeft: "↗", Left: "→",
	},
}

// LookupBorder returns the glyph table registered under name.
func LookupBorder(name string) (BorderChars, bool) {
	chars, ok := borderTables[name]
	return chars, ok
}

// BorderEdge is the resolved state of one side of a border.
type BorderEdge struct {
	Enabled bool
	Color   Color
	Dim     bool
}

func (e BorderEdge) style(under Style) Style {
	s := NewStyle()
	s.Fg = e.Color
	s.Bg = under.Bg
	if e.Dim {
		s = s.Dim()
	}
	return s
}

// BorderSpec is a fully resolved border: glyphs plus per-edge state.
// The zero value draws nothing.
type BorderSpec struct {
	Chars                    BorderChars
	Top, Right, Bottom, Left BorderEdge
}

// Visible reports whether any edge is drawn.
func (b BorderSpec) Visible() bool {
	return b.Top.Enabled || b.Right.Enabled || b.Bottom.Enabled || b.Left.Enabled
}

// Widths returns the border thickness per edge in top, right, bottom, left order.
func (b BorderSpec) Widths() (top, right, bottom, left int) {
	return boolInt(b.Top.Enabled), boolInt(b.Right.Enabled), boolInt(b.Bottom.Enabled), boolInt(b.Left.Enabled)
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

// DrawBorder draws the enabled edges of spec around rect. A corner glyph is
// only drawn when both of its adjacent edges are enabled. Writes outside
// clip are dropped.
func DrawBorder(buf *Buffer, rect Rect, spec BorderSpec, clip Rect) {
	if !spec.Visible() || rect.IsEmpty() {
		return
	}
	clip = clip.Intersect(buf.Rect())
	chars := spec.Chars

	top, right, bottom, left := spec.Widths()
	innerW := rect.Width - left - right
	innerH := rect.Height - top - bottom

	put := func(x, y int, glyph string, edge BorderEdge) {
		if glyph == "" || !clip.Contains(x, y) {
			return
		}
		buf.SetStringClipped(x, y, glyph, edge.style(buf.Cell(x, y).Style), clip)
	}

	if spec.Top.Enabled {
		y := rect.Y
		x := rect.X
		if spec.Left.Enabled {
			put(x, y, chars.TopLeft, spec.Top)
			x++
		}
		for i := 0; i < innerW; i++ {
			put(x+i, y, chars.Top, spec.Top)
		}
		if spec.Right.Enabled {
			put(rect.Right()-1, y, chars.TopRight, spec.Top)
		}
	}

	for i := 0; i < innerH; i++ {
		y := rect.Y + top + i
		if spec.Left.Enabled {
			put(rect.X, y, chars.Left, spec.Left)
		}
		if spec.Right.Enabled {
			put(rect.Right()-1, y, chars.Right, spec.Right)
		}
	}

	if spec.Bottom.Enabled && rect.Height > top {
		y := rect.Bottom() - 1
		x := rect.X
		if spec.Left.Enabled {
			put(x, y, chars.BottomLeft, spec.Bottom)
			x++
		}
		for i := 0; i < innerW; i++ {
			put(x+i, y, chars.Bottom, spec.Bottom)
		}
		if spec.Right.Enabled {
			put(rect.Right()-1, y, chars.BottomRight, spec.Bottom)
		}
	}
}
