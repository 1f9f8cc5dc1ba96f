package inkwell

import (
	"math"

	"github.com/grindlemire/go-inkwell/internal/debug"
	"github.com/grindlemire/go-inkwell/internal/layout"
)

// ResolvedStyle is the concrete, defaulted form of a StyleRecord.
type ResolvedStyle struct {
	Layout     layout.Style
	Border     BorderSpec
	OverflowX  Overflow
	OverflowY  Overflow
	Background Color
	Text       Style
	Wrap       TextWrap
}

// Resolve computes one authoritative value per property. Edge specific
// spacing wins over axis spacing, which wins over the all-sides value,
// which wins over 0. Invalid enumeration values are ignored.
func (s StyleRecord) Resolve() ResolvedStyle {
	r := ResolvedStyle{
		Layout:    layout.DefaultStyle(),
		OverflowX: OverflowVisible,
		OverflowY: OverflowVisible,
		Wrap:      WrapText,
	}
	l := &r.Layout

	if v, ok := s.Display.Get(); ok {
		switch v {
		case DisplayFlex:
			l.Display = layout.DisplayFlex
		case DisplayNone:
			l.Display = layout.DisplayNone
		default:
			ignored("display", v)
		}
	}
	if v, ok := s.Position.Get(); ok {
		switch v {
		case PositionRelative:
			l.PositionType = layout.PositionRelative
		case PositionAbsolute:
			l.PositionType = layout.PositionAbsolute
		default:
			ignored("position", v)
		}
	}

	resolveSize(&l.Width, s.Width, "width")
	resolveSize(&l.Height, s.Height, "height")
	resolveSize(&l.MinWidth, s.MinWidth, "minWidth")
	resolveSize(&l.MinHeight, s.MinHeight, "minHeight")
	resolveSize(&l.MaxWidth, s.MaxWidth, "maxWidth")
	resolveSize(&l.MaxHeight, s.MaxHeight, "maxHeight")
	resolveSize(&l.FlexBasis, s.FlexBasis, "flexBasis")

	l.FlexGrow = nonNegative(s.FlexGrow.Or(0))
	l.FlexShrink = nonNegative(s.FlexShrink.Or(0))

	if v, ok := s.FlexDirection.Get(); ok {
		switch v {
		case FlexRow:
			l.Direction = layout.Row
		case FlexColumn:
			l.Direction = layout.Column
		case FlexRowReverse:
			l.Direction = layout.RowReverse
		case FlexColumnReverse:
			l.Direction = layout.ColumnReverse
		default:
			ignored("flexDirection", v)
		}
	}
	if v, ok := s.FlexWrap.Get(); ok {
		switch v {
		case FlexNoWrap:
			l.Wrap = layout.NoWrap
		case FlexWrapLines:
			l.Wrap = layout.WrapLines
		case FlexWrapReverse:
			l.Wrap = layout.WrapReverse
		default:
			ignored("flexWrap", v)
		}
	}
	if v, ok := s.AlignItems.Get(); ok {
		if a, valid := alignValue(string(v)); valid && a != layout.AlignAuto {
			l.AlignItems = a
		} else {
			ignored("alignItems", v)
		}
	}
	if v, ok := s.AlignSelf.Get(); ok {
		if a, valid := alignValue(string(v)); valid && a != layout.AlignStretch {
			l.AlignSelf = a
		} else {
			ignored("alignSelf", v)
		}
	}
	if v, ok := s.JustifyContent.Get(); ok {
		switch v {
		case JustifyStart:
			l.JustifyContent = layout.JustifyStart
		case JustifyEnd:
			l.JustifyContent = layout.JustifyEnd
		case JustifyCenter:
			l.JustifyContent = layout.JustifyCenter
		case JustifySpaceBetween:
			l.JustifyContent = layout.JustifySpaceBetween
		case JustifySpaceAround:
			l.JustifyContent = layout.JustifySpaceAround
		case JustifySpaceEvenly:
			l.JustifyContent = layout.JustifySpaceEvenly
		default:
			ignored("justifyContent", v)
		}
	}

	l.Margin = layout.Edges{
		Top:    spacing(s.MarginTop, s.MarginY, s.Margin),
		Right:  spacing(s.MarginRight, s.MarginX, s.Margin),
		Bottom: spacing(s.MarginBottom, s.MarginY, s.Margin),
		Left:   spacing(s.MarginLeft, s.MarginX, s.Margin),
	}
	l.Padding = layout.Edges{
		Top:    nonNegativeInt(spacing(s.PaddingTop, s.PaddingY, s.Padding)),
		Right:  nonNegativeInt(spacing(s.PaddingRight, s.PaddingX, s.Padding)),
		Bottom: nonNegativeInt(spacing(s.PaddingBottom, s.PaddingY, s.Padding)),
		Left:   nonNegativeInt(spacing(s.PaddingLeft, s.PaddingX, s.Padding)),
	}
	l.RowGap = nonNegativeInt(spacing(s.RowGap, Field[int]{}, s.Gap))
	l.ColumnGap = nonNegativeInt(spacing(s.ColumnGap, Field[int]{}, s.Gap))

	r.Border = s.resolveBorder()
	top, right, bottom, left := r.Border.Widths()
	l.Border = layout.EdgeTRBL(top, right, bottom, left)

	r.OverflowX = resolveOverflow(s.OverflowX, s.Overflow, "overflowX")
	r.OverflowY = resolveOverflow(s.OverflowY, s.Overflow, "overflowY")

	r.Background = s.BackgroundColor.Or(DefaultColor())
	r.Text = s.textStyle()

	if v, ok := s.Wrap.Get(); ok {
		switch v {
		case WrapText, Truncate, TruncateEnd, TruncateStart, TruncateMiddle:
			r.Wrap = v
		default:
			ignored("wrap", v)
		}
	}
	return r
}

func (s StyleRecord) resolveBorder() BorderSpec {
	name, ok := s.BorderStyle.Get()
	if !ok {
		return BorderSpec{}
	}
	chars, known := LookupBorder(name)
	if !known {
		ignored("borderStyle", name)
		return BorderSpec{}
	}
	overallColor := s.BorderColor.Or(DefaultColor())
	overallDim := s.BorderDimColor.Or(false)
	edge := func(enabled Field[bool], color Field[Color], dim Field[bool]) BorderEdge {
		return BorderEdge{
			Enabled: enabled.Or(true),
			Color:   color.Or(overallColor),
			Dim:     dim.Or(overallDim),
		}
	}
	return BorderSpec{
		Chars:  chars,
		Top:    edge(s.BorderTop, s.BorderTopColor, s.BorderTopDimColor),
		Right:  edge(s.BorderRight, s.BorderRightColor, s.BorderRightDimColor),
		Bottom: edge(s.BorderBottom, s.BorderBottomColor, s.BorderBottomDimColor),
		Left:   edge(s.BorderLeft, s.BorderLeftColor, s.BorderLeftDimColor),
	}
}

// textStyle returns the cell style a Text or VirtualText node applies to
// its glyphs. Unset properties are left at their zero value so they can be
// inherited from an enclosing text node.
func (s StyleRecord) textStyle() Style {
	st := NewStyle()
	st.Fg = s.Color.Or(DefaultColor())
	st.Bg = s.BackgroundColor.Or(DefaultColor())
	if s.DimColor.Or(false) {
		st = st.Dim()
	}
	if s.Bold.Or(false) {
		st = st.Bold()
	}
	if s.Italic.Or(false) {
		st = st.Italic()
	}
	if s.Underline.Or(false) {
		st = st.Underline()
	}
	if s.Strikethrough.Or(false) {
		st = st.Strikethrough()
	}
	if s.Inverse.Or(false) {
		st = st.Reverse()
	}
	return st
}

func resolveSize(dst *Value, f Field[Value], name string) {
	v, ok := f.Get()
	if !ok {
		return
	}
	if math.IsNaN(v.Amount) || math.IsInf(v.Amount, 0) {
		ignored(name, v.Amount)
		return
	}
	if v.Unit != layout.UnitAuto && v.Amount < 0 {
		v.Amount = 0
	}
	*dst = v
}

func alignValue(v string) (layout.Align, bool) {
	switch v {
	case "auto":
		return layout.AlignAuto, true
	case "flex-start":
		return layout.AlignStart, true
	case "flex-end":
		return layout.AlignEnd, true
	case "center":
		return layout.AlignCenter, true
	case "stretch":
		return layout.AlignStretch, true
	}
	return 0, false
}

func resolveOverflow(specific, all Field[Overflow], name string) Overflow {
	for _, f := range []Field[Overflow]{specific, all} {
		v, ok := f.Get()
		if !ok {
			continue
		}
		if v == OverflowVisible || v == OverflowHidden {
			return v
		}
		ignored(name, v)
	}
	return OverflowVisible
}

// spacing applies edge > axis > all > 0 precedence.
func spacing(edge, axis, all Field[int]) int {
	for _, f := range []Field[int]{edge, axis, all} {
		if v, ok := f.Get(); ok {
			return v
		}
	}
	return 0
}

func nonNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}

func nonNegativeInt(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

func ignored(property string, value any) {
	debug.Log("style: ignoring invalid %s value %v", property, value)
}
