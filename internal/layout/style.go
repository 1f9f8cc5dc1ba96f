package layout

// Direction specifies the main axis for laying out children.
type Direction uint8

const (
	Row           Direction = iota // Children laid out left-to-right
	Column                         // Children laid out top-to-bottom
	RowReverse                     // Children laid out right-to-left
	ColumnReverse                  // Children laid out bottom-to-top
)

func (d Direction) isRow() bool {
	return d == Row || d == RowReverse
}

func (d Direction) isReverse() bool {
	return d == RowReverse || d == ColumnReverse
}

// Wrap specifies whether children may flow onto multiple lines.
type Wrap uint8

const (
	NoWrap Wrap = iota
	WrapLines
	WrapReverse
)

// Justify specifies how children are distributed along the main axis.
type Justify uint8

const (
	JustifyStart        Justify = iota // Pack at start
	JustifyEnd                         // Pack at end
	JustifyCenter                      // Center children
	JustifySpaceBetween                // Even space between, none at edges
	JustifySpaceAround                 // Even space around each child
	JustifySpaceEvenly                 // Equal space between and at edges
)

// Align specifies how children are positioned on the cross axis.
type Align uint8

const (
	AlignAuto    Align = iota // AlignSelf only: defer to the parent's AlignItems
	AlignStart                // Align to start of cross axis
	AlignEnd                  // Align to end of cross axis
	AlignCenter               // Center on cross axis
	AlignStretch              // Stretch to fill cross axis
)

// Display toggles participation in layout.
type Display uint8

const (
	DisplayFlex Display = iota
	DisplayNone
)

// PositionType selects normal flow or absolute placement.
type PositionType uint8

const (
	PositionRelative PositionType = iota
	PositionAbsolute
)

// Style contains all layout properties for a node.
type Style struct {
	Display      Display
	PositionType PositionType

	// Sizing
	Width     Value
	Height    Value
	MinWidth  Value
	MinHeight Value
	MaxWidth  Value
	MaxHeight Value

	// Flex container properties
	Direction      Direction
	Wrap           Wrap
	JustifyContent Justify
	AlignItems     Align
	RowGap         int // Space between lines (column direction: between items)
	ColumnGap      int // Space between items in a row

	// Flex item properties
	FlexGrow   float64
	FlexShrink float64
	FlexBasis  Value
	AlignSelf  Align

	// Spacing
	Padding Edges
	Margin  Edges
	Border  Edges
}

// DefaultStyle returns the engine defaults: column direction, stretch
// alignment, no grow or shrink.
func DefaultStyle() Style {
	return Style{
		Width:      Auto(),
		Height:     Auto(),
		MinWidth:   Auto(),
		MinHeight:  Auto(),
		MaxWidth:   Auto(),
		MaxHeight:  Auto(),
		FlexBasis:  Auto(),
		Direction:  Column,
		AlignItems: AlignStretch,
		AlignSelf:  AlignAuto,
	}
}
