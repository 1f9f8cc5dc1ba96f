package inkwell

import (
	"reflect"
)

type fieldState uint8

const (
	fieldAbsent fieldState = iota
	fieldSet
	fieldUnset
)

// Field is one optional property of a StyleRecord. The zero value is
// absent: merging it leaves the destination untouched. Unset clears the
// destination back to absent.
type Field[T any] struct {
	state fieldState
	value T
}

// Set returns a field holding v.
func Set[T any](v T) Field[T] {
	return Field[T]{state: fieldSet, value: v}
}

// Unset returns a field that clears any prior value when merged.
func Unset[T any]() Field[T] {
	return Field[T]{state: fieldUnset}
}

// Get returns the value and whether one is set.
func (f Field[T]) Get() (T, bool) {
	if f.state != fieldSet {
		var zero T
		return zero, false
	}
	return f.value, true
}

// Or returns the value if set, otherwise def.
func (f Field[T]) Or(def T) T {
	if f.state != fieldSet {
		return def
	}
	return f.value
}

// IsSet reports whether the field holds a value.
func (f Field[T]) IsSet() bool {
	return f.state == fieldSet
}

func (f Field[T]) fieldState() fieldState {
	return f.state
}

type stateful interface {
	fieldState() fieldState
}

// FlexDirection is the main axis of a container.
type FlexDirection string

const (
	FlexRow           FlexDirection = "row"
	FlexColumn        FlexDirection = "column"
	FlexRowReverse    FlexDirection = "row-reverse"
	FlexColumnReverse FlexDirection = "column-reverse"
)

// FlexWrap controls whether items may break onto multiple lines.
type FlexWrap string

const (
	FlexNoWrap      FlexWrap = "nowrap"
	FlexWrapLines   FlexWrap = "wrap"
	FlexWrapReverse FlexWrap = "wrap-reverse"
)

// AlignItems is the cross axis alignment of a container's items.
type AlignItems string

const (
	AlignItemsStart   AlignItems = "flex-start"
	AlignItemsCenter  AlignItems = "center"
	AlignItemsEnd     AlignItems = "flex-end"
	AlignItemsStretch AlignItems = "stretch"
)

// AlignSelf overrides the parent's AlignItems for one item.
type AlignSelf string

const (
	AlignSelfAuto   AlignSelf = "auto"
	AlignSelfStart  AlignSelf = "flex-start"
	AlignSelfCenter AlignSelf = "center"
	AlignSelfEnd    AlignSelf = "flex-end"
)

// JustifyContent distributes free space along the main axis.
type JustifyContent string

const (
	JustifyStart        JustifyContent = "flex-start"
	JustifyEnd          JustifyContent = "flex-end"
	JustifyCenter       JustifyContent = "center"
	JustifySpaceBetween JustifyContent = "space-between"
	JustifySpaceAround  JustifyContent = "space-around"
	JustifySpaceEvenly  JustifyContent = "space-evenly"
)

// Display toggles participation in layout and paint.
type Display string

const (
	DisplayFlex Display = "flex"
	DisplayNone Display = "none"
)

// Position selects normal flow or absolute placement.
type Position string

const (
	PositionRelative Position = "relative"
	PositionAbsolute Position = "absolute"
)

// Overflow controls clipping of descendants.
type Overflow string

const (
	OverflowVisible Overflow = "visible"
	OverflowHidden  Overflow = "hidden"
)

// TextWrap is the text fitting policy.
type TextWrap string

const (
	WrapText       TextWrap = "wrap"
	TruncateEnd    TextWrap = "truncate-end"
	Truncate       TextWrap = "truncate"
	TruncateStart  TextWrap = "truncate-start"
	TruncateMiddle TextWrap = "truncate-middle"
)

// StyleRecord is a sparse set of node style properties. Only fields that
// are set take part in resolution; see Resolve.
type StyleRecord struct {
	Position Field[Position] `style:"position"`

	Width     Field[Value] `style:"width"`
	Height    Field[Value] `style:"height"`
	MinWidth  Field[Value] `style:"minWidth"`
	MinHeight Field[Value] `style:"minHeight"`
	MaxWidth  Field[Value] `style:"maxWidth"`
	MaxHeight Field[Value] `style:"maxHeight"`

	FlexGrow       Field[float64]        `style:"flexGrow"`
	FlexShrink     Field[float64]        `style:"flexShrink"`
	FlexBasis      Field[Value]          `style:"flexBasis"`
	FlexDirection  Field[FlexDirection]  `style:"flexDirection"`
	FlexWrap       Field[FlexWrap]       `style:"flexWrap"`
	AlignItems     Field[AlignItems]     `style:"alignItems"`
	AlignSelf      Field[AlignSelf]      `style:"alignSelf"`
	JustifyContent Field[JustifyContent] `style:"justifyContent"`

	Margin       Field[int] `style:"margin"`
	MarginX      Field[int] `style:"marginX"`
	MarginY      Field[int] `style:"marginY"`
	MarginTop    Field[int] `style:"marginTop"`
	MarginRight  Field[int] `style:"marginRight"`
	MarginBottom Field[int] `style:"marginBottom"`
	MarginLeft   Field[int] `style:"marginLeft"`

	Padding       Field[int] `style:"padding"`
	PaddingX      Field[int] `style:"paddingX"`
	PaddingY      Field[int] `style:"paddingY"`
	PaddingTop    Field[int] `style:"paddingTop"`
	PaddingRight  Field[int] `style:"paddingRight"`
	PaddingBottom Field[int] `style:"paddingBottom"`
	PaddingLeft   Field[int] `style:"paddingLeft"`

	Gap       Field[int] `style:"gap"`
	RowGap    Field[int] `style:"rowGap"`
	ColumnGap Field[int] `style:"columnGap"`

	Display   Field[Display]  `style:"display"`
	Overflow  Field[Overflow] `style:"overflow"`
	OverflowX Field[Overflow] `style:"overflowX"`
	OverflowY Field[Overflow] `style:"overflowY"`

	BorderStyle          Field[string] `style:"borderStyle"`
	BorderTop            Field[bool]   `style:"borderTop"`
	BorderRight          Field[bool]   `style:"borderRight"`
	BorderBottom         Field[bool]   `style:"borderBottom"`
	BorderLeft           Field[bool]   `style:"borderLeft"`
	BorderColor          Field[Color]  `style:"borderColor"`
	BorderTopColor       Field[Color]  `style:"borderTopColor"`
	BorderRightColor     Field[Color]  `style:"borderRightColor"`
	BorderBottomColor    Field[Color]  `style:"borderBottomColor"`
	BorderLeftColor      Field[Color]  `style:"borderLeftColor"`
	BorderDimColor       Field[bool]   `style:"borderDimColor"`
	BorderTopDimColor    Field[bool]   `style:"borderTopDimColor"`
	BorderRightDimColor  Field[bool]   `style:"borderRightDimColor"`
	BorderBottomDimColor Field[bool]   `style:"borderBottomDimColor"`
	BorderLeftDimColor   Field[bool]   `style:"borderLeftDimColor"`

	BackgroundColor Field[Color] `style:"backgroundColor"`

	Color         Field[Color]    `style:"color"`
	DimColor      Field[bool]     `style:"dimColor"`
	Bold          Field[bool]     `style:"bold"`
	Italic        Field[bool]     `style:"italic"`
	Underline     Field[bool]     `style:"underline"`
	Strikethrough Field[bool]     `style:"strikethrough"`
	Inverse       Field[bool]     `style:"inverse"`
	Wrap          Field[TextWrap] `style:"wrap"`
}

// Merge shallow-merges partial into s. Absent fields keep their prior
// value, set fields replace it and unset fields clear it.
func (s *StyleRecord) Merge(partial StyleRecord) {
	dst := reflect.ValueOf(s).Elem()
	src := reflect.ValueOf(partial)
	for i := 0; i < src.NumField(); i++ {
		f := src.Field(i)
		switch f.Interface().(stateful).fieldState() {
		case fieldSet:
			dst.Field(i).Set(f)
		case fieldUnset:
			dst.Field(i).Set(reflect.Zero(f.Type()))
		}
	}
}
