// layout.go re-exports layout types from internal/layout.
// Any changes to internal/layout types must be mirrored here.
package inkwell

import "github.com/grindlemire/go-inkwell/internal/layout"

// Value represents a dimension value (fixed, percent, or auto).
type Value = layout.Value

// Unit specifies how a Value is interpreted.
type Unit = layout.Unit

const (
	UnitAuto    = layout.UnitAuto
	UnitFixed   = layout.UnitFixed
	UnitPercent = layout.UnitPercent
)

// Edges represents spacing on four sides (top, right, bottom, left).
type Edges = layout.Edges

// LayoutStyle holds the engine-level layout properties produced by Resolve.
type LayoutStyle = layout.Style

// Fixed returns a Value of n terminal cells.
func Fixed(n float64) Value {
	return layout.Fixed(n)
}

// Percent returns a Value that is p percent of the parent's size.
func Percent(p float64) Value {
	return layout.Percent(p)
}

// Auto returns a Value computed from content and flex.
func Auto() Value {
	return layout.Auto()
}

// EdgeAll creates Edges with the same value on all sides.
func EdgeAll(n int) Edges {
	return layout.EdgeAll(n)
}

// EdgeTRBL creates Edges following CSS order: Top, Right, Bottom, Left.
func EdgeTRBL(t, r, b, l int) Edges {
	return layout.EdgeTRBL(t, r, b, l)
}
