package layout

// Layout holds the computed geometry of a node after Calculate.
// Left and Top are relative to the parent's border box.
type Layout struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}
