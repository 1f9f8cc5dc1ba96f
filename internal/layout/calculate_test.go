package layout

import (
	"errors"
	"math"
	"testing"
)

// fixedMeasure reports the same size regardless of constraints.
func fixedMeasure(w, h float64) MeasureFunc {
	return func(float64, MeasureMode) (float64, float64) { return w, h }
}

// wrappingMeasure behaves like a paragraph of n cells that wraps at the
// available width.
func wrappingMeasure(n float64) MeasureFunc {
	return func(width float64, mode MeasureMode) (float64, float64) {
		if mode == MeasureUndefined || width >= n {
			return n, 1
		}
		if width < 1 {
			width = 1
		}
		return width, math.Ceil(n / width)
	}
}

type testTree struct {
	e    *Engine
	root Handle
}

func newTestTree(t *testing.T, root Style) *testTree {
	t.Helper()
	e := NewEngine()
	h := e.NewNode()
	if err := e.SetStyle(h, root); err != nil {
		t.Fatalf("SetStyle: %v", err)
	}
	return &testTree{e: e, root: h}
}

func (tt *testTree) add(t *testing.T, parent Handle, s Style, fn MeasureFunc) Handle {
	t.Helper()
	h := tt.e.NewNode()
	if err := tt.e.SetStyle(h, s); err != nil {
		t.Fatalf("SetStyle: %v", err)
	}
	if fn != nil {
		if err := tt.e.SetMeasureFunc(h, fn); err != nil {
			t.Fatalf("SetMeasureFunc: %v", err)
		}
	}
	if err := tt.e.InsertChild(parent, h, -1); err != nil {
		t.Fatalf("InsertChild: %v", err)
	}
	return h
}

func withStyle(mut func(*Style)) Style {
	s := DefaultStyle()
	mut(&s)
	return s
}

func rowStyle(width float64) Style {
	return withStyle(func(s *Style) {
		s.Direction = Row
		s.Width = Fixed(width)
	})
}

func expectLayout(t *testing.T, e *Engine, h Handle, want Layout) {
	t.Helper()
	got := e.Layout(h)
	if math.Abs(got.Left-want.Left) > 1e-9 || math.Abs(got.Top-want.Top) > 1e-9 ||
		math.Abs(got.Width-want.Width) > 1e-9 || math.Abs(got.Height-want.Height) > 1e-9 {
		t.Errorf("Layout(%d) = %+v, want %+v", h, got, want)
	}
}

func TestCalculate_RowPlacesChildrenSideBySide(t *testing.T) {
	tr := newTestTree(t, rowStyle(10))
	a := tr.add(t, tr.root, DefaultStyle(), fixedMeasure(3, 1))
	b := tr.add(t, tr.root, DefaultStyle(), fixedMeasure(3, 1))

	if err := tr.e.Calculate(tr.root, 10, Undefined); err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	expectLayout(t, tr.e, tr.root, Layout{Width: 10, Height: 1})
	expectLayout(t, tr.e, a, Layout{Left: 0, Width: 3, Height: 1})
	expectLayout(t, tr.e, b, Layout{Left: 3, Width: 3, Height: 1})
}

func TestCalculate_ColumnStretchesAcrossPaddingAndBorder(t *testing.T) {
	tr := newTestTree(t, withStyle(func(s *Style) {
		s.Width = Fixed(10)
		s.Padding = EdgeAll(1)
		s.Border = EdgeAll(1)
	}))
	a := tr.add(t, tr.root, DefaultStyle(), fixedMeasure(3, 2))

	if err := tr.e.Calculate(tr.root, 10, Undefined); err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	expectLayout(t, tr.e, tr.root, Layout{Width: 10, Height: 6})
	expectLayout(t, tr.e, a, Layout{Left: 2, Top: 2, Width: 6, Height: 2})
}

func TestCalculate_FlexFactors(t *testing.T) {
	type tc struct {
		width   float64
		a, b    Style
		measure [2]MeasureFunc
		wantA   Layout
		wantB   Layout
	}

	tests := map[string]tc{
		"grow fills remaining space": {
			width: 10,
			a:     withStyle(func(s *Style) { s.Width = Fixed(2) }),
			b: withStyle(func(s *Style) {
				s.Width = Fixed(2)
				s.FlexGrow = 1
			}),
			wantA: Layout{Width: 2, Height: 0},
			wantB: Layout{Left: 2, Width: 8, Height: 0},
		},
		"shrink weighted by basis": {
			width:   6,
			a:       withStyle(func(s *Style) { s.FlexShrink = 1 }),
			b:       withStyle(func(s *Style) { s.FlexShrink = 1 }),
			measure: [2]MeasureFunc{fixedMeasure(4, 1), fixedMeasure(4, 1)},
			wantA:   Layout{Width: 3, Height: 1},
			wantB:   Layout{Left: 3, Width: 3, Height: 1},
		},
		"no shrink overflows": {
			width:   6,
			measure: [2]MeasureFunc{fixedMeasure(4, 1), fixedMeasure(4, 1)},
			a:       DefaultStyle(),
			b:       DefaultStyle(),
			wantA:   Layout{Width: 4, Height: 1},
			wantB:   Layout{Left: 4, Width: 4, Height: 1},
		},
		"shrunk text rewraps": {
			width:   5,
			a:       withStyle(func(s *Style) { s.FlexShrink = 1 }),
			b:       withStyle(func(s *Style) { s.Display = DisplayNone }),
			measure: [2]MeasureFunc{wrappingMeasure(10), nil},
			wantA:   Layout{Width: 5, Height: 2},
			wantB:   Layout{},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			tr := newTestTree(t, rowStyle(tt.width))
			a := tr.add(t, tr.root, tt.a, tt.measure[0])
			b := tr.add(t, tr.root, tt.b, tt.measure[1])
			if err := tr.e.Calculate(tr.root, tt.width, Undefined); err != nil {
				t.Fatalf("Calculate: %v", err)
			}
			expectLayout(t, tr.e, a, tt.wantA)
			expectLayout(t, tr.e, b, tt.wantB)
		})
	}
}

func TestCalculate_Justify(t *testing.T) {
	type tc struct {
		justify Justify
		wantA   float64
		wantB   float64
	}

	tests := map[string]tc{
		"start":         {justify: JustifyStart, wantA: 0, wantB: 2},
		"end":           {justify: JustifyEnd, wantA: 6, wantB: 8},
		"center":        {justify: JustifyCenter, wantA: 3, wantB: 5},
		"space-between": {justify: JustifySpaceBetween, wantA: 0, wantB: 8},
		"space-around":  {justify: JustifySpaceAround, wantA: 1.5, wantB: 6.5},
		"space-evenly":  {justify: JustifySpaceEvenly, wantA: 2, wantB: 6},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			root := rowStyle(10)
			root.JustifyContent = tt.justify
			tr := newTestTree(t, root)
			a := tr.add(t, tr.root, DefaultStyle(), fixedMeasure(2, 1))
			b := tr.add(t, tr.root, DefaultStyle(), fixedMeasure(2, 1))
			if err := tr.e.Calculate(tr.root, 10, Undefined); err != nil {
				t.Fatalf("Calculate: %v", err)
			}
			if got := tr.e.Layout(a).Left; got != tt.wantA {
				t.Errorf("a.Left = %v, want %v", got, tt.wantA)
			}
			if got := tr.e.Layout(b).Left; got != tt.wantB {
				t.Errorf("b.Left = %v, want %v", got, tt.wantB)
			}
		})
	}
}

func TestCalculate_AlignItems(t *testing.T) {
	type tc struct {
		align   Align
		wantTop float64
		wantH   float64
	}

	tests := map[string]tc{
		"stretch": {align: AlignStretch, wantTop: 0, wantH: 4},
		"start":   {align: AlignStart, wantTop: 0, wantH: 1},
		"end":     {align: AlignEnd, wantTop: 3, wantH: 1},
		"center":  {align: AlignCenter, wantTop: 1.5, wantH: 1},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			root := rowStyle(10)
			root.Height = Fixed(4)
			root.AlignItems = tt.align
			tr := newTestTree(t, root)
			a := tr.add(t, tr.root, DefaultStyle(), fixedMeasure(2, 1))
			if err := tr.e.Calculate(tr.root, 10, Undefined); err != nil {
				t.Fatalf("Calculate: %v", err)
			}
			got := tr.e.Layout(a)
			if got.Top != tt.wantTop || got.Height != tt.wantH {
				t.Errorf("Layout = %+v, want top %v height %v", got, tt.wantTop, tt.wantH)
			}
		})
	}
}

func TestCalculate_WrapAndReverse(t *testing.T) {
	type tc struct {
		root  Style
		wantA Layout
		wantB Layout
		wantH float64
	}

	tests := map[string]tc{
		"wrap moves overflow to next line": {
			root: withStyle(func(s *Style) {
				s.Direction = Row
				s.Wrap = WrapLines
			}),
			wantA: Layout{Width: 3, Height: 1},
			wantB: Layout{Top: 1, Width: 3, Height: 1},
			wantH: 2,
		},
		"row reverse": {
			root:  withStyle(func(s *Style) { s.Direction = RowReverse }),
			wantA: Layout{Left: 2, Width: 3, Height: 1},
			wantB: Layout{Left: -1, Width: 3, Height: 1},
			wantH: 1,
		},
		"column reverse": {
			root: withStyle(func(s *Style) {
				s.Direction = ColumnReverse
				s.Height = Fixed(4)
				s.AlignItems = AlignStart
			}),
			wantA: Layout{Top: 3, Width: 3, Height: 1},
			wantB: Layout{Top: 2, Width: 3, Height: 1},
			wantH: 4,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			tr := newTestTree(t, tt.root)
			a := tr.add(t, tr.root, DefaultStyle(), fixedMeasure(3, 1))
			b := tr.add(t, tr.root, DefaultStyle(), fixedMeasure(3, 1))
			if err := tr.e.Calculate(tr.root, 5, Undefined); err != nil {
				t.Fatalf("Calculate: %v", err)
			}
			expectLayout(t, tr.e, a, tt.wantA)
			expectLayout(t, tr.e, b, tt.wantB)
			if got := tr.e.Layout(tr.root).Height; got != tt.wantH {
				t.Errorf("root height = %v, want %v", got, tt.wantH)
			}
		})
	}
}

func TestCalculate_GapAndMargin(t *testing.T) {
	root := rowStyle(10)
	root.ColumnGap = 2
	tr := newTestTree(t, root)
	a := tr.add(t, tr.root, withStyle(func(s *Style) { s.Margin = EdgeTRBL(0, 0, 0, 1) }), fixedMeasure(1, 1))
	b := tr.add(t, tr.root, DefaultStyle(), fixedMeasure(1, 1))

	if err := tr.e.Calculate(tr.root, 10, Undefined); err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	expectLayout(t, tr.e, a, Layout{Left: 1, Width: 1, Height: 1})
	expectLayout(t, tr.e, b, Layout{Left: 4, Width: 1, Height: 1})
}

func TestCalculate_AbsoluteChildLeavesFlow(t *testing.T) {
	tr := newTestTree(t, rowStyle(10))
	a := tr.add(t, tr.root, DefaultStyle(), fixedMeasure(3, 1))
	abs := tr.add(t, tr.root, withStyle(func(s *Style) {
		s.PositionType = PositionAbsolute
		s.Width = Percent(100)
	}), fixedMeasure(2, 3))
	b := tr.add(t, tr.root, DefaultStyle(), fixedMeasure(3, 1))

	if err := tr.e.Calculate(tr.root, 10, Undefined); err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	expectLayout(t, tr.e, tr.root, Layout{Width: 10, Height: 1})
	expectLayout(t, tr.e, a, Layout{Width: 3, Height: 1})
	expectLayout(t, tr.e, b, Layout{Left: 3, Width: 3, Height: 1})
	expectLayout(t, tr.e, abs, Layout{Width: 10, Height: 3})
}

func TestCalculate_MinMax(t *testing.T) {
	tr := newTestTree(t, rowStyle(20))
	a := tr.add(t, tr.root, withStyle(func(s *Style) {
		s.FlexGrow = 1
		s.MaxWidth = Fixed(5)
	}), nil)
	b := tr.add(t, tr.root, withStyle(func(s *Style) { s.MinWidth = Fixed(4) }), fixedMeasure(1, 1))

	if err := tr.e.Calculate(tr.root, 20, Undefined); err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if got := tr.e.Layout(a).Width; got != 5 {
		t.Errorf("a.Width = %v, want 5", got)
	}
	if got := tr.e.Layout(b).Width; got != 4 {
		t.Errorf("b.Width = %v, want 4", got)
	}
}

func TestCalculate_NonFiniteIsError(t *testing.T) {
	tr := newTestTree(t, rowStyle(10))
	tr.add(t, tr.root, DefaultStyle(), fixedMeasure(math.NaN(), 1))

	err := tr.e.Calculate(tr.root, 10, Undefined)
	var geo *GeometryError
	if !errors.As(err, &geo) {
		t.Fatalf("Calculate error = %v, want *GeometryError", err)
	}
	if geo.Field != "width" {
		t.Errorf("Field = %q, want width", geo.Field)
	}
}

func TestCalculate_MeasureSeesConstraint(t *testing.T) {
	var modes []MeasureMode
	tr := newTestTree(t, withStyle(func(s *Style) { s.Width = Fixed(8) }))
	tr.add(t, tr.root, DefaultStyle(), func(w float64, m MeasureMode) (float64, float64) {
		modes = append(modes, m)
		return 2, 1
	})

	if err := tr.e.Calculate(tr.root, 8, Undefined); err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if len(modes) == 0 {
		t.Fatal("measure func never called")
	}
	for _, m := range modes {
		if m != MeasureExactly {
			t.Errorf("mode = %v, want %v for a stretched column child", m, MeasureExactly)
		}
	}
}
