package inkwell

import (
	"math"

	"github.com/grindlemire/go-inkwell/internal/debug"
	"github.com/grindlemire/go-inkwell/internal/layout"
)

// syncLayout pushes every dirty node into the layout engine and computes
// layout for the given column count with unconstrained height.
func (t *Tree) syncLayout(columns int) error {
	synced := t.syncNode(t.root)
	root := t.get(t.root)
	debug.Log("layout: synced %d nodes, %d engine nodes live", synced, t.engine.Len())
	if err := t.engine.Calculate(root.handle, float64(columns), layout.Undefined); err != nil {
		return newLayoutError(t, err)
	}
	return nil
}

func (t *Tree) ensureHandle(n *node) {
	if n.handle != layout.NoHandle {
		return
	}
	n.handle = t.engine.NewNode()
	t.owners[n.handle] = n.id
}

// syncNode reconciles one dirty node and its dirty descendants. Clean
// subtrees are left as they are. It returns the number of nodes synced.
func (t *Tree) syncNode(id NodeID) int {
	n := t.get(id)
	if n == nil || n.kind.layoutTransparent() || !n.dirty {
		return 0
	}
	t.ensureHandle(n)

	n.resolved = n.style.Resolve()
	ls := n.resolved.Layout
	if n.isStatic() {
		ls.PositionType = layout.PositionAbsolute
		ls.Direction = layout.Column
	}
	_ = t.engine.SetStyle(n.handle, ls)
	n.dirty = false

	if n.kind == KindText {
		t.syncText(n)
		return 1
	}

	count := 1
	_ = t.engine.RemoveAllChildren(n.handle)
	for _, c := range t.layoutChildren(n) {
		cn := t.get(c)
		count += t.syncNode(c)
		if p := t.engine.Parent(cn.handle); p != layout.NoHandle {
			_ = t.engine.RemoveChild(p, cn.handle)
		}
		_ = t.engine.InsertChild(n.handle, cn.handle, -1)
	}
	return count
}

// layoutChildren lists the children of n that take part in layout. A
// static region only lays out items it has not emitted yet.
func (t *Tree) layoutChildren(n *node) []NodeID {
	var out []NodeID
	cursor := t.static[n.id]
	for _, c := range n.children {
		cn := t.get(c)
		if cn == nil || cn.kind.layoutTransparent() {
			continue
		}
		if n.isStatic() && cursor != nil && cursor.emitted[c] {
			continue
		}
		out = append(out, c)
	}
	return out
}

// syncText squashes a text subtree into spans and installs the measure
// callback. Text fragments below it never get engine nodes.
func (t *Tree) syncText(n *node) {
	n.spans = t.squash(n.id, Style{})
	glyphs := toGlyphs(n.spans)
	mode := n.resolved.Wrap
	_ = t.engine.SetMeasureFunc(n.handle, func(width float64, wm layout.MeasureMode) (float64, float64) {
		return measureText(glyphs, mode, width, wm)
	})
	t.clearDirty(n.children)
}

func (t *Tree) clearDirty(ids []NodeID) {
	for _, id := range ids {
		if n := t.get(id); n != nil {
			n.dirty = false
			t.clearDirty(n.children)
		}
	}
}

// box is a node's computed geometry in absolute grid cells.
type box struct {
	rect    Rect // border box
	inner   Rect // inside the border
	content Rect // inside border and padding
}

// absoluteBox rounds a node's layout against its parent's absolute float
// origin, returning the rect and the node's own float origin.
func (t *Tree) absoluteBox(n *node, originX, originY float64) (box, float64, float64) {
	l := t.engine.Layout(n.handle)
	absX := originX + l.Left
	absY := originY + l.Top
	x := int(math.Round(absX))
	y := int(math.Round(absY))
	w := int(math.Round(absX+l.Width)) - x
	h := int(math.Round(absY+l.Height)) - y

	rect := NewRect(x, y, max(w, 0), max(h, 0))
	ls := n.resolved.Layout
	inner := rect.Inset(ls.Border)
	return box{
		rect:    rect,
		inner:   inner,
		content: inner.Inset(ls.Padding),
	}, absX, absY
}
