package inkwell

import (
	"strings"

	"github.com/grindlemire/go-inkwell/internal/debug"
	"github.com/grindlemire/go-inkwell/internal/layout"
	"github.com/muesli/termenv"
)

// staticCursor tracks which items of one static region were emitted.
// consumed only grows.
type staticCursor struct {
	emitted  map[NodeID]bool
	consumed int
}

func (t *Tree) cursor(id NodeID) *staticCursor {
	c, ok := t.static[id]
	if !ok {
		c = &staticCursor{emitted: make(map[NodeID]bool)}
		t.static[id] = c
	}
	return c
}

// staticNodes returns visible static regions in document order.
func (t *Tree) staticNodes() []NodeID {
	var out []NodeID
	var walk func(id NodeID)
	walk = func(id NodeID) {
		n := t.get(id)
		if n == nil || n.kind.layoutTransparent() || n.handle == layout.NoHandle {
			return
		}
		if n.resolved.Layout.Display == layout.DisplayNone {
			return
		}
		if n.isStatic() {
			out = append(out, id)
			return
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(t.root)
	return out
}

// parentOrigin returns the absolute float origin of id's parent.
func (t *Tree) parentOrigin(id NodeID) (x, y float64) {
	for a := t.get(id).parent; a != NoNode; a = t.get(a).parent {
		l := t.engine.Layout(t.get(a).handle)
		x += l.Left
		y += l.Top
	}
	return x, y
}

// StaticConsumed returns how many items of a static region have been
// emitted so far.
func (t *Tree) StaticConsumed(id NodeID) int {
	if c, ok := t.static[id]; ok {
		return c.consumed
	}
	return 0
}

// renderStatic composites the items of every static region that were not
// emitted yet and marks them emitted. It reports false when there is
// nothing new, in which case no frame must be produced.
func (t *Tree) renderStatic(profile termenv.Profile) (Frame, bool) {
	width := int(t.engine.Layout(t.get(t.root).handle).Width)
	var parts []string
	height := 0

	for _, id := range t.staticNodes() {
		n := t.get(id)
		pending := t.layoutChildren(n)
		if len(pending) == 0 {
			continue
		}

		originX, _ := t.parentOrigin(id)
		l := t.engine.Layout(n.handle)
		buf := NewBuffer(width, 0)
		p := &paintPass{t: t, buf: buf}
		p.paint(id, originX, -l.Top, unbounded)
		if buf.Height() > 0 {
			parts = append(parts, buf.Render(profile))
			height += buf.Height()
		}

		cursor := t.cursor(id)
		for _, c := range pending {
			cursor.emitted[c] = true
		}
		cursor.consumed += len(pending)
		t.markDirty(id)
		debug.Log("static: node %d emitted %d items (%d total)", id, len(pending), cursor.consumed)
	}

	if len(parts) == 0 {
		return Frame{}, false
	}
	return Frame{Kind: FrameStatic, Content: strings.Join(parts, "\n"), Height: height}, true
}
