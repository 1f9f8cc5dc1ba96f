package inkwell

import (
	"math"

	"github.com/grindlemire/go-inkwell/internal/layout"
	"github.com/muesli/termenv"
)

// unbounded is the clip used for the root; the grid grows downward to fit
// whatever is painted.
var unbounded = NewRect(math.MinInt32/2, 0, math.MaxInt32, math.MaxInt32/2)

type paintPass struct {
	t          *Tree
	buf        *Buffer
	skipStatic bool
}

// paint draws the node at originX/originY (the parent's absolute float
// origin) and its subtree.
func (p *paintPass) paint(id NodeID, originX, originY float64, clip Rect) {
	t := p.t
	n := t.get(id)
	if n == nil || n.kind.layoutTransparent() || n.handle == layout.NoHandle {
		return
	}
	if n.resolved.Layout.Display == layout.DisplayNone {
		return
	}
	if p.skipStatic && n.isStatic() {
		return
	}

	b, absX, absY := t.absoluteBox(n, originX, originY)
	if bottom := min(b.rect.Bottom(), clip.Bottom()); bottom > p.buf.Height() {
		p.buf.Grow(bottom)
	}

	if n.kind == KindText {
		p.paintText(n, b, clip)
		return
	}

	if bg := n.resolved.Background; !bg.IsDefault() {
		p.buf.Fill(b.inner.Intersect(clip), ' ', NewStyle().Background(bg))
	}
	DrawBorder(p.buf, b.rect, n.resolved.Border, clip)

	childClip := clip
	if n.resolved.OverflowX == OverflowHidden {
		childClip = childClip.Intersect(NewRect(b.inner.X, childClip.Y, b.inner.Width, childClip.Height))
	}
	if n.resolved.OverflowY == OverflowHidden {
		childClip = childClip.Intersect(NewRect(childClip.X, b.inner.Y, childClip.Width, b.inner.Height))
	}
	if childClip.IsEmpty() {
		return
	}

	// Normal flow first, then absolute children in document order so a
	// later absolute sibling ends up on top.
	children := t.layoutChildren(n)
	for _, absolute := range []bool{false, true} {
		for _, c := range children {
			cn := t.get(c)
			isAbs := cn.resolved.Layout.PositionType == layout.PositionAbsolute
			if isAbs == absolute {
				p.paint(c, absX, absY, childClip)
			}
		}
	}
}

// paintText writes the wrapped or truncated lines of a text node inside
// its content box. Glyphs without a background keep the one already in
// the grid.
func (p *paintPass) paintText(n *node, b box, clip Rect) {
	clip = clip.Intersect(b.rect)
	if clip.IsEmpty() {
		return
	}
	lines := layoutText(toGlyphs(n.spans), n.resolved.Wrap, b.content.Width)
	for i, line := range lines {
		if n.transform != nil {
			line = toGlyphs(decodeSGR(n.transform(encodeSpans(line.spans()), i), Style{}))
		}
		y := b.content.Y + i
		if y >= clip.Bottom() {
			break
		}
		x := b.content.X
		for _, g := range line {
			if g.width == 0 {
				continue
			}
			if x >= clip.X && x+g.width <= clip.Right() && y >= clip.Y {
				style := g.style
				if style.Bg.IsDefault() {
					style.Bg = p.buf.Cell(x, y).Style.Bg
				}
				p.buf.SetGrapheme(x, y, g.cluster, g.width, style)
			}
			x += g.width
		}
	}
}

// renderDynamic composites everything outside static regions.
func (t *Tree) renderDynamic(profile termenv.Profile) Frame {
	root := t.get(t.root)
	l := t.engine.Layout(root.handle)
	width := int(math.Round(l.Width))
	buf := NewBuffer(width, int(math.Round(l.Height)))
	p := &paintPass{t: t, buf: buf, skipStatic: true}
	p.paint(t.root, 0, 0, unbounded)
	return Frame{Kind: FrameDynamic, Content: buf.Render(profile), Height: buf.Height()}
}
