package inkwell

import (
	"strings"

	"github.com/rivo/uniseg"
)

// glyph is one grapheme cluster with its display width and style.
type glyph struct {
	cluster string
	width   int
	style   Style
}

func (g glyph) isNewline() bool {
	return strings.ContainsAny(g.cluster, "\n\r")
}

func (g glyph) isSpace() bool {
	return g.cluster == " "
}

type glyphLine []glyph

func (l glyphLine) width() int {
	w := 0
	for _, g := range l {
		w += g.width
	}
	return w
}

func (l glyphLine) spans() []span {
	var out []span
	for _, g := range l {
		out = appendSpan(out, g.cluster, g.style)
	}
	return out
}

func (l glyphLine) String() string {
	var b strings.Builder
	for _, g := range l {
		b.WriteString(g.cluster)
	}
	return b.String()
}

// toGlyphs segments spans into grapheme clusters.
func toGlyphs(spans []span) []glyph {
	var out []glyph
	for _, s := range spans {
		text := s.text
		state := -1
		for len(text) > 0 {
			var cluster string
			var width int
			cluster, text, width, state = uniseg.FirstGraphemeClusterInString(text, state)
			out = append(out, glyph{cluster: cluster, width: width, style: s.style})
		}
	}
	return out
}

// splitGlyphLines breaks glyphs at newlines. The result always holds at
// least one line.
func splitGlyphLines(gs []glyph) []glyphLine {
	lines := []glyphLine{nil}
	for _, g := range gs {
		if g.isNewline() {
			lines = append(lines, nil)
			continue
		}
		lines[len(lines)-1] = append(lines[len(lines)-1], g)
	}
	return lines
}

func joinGlyphLines(lines []glyphLine) []glyph {
	var out []glyph
	for i, l := range lines {
		if i > 0 {
			out = append(out, glyph{cluster: "\n"})
		}
		out = append(out, l...)
	}
	return out
}

// applyTransform runs fn over each logical line of spans. Each line is
// handed to fn with its styling encoded as SGR sequences.
func applyTransform(spans []span, fn Transform) []span {
	lines := splitGlyphLines(toGlyphs(spans))
	var out []span
	for i, line := range lines {
		if i > 0 {
			out = appendSpan(out, "\n", Style{})
		}
		for _, s := range decodeSGR(fn(encodeSpans(line.spans()), i), Style{}) {
			out = appendSpan(out, s.text, s.style)
		}
	}
	return out
}

// squash collects the styled content of a text subtree. Nested text
// styles layer over their parent's and transforms on nested text nodes
// apply innermost first. The transform of the outermost Text node is not
// applied here; it runs on wrapped lines at paint time.
func (t *Tree) squash(id NodeID, inherited Style) []span {
	n := t.get(id)
	if n == nil {
		return nil
	}
	if n.kind == KindTextLeaf {
		return decodeSGR(n.text, inherited)
	}
	style := n.style.textStyle().Inherit(inherited)
	var out []span
	for _, c := range n.children {
		for _, s := range t.squash(c, style) {
			out = appendSpan(out, s.text, s.style)
		}
	}
	if n.kind == KindVirtualText && n.transform != nil {
		out = applyTransform(out, n.transform)
	}
	return out
}
