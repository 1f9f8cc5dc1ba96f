package inkwell

const ellipsis = "…"

// layoutText fits glyphs to width according to mode. A width below 1
// leaves the text unwrapped.
func layoutText(gs []glyph, mode TextWrap, width int) []glyphLine {
	lines := splitGlyphLines(gs)
	switch mode {
	case Truncate, TruncateEnd, TruncateStart, TruncateMiddle:
		return []glyphLine{truncateLine(joinWithSpaces(lines), width, mode)}
	}
	if width < 1 {
		return lines
	}
	var out []glyphLine
	for _, l := range lines {
		out = append(out, wrapLine(l, width)...)
	}
	return out
}

func joinWithSpaces(lines []glyphLine) glyphLine {
	var out glyphLine
	for i, l := range lines {
		if i > 0 {
			var style Style
			if len(out) > 0 {
				style = out[len(out)-1].style
			}
			out = append(out, glyph{cluster: " ", width: 1, style: style})
		}
		out = append(out, l...)
	}
	return out
}

type wordToken struct {
	glyphs glyphLine
	space  bool
}

func tokenize(line glyphLine) []wordToken {
	var toks []wordToken
	for _, g := range line {
		sp := g.isSpace()
		if n := len(toks); n > 0 && toks[n-1].space == sp {
			toks[n-1].glyphs = append(toks[n-1].glyphs, g)
			continue
		}
		toks = append(toks, wordToken{glyphs: glyphLine{g}, space: sp})
	}
	return toks
}

// wrapLine greedily breaks one logical line at spaces so that no line is
// wider than width. Words wider than width are broken hard. Spaces at a
// break are dropped; leading spaces of the line are kept.
func wrapLine(line glyphLine, width int) []glyphLine {
	if line.width() <= width {
		return []glyphLine{line}
	}

	var out []glyphLine
	var cur glyphLine
	curW := 0
	var pending glyphLine

	place := func(word glyphLine) {
		for word.width() > width {
			head, tail := splitAtWidth(word, width)
			out = append(out, head)
			word = tail
		}
		cur = word
		curW = word.width()
	}

	var lead glyphLine
	for i, tok := range tokenize(line) {
		if tok.space {
			if i == 0 {
				lead = tok.glyphs
			} else {
				pending = tok.glyphs
			}
			continue
		}
		word := tok.glyphs
		if lead != nil {
			word = append(lead, word...)
			lead = nil
		}
		ww := word.width()
		pw := pending.width()
		switch {
		case curW == 0:
			place(word)
		case curW+pw+ww <= width:
			cur = append(cur, pending...)
			cur = append(cur, word...)
			curW += pw + ww
		default:
			out = append(out, cur)
			place(word)
		}
		pending = nil
	}
	if curW+pending.width() <= width {
		cur = append(cur, pending...)
	}
	return append(out, cur)
}

// splitAtWidth returns the longest prefix of l no wider than width and the
// remainder. At least one glyph is always taken.
func splitAtWidth(l glyphLine, width int) (glyphLine, glyphLine) {
	w := 0
	for i, g := range l {
		if w+g.width > width && i > 0 {
			return l[:i], l[i:]
		}
		w += g.width
	}
	return l, nil
}

// truncateLine clips a single line to width, marking the removed part
// with an ellipsis.
func truncateLine(l glyphLine, width int, mode TextWrap) glyphLine {
	if l.width() <= width {
		return l
	}
	if width < 1 {
		return nil
	}
	mark := func(style Style) glyph {
		return glyph{cluster: ellipsis, width: 1, style: style}
	}
	if width == 1 {
		return glyphLine{mark(l[0].style)}
	}

	switch mode {
	case TruncateStart:
		tail := suffixWithin(l, width-1)
		return append(glyphLine{mark(l[len(l)-len(tail)-1].style)}, tail...)
	case TruncateMiddle:
		left := width / 2
		head := prefixWithin(l, left)
		tail := suffixWithin(l, width-left-1)
		out := append(glyphLine{}, head...)
		out = append(out, mark(l[len(head)].style))
		return append(out, tail...)
	default:
		head := prefixWithin(l, width-1)
		out := append(glyphLine{}, head...)
		return append(out, mark(l[len(head)].style))
	}
}

func prefixWithin(l glyphLine, width int) glyphLine {
	w := 0
	for i, g := range l {
		if w+g.width > width {
			return l[:i]
		}
		w += g.width
	}
	return l
}

func suffixWithin(l glyphLine, width int) glyphLine {
	w := 0
	for i := len(l) - 1; i >= 0; i-- {
		if w+l[i].width > width {
			return l[i+1:]
		}
		w += l[i].width
	}
	return l
}
