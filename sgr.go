package inkwell

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

// span is a run of text sharing one cell style.
type span struct {
	text  string
	style Style
}

func appendSpan(spans []span, text string, style Style) []span {
	if text == "" {
		return spans
	}
	if n := len(spans); n > 0 && spans[n-1].style.Equal(style) {
		spans[n-1].text += text
		return spans
	}
	return append(spans, span{text: text, style: style})
}

// encodeSpans renders spans as a string with true color SGR runs.
func encodeSpans(spans []span) string {
	e := newEscBuilder(64)
	for _, s := range spans {
		if e.SetStyle(s.style, termenv.TrueColor) {
			e.WriteString(s.text)
			e.ResetStyle()
			continue
		}
		e.WriteString(s.text)
	}
	return e.String()
}

// decodeSGR splits s into styled spans. SGR sequences update the current
// style starting from base; a reset returns to base. Any other escape
// sequence is dropped.
func decodeSGR(s string, base Style) []span {
	var out []span
	cur := base
	for len(s) > 0 {
		start, end := nextSGR(s)
		if start < 0 {
			out = appendSpan(out, ansi.Strip(s), cur)
			break
		}
		out = appendSpan(out, ansi.Strip(s[:start]), cur)
		cur = applySGR(cur, base, s[start+2:end-1])
		s = s[end:]
	}
	return out
}

// nextSGR returns the bounds of the first "ESC [ params m" sequence in s.
func nextSGR(s string) (start, end int) {
	offset := 0
	for {
		i := strings.Index(s[offset:], "\x1b[")
		if i < 0 {
			return -1, -1
		}
		i += offset
		j := i + 2
		for j < len(s) && (s[j] == ';' || (s[j] >= '0' && s[j] <= '9')) {
			j++
		}
		if j < len(s) && s[j] == 'm' {
			return i, j + 1
		}
		offset = i + 2
	}
}

func applySGR(cur, base Style, params string) Style {
	if params == "" {
		return base
	}
	codes := strings.Split(params, ";")
	for i := 0; i < len(codes); i++ {
		code, err := strconv.Atoi(codes[i])
		if err != nil {
			code = 0
		}
		switch {
		case code == 0:
			cur = base
		case code == 1:
			cur.Attrs |= AttrBold
		case code == 2:
			cur.Attrs |= AttrDim
		case code == 3:
			cur.Attrs |= AttrItalic
		case code == 4:
			cur.Attrs |= AttrUnderline
		case code == 5:
			cur.Attrs |= AttrBlink
		case code == 7:
			cur.Attrs |= AttrReverse
		case code == 9:
			cur.Attrs |= AttrStrikethrough
		case code == 22:
			cur.Attrs &^= AttrBold | AttrDim
		case code == 23:
			cur.Attrs &^= AttrItalic
		case code == 24:
			cur.Attrs &^= AttrUnderline
		case code == 25:
			cur.Attrs &^= AttrBlink
		case code == 27:
			cur.Attrs &^= AttrReverse
		case code == 29:
			cur.Attrs &^= AttrStrikethrough
		case code >= 30 && code <= 37:
			cur.Fg = ANSIColor(uint8(code - 30))
		case code >= 90 && code <= 97:
			cur.Fg = ANSIColor(uint8(code - 90 + 8))
		case code == 39:
			cur.Fg = base.Fg
		case code >= 40 && code <= 47:
			cur.Bg = ANSIColor(uint8(code - 40))
		case code >= 100 && code <= 107:
			cur.Bg = ANSIColor(uint8(code - 100 + 8))
		case code == 49:
			cur.Bg = base.Bg
		case code == 38 || code == 48:
			c, consumed, ok := extendedColor(codes[i+1:])
			i += consumed
			if !ok {
				continue
			}
			if code == 38 {
				cur.Fg = c
			} else {
				cur.Bg = c
			}
		}
	}
	return cur
}

// extendedColor parses the arguments following 38 or 48.
func extendedColor(args []string) (Color, int, bool) {
	num := func(i int) (uint8, bool) {
		if i >= len(args) {
			return 0, false
		}
		n, err := strconv.ParseUint(args[i], 10, 8)
		return uint8(n), err == nil
	}
	mode, ok := num(0)
	if !ok {
		return Color{}, len(args), false
	}
	switch mode {
	case 5:
		n, ok := num(1)
		return ANSIColor(n), 2, ok
	case 2:
		r, okR := num(1)
		g, okG := num(2)
		b, okB := num(3)
		return RGBColor(r, g, b), 4, okR && okG && okB
	}
	return Color{}, 1, false
}
