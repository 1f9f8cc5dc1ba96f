package inkwell

import (
	"math"

	"github.com/grindlemire/go-inkwell/internal/layout"
)

// textSize returns the width of the widest line and the line count.
func textSize(lines []glyphLine) (w, h int) {
	for _, l := range lines {
		w = max(w, l.width())
	}
	return w, len(lines)
}

// measureText reports the intrinsic size of styled text under mode when
// offered width. Empty text measures (0, 0). Wrapped text keeps its natural
// size when it fits or when no usable width is offered; truncated text is
// always one line no wider than the offer.
func measureText(gs []glyph, mode TextWrap, width float64, wm layout.MeasureMode) (float64, float64) {
	if len(gs) == 0 {
		return 0, 0
	}
	constrained := wm != layout.MeasureUndefined && !math.IsNaN(width)

	switch mode {
	case Truncate, TruncateEnd, TruncateStart, TruncateMiddle:
		w := joinWithSpaces(splitGlyphLines(gs)).width()
		if constrained && float64(w) > width {
			return math.Max(0, math.Floor(width)), 1
		}
		return float64(w), 1
	}

	natW, natH := textSize(splitGlyphLines(gs))
	if !constrained || float64(natW) <= width || width < 1 {
		return float64(natW), float64(natH)
	}
	w, h := textSize(layoutText(gs, mode, int(width)))
	return float64(w), float64(h)
}

// MeasureText reports the rendered size of plain or SGR-styled text under
// the given wrap mode and width. A width below 1 means unconstrained.
func MeasureText(text string, mode TextWrap, width int) (w, h int) {
	wm := layout.MeasureAtMost
	fw := float64(width)
	if width < 1 {
		wm, fw = layout.MeasureUndefined, layout.Undefined
	}
	mw, mh := measureText(toGlyphs(decodeSGR(text, Style{})), mode, fw, wm)
	return int(mw), int(mh)
}
