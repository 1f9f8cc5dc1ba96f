package inkwell

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Cell represents a single character cell in the compositor grid.
// Wide graphemes (CJK, emoji) occupy multiple cells; the first cell holds
// the grapheme, subsequent cells are marked as continuations.
type Cell struct {
	Content string // One grapheme cluster ("" for continuation cells)
	Style   Style  // Visual styling
	Width   uint8  // Display width (1 or 2; 0 for continuation)
}

// blankCell is the unstyled space every grid cell starts as.
var blankCell = Cell{Content: " ", Width: 1}

// NewCell creates a Cell for a single rune with automatic width detection.
func NewCell(r rune, style Style) Cell {
	return Cell{
		Content: string(r),
		Style:   style,
		Width:   uint8(RuneWidth(r)),
	}
}

// NewGraphemeCell creates a Cell holding a grapheme cluster of known width.
func NewGraphemeCell(cluster string, width int, style Style) Cell {
	return Cell{Content: cluster, Style: style, Width: uint8(width)}
}

// IsContinuation returns true if this cell is a continuation of a wide character.
func (c Cell) IsContinuation() bool {
	return c.Width == 0
}

// Equal returns true if both cells are identical.
func (c Cell) Equal(other Cell) bool {
	return c.Content == other.Content && c.Style.Equal(other.Style) && c.Width == other.Width
}

// IsBlank returns true for an unstyled space, the only cell content that
// may be trimmed from the end of a row.
func (c Cell) IsBlank() bool {
	return c.Content == " " && c.Style.IsZero()
}

// RuneWidth returns the display width of a rune in terminal cells.
// Zero-width and control runes report 1 so they still occupy a cell.
func RuneWidth(r rune) int {
	w := runewidth.RuneWidth(r)
	if w < 1 {
		return 1
	}
	return w
}

// StringWidth returns the visual width of s, accounting for grapheme
// clusters and wide characters.
func StringWidth(s string) int {
	if isASCII(s) {
		return len(s)
	}
	return uniseg.StringWidth(s)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf || s[i] < 0x20 {
			return false
		}
	}
	return true
}
