package inkwell

import (
	"strings"

	"github.com/muesli/termenv"
	"github.com/rivo/uniseg"
)

// Buffer is the compositor's 2D grid of cells. Rows can be appended with
// Grow; the width is fixed at construction.
type Buffer struct {
	cells  []Cell
	width  int
	height int
}

// NewBuffer creates a grid of the specified dimensions filled with blank cells.
func NewBuffer(width, height int) *Buffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	b := &Buffer{width: width}
	b.Grow(height)
	return b
}

// Width returns the buffer width in columns.
func (b *Buffer) Width() int {
	return b.width
}

// Height returns the buffer height in rows.
func (b *Buffer) Height() int {
	return b.height
}

// Rect returns the buffer bounds as a Rect starting at (0, 0).
func (b *Buffer) Rect() Rect {
	return NewRect(0, 0, b.width, b.height)
}

// Grow extends the buffer to at least height rows.
func (b *Buffer) Grow(height int) {
	if height <= b.height {
		return
	}
	for i := b.height * b.width; i < height*b.width; i++ {
		b.cells = append(b.cells, blankCell)
	}
	b.height = height
}

// idx converts (x, y) coordinates to a flat index.
// Returns -1 if out of bounds.
func (b *Buffer) idx(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return -1
	}
	return y*b.width + x
}

// Cell returns the cell at position (x, y).
// Returns an empty Cell if the position is out of bounds.
func (b *Buffer) Cell(x, y int) Cell {
	idx := b.idx(x, y)
	if idx < 0 {
		return Cell{}
	}
	return b.cells[idx]
}

// SetCell sets the cell at position (x, y).
// Does nothing if the position is out of bounds.
func (b *Buffer) SetCell(x, y int, c Cell) {
	idx := b.idx(x, y)
	if idx < 0 {
		return
	}
	b.cells[idx] = c
}

// SetRune sets a rune at position (x, y) with the given style.
func (b *Buffer) SetRune(x, y int, r rune, style Style) {
	b.SetGrapheme(x, y, string(r), RuneWidth(r), style)
}

// SetGrapheme places a grapheme cluster of the given width at (x, y).
// Handles wide characters by setting continuation cells and clears any
// wide character it overlaps.
func (b *Buffer) SetGrapheme(x, y int, cluster string, width int, style Style) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	if width < 1 {
		width = 1
	}

	currentCell := b.Cell(x, y)

	// If target position is a continuation cell, clear the originating wide char
	if currentCell.IsContinuation() {
		b.clearWideCharAt(x, y)
	}

	// If target position is the START of a wide character, clear its continuation
	if currentCell.Width == 2 && x+1 < b.width {
		b.SetCell(x+1, y, blankCell)
	}

	// If placing a wide char would overlap an existing wide char at x+1, clear it
	if width == 2 && x+1 < b.width {
		next := b.Cell(x+1, y)
		if next.Width == 2 || next.IsContinuation() {
			b.clearWideCharAt(x+1, y)
		}
	}

	// Wide char at last column can't fit; place a space instead
	if width == 2 && x+1 >= b.width {
		b.SetCell(x, y, NewGraphemeCell(" ", 1, style))
		return
	}

	b.SetCell(x, y, NewGraphemeCell(cluster, width, style))
	if width == 2 {
		b.SetCell(x+1, y, NewGraphemeCell("", 0, style))
	}
}

// clearWideCharAt clears a wide character that includes position (x, y).
func (b *Buffer) clearWideCharAt(x, y int) {
	cell := b.Cell(x, y)

	if cell.IsContinuation() {
		if x > 0 {
			b.SetCell(x-1, y, blankCell)
		}
		b.SetCell(x, y, blankCell)
	} else if cell.Width == 2 {
		b.SetCell(x, y, blankCell)
		if x+1 < b.width {
			b.SetCell(x+1, y, blankCell)
		}
	}
}

// SetStringClipped writes a string clipped to a rectangle.
// Graphemes outside clipRect are not rendered; a wide grapheme that would
// straddle the clip edge is skipped. Returns the display width advanced.
func (b *Buffer) SetStringClipped(x, y int, s string, style Style, clipRect Rect) int {
	if y < clipRect.Y || y >= clipRect.Bottom() {
		return 0
	}

	curX := x
	state := -1
	for len(s) > 0 {
		var cluster string
		var width int
		cluster, s, width, state = uniseg.FirstGraphemeClusterInString(s, state)
		if width == 0 {
			continue
		}
		if curX >= clipRect.X && curX+width <= clipRect.Right() {
			b.SetGrapheme(curX, y, cluster, width, style)
		}
		curX += width
		if curX >= clipRect.Right() {
			break
		}
	}
	return curX - x
}

// Fill fills a rectangle with the given rune and style.
func (b *Buffer) Fill(rect Rect, r rune, style Style) {
	rect = rect.Intersect(b.Rect())
	if rect.IsEmpty() {
		return
	}

	width := RuneWidth(r)
	for y := rect.Y; y < rect.Bottom(); y++ {
		for x := rect.X; x < rect.Right(); {
			if width == 2 && x+1 >= rect.Right() {
				b.SetRune(x, y, ' ', style)
				x++
			} else {
				b.SetRune(x, y, r, style)
				x += width
			}
		}
	}
}

// Render converts the grid to its output string. Consecutive cells with an
// identical style are coalesced into one SGR run, trailing unstyled blanks
// are trimmed from each row and rows are joined with "\n" without a final
// newline.
func (b *Buffer) Render(p termenv.Profile) string {
	var out strings.Builder
	e := newEscBuilder(32)
	for y := 0; y < b.height; y++ {
		if y > 0 {
			out.WriteByte('\n')
		}
		row := b.cells[y*b.width : (y+1)*b.width]
		end := len(row)
		for end > 0 && row[end-1].IsBlank() {
			end--
		}

		for start := 0; start < end; {
			style := row[start].Style
			j := start
			var text strings.Builder
			for j < end && row[j].Style.Equal(style) {
				text.WriteString(row[j].Content)
				j++
			}
			e.Reset()
			if e.SetStyle(style, p) {
				e.WriteString(text.String())
				e.ResetStyle()
				out.Write(e.Bytes())
			} else {
				out.WriteString(text.String())
			}
			start = j
		}
	}
	return out.String()
}

// StringTrimmed returns the grid as plain text without any styling.
func (b *Buffer) StringTrimmed() string {
	return b.Render(termenv.Ascii)
}
