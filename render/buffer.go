package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// RenderBuffer is the compositor the frame is drawn into before flushing to the screen
// Tests read it back with Row, so layout is verifiable without a terminal
type RenderBuffer struct {
	cells  []Cell
	width  int
	height int
}

// NewRenderBuffer creates a buffer with the specified dimensions
func NewRenderBuffer(width, height int) *RenderBuffer {
	b := &RenderBuffer{}
	b.Resize(width, height)
	return b
}

// Resize adjusts buffer dimensions, reallocates only if capacity insufficient
func (b *RenderBuffer) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
	} else {
		b.cells = b.cells[:size]
	}
	b.width = width
	b.height = height
	b.Clear()
}

// Clear resets all cells to blank background
func (b *RenderBuffer) Clear() {
	blank := Cell{Rune: ' ', Style: styleBackground}
	for i := range b.cells {
		b.cells[i] = blank
	}
}

// Size returns the buffer dimensions
func (b *RenderBuffer) Size() (int, int) {
	return b.width, b.height
}

func (b *RenderBuffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Set writes one cell, clipped to the buffer
func (b *RenderBuffer) Set(x, y int, r rune, style tcell.Style) {
	if !b.inBounds(x, y) {
		return
	}
	b.cells[y*b.width+x] = Cell{Rune: r, Style: style}
}

// Get reads one cell, blank outside the buffer
func (b *RenderBuffer) Get(x, y int) Cell {
	if !b.inBounds(x, y) {
		return Cell{Rune: ' '}
	}
	return b.cells[y*b.width+x]
}

// Text writes s starting at (x, y), one rune per column
func (b *RenderBuffer) Text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		b.Set(x, y, r, style)
		x++
	}
}

// TextCentered writes s centered on row y
func (b *RenderBuffer) TextCentered(y int, s string, style tcell.Style) {
	b.Text((b.width-len([]rune(s)))/2, y, s, style)
}

// Row returns the runes of row y as a string
func (b *RenderBuffer) Row(y int) string {
	if y < 0 || y >= b.height {
		return ""
	}
	var sb strings.Builder
	for x := 0; x < b.width; x++ {
		sb.WriteRune(b.cells[y*b.width+x].Rune)
	}
	return sb.String()
}

// Flush copies the buffer to screen
func (b *RenderBuffer) Flush(screen tcell.Screen) {
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			c := b.cells[y*b.width+x]
			screen.SetContent(x, y, c.Rune, nil, c.Style)
		}
	}
}
