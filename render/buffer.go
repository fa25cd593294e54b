package render

import (
	"github.com/gdamore/tcell/v2"
)

// Cell is one composited terminal cell
type Cell struct {
	Rune rune
	Fg   RGB
	Bg   RGB
}

// Surface is the drawable target; tcell.Screen satisfies it
type Surface interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Show()
}

// Buffer is the backing cell array for one frame
type Buffer struct {
	cells  []Cell
	width  int
	height int
	bg     RGB
}

// NewBuffer creates a buffer with the specified dimensions cleared to bg
func NewBuffer(width, height int, bg RGB) *Buffer {
	b := &Buffer{bg: bg}
	b.Resize(width, height)
	return b
}

// Resize adjusts buffer dimensions, reallocates only if capacity insufficient
func (b *Buffer) Resize(width, height int) {
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

// Size returns buffer dimensions
func (b *Buffer) Size() (int, int) {
	return b.width, b.height
}

// Clear resets all cells to blank on the background color using exponential copy
func (b *Buffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = Cell{Rune: ' ', Fg: b.bg, Bg: b.bg}
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
}

func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Set writes a glyph with fg over the buffer background; out-of-bounds writes are dropped
func (b *Buffer) Set(x, y int, r rune, fg RGB) {
	if !b.inBounds(x, y) {
		return
	}
	b.cells[y*b.width+x] = Cell{Rune: r, Fg: fg, Bg: b.bg}
}

// Get returns the cell at (x, y); out-of-bounds returns a blank cell
func (b *Buffer) Get(x, y int) Cell {
	if !b.inBounds(x, y) {
		return Cell{Rune: ' ', Fg: b.bg, Bg: b.bg}
	}
	return b.cells[y*b.width+x]
}

// Line returns row y as a string of runes
func (b *Buffer) Line(y int) string {
	if y < 0 || y >= b.height {
		return ""
	}
	rs := make([]rune, b.width)
	for x := range rs {
		rs[x] = b.cells[y*b.width+x].Rune
	}
	return string(rs)
}

// Flush writes every cell to s and shows it
func (b *Buffer) Flush(s Surface) {
	for y := 0; y < b.height; y++ {
		row := b.cells[y*b.width : (y+1)*b.width]
		for x, c := range row {
			style := tcell.StyleDefault.Foreground(c.Fg.Tcell()).Background(c.Bg.Tcell())
			s.SetContent(x, y, c.Rune, nil, style)
		}
	}
	s.Show()
}
