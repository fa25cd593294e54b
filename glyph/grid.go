package glyph

import (
	"strings"
)

// Cell addresses one grid position
type Cell struct {
	Row, Col int
}

// Grid is a row-major rectangle of single-byte glyphs
type Grid struct {
	rows  int
	cols  int
	cells []byte
}

// NewGrid creates a rows x cols grid filled with fill
func NewGrid(rows, cols int, fill byte) *Grid {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	cells := make([]byte, rows*cols)
	for i := range cells {
		cells[i] = fill
	}
	return &Grid{rows: rows, cols: cols, cells: cells}
}

// Rows returns the row count
func (g *Grid) Rows() int { return g.rows }

// Cols returns the column count
func (g *Grid) Cols() int { return g.cols }

// At returns the glyph at (row, col), or 0 when out of bounds
func (g *Grid) At(row, col int) byte {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return 0
	}
	return g.cells[row*g.cols+col]
}

// Set writes b at (row, col); out-of-bounds writes are ignored
func (g *Grid) Set(row, col int, b byte) {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return
	}
	g.cells[row*g.cols+col] = b
}

// Row returns row r as a string
func (g *Grid) Row(r int) string {
	if r < 0 || r >= g.rows {
		return ""
	}
	return string(g.cells[r*g.cols : (r+1)*g.cols])
}

// Lines returns every row as a string, top to bottom
func (g *Grid) Lines() []string {
	lines := make([]string, g.rows)
	for r := range lines {
		lines[r] = g.Row(r)
	}
	return lines
}

// String joins rows with newlines
func (g *Grid) String() string {
	return strings.Join(g.Lines(), "\n")
}

// Count returns how many cells hold b
func (g *Grid) Count(b byte) int {
	n := 0
	for _, c := range g.cells {
		if c == b {
			n++
		}
	}
	return n
}

// Cells lists the coordinates holding b in row-major order
func (g *Grid) Cells(b byte) []Cell {
	out := make([]Cell, 0, g.Count(b))
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if g.cells[r*g.cols+c] == b {
				out = append(out, Cell{Row: r, Col: c})
			}
		}
	}
	return out
}

// Field is the result of one rasterization pass
// Ink and Background always share dimensions; each cell is active in exactly one
type Field struct {
	Ink        *Grid
	Background *Grid
	InkCount   int
}

// Rows returns the shared row count
func (f *Field) Rows() int { return f.Ink.Rows() }

// Cols returns the shared column count
func (f *Field) Cols() int { return f.Ink.Cols() }

// IsInk reports whether (row, col) is an ink cell
func (f *Field) IsInk(row, col int) bool {
	return f.Ink.At(row, col) == InkByte
}

// Glyph bytes used by the grids
const (
	InkByte        = '+'
	BackgroundByte = '-'
	EmptyByte      = ' '
)

// FieldFromMask builds both grids from a boolean ink mask (mask[row][col])
// Rows shorter than the widest row are treated as non-ink past their end
func FieldFromMask(mask [][]bool) *Field {
	rows := len(mask)
	cols := 0
	for _, row := range mask {
		if len(row) > cols {
			cols = len(row)
		}
	}

	ink := NewGrid(rows, cols, EmptyByte)
	bg := NewGrid(rows, cols, BackgroundByte)
	count := 0
	for r, row := range mask {
		for c, on := range row {
			if on {
				ink.Set(r, c, InkByte)
				bg.Set(r, c, EmptyByte)
				count++
			}
		}
	}
	return &Field{Ink: ink, Background: bg, InkCount: count}
}

// ParseField builds a field from text rows where '+' marks ink
func ParseField(lines ...string) *Field {
	mask := make([][]bool, len(lines))
	for r, line := range lines {
		mask[r] = make([]bool, len(line))
		for c := 0; c < len(line); c++ {
			mask[r][c] = line[c] == InkByte
		}
	}
	return FieldFromMask(mask)
}
