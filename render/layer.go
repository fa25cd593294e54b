package render

// SettledLayer accumulates landed glyphs for one run; it only grows until Reset
// Implements physics.Sink
type SettledLayer struct {
	rows, cols int
	bits       []bool
	count      int
}

// NewSettledLayer creates an empty layer sized to the field
func NewSettledLayer(rows, cols int) *SettledLayer {
	l := &SettledLayer{}
	l.Resize(rows, cols)
	return l
}

// Resize reallocates to rows x cols and clears
func (l *SettledLayer) Resize(rows, cols int) {
	l.rows, l.cols = max(rows, 0), max(cols, 0)
	l.bits = make([]bool, l.rows*l.cols)
	l.count = 0
}

// Rows returns the layer height
func (l *SettledLayer) Rows() int { return l.rows }

// Cols returns the layer width
func (l *SettledLayer) Cols() int { return l.cols }

// Commit marks (row, col) settled; repeated or out-of-bounds commits are ignored
func (l *SettledLayer) Commit(row, col int) {
	if row < 0 || row >= l.rows || col < 0 || col >= l.cols {
		return
	}
	idx := row*l.cols + col
	if l.bits[idx] {
		return
	}
	l.bits[idx] = true
	l.count++
}

// Reset clears every settled glyph
func (l *SettledLayer) Reset() {
	clear(l.bits)
	l.count = 0
}

// Has reports whether (row, col) is settled
func (l *SettledLayer) Has(row, col int) bool {
	if row < 0 || row >= l.rows || col < 0 || col >= l.cols {
		return false
	}
	return l.bits[row*l.cols+col]
}

// Count returns the number of settled glyphs
func (l *SettledLayer) Count() int {
	return l.count
}
