// Package schedule turns an ink grid into a time-ordered list of particle spawns.
// Bottom rows spawn first so the field fills upward.
package schedule

import (
	"math/rand"
	"sort"
	"time"

	"github.com/lixenwraith/glyphfall/glyph"
	"github.com/lixenwraith/glyphfall/parameter"
)

// SpawnEvent schedules one particle for one ink cell
type SpawnEvent struct {
	Row, Col int
	// At is relative to animation start
	At time.Duration
}

// Options controls spawn timing
type Options struct {
	RowDelay  time.Duration
	RowJitter time.Duration
}

// DefaultOptions returns the tuned defaults
func DefaultOptions() Options {
	return Options{
		RowDelay:  parameter.RowDelay,
		RowJitter: parameter.RowJitter,
	}
}

// Build returns one event per ink cell sorted by At ascending.
// Base delay is (rows-1-row)*RowDelay plus uniform jitter in [0, RowJitter)
func Build(ink *glyph.Grid, rng *rand.Rand, opts Options) []SpawnEvent {
	rows := ink.Rows()
	cells := ink.Cells(glyph.InkByte)
	events := make([]SpawnEvent, len(cells))

	for i, c := range cells {
		at := time.Duration(rows-1-c.Row) * opts.RowDelay
		if opts.RowJitter > 0 {
			at += time.Duration(rng.Int63n(int64(opts.RowJitter)))
		}
		events[i] = SpawnEvent{Row: c.Row, Col: c.Col, At: at}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].At < events[j].At
	})
	return events
}

// DepthFactor maps row to [0,1] from top to bottom; 0 when rows <= 1
func DepthFactor(row, rows int) float64 {
	if rows <= 1 {
		return 0
	}
	return float64(row) / float64(rows-1)
}

// Span returns the spawn time of the last event, 0 for an empty schedule
func Span(events []SpawnEvent) time.Duration {
	if len(events) == 0 {
		return 0
	}
	return events[len(events)-1].At
}
