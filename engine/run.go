package engine

import (
	"time"

	"github.com/lixenwraith/glyphfall/glyph"
	"github.com/lixenwraith/glyphfall/schedule"
)

// Run is one pass of the animation over a field.
// Replay and teardown replace it wholesale
type Run struct {
	Mode     Mode
	Field    *glyph.Field
	FontSize float64
	Events   []schedule.SpawnEvent
	Started  time.Time

	// Fade is the time spent in ModeFading
	Fade time.Duration
	// Frames counts simulated frames
	Frames int
}

// FadeProgress returns fade completion in [0, 1]
func (r *Run) FadeProgress(total time.Duration) float64 {
	if total <= 0 {
		return 1
	}
	return min(1, float64(r.Fade)/float64(total))
}
