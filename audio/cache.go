package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/glyphfall/parameter"
)

// floatBuffer is mono float64 samples at unity gain
type floatBuffer []float64

// cueCache stores cues rendered once from their beep streamers
type cueCache struct {
	mu    sync.RWMutex
	rate  beep.SampleRate
	store [cueCount]floatBuffer
	ready [cueCount]bool
}

func newCueCache(rate beep.SampleRate) *cueCache {
	return &cueCache{rate: rate}
}

// get returns cached buffer or renders on demand
func (c *cueCache) get(cue Cue) floatBuffer {
	if cue < 0 || cue >= cueCount {
		return nil
	}

	c.mu.RLock()
	if c.ready[cue] {
		buf := c.store[cue]
		c.mu.RUnlock()
		return buf
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock
	if c.ready[cue] {
		return c.store[cue]
	}

	buf := renderStreamer(NewCue(cue, c.rate), c.rate.N(cueDuration(cue)))
	c.store[cue] = buf
	c.ready[cue] = true
	return buf
}

// preload renders every cue so the first land tick does not stall the mixer
func (c *cueCache) preload() {
	for cue := Cue(0); cue < cueCount; cue++ {
		c.get(cue)
	}
}

// cueDuration bounds rendering; mixed streamers are not relied on to drain
func cueDuration(c Cue) time.Duration {
	switch c {
	case CueTick:
		return parameter.TickSoundDuration
	case CueChime:
		return parameter.ChimeNote1Duration + parameter.ChimeNote2Duration
	case CueHit:
		return parameter.HitSoundDuration
	default:
		return 0
	}
}

// renderStreamer drains up to limit samples of s, keeping the left channel
func renderStreamer(s beep.Streamer, limit int) floatBuffer {
	if s == nil || limit <= 0 {
		return nil
	}
	out := make(floatBuffer, 0, limit)
	chunk := make([][2]float64, 512)
	for len(out) < limit {
		want := min(len(chunk), limit-len(out))
		n, ok := s.Stream(chunk[:want])
		for i := 0; i < n; i++ {
			out = append(out, chunk[i][0])
		}
		if !ok || n == 0 {
			break
		}
	}
	return out
}
