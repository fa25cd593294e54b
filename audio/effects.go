package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/glyphfall/parameter"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates an attack/sustain/release envelope over s
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: max(0, total-att-rel),
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = max(0, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// math.Log2(0) is -Inf, so zero volume maps to Silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// NewTick is a short high click played as particles land
func NewTick(rate beep.SampleRate) beep.Streamer {
	osc := NewOscillator(parameter.TickSoundFreq, parameter.TickSoundDuration, WaveSquare, rate)
	return NewEnvelope(osc, parameter.TickSoundDuration, parameter.TickSoundAttack, parameter.TickSoundRelease, rate)
}

// NewChime is a rising two-note chime played when the field completes
func NewChime(rate beep.SampleRate) beep.Streamer {
	n1 := NewOscillator(parameter.ChimeNote1Freq, parameter.ChimeNote1Duration, WaveSine, rate)
	n1Shaped := NewEnvelope(n1, parameter.ChimeNote1Duration, parameter.ChimeAttack, parameter.ChimeNote1Release, rate)

	// Second note carries a quiet octave overtone
	n2 := NewOscillator(parameter.ChimeNote2Freq, parameter.ChimeNote2Duration, WaveSine, rate)
	n2Shaped := NewEnvelope(n2, parameter.ChimeNote2Duration, parameter.ChimeAttack, parameter.ChimeNote2Release, rate)
	over := NewOscillator(parameter.ChimeNote2Freq*2, parameter.ChimeNote2Duration, WaveSine, rate)
	overShaped := NewEnvelope(over, parameter.ChimeNote2Duration, parameter.ChimeAttack, parameter.ChimeNote2Release/2, rate)

	return beep.Seq(n1Shaped, beep.Mix(newVolume(n2Shaped, 0.75), newVolume(overShaped, 0.25)))
}

// NewHit is the paddle blip
func NewHit(rate beep.SampleRate) beep.Streamer {
	osc := NewOscillator(parameter.HitSoundFreq, parameter.HitSoundDuration, WaveSquare, rate)
	return NewEnvelope(osc, parameter.HitSoundDuration, parameter.HitSoundAttack, parameter.HitSoundRelease, rate)
}

// NewCue returns a fresh unity-gain streamer for c, nil when unknown
func NewCue(c Cue, rate beep.SampleRate) beep.Streamer {
	switch c {
	case CueTick:
		return NewTick(rate)
	case CueChime:
		return NewChime(rate)
	case CueHit:
		return NewHit(rate)
	default:
		return nil
	}
}
