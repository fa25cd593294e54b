package audio

import (
	"encoding/binary"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/lixenwraith/glyphfall/parameter"
)

// activeSound tracks a playing cue instance
type activeSound struct {
	buffer floatBuffer
	pos    int
	volume float64
}

// Mixer sums active cues and streams s16le stereo to output
type Mixer struct {
	output io.Writer
	cache  *cueCache

	playQueue chan playRequest
	stopChan  chan struct{}
	stopped   atomic.Bool

	// Accessed only by mix goroutine
	active []activeSound

	statsMu sync.Mutex
	played  uint64
	dropped uint64

	errChan chan error
}

type playRequest struct {
	cue    Cue
	volume float64
}

// NewMixer creates a mixer writing to out
func NewMixer(out io.Writer, cache *cueCache) *Mixer {
	return &Mixer{
		output:    out,
		cache:     cache,
		playQueue: make(chan playRequest, parameter.AudioPlayQueueSize),
		stopChan:  make(chan struct{}),
		active:    make([]activeSound, 0, 8),
		errChan:   make(chan error, 1),
	}
}

// Start begins the mixing loop
func (m *Mixer) Start() {
	go m.loop()
}

// Stop signals the mixer to halt
func (m *Mixer) Stop() {
	if m.stopped.CompareAndSwap(false, true) {
		close(m.stopChan)
	}
}

// Play queues a cue at vol; drops when the queue is full
func (m *Mixer) Play(cue Cue, vol float64) {
	if m.stopped.Load() {
		return
	}

	select {
	case m.playQueue <- playRequest{cue: cue, volume: vol}:
	default:
		m.statsMu.Lock()
		m.dropped++
		m.statsMu.Unlock()
	}
}

// Errors returns channel for pipe errors
func (m *Mixer) Errors() <-chan error {
	return m.errChan
}

func (m *Mixer) loop() {
	ticker := time.NewTicker(parameter.AudioBufferDuration)
	defer ticker.Stop()

	samplesPerTick := parameter.AudioBufferSamples
	mixBuf := make([]float64, samplesPerTick)
	outBytes := make([]byte, samplesPerTick*parameter.AudioBytesPerFrame)

	for {
		select {
		case <-m.stopChan:
			return

		case req := <-m.playQueue:
			m.activate(req)
			m.drainQueue(4)

		case <-ticker.C:
			m.mixTick(mixBuf, outBytes)

			if _, err := m.output.Write(outBytes); err != nil {
				select {
				case m.errChan <- errors.Wrap(ErrPipeClosed, err.Error()):
				default:
				}
				return
			}
		}
	}
}

// mixTick fills outBytes with one tick of mixed audio, or silence to keep the pipe alive
func (m *Mixer) mixTick(mixBuf []float64, outBytes []byte) {
	if len(m.active) == 0 {
		clear(outBytes)
		return
	}
	clear(mixBuf)
	m.active = m.mixActive(mixBuf, len(mixBuf))
	floatToBytes(mixBuf, outBytes)
}

func (m *Mixer) activate(req playRequest) {
	buf := m.cache.get(req.cue)
	if len(buf) == 0 {
		return
	}
	m.active = append(m.active, activeSound{buffer: buf, volume: req.volume})
	m.statsMu.Lock()
	m.played++
	m.statsMu.Unlock()
}

// drainQueue processes up to n additional queued requests
func (m *Mixer) drainQueue(n int) {
	for i := 0; i < n; i++ {
		select {
		case req := <-m.playQueue:
			m.activate(req)
		default:
			return
		}
	}
}

// mixActive mixes all active sounds into buf, returns remaining sounds
func (m *Mixer) mixActive(buf []float64, samples int) []activeSound {
	remaining := m.active[:0]

	for i := range m.active {
		s := &m.active[i]
		for j := 0; j < samples && s.pos < len(s.buffer); j++ {
			buf[j] += s.buffer[s.pos] * s.volume
			s.pos++
		}
		if s.pos < len(s.buffer) {
			remaining = append(remaining, *s)
		}
	}

	return remaining
}

// floatToBytes converts float64 mono to interleaved stereo int16 LE bytes
// Applies soft limiting before hard clip
func floatToBytes(in []float64, out []byte) {
	for i, v := range in {
		if v > 0.8 {
			v = 0.8 + 0.2*(1.0-1.0/(1.0+(v-0.8)*5.0))
		} else if v < -0.8 {
			v = -0.8 - 0.2*(1.0-1.0/(1.0+(-v-0.8)*5.0))
		}

		v = max(-1.0, min(1.0, v))

		i16 := int16(v * 32767)
		idx := i * 4
		binary.LittleEndian.PutUint16(out[idx:], uint16(i16))   // L
		binary.LittleEndian.PutUint16(out[idx+2:], uint16(i16)) // R
	}
}

// Stats returns played and dropped counts
func (m *Mixer) Stats() (played, dropped uint64) {
	m.statsMu.Lock()
	defer m.statsMu.Unlock()
	return m.played, m.dropped
}
