package audio

import (
	"io"
	"log"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/pkg/errors"
)

// Player plays sound cues. Play never blocks the caller
type Player interface {
	Play(c Cue) bool
	Close() error
}

// Nop is a silent Player for muted runs and tests
type Nop struct{}

func (Nop) Play(Cue) bool { return false }
func (Nop) Close() error  { return nil }

// Engine plays cues via pipe to a system audio tool.
// With no usable backend it runs in silent mode rather than failing
type Engine struct {
	config *Config
	cache  *cueCache
	mixer  *Mixer

	backend *BackendConfig
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	ossFile *os.File

	running    atomic.Bool
	muted      atomic.Bool
	silentMode atomic.Bool

	mu sync.RWMutex // Protects config
	wg sync.WaitGroup
}

// NewEngine creates an audio engine; nil cfg selects defaults
func NewEngine(cfg *Config) *Engine {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	e := &Engine{
		config: cfg,
		cache:  newCueCache(beep.SampleRate(cfg.SampleRate)),
	}
	e.muted.Store(!cfg.Enabled)
	return e
}

// Start launches the backend process and mixer
func (e *Engine) Start() error {
	if e.running.Load() {
		return errors.New("audio engine already running")
	}

	backend, err := DetectBackend(e.config.SampleRate)
	if err != nil {
		log.Printf("audio: %v, running silent", err)
		e.silentMode.Store(true)
		e.running.Store(true)
		return nil
	}
	e.backend = backend
	e.cache.preload()

	var writer io.Writer
	if backend.Type == BackendOSS {
		f, err := os.OpenFile(backend.Path, os.O_WRONLY, 0)
		if err != nil {
			log.Printf("audio: open %s: %v, running silent", backend.Path, err)
			e.silentMode.Store(true)
			e.running.Store(true)
			return nil
		}
		e.ossFile = f
		writer = f
	} else {
		cmd := exec.Command(backend.Path, backend.Args...)
		stdin, err := cmd.StdinPipe()
		if err == nil {
			err = cmd.Start()
			if err != nil {
				stdin.Close()
			}
		}
		if err != nil {
			log.Printf("audio: start %s: %v, running silent", backend.Name, err)
			e.silentMode.Store(true)
			e.running.Store(true)
			return nil
		}

		e.cmd = cmd
		e.stdin = stdin
		writer = stdin

		e.wg.Add(1)
		go e.monitorProcess()
	}

	e.mixer = NewMixer(writer, e.cache)
	e.mixer.Start()

	e.wg.Add(1)
	go e.monitorMixer()

	log.Printf("audio: backend %s", backend.Name)
	e.running.Store(true)
	return nil
}

// monitorProcess watches for subprocess exit
func (e *Engine) monitorProcess() {
	defer e.wg.Done()

	err := e.cmd.Wait()
	if err != nil && e.running.Load() && !e.silentMode.Load() {
		e.silentMode.Store(true)
	}
}

// monitorMixer watches for pipe errors
func (e *Engine) monitorMixer() {
	defer e.wg.Done()

	select {
	case err := <-e.mixer.Errors():
		log.Printf("audio: %v", err)
		e.silentMode.Store(true)
	case <-e.mixer.stopChan:
	}
}

// Close stops the mixer and backend. Idempotent
func (e *Engine) Close() error {
	if !e.running.CompareAndSwap(true, false) {
		return nil
	}

	if e.mixer != nil {
		e.mixer.Stop()
	}
	if e.stdin != nil {
		e.stdin.Close()
	}
	if e.ossFile != nil {
		e.ossFile.Close()
	}
	if e.cmd != nil && e.cmd.Process != nil {
		e.cmd.Process.Kill()
	}

	e.wg.Wait()
	return nil
}

// Play queues a cue for playback
func (e *Engine) Play(c Cue) bool {
	if !e.IsEnabled() || e.mixer == nil || c < 0 || c >= cueCount {
		return false
	}

	e.mu.RLock()
	vol := e.config.MasterVolume * e.config.CueVolumes[c]
	e.mu.RUnlock()

	e.mixer.Play(c, vol)
	return true
}

// ToggleMute toggles mute state, returns true if now enabled
func (e *Engine) ToggleMute() bool {
	newMute := !e.muted.Load()
	e.muted.Store(newMute)
	return !newMute
}

// IsEnabled returns true if running, unmuted and not in silent mode
func (e *Engine) IsEnabled() bool {
	return e.running.Load() && !e.muted.Load() && !e.silentMode.Load()
}

// SetVolume updates master volume (0.0-1.0)
func (e *Engine) SetVolume(vol float64) {
	e.mu.Lock()
	e.config.MasterVolume = max(0, min(1, vol))
	e.mu.Unlock()
}

// Open returns a started Engine, or Nop when cfg disables audio
func Open(cfg *Config) Player {
	if cfg == nil || !cfg.Enabled {
		return Nop{}
	}
	e := NewEngine(cfg)
	if err := e.Start(); err != nil {
		log.Printf("audio: %v", err)
		return Nop{}
	}
	return e
}

// Gate throttles a cue to at most one play per gap, measured on the caller's clock
type Gate struct {
	gap  time.Duration
	last time.Time
	used bool
}

// NewGate creates a gate with the given minimum gap
func NewGate(gap time.Duration) *Gate {
	return &Gate{gap: gap}
}

// Allow reports whether a cue may play at now, and records it if so
func (g *Gate) Allow(now time.Time) bool {
	if g.used && now.Sub(g.last) < g.gap {
		return false
	}
	g.last = now
	g.used = true
	return true
}

// Reset forgets the last play
func (g *Gate) Reset() {
	g.used = false
}
