package physics

import (
	"math/rand"
	"time"

	"github.com/lixenwraith/glyphfall/parameter"
	"github.com/lixenwraith/glyphfall/schedule"
)

// State is a particle's lifecycle stage
type State uint8

const (
	// Pending particles are scheduled but not yet spawned
	Pending State = iota
	// Falling particles are integrated every step
	Falling
	// Landed is terminal; the glyph lives in the sink
	Landed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Falling:
		return "falling"
	case Landed:
		return "landed"
	default:
		return "unknown"
	}
}

// Particle is one falling ink glyph heading for (Row, Col)
type Particle struct {
	Kinetic
	Row, Col int
	TargetY  float64
	State    State
}

// Sink receives landed glyphs; the settled layer implements it
type Sink interface {
	Commit(row, col int)
	Reset()
}

// Options controls particle motion
type Options struct {
	Gravity          float64
	MinVelocity      float64
	MaxVelocity      float64
	DepthBoost       float64
	SpawnLift        float64
	MaxSpawnPerFrame int
}

// DefaultOptions returns the tuned defaults
func DefaultOptions() Options {
	return Options{
		Gravity:          parameter.Gravity,
		MinVelocity:      parameter.MinFallVelocity,
		MaxVelocity:      parameter.MaxFallVelocity,
		DepthBoost:       parameter.DepthBoost,
		SpawnLift:        parameter.SpawnLift,
		MaxSpawnPerFrame: parameter.MaxSpawnPerFrame,
	}
}

// StepResult summarises one frame of simulation
type StepResult struct {
	Spawned int
	Landed  int
	Done    bool
}

// Simulator advances particles along a spawn schedule.
// Not safe for concurrent use; the frame loop is the only caller
type Simulator struct {
	opts     Options
	rng      *rand.Rand
	sink     Sink
	rows     int
	schedule []schedule.SpawnEvent

	next    int // index of the next schedule entry to spawn
	active  []Particle
	landed  int
	elapsed time.Duration
}

// NewSimulator creates a simulator for a field of rows rows
func NewSimulator(rows int, events []schedule.SpawnEvent, sink Sink, rng *rand.Rand, opts Options) *Simulator {
	if opts.MaxSpawnPerFrame < 1 {
		opts.MaxSpawnPerFrame = 1
	}
	s := &Simulator{
		opts: opts,
		rng:  rng,
		sink: sink,
	}
	s.Load(rows, events)
	return s
}

// Load replaces the schedule and fully resets
func (s *Simulator) Load(rows int, events []schedule.SpawnEvent) {
	s.rows = rows
	s.schedule = events
	s.active = make([]Particle, 0, min(len(events), 4*s.opts.MaxSpawnPerFrame))
	s.Reset()
}

// Reset clears the active set, landed count, schedule index, clock and sink.
// Safe mid-run and after completion
func (s *Simulator) Reset() {
	s.active = s.active[:0]
	s.next = 0
	s.landed = 0
	s.elapsed = 0
	if s.sink != nil {
		s.sink.Reset()
	}
}

// Step advances the clock by dt then spawns, integrates and lands, in that order
func (s *Simulator) Step(dt time.Duration) StepResult {
	var res StepResult
	s.elapsed += dt

	// Spawn due entries up to the cap; overflow waits in schedule order
	for s.next < len(s.schedule) && res.Spawned < s.opts.MaxSpawnPerFrame {
		ev := s.schedule[s.next]
		if ev.At > s.elapsed {
			break
		}
		s.active = append(s.active, s.spawn(ev))
		s.next++
		res.Spawned++
	}

	// Integrate and land, compacting the active set in place
	sec := dt.Seconds()
	kept := s.active[:0]
	for i := range s.active {
		p := s.active[i]
		Integrate(&p.Kinetic, sec)
		if p.Y >= p.TargetY {
			p.Y = p.TargetY
			p.State = Landed
			if s.sink != nil {
				s.sink.Commit(p.Row, p.Col)
			}
			s.landed++
			res.Landed++
			continue
		}
		kept = append(kept, p)
	}
	s.active = kept

	res.Done = s.Done()
	return res
}

func (s *Simulator) spawn(ev schedule.SpawnEvent) Particle {
	depth := schedule.DepthFactor(ev.Row, s.rows)
	v0 := s.opts.MinVelocity + s.rng.Float64()*(s.opts.MaxVelocity-s.opts.MinVelocity) + depth*s.opts.DepthBoost

	return Particle{
		Kinetic: Kinetic{
			X:  float64(ev.Col),
			Y:  -s.opts.SpawnLift - s.rng.Float64(),
			VY: v0,
			AY: s.opts.Gravity,
		},
		Row:     ev.Row,
		Col:     ev.Col,
		TargetY: float64(ev.Row),
		State:   Falling,
	}
}

// Done reports schedule consumed, no falling particles and every scheduled cell landed
func (s *Simulator) Done() bool {
	return s.next == len(s.schedule) && len(s.active) == 0 && s.landed == len(s.schedule)
}

// Active returns the falling particles; the slice is only valid until the next Step
func (s *Simulator) Active() []Particle { return s.active }

// Landed returns how many particles have landed this run
func (s *Simulator) Landed() int { return s.landed }

// Total returns the schedule size
func (s *Simulator) Total() int { return len(s.schedule) }

// Pending returns how many schedule entries have not spawned
func (s *Simulator) Pending() int { return len(s.schedule) - s.next }

// Elapsed returns simulated time since the last reset
func (s *Simulator) Elapsed() time.Duration { return s.elapsed }
