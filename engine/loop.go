// Package engine drives the glyph field animation.
//
// Loop owns the screen, compositor, settled layer and the current Run. It is
// the only writer of all of them: input arrives as intents on an event.Queue
// drained at the top of every frame, and the resize debounce is a deadline
// checked against the loop's clock rather than a timer goroutine.
package engine

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/lixenwraith/glyphfall/audio"
	"github.com/lixenwraith/glyphfall/event"
	"github.com/lixenwraith/glyphfall/glyph"
	"github.com/lixenwraith/glyphfall/parameter"
	"github.com/lixenwraith/glyphfall/physics"
	"github.com/lixenwraith/glyphfall/render"
	"github.com/lixenwraith/glyphfall/schedule"
	"github.com/lixenwraith/glyphfall/terminal"
)

var (
	// ErrFontTimeout is the fallback reason when the font is not ready within FontTimeout
	ErrFontTimeout = errors.New("font load timed out")

	errNoFont = errors.New("font not loaded")
)

// FontLoader loads the face at path; an empty path selects the embedded font
type FontLoader func(ctx context.Context, path string) (*glyph.Font, error)

// Loop is the frame loop and the owner of every per-run resource
type Loop struct {
	screen tcell.Screen
	clock  Clock
	player audio.Player
	opts   Options

	queue    *event.Queue
	comp     *render.Compositor
	settled  *render.SettledLayer
	sim      *physics.Simulator
	rng      *rand.Rand
	tickGate *audio.Gate

	loadFont FontLoader
	font     *glyph.Font

	run         *Run
	fallbackErr error

	width, height int
	fitW, fitH    int // viewport the current field was fitted to

	lastFrame time.Time
	resizeAt  time.Time // debounced replay deadline, zero when none
	quit      bool

	closeOnce sync.Once
}

// NewLoop creates a loop drawing to screen. A nil clock uses the system clock,
// a nil player is silent
func NewLoop(screen tcell.Screen, opts Options, clock Clock, player audio.Player) *Loop {
	if clock == nil {
		clock = NewSystemClock()
	}
	if player == nil {
		player = audio.Nop{}
	}

	seed := opts.Seed
	if seed == 0 {
		seed = clock.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	w, h := screen.Size()
	settled := render.NewSettledLayer(0, 0)

	return &Loop{
		screen:   screen,
		clock:    clock,
		player:   player,
		opts:     opts,
		queue:    event.NewQueue(),
		comp:     render.NewCompositor(w, h, opts.Palette),
		settled:  settled,
		sim:      physics.NewSimulator(0, nil, settled, rng, opts.Physics),
		rng:      rng,
		tickGate: audio.NewGate(parameter.MinTickGap),
		loadFont: glyph.LoadFont,
		width:    w,
		height:   h,
	}
}

// Queue accepts intents from any goroutine
func (l *Loop) Queue() *event.Queue { return l.queue }

// Run returns the current animation run, nil before setup
func (l *Loop) Run() *Run { return l.run }

// Simulator exposes particle state of the current run
func (l *Loop) Simulator() *physics.Simulator { return l.sim }

// Settled exposes the settled layer of the current run
func (l *Loop) Settled() *render.SettledLayer { return l.settled }

// Compositor exposes the cell buffer owner
func (l *Loop) Compositor() *render.Compositor { return l.comp }

// Err returns why the loop is in fallback mode, nil otherwise
func (l *Loop) Err() error { return l.fallbackErr }

// Quitting reports a received quit intent
func (l *Loop) Quitting() bool { return l.quit }

// Mode returns the current lifecycle stage
func (l *Loop) Mode() Mode {
	if l.run == nil {
		return ModeLoading
	}
	return l.run.Mode
}

// Ticking reports whether frames must keep running: animation, fade or a pending resize replay
func (l *Loop) Ticking() bool {
	if l.quit {
		return false
	}
	return (l.run != nil && l.run.Mode.ticking()) || !l.resizeAt.IsZero()
}

// Setup waits for the font (FontTimeout) and the first size report (ReadyTimeout),
// then starts the first run. Font failures select fallback mode and are not returned;
// only context cancellation is
func (l *Loop) Setup(ctx context.Context) error {
	fontCtx, cancel := context.WithTimeout(ctx, l.opts.FontTimeout)
	defer cancel()

	type fontResult struct {
		font *glyph.Font
		err  error
	}
	fontCh := make(chan fontResult, 1)
	terminal.Go(func() {
		f, err := l.loadFont(fontCtx, l.opts.FontPath)
		fontCh <- fontResult{f, err}
	})

	if err := l.waitReady(ctx); err != nil {
		return err
	}
	if l.quit {
		return nil
	}

	var res fontResult
	select {
	case res = <-fontCh:
	case <-fontCtx.Done():
		res.err = fontCtx.Err()
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	now := l.clock.Now()
	if res.err != nil {
		if errors.Is(res.err, context.DeadlineExceeded) {
			res.err = ErrFontTimeout
		}
		l.enterFallback(errors.Wrap(res.err, "load font"), now)
		return nil
	}

	l.font = res.font
	l.start(now)
	return nil
}

// waitReady consumes intents until the first resize report or ReadyTimeout.
// On timeout the screen's current size is used
func (l *Loop) waitReady(ctx context.Context) error {
	timer := time.NewTimer(l.opts.ReadyTimeout)
	defer timer.Stop()

	for {
		ready := false
		for _, in := range l.queue.Consume() {
			switch in.Type {
			case event.IntentResize:
				l.width, l.height = in.Width, in.Height
				ready = true
			case event.IntentQuit:
				l.quit = true
				return nil
			}
		}
		if ready {
			l.comp.Resize(l.width, l.height)
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			l.width, l.height = l.screen.Size()
			l.comp.Resize(l.width, l.height)
			log.Printf("engine: no size report within %v, using %dx%d", l.opts.ReadyTimeout, l.width, l.height)
			return nil
		case <-l.queue.Ready():
		}
	}
}

// Frame runs one deterministic step at now: drain intents, fire a settled
// resize replay, then advance the current mode. Returns Ticking()
func (l *Loop) Frame(now time.Time) bool {
	replayed := l.drain(now)
	if l.quit {
		return false
	}

	if !l.resizeAt.IsZero() && !now.Before(l.resizeAt) {
		l.resizeAt = time.Time{}
		l.start(now)
		replayed = true
	}

	// A fresh run draws its first frame in start; stepping begins next frame
	if replayed || l.run == nil {
		return l.Ticking()
	}

	dt := min(max(now.Sub(l.lastFrame), 0), parameter.MaxFrameDelta)
	l.lastFrame = now

	switch l.run.Mode {
	case ModeAnimating:
		l.animate(now, dt)
	case ModeFading:
		l.fade(dt)
	}
	return l.Ticking()
}

// drain applies queued intents; reports whether a replay started
func (l *Loop) drain(now time.Time) bool {
	replayed := false
	for _, in := range l.queue.Consume() {
		switch in.Type {
		case event.IntentQuit:
			l.quit = true
		case event.IntentReplay:
			if l.run != nil {
				l.start(now)
				replayed = true
			}
		case event.IntentResize:
			l.resize(in.Width, in.Height, now)
		}
	}
	return replayed
}

// resize reallocates the buffer immediately and arms the debounced replay
func (l *Loop) resize(w, h int, now time.Time) {
	if w == l.width && h == l.height {
		return
	}
	l.width, l.height = w, h
	l.comp.Resize(w, h)
	l.redraw()
	l.screen.Sync()
	l.resizeAt = now.Add(l.opts.ResizeDebounce)
}

// start replaces the current run: re-fit the field if the viewport changed,
// clear the settled layer, build a new schedule and draw the first frame
func (l *Loop) start(now time.Time) {
	l.lastFrame = now
	l.tickGate.Reset()

	field, size, err := l.fit()
	if err != nil {
		l.enterFallback(err, now)
		return
	}
	l.fallbackErr = nil

	run := &Run{Mode: ModeAnimating, Field: field, FontSize: size, Started: now}
	if l.settled.Rows() != field.Rows() || l.settled.Cols() != field.Cols() {
		l.settled.Resize(field.Rows(), field.Cols())
	}
	l.comp.SetField(field)

	if l.opts.ReducedMotion {
		run.Mode = ModeStatic
		l.sim.Load(field.Rows(), nil)
	} else {
		run.Events = schedule.Build(field.Ink, l.rng, l.opts.Schedule)
		l.sim.Load(field.Rows(), run.Events)
	}
	l.run = run
	l.redraw()
}

// fit returns a field sized to the viewport, reusing the current one when the
// viewport is unchanged since it was fitted
func (l *Loop) fit() (*glyph.Field, float64, error) {
	if l.font == nil {
		if l.fallbackErr != nil {
			return nil, 0, l.fallbackErr
		}
		return nil, 0, errNoFont
	}
	if l.run != nil && l.run.Field != nil && l.fitW == l.width && l.fitH == l.height {
		return l.run.Field, l.run.FontSize, nil
	}

	fit := glyph.FitOptions{
		Size:    l.opts.FontSize,
		MinSize: l.opts.MinFontSize,
		MaxCols: l.width,
		MaxRows: l.height,
	}
	field, size, err := glyph.RasterizeFit(l.font, l.opts.Text, fit, l.opts.Raster)
	if err != nil {
		return nil, 0, errors.Wrapf(err, "rasterize %q", l.opts.Text)
	}
	l.fitW, l.fitH = l.width, l.height
	return field, size, nil
}

func (l *Loop) enterFallback(err error, now time.Time) {
	if err != nil {
		log.Printf("engine: fallback: %v", err)
	}
	l.fallbackErr = err
	l.run = &Run{Mode: ModeFallback, Started: now}
	l.sim.Load(0, nil)
	l.comp.SetField(nil)
	l.redraw()
}

func (l *Loop) animate(now time.Time, dt time.Duration) {
	res := l.sim.Step(dt)
	l.run.Frames++

	if res.Landed > 0 && l.tickGate.Allow(now) {
		l.player.Play(audio.CueTick)
	}
	if res.Done {
		l.run.Mode = ModeFading
		l.player.Play(audio.CueChime)
	}
	l.redraw()
}

func (l *Loop) fade(dt time.Duration) {
	l.run.Fade += dt
	l.run.Frames++
	if l.run.FadeProgress(l.opts.FadeDuration) >= 1 {
		l.run.Mode = ModeStatic
	}
	l.redraw()
}

// redraw renders the current mode into the buffer and flushes it
func (l *Loop) redraw() {
	if l.run == nil {
		return
	}
	switch l.run.Mode {
	case ModeAnimating:
		l.comp.Frame(l.settled, l.sim.Active())
	case ModeFading:
		l.comp.Fade(l.settled, l.sim.Active(), l.run.FadeProgress(l.opts.FadeDuration))
	case ModeStatic:
		l.comp.Static()
	case ModeFallback:
		l.comp.Fallback(l.opts.Text)
	}
	l.comp.Buffer().Flush(l.screen)
}

// Start launches the poller and the ticker loop. It returns when a quit intent
// arrives or ctx is cancelled; call Close afterwards
func (l *Loop) Start(ctx context.Context) error {
	l.startPoller()

	if err := l.Setup(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	ticker := time.NewTicker(l.opts.frameInterval())
	defer ticker.Stop()

	for !l.quit {
		// Completed runs wait for intents only
		var tick <-chan time.Time
		if l.Ticking() {
			tick = ticker.C
		}

		select {
		case <-ctx.Done():
			return nil
		case <-tick:
			l.Frame(l.clock.Now())
		case <-l.queue.Ready():
			if tick == nil {
				l.Frame(l.clock.Now())
			}
		}
	}
	return nil
}

// startPoller forwards terminal events as intents until the screen is finalized
func (l *Loop) startPoller() {
	terminal.Go(func() {
		for {
			ev := l.screen.PollEvent()
			if ev == nil {
				return
			}
			if in, ok := IntentFor(ev); ok {
				l.queue.Push(in)
			}
		}
	})
}

// Close releases audio and the screen and drops the run. Idempotent; call
// after Start has returned
func (l *Loop) Close() error {
	var err error
	l.closeOnce.Do(func() {
		err = l.player.Close()
		terminal.CloseScreen(l.screen)
		l.run = nil
		l.sim.Load(0, nil)
	})
	return err
}
