package engine

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/lixenwraith/glyphfall/audio"
	"github.com/lixenwraith/glyphfall/config"
	"github.com/lixenwraith/glyphfall/event"
	"github.com/lixenwraith/glyphfall/glyph"
	"github.com/lixenwraith/glyphfall/parameter"
)

const frameStep = 16 * time.Millisecond

// recordPlayer counts cues instead of playing them
type recordPlayer struct {
	cues   map[audio.Cue]int
	closed int
}

func newRecordPlayer() *recordPlayer {
	return &recordPlayer{cues: make(map[audio.Cue]int)}
}

func (p *recordPlayer) Play(c audio.Cue) bool {
	p.cues[c]++
	return true
}

func (p *recordPlayer) Close() error {
	p.closed++
	return nil
}

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	screen.SetSize(w, h)
	return screen
}

// newTestLoop creates a loop on a simulation screen with its first size report queued
func newTestLoop(t *testing.T, opts Options, w, h int) (*Loop, *MockClock, *recordPlayer) {
	t.Helper()
	clock := NewMockClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	player := newRecordPlayer()
	opts.Seed = 42

	l := NewLoop(newSimScreen(t, w, h), opts, clock, player)
	t.Cleanup(func() { l.Close() })

	l.Queue().Push(event.Intent{Type: event.IntentResize, Width: w, Height: h})
	return l, clock, player
}

func setup(t *testing.T, l *Loop) {
	t.Helper()
	if err := l.Setup(context.Background()); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
}

// runFrames ticks until the loop stops ticking or until pred holds; returns frames run
func runFrames(l *Loop, clock *MockClock, maxFrames int, pred func() bool) int {
	n := 0
	for ; n < maxFrames && l.Ticking(); n++ {
		if pred != nil && pred() {
			break
		}
		clock.Advance(frameStep)
		l.Frame(clock.Now())
	}
	return n
}

func bufferContains(l *Loop, s string) bool {
	buf := l.Compositor().Buffer()
	_, h := buf.Size()
	for y := 0; y < h; y++ {
		if strings.Contains(buf.Line(y), s) {
			return true
		}
	}
	return false
}

func TestLoopAnimatesToStatic(t *testing.T) {
	l, clock, player := newTestLoop(t, DefaultOptions(), 120, 30)
	setup(t, l)

	if l.Mode() != ModeAnimating {
		t.Fatalf("Expected animating after setup, got %v", l.Mode())
	}

	run := l.Run()
	total := run.Field.Ink.Count(glyph.InkByte)
	if total == 0 {
		t.Fatal("Expected ink cells for default text")
	}
	if run.Field.Cols() > 120 || run.Field.Rows() > 30 {
		t.Errorf("Field %dx%d exceeds viewport", run.Field.Cols(), run.Field.Rows())
	}
	if len(run.Events) != total || l.Simulator().Total() != total {
		t.Fatalf("Expected %d spawn events, got %d", total, len(run.Events))
	}

	runFrames(l, clock, 2000, nil)

	if l.Mode() != ModeStatic {
		t.Fatalf("Expected static after completion, got %v", l.Mode())
	}
	if got := l.Simulator().Landed(); got != total {
		t.Errorf("Expected %d landed, got %d", total, got)
	}
	if got := l.Settled().Count(); got != total {
		t.Errorf("Expected %d settled, got %d", total, got)
	}
	if len(l.Simulator().Active()) != 0 {
		t.Error("Expected no active particles")
	}
	if player.cues[audio.CueChime] != 1 {
		t.Errorf("Expected one chime, got %d", player.cues[audio.CueChime])
	}
	if player.cues[audio.CueTick] == 0 {
		t.Error("Expected land ticks")
	}
	if !bufferContains(l, string(parameter.StaticRune)) {
		t.Error("Expected static glyphs in buffer")
	}
	if bufferContains(l, string(parameter.BackgroundRune)) {
		t.Error("Expected background glyphs faded out")
	}

	// No frames after completion
	frames := run.Frames
	if l.Frame(clock.Now().Add(time.Second)) {
		t.Error("Expected loop idle after completion")
	}
	if run.Frames != frames {
		t.Errorf("Expected frame count %d unchanged, got %d", frames, run.Frames)
	}
}

func TestLoopReducedMotion(t *testing.T) {
	opts := DefaultOptions()
	opts.ReducedMotion = true
	l, clock, _ := newTestLoop(t, opts, 120, 30)
	setup(t, l)

	if l.Mode() != ModeStatic {
		t.Fatalf("Expected static, got %v", l.Mode())
	}
	if len(l.Run().Events) != 0 || l.Simulator().Total() != 0 {
		t.Error("Expected zero spawn events")
	}
	if l.Ticking() {
		t.Error("Expected no ticking in reduced motion")
	}
	if !bufferContains(l, string(parameter.StaticRune)) {
		t.Error("Expected static rendering")
	}

	// Replay stays static
	l.Queue().Push(event.Intent{Type: event.IntentReplay})
	l.Frame(clock.Now())
	if l.Mode() != ModeStatic || l.Run().Frames != 0 {
		t.Errorf("Expected static replay without frames, got %v", l.Mode())
	}
}

func TestLoopFontTimeoutFallback(t *testing.T) {
	opts := DefaultOptions()
	opts.FontTimeout = 20 * time.Millisecond
	l, clock, _ := newTestLoop(t, opts, 80, 24)
	l.loadFont = func(ctx context.Context, _ string) (*glyph.Font, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	setup(t, l)

	if l.Mode() != ModeFallback {
		t.Fatalf("Expected fallback, got %v", l.Mode())
	}
	if !errors.Is(l.Err(), ErrFontTimeout) {
		t.Errorf("Expected ErrFontTimeout, got %v", l.Err())
	}
	if l.Ticking() {
		t.Error("Expected no frame loop in fallback")
	}
	if l.Frame(clock.Now().Add(time.Second)) || l.Run().Frames != 0 {
		t.Error("Expected no frames in fallback")
	}

	line := l.Compositor().Buffer().Line(12)
	if !strings.Contains(line, opts.Text) {
		t.Errorf("Expected centred label, got %q", line)
	}

	// Replay re-renders the label; the font never arrived
	l.Queue().Push(event.Intent{Type: event.IntentReplay})
	l.Frame(clock.Now())
	if l.Mode() != ModeFallback {
		t.Errorf("Expected fallback after replay, got %v", l.Mode())
	}
}

func TestLoopFontErrorFallback(t *testing.T) {
	opts := DefaultOptions()
	opts.FontPath = "/nonexistent/font.ttf"
	l, _, _ := newTestLoop(t, opts, 80, 24)
	setup(t, l)

	if l.Mode() != ModeFallback {
		t.Fatalf("Expected fallback, got %v", l.Mode())
	}
	if l.Err() == nil || errors.Is(l.Err(), ErrFontTimeout) {
		t.Errorf("Expected load error, got %v", l.Err())
	}
}

func TestLoopNoInkFallback(t *testing.T) {
	opts := DefaultOptions()
	opts.Text = "   "
	l, _, _ := newTestLoop(t, opts, 80, 24)
	setup(t, l)

	if l.Mode() != ModeFallback {
		t.Fatalf("Expected fallback, got %v", l.Mode())
	}
	if !errors.Is(l.Err(), glyph.ErrNoInk) {
		t.Errorf("Expected ErrNoInk, got %v", l.Err())
	}
}

func TestLoopResizeReplaysAfterDebounce(t *testing.T) {
	l, clock, _ := newTestLoop(t, DefaultOptions(), 120, 30)
	setup(t, l)

	runFrames(l, clock, 500, func() bool { return l.Simulator().Landed() > 0 })
	if l.Simulator().Landed() == 0 {
		t.Fatal("Expected some particles landed before resize")
	}
	oldRun := l.Run()

	l.Queue().Push(event.Intent{Type: event.IntentResize, Width: 100, Height: 28})
	clock.Advance(frameStep)
	l.Frame(clock.Now())

	if w, h := l.Compositor().Buffer().Size(); w != 100 || h != 28 {
		t.Errorf("Expected buffer resized to 100x28, got %dx%d", w, h)
	}
	if l.Run() != oldRun {
		t.Fatal("Expected run kept until resize settles")
	}

	clock.Advance(parameter.ResizeDebounce / 2)
	l.Frame(clock.Now())
	if l.Run() != oldRun {
		t.Fatal("Expected run kept inside debounce window")
	}

	clock.Advance(parameter.ResizeDebounce)
	l.Frame(clock.Now())

	if l.Run() == oldRun {
		t.Fatal("Expected new run after debounce")
	}
	if l.Simulator().Landed() != 0 || len(l.Simulator().Active()) != 0 || l.Settled().Count() != 0 {
		t.Error("Expected empty field after resize replay")
	}
	if l.Mode() != ModeAnimating {
		t.Errorf("Expected animating, got %v", l.Mode())
	}
	if got, want := len(l.Run().Events), l.Run().Field.Ink.Count(glyph.InkByte); got != want {
		t.Errorf("Expected %d events for the new schedule, got %d", want, got)
	}
	if l.Run().Field.Cols() > 100 {
		t.Errorf("Expected field refit to 100 cols, got %d", l.Run().Field.Cols())
	}
}

func TestLoopResizeSameSizeIgnored(t *testing.T) {
	l, clock, _ := newTestLoop(t, DefaultOptions(), 120, 30)
	setup(t, l)
	runFrames(l, clock, 10, nil)

	oldRun := l.Run()
	l.Queue().Push(event.Intent{Type: event.IntentResize, Width: 120, Height: 30})
	clock.Advance(time.Second)
	l.Frame(clock.Now())

	if l.Run() != oldRun {
		t.Error("Expected unchanged size to keep the run")
	}
}

func TestLoopReplayResets(t *testing.T) {
	l, clock, _ := newTestLoop(t, DefaultOptions(), 120, 30)
	setup(t, l)

	runFrames(l, clock, 500, func() bool { return l.Simulator().Landed() > 0 })
	oldRun := l.Run()
	oldField := oldRun.Field

	l.Queue().Push(event.Intent{Type: event.IntentReplay})
	clock.Advance(frameStep)
	l.Frame(clock.Now())

	if l.Run() == oldRun {
		t.Fatal("Expected replay to replace the run")
	}
	if l.Simulator().Landed() != 0 || len(l.Simulator().Active()) != 0 {
		t.Errorf("Expected landed 0 and no active, got %d/%d", l.Simulator().Landed(), len(l.Simulator().Active()))
	}
	if l.Settled().Count() != 0 {
		t.Error("Expected settled layer cleared")
	}
	if l.Run().Field != oldField {
		t.Error("Expected field reused when viewport unchanged")
	}

	// Replay after completion restarts ticking
	runFrames(l, clock, 2000, nil)
	if l.Mode() != ModeStatic {
		t.Fatalf("Expected static, got %v", l.Mode())
	}
	l.Queue().Push(event.Intent{Type: event.IntentReplay})
	if !l.Frame(clock.Now()) || l.Mode() != ModeAnimating {
		t.Errorf("Expected replay to resume animation, got %v", l.Mode())
	}
}

func TestLoopQuit(t *testing.T) {
	l, clock, _ := newTestLoop(t, DefaultOptions(), 120, 30)
	setup(t, l)

	l.Queue().Push(event.Intent{Type: event.IntentQuit})
	if l.Frame(clock.Now()) {
		t.Error("Expected Frame to stop after quit")
	}
	if !l.Quitting() || l.Ticking() {
		t.Error("Expected quitting and not ticking")
	}
}

func TestLoopReadyTimeoutUsesScreenSize(t *testing.T) {
	opts := DefaultOptions()
	opts.ReadyTimeout = 10 * time.Millisecond
	opts.Seed = 7

	l := NewLoop(newSimScreen(t, 90, 20), opts, NewMockClock(time.Unix(0, 0)), nil)
	t.Cleanup(func() { l.Close() })
	setup(t, l)

	if l.Mode() != ModeAnimating {
		t.Fatalf("Expected animating, got %v", l.Mode())
	}
	if w, h := l.Compositor().Buffer().Size(); w != 90 || h != 20 {
		t.Errorf("Expected 90x20, got %dx%d", w, h)
	}
}

func TestLoopSetupCancelled(t *testing.T) {
	l := NewLoop(newSimScreen(t, 80, 24), DefaultOptions(), nil, nil)
	t.Cleanup(func() { l.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := l.Setup(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestLoopStartQuitsOnKey(t *testing.T) {
	opts := DefaultOptions()
	opts.ReadyTimeout = 20 * time.Millisecond
	screen := newSimScreen(t, 80, 24)
	l := NewLoop(screen, opts, nil, nil)

	done := make(chan error, 1)
	go func() { done <- l.Start(context.Background()) }()
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Unexpected error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Start did not return after quit key")
	}

	if err := l.Close(); err != nil {
		t.Errorf("Unexpected close error: %v", err)
	}
}

func TestLoopCloseIdempotent(t *testing.T) {
	player := newRecordPlayer()
	l := NewLoop(newSimScreen(t, 80, 24), DefaultOptions(), nil, player)

	l.Close()
	l.Close()
	if player.closed != 1 {
		t.Errorf("Expected player closed once, got %d", player.closed)
	}
	if l.Run() != nil {
		t.Error("Expected run dropped on close")
	}
}

func TestIntentFor(t *testing.T) {
	tests := []struct {
		name string
		ev   tcell.Event
		want event.IntentType
		ok   bool
	}{
		{"replay", tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone), event.IntentReplay, true},
		{"quit key", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), event.IntentQuit, true},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), event.IntentQuit, true},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), event.IntentQuit, true},
		{"other rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), 0, false},
		{"resize", tcell.NewEventResize(80, 24), event.IntentResize, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, ok := IntentFor(tt.ev)
			if ok != tt.ok {
				t.Fatalf("Expected ok=%v, got %v", tt.ok, ok)
			}
			if ok && in.Type != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, in.Type)
			}
		})
	}

	in, _ := IntentFor(tcell.NewEventResize(80, 24))
	if in.Width != 80 || in.Height != 24 {
		t.Errorf("Expected 80x24 payload, got %dx%d", in.Width, in.Height)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Text = "hello"
	cfg.Engine.FPS = 30

	opts, err := OptionsFromConfig(cfg)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if opts.Text != "hello" || opts.FontSize != parameter.RasterFontSize {
		t.Errorf("Unexpected options: %+v", opts)
	}
	if opts.frameInterval() != time.Second/30 {
		t.Errorf("Expected 30 FPS interval, got %v", opts.frameInterval())
	}
	if opts.Schedule.RowDelay != parameter.RowDelay {
		t.Errorf("Expected row delay %v, got %v", parameter.RowDelay, opts.Schedule.RowDelay)
	}

	cfg.Render.Gradient = []string{"not-a-color"}
	if _, err := OptionsFromConfig(cfg); err == nil {
		t.Error("Expected error for bad gradient")
	}
}

func TestMockClock(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock := NewMockClock(start)

	if !mock.Now().Equal(start) {
		t.Errorf("Expected %v, got %v", start, mock.Now())
	}
	mock.Advance(time.Hour)
	if !mock.Now().Equal(start.Add(time.Hour)) {
		t.Errorf("Expected advance by one hour, got %v", mock.Now())
	}
	mock.Set(start)
	if !mock.Now().Equal(start) {
		t.Error("Expected Set to reset time")
	}
}

func TestRunFadeProgress(t *testing.T) {
	r := &Run{Fade: 300 * time.Millisecond}
	if got := r.FadeProgress(600 * time.Millisecond); got != 0.5 {
		t.Errorf("Expected 0.5, got %f", got)
	}
	if r.FadeProgress(0) != 1 {
		t.Error("Expected zero duration to complete immediately")
	}
}
