package main

import (
	"math/rand"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/glyphfall/audio"
	"github.com/lixenwraith/glyphfall/pong"
	"github.com/lixenwraith/glyphfall/render"
)

type countPlayer struct{ n int }

func (p *countPlayer) Play(audio.Cue) bool { p.n++; return true }
func (p *countPlayer) Close() error        { return nil }

func newTestApp(t *testing.T, w, h int) (*app, tcell.SimulationScreen, *countPlayer) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(w, h)

	cfg := pong.DefaultConfig()
	player := &countPlayer{}
	game := pong.NewGame(cfg, rand.New(rand.NewSource(3)))
	return newApp(game, cfg, screen, player, render.DefaultPalette()), screen, player
}

func key(k tcell.Key, r rune) *tcell.EventKey {
	return tcell.NewEventKey(k, r, tcell.ModNone)
}

func TestAppCentresBoard(t *testing.T) {
	a, screen, _ := newTestApp(t, 100, 40)
	if a.ox != 5 || a.oy != 5 {
		t.Fatalf("Expected origin 5,5, got %d,%d", a.ox, a.oy)
	}

	a.draw()
	if r, _, _, _ := screen.GetContent(a.ox, a.oy); r != '+' {
		t.Errorf("Expected border corner, got %q", r)
	}
	if r, _, _, _ := screen.GetContent(a.ox+3, a.oy+1); r != 'E' {
		t.Errorf("Expected HUD at board row 1, got %q", r)
	}
}

func TestAppShrinksToTerminal(t *testing.T) {
	a, _, _ := newTestApp(t, 100, 40)
	a.handle(tcell.NewEventResize(50, 20))

	if cols, rows := a.game.Size(); cols != 50 || rows != 20 {
		t.Errorf("Expected 50x20 board, got %dx%d", cols, rows)
	}
	if a.ox != 0 || a.oy != 0 {
		t.Errorf("Expected origin 0,0, got %d,%d", a.ox, a.oy)
	}
}

func TestAppKeys(t *testing.T) {
	a, _, _ := newTestApp(t, 100, 40)

	a.handle(key(tcell.KeyEnter, 0))
	if a.game.State() != pong.StatePlaying {
		t.Fatalf("Expected playing after Enter, got %v", a.game.State())
	}
	a.handle(key(tcell.KeyRune, ' '))
	if a.game.State() != pong.StatePaused {
		t.Fatalf("Expected paused after space, got %v", a.game.State())
	}
	a.handle(key(tcell.KeyRune, ' '))
	a.handle(&tcell.EventFocus{Focused: false})
	if a.game.State() != pong.StatePaused {
		t.Error("Expected focus loss to pause")
	}

	if !a.handle(key(tcell.KeyRune, 'w')) {
		t.Error("Expected movement key to keep running")
	}
	if a.handle(key(tcell.KeyRune, 'q')) {
		t.Error("Expected q to quit")
	}
}

func TestAppEscapeQuits(t *testing.T) {
	a, _, _ := newTestApp(t, 100, 40)
	if a.handle(key(tcell.KeyEscape, 0)) {
		t.Error("Expected Esc to quit")
	}
}

func TestAppMouseStarts(t *testing.T) {
	a, _, _ := newTestApp(t, 100, 40)
	a.handle(tcell.NewEventMouse(10, 12, tcell.Button1, tcell.ModNone))
	if a.game.State() != pong.StatePlaying {
		t.Errorf("Expected click to start, got %v", a.game.State())
	}
}

func TestAppStepPlaysCues(t *testing.T) {
	a, _, player := newTestApp(t, 100, 40)

	a.step(16 * time.Millisecond)
	if player.n != 0 {
		t.Fatalf("Expected no cues in attract, got %d", player.n)
	}

	a.game.Start()
	for i := 0; i < 600 && player.n == 0; i++ {
		a.step(16 * time.Millisecond)
	}
	if player.n == 0 {
		t.Error("Expected a cue within ten seconds of play")
	}
}

func TestConfigFromFlags(t *testing.T) {
	cfg := configFromFlags(&CLIOptions{Cols: 60, WinScore: 3})
	if cfg.Cols != 60 || cfg.WinScore != 3 {
		t.Errorf("Expected overrides, got %dx%d win %d", cfg.Cols, cfg.Rows, cfg.WinScore)
	}
	if cfg.Rows != pong.DefaultConfig().Rows {
		t.Error("Expected unset rows to keep default")
	}
}
