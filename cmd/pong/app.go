package main

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/glyphfall/audio"
	"github.com/lixenwraith/glyphfall/pong"
	"github.com/lixenwraith/glyphfall/render"
)

// app binds a game to a screen: it routes input, plays cues and draws frames
type app struct {
	game    *pong.Game
	cfg     pong.Config
	screen  tcell.Screen
	buf     *render.Buffer
	player  audio.Player
	palette render.Palette

	ox, oy int // board origin on screen
	quit   bool
}

func newApp(game *pong.Game, cfg pong.Config, screen tcell.Screen, player audio.Player, palette render.Palette) *app {
	a := &app{
		game:    game,
		cfg:     cfg,
		screen:  screen,
		player:  player,
		palette: palette,
		buf:     render.NewBuffer(0, 0, palette.Background),
	}
	w, h := screen.Size()
	a.resize(w, h)
	return a
}

// resize fits the board into the terminal, never larger than configured
func (a *app) resize(w, h int) {
	a.buf.Resize(w, h)
	cols, rows := min(a.cfg.Cols, w), min(a.cfg.Rows, h)
	a.game.Resize(cols, rows)
	a.ox, a.oy = max((w-cols)/2, 0), max((h-rows)/2, 0)
}

// handle applies one terminal event; it returns false once the app should quit
func (a *app) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		a.handleKey(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		a.resize(w, h)
		a.screen.Sync()
	case *tcell.EventMouse:
		_, y := ev.Position()
		a.game.PointPaddle(y - a.oy)
		if ev.Buttons()&tcell.Button1 != 0 && a.game.State() != pong.StatePlaying {
			a.game.Start()
		}
	case *tcell.EventFocus:
		if !ev.Focused {
			a.game.Blur()
		}
	}
	return !a.quit
}

func (a *app) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		a.quit = true
	case tcell.KeyUp:
		a.game.MoveUp()
	case tcell.KeyDown:
		a.game.MoveDown()
	case tcell.KeyEnter:
		a.game.Start()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			a.quit = true
		case 'w', 'k':
			a.game.MoveUp()
		case 's', 'j':
			a.game.MoveDown()
		case ' ':
			a.game.TogglePause()
		case 'm':
			if e, ok := a.player.(*audio.Engine); ok {
				e.ToggleMute()
			}
		}
	}
}

// step advances the game and plays its cues
func (a *app) step(dt time.Duration) {
	ev := a.game.Update(dt)
	switch {
	case ev.Has(pong.EventGameOver), ev.Has(pong.EventLevelUp):
		a.player.Play(audio.CueChime)
	case ev.Has(pong.EventHit), ev.Has(pong.EventScore):
		a.player.Play(audio.CueHit)
	case ev.Has(pong.EventWall):
		a.player.Play(audio.CueTick)
	}
}

// draw renders the board with the ball on a level-indexed gradient color
func (a *app) draw() {
	a.buf.Clear()

	names := max(len(a.cfg.LevelNames), 1)
	ballColor := a.palette.Gradient.At(float64(a.game.Level()-1) / float64(names))
	frameColor := a.palette.Gradient.At(1)

	for y, line := range a.game.Lines() {
		runes := []rune(line)
		last := len(runes) - 1
		for i, r := range runes {
			x := a.ox + i
			switch {
			case r == ' ':
			case r == a.cfg.BallRune:
				a.buf.Set(x, a.oy+y, r, ballColor)
			case r == a.cfg.TrailRune:
				a.buf.Set(x, a.oy+y, r, render.Blend(a.palette.Background, ballColor, 0.5))
			case r == '+' || r == '-' || (r == '|' && (i == 0 || i == last)):
				a.buf.Set(x, a.oy+y, r, frameColor)
			default:
				a.buf.Set(x, a.oy+y, r, a.palette.Foreground)
			}
		}
	}
	a.buf.Flush(a.screen)
}
