// Command pong is a terminal Pong against a reaction-delayed AI.
//
// Keys: w/k/Up and s/j/Down move, Enter starts, space pauses, m mutes,
// q / Esc quits. The mouse row steers the paddle too.
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/jessevdk/go-flags"

	"github.com/lixenwraith/glyphfall/audio"
	"github.com/lixenwraith/glyphfall/logging"
	"github.com/lixenwraith/glyphfall/parameter"
	"github.com/lixenwraith/glyphfall/pong"
	"github.com/lixenwraith/glyphfall/render"
	"github.com/lixenwraith/glyphfall/terminal"
)

// CLIOptions are the command line flags
type CLIOptions struct {
	Cols     int    `long:"cols" description:"Board width in cells"`
	Rows     int    `long:"rows" description:"Board height in cells"`
	WinScore int    `long:"win-score" description:"Points needed to win"`
	Color    string `long:"color" default:"auto" choice:"auto" choice:"truecolor" choice:"24bit" choice:"256" description:"Color mode"`
	Mute     bool   `long:"mute" description:"Disable sound cues"`
	Seed     int64  `long:"seed" description:"Random seed (0: time based)"`
	Debug    bool   `long:"debug" description:"Write logs to logs/pong.log"`
}

func main() {
	os.Exit(run())
}

func run() int {
	defer func() {
		if r := recover(); r != nil {
			terminal.HandleCrash(r)
		}
	}()

	var opts CLIOptions
	if _, err := flags.Parse(&opts); err != nil {
		if fe, ok := err.(*flags.Error); ok && fe.Type == flags.ErrHelp {
			return 0
		}
		return 2
	}

	if logFile := logging.Setup(opts.Debug, "logs", "pong.log", 10*1024*1024); logFile != nil {
		defer logFile.Close()
	}

	cfg := configFromFlags(&opts)

	colorMode, err := terminal.ParseColorMode(opts.Color)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pong: %v\n", err)
		return 2
	}

	palette := render.DefaultPalette()
	screen, err := terminal.NewScreen(colorMode, palette.Background.Tcell())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		return 1
	}
	defer terminal.CloseScreen(screen)
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnableFocus()

	ac := audio.DefaultConfig()
	ac.Enabled = !opts.Mute
	player := audio.Open(ac)
	defer player.Close()

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	game := pong.NewGame(cfg, rand.New(rand.NewSource(seed)))
	a := newApp(game, cfg, screen, player, palette)
	log.Printf("pong: board=%dx%d seed=%d", cfg.Cols, cfg.Rows, seed)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	events := make(chan tcell.Event, 16)
	terminal.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	})

	ticker := time.NewTicker(parameter.FrameUpdateInterval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return 0
		case ev := <-events:
			if !a.handle(ev) {
				return 0
			}
		case now := <-ticker.C:
			a.step(now.Sub(last))
			last = now
			a.draw()
		}
	}
}

func configFromFlags(opts *CLIOptions) pong.Config {
	cfg := pong.DefaultConfig()
	if opts.Cols > 0 {
		cfg.Cols = opts.Cols
	}
	if opts.Rows > 0 {
		cfg.Rows = opts.Rows
	}
	if opts.WinScore > 0 {
		cfg.WinScore = opts.WinScore
	}
	return cfg
}
