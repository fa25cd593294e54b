// Command glyphfall renders a text label as particles falling into place in
// the terminal, then holds the finished text until a key is pressed.
//
// Keys: r replays, q / Esc / Ctrl-C quits. Resizing the terminal replays.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"

	"github.com/lixenwraith/glyphfall/audio"
	"github.com/lixenwraith/glyphfall/config"
	"github.com/lixenwraith/glyphfall/engine"
	"github.com/lixenwraith/glyphfall/terminal"
)

// CLIOptions are the command line flags; zero values leave the config untouched
type CLIOptions struct {
	Text          string  `short:"t" long:"text" description:"Label to render"`
	Font          string  `short:"f" long:"font" description:"TTF/OTF font file (default: embedded Go Mono Bold)"`
	FontSize      float64 `long:"font-size" description:"Raster font size in pixels"`
	Config        string  `short:"c" long:"config" description:"TOML config file"`
	Color         string  `long:"color" default:"auto" choice:"auto" choice:"truecolor" choice:"24bit" choice:"256" description:"Color mode"`
	ReducedMotion bool    `long:"reduced-motion" description:"Draw the finished text without animating"`
	Mute          bool    `long:"mute" description:"Disable sound cues"`
	Seed          int64   `long:"seed" description:"Random seed for spawn jitter and velocities (0: time based)"`
	FPS           int     `long:"fps" description:"Frame rate"`
	Debug         bool    `long:"debug" description:"Write logs to logs/glyphfall.log"`
	DumpConfig    bool    `long:"dump-config" description:"Print the resolved configuration as TOML and exit"`
}

func main() {
	os.Exit(run())
}

func run() int {
	// Panic Recovery: reset the terminal even if the main goroutine crashes
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

	if logFile := setupLogging(opts.Debug); logFile != nil {
		defer logFile.Close()
	}

	cfg, err := config.Load(opts.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "glyphfall: %v\n", err)
		return 1
	}
	applyFlags(cfg, &opts)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "glyphfall: %v\n", err)
		return 1
	}

	if opts.DumpConfig {
		out, err := config.Encode(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "glyphfall: %v\n", err)
			return 1
		}
		os.Stdout.Write(out)
		return 0
	}

	engineOpts, err := engine.OptionsFromConfig(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "glyphfall: %v\n", err)
		return 1
	}

	colorMode, err := terminal.ParseColorMode(opts.Color)
	if err != nil {
		fmt.Fprintf(os.Stderr, "glyphfall: %v\n", err)
		return 2
	}

	screen, err := terminal.NewScreen(colorMode, engineOpts.Palette.Background.Tcell())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		return 1
	}
	log.Printf("glyphfall: color=%s text=%q fps=%d", colorMode, engineOpts.Text, engineOpts.FPS)

	player := audio.Open(audioConfig(cfg))
	loop := engine.NewLoop(screen, engineOpts, nil, player)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runErr := loop.Start(ctx)
	loop.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "glyphfall: %v\n", runErr)
		return 1
	}
	if err := loop.Err(); err != nil {
		log.Printf("glyphfall: ended in fallback: %v", err)
	}
	return 0
}

// applyFlags overrides config values with the flags that were given
func applyFlags(cfg *config.Config, opts *CLIOptions) {
	if opts.Text != "" {
		cfg.Text = opts.Text
	}
	if opts.Font != "" {
		cfg.Font.Path = opts.Font
	}
	if opts.FontSize > 0 {
		cfg.Font.Size = opts.FontSize
	}
	if opts.FPS > 0 {
		cfg.Engine.FPS = opts.FPS
	}
	if opts.Seed != 0 {
		cfg.Engine.Seed = opts.Seed
	}
	if opts.ReducedMotion {
		cfg.Engine.ReducedMotion = true
	}
	if opts.Mute {
		cfg.Audio.Enabled = false
	}
}

func audioConfig(cfg *config.Config) *audio.Config {
	ac := audio.DefaultConfig()
	ac.Enabled = cfg.Audio.Enabled
	ac.MasterVolume = cfg.Audio.MasterVolume
	return ac
}
