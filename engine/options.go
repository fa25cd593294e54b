package engine

import (
	"time"

	"github.com/lixenwraith/glyphfall/config"
	"github.com/lixenwraith/glyphfall/glyph"
	"github.com/lixenwraith/glyphfall/parameter"
	"github.com/lixenwraith/glyphfall/physics"
	"github.com/lixenwraith/glyphfall/render"
	"github.com/lixenwraith/glyphfall/schedule"
)

// Options is the resolved loop configuration
type Options struct {
	Text        string
	FontPath    string
	FontSize    float64
	MinFontSize float64

	Raster   glyph.Options
	Schedule schedule.Options
	Physics  physics.Options
	Palette  render.Palette

	FadeDuration   time.Duration
	FPS            int
	FontTimeout    time.Duration
	ReadyTimeout   time.Duration
	ResizeDebounce time.Duration
	ReducedMotion  bool

	// Seed of 0 seeds from the clock
	Seed int64
}

// DefaultOptions returns the compiled-in defaults
func DefaultOptions() Options {
	return Options{
		Text:           parameter.DefaultText,
		FontSize:       parameter.RasterFontSize,
		MinFontSize:    parameter.MinRasterFontSize,
		Raster:         glyph.DefaultOptions(),
		Schedule:       schedule.DefaultOptions(),
		Physics:        physics.DefaultOptions(),
		Palette:        render.DefaultPalette(),
		FadeDuration:   parameter.FadeDuration,
		FPS:            parameter.FrameRate,
		FontTimeout:    parameter.FontTimeout,
		ReadyTimeout:   parameter.ReadyTimeout,
		ResizeDebounce: parameter.ResizeDebounce,
	}
}

// OptionsFromConfig resolves a validated config into loop options
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	palette, err := render.NewPalette(cfg.Render.Background, cfg.Render.Foreground, cfg.Render.Gradient, cfg.Render.BackgroundOpacity)
	if err != nil {
		return Options{}, err
	}

	raster := glyph.DefaultOptions()
	raster.CellWidth = cfg.Raster.CellWidth
	raster.CellHeight = cfg.Raster.CellHeight
	raster.Threshold = cfg.Raster.Threshold
	raster.Padding = cfg.Raster.Padding

	return Options{
		Text:        cfg.Text,
		FontPath:    cfg.Font.Path,
		FontSize:    cfg.Font.Size,
		MinFontSize: min(parameter.MinRasterFontSize, cfg.Font.Size),
		Raster:      raster,
		Schedule: schedule.Options{
			RowDelay:  cfg.Schedule.RowDelay.Duration,
			RowJitter: cfg.Schedule.RowJitter.Duration,
		},
		Physics: physics.Options{
			Gravity:          cfg.Physics.Gravity,
			MinVelocity:      cfg.Physics.MinVelocity,
			MaxVelocity:      cfg.Physics.MaxVelocity,
			DepthBoost:       cfg.Physics.DepthBoost,
			SpawnLift:        cfg.Physics.SpawnLift,
			MaxSpawnPerFrame: cfg.Physics.MaxSpawnPerFrame,
		},
		Palette:        palette,
		FadeDuration:   cfg.Render.FadeDuration.Duration,
		FPS:            cfg.Engine.FPS,
		FontTimeout:    cfg.Engine.FontTimeout.Duration,
		ReadyTimeout:   cfg.Engine.ReadyTimeout.Duration,
		ResizeDebounce: cfg.Engine.ResizeDebounce.Duration,
		ReducedMotion:  cfg.Engine.ReducedMotion,
		Seed:           cfg.Engine.Seed,
	}, nil
}

// frameInterval converts FPS to a ticker period
func (o Options) frameInterval() time.Duration {
	if o.FPS <= 0 {
		return parameter.FrameUpdateInterval
	}
	return time.Second / time.Duration(o.FPS)
}
