// Package config holds the typed glyphfall configuration.
//
// Values are layered: compiled defaults, then an optional TOML file, then
// environment variables (a .env file is loaded first if present), then CLI
// flags applied by the caller.
package config

import (
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"

	"github.com/lixenwraith/glyphfall/parameter"
)

// ErrInvalid marks a configuration value outside its accepted range
var ErrInvalid = errors.New("invalid configuration")

// Duration decodes TOML strings like "150ms" into time.Duration
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return errors.Wrapf(ErrInvalid, "duration %q: %v", string(b), err)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config is the full runtime configuration
type Config struct {
	Text     string         `toml:"text"`
	Font     FontConfig     `toml:"font"`
	Raster   RasterConfig   `toml:"raster"`
	Schedule ScheduleConfig `toml:"schedule"`
	Physics  PhysicsConfig  `toml:"physics"`
	Render   RenderConfig   `toml:"render"`
	Engine   EngineConfig   `toml:"engine"`
	Audio    AudioConfig    `toml:"audio"`
}

// FontConfig selects the face used for rasterization
type FontConfig struct {
	// Path to a TTF/OTF file; empty selects the embedded Go Mono Bold
	Path string  `toml:"path"`
	Size float64 `toml:"size"`
}

// RasterConfig controls sampling of the offscreen raster into the grid
type RasterConfig struct {
	CellWidth  int     `toml:"cell_width"`
	CellHeight int     `toml:"cell_height"`
	Threshold  float64 `toml:"threshold"`
	Padding    int     `toml:"padding"`
}

// ScheduleConfig controls spawn timing
type ScheduleConfig struct {
	RowDelay  Duration `toml:"row_delay"`
	RowJitter Duration `toml:"row_jitter"`
}

// PhysicsConfig controls particle motion, in cells and seconds
type PhysicsConfig struct {
	Gravity          float64 `toml:"gravity"`
	MinVelocity      float64 `toml:"min_velocity"`
	MaxVelocity      float64 `toml:"max_velocity"`
	DepthBoost       float64 `toml:"depth_boost"`
	SpawnLift        float64 `toml:"spawn_lift"`
	MaxSpawnPerFrame int     `toml:"max_spawn_per_frame"`
}

// RenderConfig controls composition and colors
type RenderConfig struct {
	Gradient          []string `toml:"gradient"`
	Background        string   `toml:"background"`
	Foreground        string   `toml:"foreground"`
	BackgroundOpacity float64  `toml:"background_opacity"`
	FadeDuration      Duration `toml:"fade_duration"`
}

// EngineConfig controls the frame loop and setup
type EngineConfig struct {
	FPS            int      `toml:"fps"`
	FontTimeout    Duration `toml:"font_timeout"`
	ReadyTimeout   Duration `toml:"ready_timeout"`
	ResizeDebounce Duration `toml:"resize_debounce"`
	ReducedMotion  bool     `toml:"reduced_motion"`
	// Seed of 0 selects a time-based seed
	Seed int64 `toml:"seed"`
}

// AudioConfig controls optional sound cues
type AudioConfig struct {
	Enabled      bool    `toml:"enabled"`
	MasterVolume float64 `toml:"master_volume"`
}

// Default returns the compiled-in configuration
func Default() *Config {
	return &Config{
		Text: parameter.DefaultText,
		Font: FontConfig{
			Size: parameter.RasterFontSize,
		},
		Raster: RasterConfig{
			CellWidth:  parameter.SampleCellWidth,
			CellHeight: parameter.SampleCellHeight,
			Threshold:  parameter.InkThreshold,
			Padding:    parameter.GridPadding,
		},
		Schedule: ScheduleConfig{
			RowDelay:  Duration{parameter.RowDelay},
			RowJitter: Duration{parameter.RowJitter},
		},
		Physics: PhysicsConfig{
			Gravity:          parameter.Gravity,
			MinVelocity:      parameter.MinFallVelocity,
			MaxVelocity:      parameter.MaxFallVelocity,
			DepthBoost:       parameter.DepthBoost,
			SpawnLift:        parameter.SpawnLift,
			MaxSpawnPerFrame: parameter.MaxSpawnPerFrame,
		},
		Render: RenderConfig{
			Gradient:          append([]string(nil), parameter.GradientStops...),
			Background:        parameter.ScreenBackground,
			Foreground:        parameter.FallbackForeground,
			BackgroundOpacity: parameter.BackgroundOpacity,
			FadeDuration:      Duration{parameter.FadeDuration},
		},
		Engine: EngineConfig{
			FPS:            parameter.FrameRate,
			FontTimeout:    Duration{parameter.FontTimeout},
			ReadyTimeout:   Duration{parameter.ReadyTimeout},
			ResizeDebounce: Duration{parameter.ResizeDebounce},
		},
		Audio: AudioConfig{
			Enabled:      true,
			MasterVolume: parameter.AudioMasterVolume,
		},
	}
}

// Load builds a configuration from defaults, the TOML file at path (optional),
// and the environment. The result is validated
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "read config")
		}
		if err := Parse(data, cfg); err != nil {
			return nil, err
		}
	}

	if err := LoadEnvFile(".env"); err != nil {
		return nil, err
	}
	ApplyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes TOML data over cfg; keys absent from data keep their current values
func Parse(data []byte, cfg *Config) error {
	if err := toml.Unmarshal(data, cfg); err != nil {
		return errors.Wrap(err, "parse config")
	}
	return nil
}

// Encode renders cfg as TOML, used by --dump-config
func Encode(cfg *Config) ([]byte, error) {
	out, err := toml.Marshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "encode config")
	}
	return out, nil
}
