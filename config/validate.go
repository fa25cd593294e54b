package config

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

// Validate checks every field range and color string
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Text) == "" {
		return errors.Wrap(ErrInvalid, "text is empty")
	}
	if c.Font.Size <= 0 {
		return errors.Wrapf(ErrInvalid, "font size %.1f must be positive", c.Font.Size)
	}

	r := c.Raster
	if r.CellWidth < 1 || r.CellHeight < 1 {
		return errors.Wrapf(ErrInvalid, "raster cell %dx%d must be at least 1x1", r.CellWidth, r.CellHeight)
	}
	if r.Threshold <= 0 || r.Threshold >= 1 {
		return errors.Wrapf(ErrInvalid, "raster threshold %.2f out of range (0,1)", r.Threshold)
	}
	if r.Padding < 0 {
		return errors.Wrapf(ErrInvalid, "raster padding %d is negative", r.Padding)
	}

	if c.Schedule.RowDelay.Duration < 0 || c.Schedule.RowJitter.Duration < 0 {
		return errors.Wrap(ErrInvalid, "schedule delays must not be negative")
	}

	p := c.Physics
	if p.Gravity <= 0 {
		return errors.Wrapf(ErrInvalid, "gravity %.1f must be positive", p.Gravity)
	}
	if p.MinVelocity < 0 || p.MaxVelocity < p.MinVelocity {
		return errors.Wrapf(ErrInvalid, "velocity range [%.1f, %.1f) is invalid", p.MinVelocity, p.MaxVelocity)
	}
	if p.DepthBoost < 0 || p.SpawnLift < 0 {
		return errors.Wrap(ErrInvalid, "depth boost and spawn lift must not be negative")
	}
	if p.MaxSpawnPerFrame < 1 {
		return errors.Wrapf(ErrInvalid, "max spawn per frame %d must be at least 1", p.MaxSpawnPerFrame)
	}

	if len(c.Render.Gradient) == 0 {
		return errors.Wrap(ErrInvalid, "gradient needs at least one stop")
	}
	colors := append([]string{c.Render.Background, c.Render.Foreground}, c.Render.Gradient...)
	for _, hex := range colors {
		if _, err := colorful.Hex(hex); err != nil {
			return errors.Wrapf(ErrInvalid, "color %q: %v", hex, err)
		}
	}
	if c.Render.BackgroundOpacity < 0 || c.Render.BackgroundOpacity > 1 {
		return errors.Wrapf(ErrInvalid, "background opacity %.2f out of range [0,1]", c.Render.BackgroundOpacity)
	}
	if c.Render.FadeDuration.Duration < 0 {
		return errors.Wrap(ErrInvalid, "fade duration must not be negative")
	}

	e := c.Engine
	if e.FPS < 1 || e.FPS > 240 {
		return errors.Wrapf(ErrInvalid, "fps %d out of range 1-240", e.FPS)
	}
	if e.FontTimeout.Duration <= 0 || e.ReadyTimeout.Duration <= 0 {
		return errors.Wrap(ErrInvalid, "setup timeouts must be positive")
	}
	if e.ResizeDebounce.Duration < 0 {
		return errors.Wrap(ErrInvalid, "resize debounce must not be negative")
	}

	if c.Audio.MasterVolume < 0 || c.Audio.MasterVolume > 1 {
		return errors.Wrapf(ErrInvalid, "master volume %.2f out of range [0,1]", c.Audio.MasterVolume)
	}
	return nil
}
