package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvText, EnvFont, EnvReducedMotion, EnvFPS, EnvSeed, EnvAudioEnabled, EnvMasterVolume} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

// TestDefaultValidates verifies the compiled-in defaults are accepted
func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Expected default config to validate, got %v", err)
	}
	if cfg.Text != "kody.eth" {
		t.Errorf("Expected default text kody.eth, got %q", cfg.Text)
	}
	if cfg.Raster.Padding != 2 {
		t.Errorf("Expected default padding 2, got %d", cfg.Raster.Padding)
	}
	if cfg.Engine.ReducedMotion {
		t.Error("Expected reduced motion off by default")
	}
}

func TestParseOverridesOnlyPresentKeys(t *testing.T) {
	data := []byte(`
text = "hello"

[raster]
threshold = 0.5

[schedule]
row_delay = "10ms"

[engine]
reduced_motion = true
`)
	cfg := Default()
	if err := Parse(data, cfg); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Text != "hello" {
		t.Errorf("Expected text hello, got %q", cfg.Text)
	}
	if cfg.Raster.Threshold != 0.5 {
		t.Errorf("Expected threshold 0.5, got %f", cfg.Raster.Threshold)
	}
	if cfg.Schedule.RowDelay.Duration != 10*time.Millisecond {
		t.Errorf("Expected row delay 10ms, got %v", cfg.Schedule.RowDelay.Duration)
	}
	if !cfg.Engine.ReducedMotion {
		t.Error("Expected reduced motion on")
	}
	// Untouched keys keep defaults
	if cfg.Raster.CellWidth != Default().Raster.CellWidth {
		t.Errorf("Expected cell width to keep default, got %d", cfg.Raster.CellWidth)
	}
}

func TestParseRejectsBadDuration(t *testing.T) {
	cfg := Default()
	err := Parse([]byte(`[render]
fade_duration = "soon"
`), cfg)
	if err == nil {
		t.Fatal("Expected error for bad duration")
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty text", func(c *Config) { c.Text = "   " }},
		{"zero font size", func(c *Config) { c.Font.Size = 0 }},
		{"zero cell", func(c *Config) { c.Raster.CellHeight = 0 }},
		{"threshold one", func(c *Config) { c.Raster.Threshold = 1 }},
		{"negative padding", func(c *Config) { c.Raster.Padding = -1 }},
		{"inverted velocity", func(c *Config) { c.Physics.MinVelocity, c.Physics.MaxVelocity = 5, 1 }},
		{"no spawn budget", func(c *Config) { c.Physics.MaxSpawnPerFrame = 0 }},
		{"bad color", func(c *Config) { c.Render.Gradient = []string{"#zzz"} }},
		{"no stops", func(c *Config) { c.Render.Gradient = nil }},
		{"fps", func(c *Config) { c.Engine.FPS = 0 }},
		{"timeout", func(c *Config) { c.Engine.FontTimeout.Duration = 0 }},
		{"volume", func(c *Config) { c.Audio.MasterVolume = 2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvText, "gm")
	t.Setenv(EnvReducedMotion, "reduce")
	t.Setenv(EnvFPS, "30")
	t.Setenv(EnvMasterVolume, "150")
	t.Setenv(EnvAudioEnabled, "false")

	cfg := Default()
	ApplyEnv(cfg)

	if cfg.Text != "gm" {
		t.Errorf("Expected text gm, got %q", cfg.Text)
	}
	if !cfg.Engine.ReducedMotion {
		t.Error("Expected reduced motion from env")
	}
	if cfg.Engine.FPS != 30 {
		t.Errorf("Expected fps 30, got %d", cfg.Engine.FPS)
	}
	if cfg.Audio.MasterVolume != 1 {
		t.Errorf("Expected volume clamped to 1, got %f", cfg.Audio.MasterVolume)
	}
	if cfg.Audio.Enabled {
		t.Error("Expected audio disabled from env")
	}
}

func TestApplyEnvIgnoresGarbage(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvFPS, "fast")
	t.Setenv(EnvReducedMotion, "maybe")

	cfg := Default()
	ApplyEnv(cfg)

	if cfg.Engine.FPS != Default().Engine.FPS {
		t.Errorf("Expected fps unchanged, got %d", cfg.Engine.FPS)
	}
	if cfg.Engine.ReducedMotion {
		t.Error("Expected reduced motion unchanged")
	}
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "glyphfall.toml")
	if err := os.WriteFile(path, []byte("text = \"from file\"\n[engine]\nfps = 24\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Text != "from file" || cfg.Engine.FPS != 24 {
		t.Errorf("Expected file values, got text=%q fps=%d", cfg.Text, cfg.Engine.FPS)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("Expected error for missing config file")
	}
}

func TestLoadEnvFileDoesNotOverride(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte(EnvText+"=from-dotenv\n"+EnvFont+"=/tmp/x.ttf\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvText, "from-shell")
	t.Cleanup(func() { os.Unsetenv(EnvFont) })

	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("LoadEnvFile failed: %v", err)
	}
	if got := os.Getenv(EnvText); got != "from-shell" {
		t.Errorf("Expected shell value to win, got %q", got)
	}
	if got := os.Getenv(EnvFont); got != "/tmp/x.ttf" {
		t.Errorf("Expected dotenv value for unset key, got %q", got)
	}
}

func TestLoadEnvFileMissing(t *testing.T) {
	if err := LoadEnvFile(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Errorf("Expected nil for missing env file, got %v", err)
	}
}

func TestEncodeRoundTripsDurations(t *testing.T) {
	cfg := Default()
	out, err := Encode(cfg)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	back := &Config{}
	if err := Parse(out, back); err != nil {
		t.Fatalf("Parse of encoded config failed: %v", err)
	}
	if back.Render.FadeDuration.Duration != cfg.Render.FadeDuration.Duration {
		t.Errorf("Expected fade %v, got %v", cfg.Render.FadeDuration.Duration, back.Render.FadeDuration.Duration)
	}
}
