package main

import (
	"testing"

	"github.com/lixenwraith/glyphfall/config"
)

func TestApplyFlagsOverrides(t *testing.T) {
	cfg := config.Default()
	opts := &CLIOptions{
		Text:          "HELLO",
		Font:          "/tmp/face.ttf",
		FontSize:      48,
		FPS:           30,
		Seed:          7,
		ReducedMotion: true,
		Mute:          true,
	}
	applyFlags(cfg, opts)

	if cfg.Text != "HELLO" || cfg.Font.Path != "/tmp/face.ttf" || cfg.Font.Size != 48 {
		t.Errorf("Expected text and font overrides, got %q %q %f", cfg.Text, cfg.Font.Path, cfg.Font.Size)
	}
	if cfg.Engine.FPS != 30 || cfg.Engine.Seed != 7 || !cfg.Engine.ReducedMotion {
		t.Errorf("Expected engine overrides, got %+v", cfg.Engine)
	}
	if cfg.Audio.Enabled {
		t.Error("Expected --mute to disable audio")
	}
}

func TestApplyFlagsZeroKeepsConfig(t *testing.T) {
	cfg := config.Default()
	want := *config.Default()
	applyFlags(cfg, &CLIOptions{Color: "auto"})

	if cfg.Text != want.Text || cfg.Font.Size != want.Font.Size || cfg.Engine.FPS != want.Engine.FPS {
		t.Error("Expected unset flags to leave config unchanged")
	}
	if cfg.Audio.Enabled != want.Audio.Enabled || cfg.Engine.ReducedMotion {
		t.Error("Expected booleans untouched")
	}
}

func TestAudioConfigFollowsConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Audio.Enabled = false
	cfg.Audio.MasterVolume = 0.25

	ac := audioConfig(cfg)
	if ac.Enabled || ac.MasterVolume != 0.25 {
		t.Errorf("Expected disabled at 0.25, got %+v", ac)
	}
	if ac.SampleRate == 0 {
		t.Error("Expected default sample rate")
	}
}
