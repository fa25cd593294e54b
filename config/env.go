package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Environment variable names
const (
	EnvText          = "GLYPHFALL_TEXT"
	EnvFont          = "GLYPHFALL_FONT"
	EnvReducedMotion = "GLYPHFALL_REDUCED_MOTION"
	EnvFPS           = "GLYPHFALL_FPS"
	EnvSeed          = "GLYPHFALL_SEED"
	EnvAudioEnabled  = "GLYPHFALL_AUDIO_ENABLED"
	EnvMasterVolume  = "GLYPHFALL_MASTER_VOLUME"
)

// LoadEnvFile loads KEY=VALUE pairs from path into the process environment.
// Variables already set win. A missing file is not an error
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return errors.Wrapf(err, "load env file %s", path)
	}
	return nil
}

// ApplyEnv overrides cfg from GLYPHFALL_* variables. Unparseable values are ignored
func ApplyEnv(cfg *Config) {
	if v := os.Getenv(EnvText); v != "" {
		cfg.Text = v
	}
	if v := os.Getenv(EnvFont); v != "" {
		cfg.Font.Path = v
	}

	if v := os.Getenv(EnvReducedMotion); v != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			cfg.Engine.ReducedMotion = b
		} else if strings.EqualFold(v, "reduce") {
			cfg.Engine.ReducedMotion = true
		}
	}

	if v := os.Getenv(EnvFPS); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Engine.FPS = n
		}
	}
	if v := os.Getenv(EnvSeed); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Engine.Seed = n
		}
	}

	if v := os.Getenv(EnvAudioEnabled); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Audio.Enabled = b
		}
	}
	// 0-100 converted to 0.0-1.0
	if v := os.Getenv(EnvMasterVolume); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			vol := float64(n) / 100.0
			if vol < 0 {
				vol = 0
			}
			if vol > 1 {
				vol = 1
			}
			cfg.Audio.MasterVolume = vol
		}
	}
}
