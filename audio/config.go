package audio

import "github.com/lixenwraith/glyphfall/parameter"

// Config holds playback settings
type Config struct {
	Enabled      bool
	MasterVolume float64 // 0.0-1.0
	SampleRate   int
	CueVolumes   [cueCount]float64
}

// DefaultConfig returns audio enabled at the default master volume
func DefaultConfig() *Config {
	return &Config{
		Enabled:      true,
		MasterVolume: parameter.AudioMasterVolume,
		SampleRate:   parameter.AudioSampleRate,
		CueVolumes: [cueCount]float64{
			CueTick:  parameter.TickSoundVolume,
			CueChime: parameter.ChimeVolume,
			CueHit:   parameter.HitSoundVolume,
		},
	}
}
