package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 50 * time.Millisecond
)

// Audio Defaults
const (
	// AudioMasterVolume is the default master volume (0.0-1.0)
	AudioMasterVolume = 0.5

	// MinTickGap throttles land ticks so dense frames produce one click
	MinTickGap = 45 * time.Millisecond
)

// Land Tick Sound
const (
	TickSoundDuration = 18 * time.Millisecond
	TickSoundAttack   = 2 * time.Millisecond
	TickSoundRelease  = 12 * time.Millisecond
	TickSoundFreq     = 1850.0
	TickSoundVolume   = 0.15
)

// Completion Chime Sound
const (
	ChimeNote1Duration = 90 * time.Millisecond
	ChimeNote2Duration = 420 * time.Millisecond
	ChimeAttack        = 5 * time.Millisecond
	ChimeNote1Release  = 50 * time.Millisecond
	ChimeNote2Release  = 360 * time.Millisecond
	ChimeNote1Freq     = 659.25  // E5
	ChimeNote2Freq     = 987.77  // B5
	ChimeVolume        = 0.35
)

// Paddle Hit Sound
const (
	HitSoundDuration = 40 * time.Millisecond
	HitSoundAttack   = 3 * time.Millisecond
	HitSoundRelease  = 25 * time.Millisecond
	HitSoundFreq     = 880.0
	HitSoundVolume   = 0.3
)

// Audio Output Format
const (
	// AudioBufferSamples is the mono sample count per mixer tick
	AudioBufferSamples = AudioSampleRate * int(AudioBufferDuration/time.Millisecond) / 1000

	// AudioBytesPerFrame is one interleaved stereo s16le frame
	AudioBytesPerFrame = 4

	// AudioPlayQueueSize bounds pending cue requests; overflow is dropped
	AudioPlayQueueSize = 32
)
