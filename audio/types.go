package audio

import (
	"github.com/pkg/errors"
)

// Cue identifies a sound effect
type Cue int

const (
	CueTick  Cue = iota // Particle landed
	CueChime            // Animation complete
	CueHit              // Pong paddle or wall contact
	cueCount
)

func (c Cue) String() string {
	switch c {
	case CueTick:
		return "tick"
	case CueChime:
		return "chime"
	case CueHit:
		return "hit"
	default:
		return "unknown"
	}
}

// BackendType identifies the audio backend
type BackendType int

const (
	BackendPulse BackendType = iota
	BackendPipeWire
	BackendALSA
	BackendSoX
	BackendFFplay
	BackendOSS
)

// BackendConfig describes a CLI audio backend
type BackendConfig struct {
	Type BackendType
	Name string
	Path string
	Args []string
}

// Sentinel errors
var (
	ErrNoAudioBackend = errors.New("no compatible audio backend found")
	ErrPipeClosed     = errors.New("audio pipe closed")
)
