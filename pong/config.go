package pong

import (
	"time"

	"github.com/lixenwraith/glyphfall/parameter"
)

// Config tunes the board, ball, AI and progression
type Config struct {
	Cols, Rows   int
	PaddleHeight int
	WinScore     int

	BaseBallSpeed float64 // cells/sec
	SpeedRamp     float64 // per paddle hit
	AIMaxSpeed    float64 // cells/sec, plus 2 per level
	AIReaction    time.Duration
	PlayerSpeed   float64
	MaxBounceDeg  float64
	SpinStartLvl  int
	SpinMaxDeg    float64

	LevelEveryRallies int
	LevelEverySeconds float64
	BannerDuration    time.Duration
	StartHold         time.Duration
	KeyHold           time.Duration

	ShowBorder bool
	ShowTime   bool
	BallRune   rune
	// TrailRune of 0 disables the trail
	TrailRune  rune
	LevelNames []string
}

// DefaultConfig returns the tuned defaults
func DefaultConfig() Config {
	return Config{
		Cols:              parameter.PongCols,
		Rows:              parameter.PongRows,
		PaddleHeight:      parameter.PongPaddleHeight,
		WinScore:          parameter.PongWinScore,
		BaseBallSpeed:     parameter.PongBaseBallSpeed,
		SpeedRamp:         parameter.PongSpeedRamp,
		AIMaxSpeed:        parameter.PongAIMaxSpeed,
		AIReaction:        parameter.PongAIReaction,
		PlayerSpeed:       parameter.PongPlayerSpeed,
		MaxBounceDeg:      parameter.PongMaxBounceDeg,
		SpinStartLvl:      parameter.PongSpinStartLvl,
		SpinMaxDeg:        parameter.PongSpinMaxDeg,
		LevelEveryRallies: parameter.PongLevelEveryRallies,
		LevelEverySeconds: parameter.PongLevelEverySeconds,
		BannerDuration:    parameter.PongBannerDuration,
		StartHold:         parameter.PongStartHold,
		KeyHold:           parameter.PongKeyHold,
		ShowBorder:        true,
		BallRune:          parameter.PongBallRune,
		TrailRune:         parameter.PongTrailRune,
		LevelNames:        append([]string(nil), parameter.PongLevelNames...),
	}
}
