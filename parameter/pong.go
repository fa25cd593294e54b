package parameter

import "time"

// Pong Board
const (
	PongCols         = 90
	PongRows         = 30
	PongPaddleHeight = 6
	PongWinScore     = 7
)

// Pong Ball & Paddles (cells/sec)
const (
	PongBaseBallSpeed = 30.0
	// PongSpeedRamp multiplies ball speed on each paddle hit
	PongSpeedRamp     = 1.05
	PongAIMaxSpeed    = 36.0
	PongAIReaction    = 60 * time.Millisecond
	PongPlayerSpeed   = 30.0
	PongMaxBounceDeg  = 60.0
	PongSpinStartLvl  = 11
	PongSpinMaxDeg    = 8.0
	PongMaxFrameDelta = 40 * time.Millisecond
)

// Pong Progression
const (
	PongLevelEveryRallies = 6
	PongLevelEverySeconds = 18.0
	PongBannerDuration    = 1600 * time.Millisecond
	PongStartHold         = 1200 * time.Millisecond

	// PongKeyHold emulates key-up: a press keeps the paddle moving this long
	PongKeyHold = 140 * time.Millisecond
)

// Pong Glyphs
const (
	PongBallRune  = 'Ξ'
	PongTrailRune = '.'
)

// PongLevelNames are shown in the level banner, one per epoch
var PongLevelNames = []string{
	"Genesis",
	"The DAO",
	"ICO Boom",
	"DeFi Summer",
	"Lunatics",
	"The Merge",
	"FTX Collapse",
	"Blob City",
	"Memecoin Mania",
	"DAT Summer",
	"Stablecoins, really?",
	"ZK-ify everything",
	"Quantum Resistance",
	"Ossification",
	"Finality",
	"What are you still doing here?",
}
