// Package pong is a small terminal Pong: the player holds the left paddle,
// an AI with reaction delay holds the right one, and epochs raise the pace.
package pong

import (
	"math"
	"math/rand"
	"time"

	"github.com/lixenwraith/glyphfall/parameter"
	"github.com/lixenwraith/glyphfall/physics"
)

// State is the game's top-level mode
type State uint8

const (
	StateAttract State = iota
	StatePlaying
	StatePaused
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateAttract:
		return "attract"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// Events reports what happened during one Update, for sound cues
type Events uint8

const (
	EventHit Events = 1 << iota
	EventWall
	EventScore
	EventLevelUp
	EventGameOver
)

// Has reports whether all bits of f are set
func (e Events) Has(f Events) bool { return e&f == f }

// bounds are the playfield limits derived from the board size
type bounds struct {
	cols, rows int
	minX, maxX float64
	minY, maxY float64
	leftX      float64 // left paddle column
	rightX     float64 // right paddle column
}

// Game holds all pong state. Not safe for concurrent use
type Game struct {
	cfg Config
	rng *rand.Rand
	b   bounds

	state State
	level int
	rally int

	elapsed     float64       // seconds of play
	lastLevelAt float64       // elapsed at the last level-up
	clock       time.Duration // game clock, advanced in every state

	bannerUntil    time.Duration
	startHoldUntil time.Duration
	upUntil        time.Duration
	downUntil      time.Duration

	aiTargetY float64
	lastAI    time.Duration

	ball         physics.Kinetic
	ballSpeed    float64
	prevX, prevY float64

	left, right    float64 // paddle centres
	scoreL, scoreR int
	lost           bool
}

// NewGame creates a game in attract mode
func NewGame(cfg Config, rng *rand.Rand) *Game {
	g := &Game{cfg: cfg, rng: rng}
	g.Resize(cfg.Cols, cfg.Rows)
	g.resetGame()
	return g
}

// Resize sets the board size and clamps paddles and ball inside it
func (g *Game) Resize(cols, rows int) {
	border := 0.0
	if g.cfg.ShowBorder {
		border = 1
	}
	g.b = bounds{
		cols: cols,
		rows: rows,
		minX: border,
		maxX: float64(cols-1) - border,
		minY: border,
		maxY: float64(rows-1) - border,
	}
	g.b.leftX = g.b.minX + 1
	g.b.rightX = g.b.maxX - 1

	g.left = g.clampPaddle(g.left)
	g.right = g.clampPaddle(g.right)
	g.ball.X = physics.Clamp(g.ball.X, g.b.minX+1, g.b.maxX-1)
	g.ball.Y = physics.Clamp(g.ball.Y, g.b.minY+1, g.b.maxY-1)
}

// State returns the current mode
func (g *Game) State() State { return g.state }

// Level returns the current epoch, starting at 1
func (g *Game) Level() int { return g.level }

// Rally returns paddle hits since the last point
func (g *Game) Rally() int { return g.rally }

// Score returns player and AI points
func (g *Game) Score() (player, ai int) { return g.scoreL, g.scoreR }

// Lost reports whether the last game ended with a player miss
func (g *Game) Lost() bool { return g.lost }

// Size returns the board dimensions
func (g *Game) Size() (cols, rows int) { return g.b.cols, g.b.rows }

// Start begins a new game from attract or game over, or resumes from pause
func (g *Game) Start() {
	switch g.state {
	case StateAttract, StateGameOver:
		g.resetGame()
		g.state = StatePlaying
		g.startHoldUntil = g.clock + g.cfg.StartHold
		g.bannerUntil = g.startHoldUntil
	case StatePaused:
		g.state = StatePlaying
	}
}

// TogglePause switches between playing and paused
func (g *Game) TogglePause() {
	switch g.state {
	case StatePlaying:
		g.state = StatePaused
	case StatePaused:
		g.state = StatePlaying
	}
}

// Blur pauses a running game when the terminal loses focus
func (g *Game) Blur() {
	if g.state == StatePlaying {
		g.state = StatePaused
	}
}

// MoveUp holds the player paddle moving up for KeyHold; terminals report no key-up
func (g *Game) MoveUp() {
	g.upUntil = g.clock + g.cfg.KeyHold
	g.downUntil = 0
}

// MoveDown holds the player paddle moving down for KeyHold
func (g *Game) MoveDown() {
	g.downUntil = g.clock + g.cfg.KeyHold
	g.upUntil = 0
}

// PointPaddle moves the player paddle to a board row, as a mouse would
func (g *Game) PointPaddle(row int) {
	if g.state == StateAttract {
		return
	}
	g.left = g.clampPaddle(float64(row))
}

// Update advances the game by dt, clamped to PongMaxFrameDelta
func (g *Game) Update(dt time.Duration) Events {
	dt = min(max(dt, 0), parameter.PongMaxFrameDelta)
	g.clock += dt

	if g.state != StatePlaying {
		return 0
	}

	sec := dt.Seconds()
	g.elapsed += sec
	g.updatePlayer(sec)
	g.updateAI(sec)

	if g.startHoldUntil > 0 && g.clock < g.startHoldUntil {
		return 0
	}
	g.startHoldUntil = 0
	return g.stepBall(sec)
}

func (g *Game) resetGame() {
	g.scoreL, g.scoreR = 0, 0
	g.lost = false
	g.level = 1
	g.elapsed = 0
	g.lastLevelAt = 0
	g.bannerUntil = 0
	g.startHoldUntil = 0

	dir := -1.0
	if g.rng.Float64() > 0.5 {
		dir = 1
	}
	g.resetRound(dir)
}

func (g *Game) resetRound(dir float64) {
	g.left = math.Floor((g.b.minY + g.b.maxY) / 2)
	g.right = g.left
	g.rally = 0
	g.resetBall(dir)
}

// resetBall serves from the centre within ±54° of horizontal, faster each epoch
func (g *Game) resetBall(dir float64) {
	g.ball = physics.Kinetic{
		X: math.Floor((g.b.minX + g.b.maxX) / 2),
		Y: math.Floor((g.b.minY + g.b.maxY) / 2),
	}
	g.prevX, g.prevY = g.ball.X, g.ball.Y

	angle := (g.rng.Float64()*0.6 - 0.3) * math.Pi
	g.ballSpeed = g.cfg.BaseBallSpeed * (1 + float64(g.level-1)*0.08)
	physics.SetImpulse(&g.ball, math.Cos(angle)*g.ballSpeed*dir, math.Sin(angle)*g.ballSpeed)
}

func (g *Game) clampPaddle(y float64) float64 {
	return physics.Clamp(y, g.b.minY+1, g.b.maxY-1)
}

func (g *Game) updatePlayer(sec float64) {
	vy := 0.0
	if g.clock < g.upUntil {
		vy -= g.cfg.PlayerSpeed
	}
	if g.clock < g.downUntil {
		vy += g.cfg.PlayerSpeed
	}
	g.left = g.clampPaddle(g.left + vy*sec)
}

// updateAI re-reads the ball only every AIReaction and moves at a level-scaled cap
func (g *Game) updateAI(sec float64) {
	if g.clock-g.lastAI > g.cfg.AIReaction {
		g.aiTargetY = g.ball.Y
		g.lastAI = g.clock
	}
	maxStep := (g.cfg.AIMaxSpeed + float64(g.level)*2) * sec
	g.right = g.clampPaddle(g.right + physics.Clamp(g.aiTargetY-g.right, -maxStep, maxStep))
}

func (g *Game) stepBall(sec float64) Events {
	var ev Events

	g.prevX, g.prevY = g.ball.X, g.ball.Y
	physics.Integrate(&g.ball, sec)

	if physics.ReflectBoundsY(&g.ball, g.b.minY+1, g.b.maxY-1) {
		ev |= EventWall
	}

	half := float64(g.cfg.PaddleHeight / 2)
	switch {
	case g.ball.VX < 0 && g.ball.X <= g.b.leftX+1:
		if g.ball.Y >= g.left-half && g.ball.Y <= g.left+half {
			g.ball.X = g.b.leftX + 1
			ev |= g.bounce(g.left, half, 1)
		}
	case g.ball.VX > 0 && g.ball.X >= g.b.rightX-1:
		if g.ball.Y >= g.right-half && g.ball.Y <= g.right+half {
			g.ball.X = g.b.rightX - 1
			ev |= g.bounce(g.right, half, -1)
		}
	}

	if g.ball.X < g.b.minX {
		g.scoreR++
		g.lost = true
		ev |= EventScore
	} else if g.ball.X > g.b.maxX {
		g.scoreL++
		ev |= EventScore
		g.resetRound(-1)
	}

	if g.lost || g.scoreL >= g.cfg.WinScore {
		g.state = StateGameOver
		ev |= EventGameOver
	}
	return ev
}

// bounce reflects the ball off a paddle at an angle proportional to the hit
// offset, adds spin at high epochs and ramps speed. dir is the new X direction
func (g *Game) bounce(paddleY, half, dir float64) Events {
	ev := EventHit

	rel := physics.Clamp((g.ball.Y-paddleY)/half, -1, 1)
	angle := g.cfg.MaxBounceDeg * math.Pi / 180 * rel
	if g.level >= g.cfg.SpinStartLvl {
		angle += (g.rng.Float64()*2 - 1) * g.cfg.SpinMaxDeg * math.Pi / 180
	}

	speed := math.Max(g.cfg.BaseBallSpeed, math.Hypot(g.ball.VX, g.ball.VY)) * g.cfg.SpeedRamp
	physics.SetImpulse(&g.ball, dir*math.Cos(angle)*speed, math.Sin(angle)*speed)
	g.ballSpeed = speed

	g.rally++
	if g.maybeLevelUp() {
		ev |= EventLevelUp
	}
	return ev
}

// maybeLevelUp advances the epoch every LevelEveryRallies hits or LevelEverySeconds of play
func (g *Game) maybeLevelUp() bool {
	byRally := g.cfg.LevelEveryRallies > 0 && g.rally > 0 && g.rally%g.cfg.LevelEveryRallies == 0
	byTime := g.cfg.LevelEverySeconds > 0 && math.Floor((g.elapsed-g.lastLevelAt)/g.cfg.LevelEverySeconds) >= 1
	if !byRally && !byTime {
		return false
	}
	g.lastLevelAt = g.elapsed
	g.level = min(g.level+1, max(1, len(g.cfg.LevelNames)))
	g.bannerUntil = g.clock + g.cfg.BannerDuration
	return true
}
