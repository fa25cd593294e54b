package parameter

import "time"

// Frame Loop Timing
const (
	// FrameRate is the default frame loop rate (frames per second)
	FrameRate = 60

	// FrameUpdateInterval is the frame interval at FrameRate (~60 FPS)
	FrameUpdateInterval = time.Second / FrameRate

	// MaxFrameDelta clamps a single integration step after stalls (suspend, slow terminal)
	MaxFrameDelta = 50 * time.Millisecond

	// ResizeDebounce is the settle delay between the last resize and the replay it triggers
	ResizeDebounce = 150 * time.Millisecond
)

// Setup Timeouts
const (
	// FontTimeout bounds the wait for the font to load; on expiry the plain label is shown
	FontTimeout = 2500 * time.Millisecond

	// ReadyTimeout bounds the wait for the screen's first size report
	ReadyTimeout = 1500 * time.Millisecond
)

// Intent Queue
const (
	// IntentQueueSize is the fixed capacity of the intent ring buffer
	IntentQueueSize = 64

	// IntentBufferMask is the bitmask for fast modulo operations (64 - 1)
	IntentBufferMask = 63
)

// Keys
const (
	// KeyReplay restarts the animation from an empty field
	KeyReplay = 'r'

	// KeyQuit exits the program
	KeyQuit = 'q'
)
