// Package event carries intents from input handlers to the frame loop.
//
// Handlers never touch simulation state; they push an Intent and the frame
// loop, the single consumer, drains the queue once per frame.
package event

// IntentType represents the kind of request
type IntentType int

const (
	// IntentReplay restarts the animation from an empty field
	// Trigger: replay key | Consumer: frame loop
	IntentReplay IntentType = iota

	// IntentResize reports new viewport dimensions
	// Trigger: terminal resize | Consumer: frame loop (debounced replay)
	IntentResize

	// IntentQuit stops the frame loop
	// Trigger: quit keys, signals | Consumer: frame loop
	IntentQuit
)

func (t IntentType) String() string {
	switch t {
	case IntentReplay:
		return "replay"
	case IntentResize:
		return "resize"
	case IntentQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Intent is one queued request; Width/Height are set for IntentResize
type Intent struct {
	Type   IntentType
	Width  int
	Height int
}
