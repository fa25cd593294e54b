package engine

// Mode is the lifecycle stage of an animation run
type Mode uint8

const (
	// ModeLoading waits for the font and the first size report
	ModeLoading Mode = iota
	// ModeAnimating steps the simulator every frame
	ModeAnimating
	// ModeFading blends the composite into the static rendering
	ModeFading
	// ModeStatic shows the finished text; no frames tick
	ModeStatic
	// ModeFallback shows the plain label after a font or raster failure
	ModeFallback
)

func (m Mode) String() string {
	switch m {
	case ModeLoading:
		return "loading"
	case ModeAnimating:
		return "animating"
	case ModeFading:
		return "fading"
	case ModeStatic:
		return "static"
	case ModeFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// ticking reports modes that need the frame ticker
func (m Mode) ticking() bool {
	return m == ModeAnimating || m == ModeFading
}
