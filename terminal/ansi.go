package terminal

import (
	"io"
	"os"
)

// Raw sequences for emergency restore when the screen object is unusable
var (
	csiRIS            = []byte("\x1bc") // Reset to Initial State
	csiSGR0           = []byte("\x1b[0m")
	csiCursorShow     = []byte("\x1b[?25h")
	csiAltScreenExit  = []byte("\x1b[?1049l")
	csiAutoWrapOn     = []byte("\x1b[?7h")
	csiMouseClickOff  = []byte("\x1b[?1000l")
	csiMouseDragOff   = []byte("\x1b[?1002l")
	csiMouseMotionOff = []byte("\x1b[?1003l")
	csiMouseSGROff    = []byte("\x1b[?1006l")
)

// EmergencyReset writes the sequences that leave the alternate screen and
// restore cursor, attributes and wrapping, then restores cooked mode
func EmergencyReset(w io.Writer) {
	w.Write(csiMouseMotionOff)
	w.Write(csiMouseDragOff)
	w.Write(csiMouseClickOff)
	w.Write(csiMouseSGROff)

	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)
	w.Write(csiSGR0)
	w.Write(csiAutoWrapOn)
	w.Write(csiRIS)

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Escape sequences alone don't restore termios; best-effort
	resetTerminalMode()
}
