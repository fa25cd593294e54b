package terminal

import (
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

// ErrNotTerminal is returned when stdout is not attached to a terminal
var ErrNotTerminal = errors.New("stdout is not a terminal")

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// NewScreen creates and initialises a tcell screen in the given color mode,
// hides the cursor and registers it for crash cleanup
func NewScreen(mode ColorMode, background tcell.Color) (tcell.Screen, error) {
	if !IsTerminal(os.Stdout) {
		return nil, ErrNotTerminal
	}

	// tcell reads this at Init; only forcing 256 needs it
	if mode == ColorMode256 {
		os.Setenv("TCELL_TRUECOLOR", "disable")
	}

	s, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Wrap(err, "create screen")
	}
	if err := s.Init(); err != nil {
		return nil, errors.Wrap(err, "init screen")
	}

	s.SetStyle(tcell.StyleDefault.Background(background))
	s.HideCursor()
	s.Clear()

	RegisterCrashScreen(s)
	return s, nil
}

// CloseScreen finalizes s and unregisters crash cleanup
func CloseScreen(s tcell.Screen) {
	if s == nil {
		return
	}
	RegisterCrashScreen(nil)
	s.Fini()
}
