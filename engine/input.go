package engine

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/glyphfall/event"
	"github.com/lixenwraith/glyphfall/parameter"
)

// IntentFor maps a terminal event to a loop intent; ok is false for events the loop ignores
func IntentFor(ev tcell.Event) (event.Intent, bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return event.Intent{Type: event.IntentQuit}, true
		case tcell.KeyRune:
			switch ev.Rune() {
			case parameter.KeyQuit:
				return event.Intent{Type: event.IntentQuit}, true
			case parameter.KeyReplay:
				return event.Intent{Type: event.IntentReplay}, true
			}
		}
	case *tcell.EventResize:
		w, h := ev.Size()
		return event.Intent{Type: event.IntentResize, Width: w, Height: h}, true
	}
	return event.Intent{}, false
}
