package term

import (
	"context"
	"time"

	"github.com/san-kum/digirain/internal/rain"
)

type EventKind int

const (
	EventNone EventKind = iota
	EventKey
	EventResize
)

func (k EventKind) String() string {
	switch k {
	case EventKey:
		return "key"
	case EventResize:
		return "resize"
	default:
		return "none"
	}
}

type Key int

const (
	KeyRune Key = iota
	KeyEscape
	KeyCtrlC
	KeyOther
)

// Event is the result of one Poll.
type Event struct {
	Kind       EventKind
	Key        Key
	Rune       rune // for KeyRune
	Cols, Rows int  // for EventResize
}

// Quit reports whether the event asks the animation to stop.
func (ev Event) Quit() bool {
	if ev.Kind != EventKey {
		return false
	}
	switch ev.Key {
	case KeyEscape, KeyCtrlC:
		return true
	case KeyRune:
		return ev.Rune == 'q'
	}
	return false
}

// Driver is the terminal as seen by the animation loop.
type Driver interface {
	// Init enters the alternate screen, hides the cursor and disables wrapping.
	Init() error
	// Fini restores the terminal. It is safe to call more than once.
	Fini() error
	Size() (cols, rows int, err error)
	// Poll waits up to timeout for one input event. A timeout yields EventNone.
	Poll(ctx context.Context, timeout time.Duration) (Event, error)
	// Draw shows a whole frame from the top-left corner in one flush.
	Draw(f *rain.Frame) error
}
