package term

import (
	"context"
	"time"

	"github.com/san-kum/digirain/internal/rain"
)

// Headless is a Driver without a terminal. Poll never waits: it returns the
// next queued event, or EventNone.
type Headless struct {
	cols, rows int
	queue      []Event
	state      driverState
	frames     int
	last       string
}

func NewHeadless(cols, rows int) *Headless {
	return &Headless{cols: cols, rows: rows}
}

func (h *Headless) Init() error {
	if h.state == stateClosed {
		return Wrap("init", ErrClosed)
	}
	h.state = stateRunning
	return nil
}

func (h *Headless) Fini() error {
	h.state = stateClosed
	return nil
}

func (h *Headless) Size() (int, int, error) {
	if h.state != stateRunning {
		return 0, 0, Wrap("size", ErrNotInitialized)
	}
	return h.cols, h.rows, nil
}

// Push queues an event for a later Poll.
func (h *Headless) Push(ev Event) {
	h.queue = append(h.queue, ev)
}

// Resize changes the reported size and queues the matching resize event.
func (h *Headless) Resize(cols, rows int) {
	h.cols, h.rows = cols, rows
	h.Push(Event{Kind: EventResize, Cols: cols, Rows: rows})
}

func (h *Headless) Poll(ctx context.Context, _ time.Duration) (Event, error) {
	if h.state != stateRunning {
		return Event{}, Wrap("poll", ErrNotInitialized)
	}
	if len(h.queue) == 0 || ctx.Err() != nil {
		return Event{}, nil
	}
	ev := h.queue[0]
	h.queue = h.queue[1:]
	return ev, nil
}

func (h *Headless) Draw(f *rain.Frame) error {
	if h.state != stateRunning {
		return Wrap("draw", ErrNotInitialized)
	}
	h.frames++
	h.last = f.String()
	return nil
}

// Frames is the number of frames drawn so far.
func (h *Headless) Frames() int { return h.frames }

// Last is the plain text of the most recent frame.
func (h *Headless) Last() string { return h.last }

// Closed reports whether Fini ran.
func (h *Headless) Closed() bool { return h.state == stateClosed }
