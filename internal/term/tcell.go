package term

import (
	"context"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/san-kum/digirain/internal/rain"
)

var (
	// HeadStyle marks the leading glyph of a stream.
	HeadStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	// BodyStyle is used for every other glyph.
	BodyStyle = tcell.StyleDefault.Foreground(tcell.ColorGreen)
)

type driverState int

const (
	stateNew driverState = iota
	stateRunning
	stateClosed
)

// Tcell drives a tcell screen. tcell switches to the alternate screen on
// Init and back on Fini, and addresses cells directly so nothing wraps.
type Tcell struct {
	screen tcell.Screen
	events chan tcell.Event
	done   chan struct{}
	state  driverState
	once   sync.Once
}

// NewTcell opens the controlling terminal.
func NewTcell() (*Tcell, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, Wrap("init", err)
	}
	return NewTcellScreen(s), nil
}

// NewTcellScreen wraps an existing, not yet initialized screen.
func NewTcellScreen(s tcell.Screen) *Tcell {
	return &Tcell{
		screen: s,
		events: make(chan tcell.Event, 16),
		done:   make(chan struct{}),
	}
}

func (t *Tcell) Init() error {
	switch t.state {
	case stateRunning:
		return nil
	case stateClosed:
		return Wrap("init", ErrClosed)
	}
	if err := t.screen.Init(); err != nil {
		return Wrap("init", err)
	}
	t.screen.SetStyle(tcell.StyleDefault)
	t.screen.HideCursor()
	t.screen.Clear()
	t.state = stateRunning
	go t.read()
	return nil
}

// read forwards screen events until the screen is finalized.
func (t *Tcell) read() {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case t.events <- ev:
		case <-t.done:
			return
		}
	}
}

func (t *Tcell) Fini() error {
	if t.state != stateRunning {
		t.state = stateClosed
		return nil
	}
	t.once.Do(func() {
		close(t.done)
		t.screen.ShowCursor(0, 0)
		t.screen.Fini()
	})
	t.state = stateClosed
	return nil
}

func (t *Tcell) ready(op string) error {
	switch t.state {
	case stateNew:
		return Wrap(op, ErrNotInitialized)
	case stateClosed:
		return Wrap(op, ErrClosed)
	}
	return nil
}

func (t *Tcell) Size() (int, int, error) {
	if err := t.ready("size"); err != nil {
		return 0, 0, err
	}
	cols, rows := t.screen.Size()
	return cols, rows, nil
}

func (t *Tcell) Poll(ctx context.Context, timeout time.Duration) (Event, error) {
	if err := t.ready("poll"); err != nil {
		return Event{}, err
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return Event{}, nil
	case <-timer.C:
		return Event{}, nil
	case ev := <-t.events:
		out, err := translate(ev)
		if out.Kind == EventResize {
			// repaint everything so cells beyond the old bounds do not linger
			t.screen.Sync()
		}
		return out, err
	}
}

func translate(ev tcell.Event) (Event, error) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		out := Event{Kind: EventKey, Key: KeyOther}
		switch ev.Key() {
		case tcell.KeyEscape:
			out.Key = KeyEscape
		case tcell.KeyCtrlC:
			out.Key = KeyCtrlC
		case tcell.KeyRune:
			out.Key = KeyRune
			out.Rune = ev.Rune()
			if ev.Modifiers()&tcell.ModCtrl != 0 && (out.Rune == 'c' || out.Rune == 'C') {
				out.Key, out.Rune = KeyCtrlC, 0
			}
		}
		return out, nil
	case *tcell.EventResize:
		cols, rows := ev.Size()
		return Event{Kind: EventResize, Cols: cols, Rows: rows}, nil
	case *tcell.EventError:
		return Event{}, Wrap("poll", ev)
	}
	return Event{}, nil
}

// Draw paints every cell of the frame and flushes once.
func (t *Tcell) Draw(f *rain.Frame) error {
	if err := t.ready("draw"); err != nil {
		return err
	}
	for row := 0; row < f.Rows; row++ {
		for col := 0; col < f.Cols; col++ {
			r := f.At(col, row)
			style := tcell.StyleDefault
			switch {
			case r == rain.Blank:
			case f.IsHead(col, row):
				style = HeadStyle
			default:
				style = BodyStyle
			}
			t.screen.SetContent(col, row, r, nil, style)
		}
	}
	t.screen.Show()
	return nil
}
