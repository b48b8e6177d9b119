package viz

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/san-kum/digirain/internal/logger"
	"github.com/san-kum/digirain/internal/rain"
)

type TickMsg time.Time

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model drives an engine from Bubble Tea messages. Bubble Tea delivers key
// and resize messages between ticks, so a tick is spawn, advance, cleanup and
// the following View is the draw.
type Model struct {
	engine   *rain.Engine
	renderer *Renderer
	interval time.Duration
	frame    *rain.Frame
	ticks    int
	quitting bool
	log      zerolog.Logger
}

func NewModel(engine *rain.Engine, interval time.Duration, renderer *Renderer) Model {
	if renderer == nil {
		renderer = NewRenderer(nil)
	}
	return Model{
		engine:   engine,
		renderer: renderer,
		interval: interval,
		log:      logger.With("viz"),
	}
}

func (m Model) Init() tea.Cmd {
	return tick(m.interval)
}

// Update handles quit keys, resizes and ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			m.log.Info().Int("ticks", m.ticks).Msg("quit")
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.engine.Resize(msg.Width, msg.Height)
		m.frame = nil
		m.log.Info().Int("cols", msg.Width).Int("rows", msg.Height).Msg("resized")
	case TickMsg:
		if m.quitting {
			return m, nil
		}
		m.engine.Spawn()
		m.frame = m.engine.Advance()
		m.engine.Cleanup()
		m.ticks++
		return m, tick(m.interval)
	}
	return m, nil
}

// View renders the latest frame.
func (m Model) View() string {
	if m.quitting || m.frame == nil {
		return ""
	}
	return m.renderer.Render(m.frame)
}

func (m Model) Ticks() int { return m.ticks }

// Run shows the rain in the alternate screen until a quit key or ctx ends.
// It returns the number of ticks played.
func Run(ctx context.Context, engine *rain.Engine, interval time.Duration) (int, error) {
	p := tea.NewProgram(NewModel(engine, interval, nil), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return 0, ctx.Err()
		}
		return 0, err
	}
	return final.(Model).Ticks(), nil
}
