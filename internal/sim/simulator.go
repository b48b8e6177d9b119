package sim

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/san-kum/digirain/internal/logger"
	"github.com/san-kum/digirain/internal/rain"
	"github.com/san-kum/digirain/internal/term"
)

// Simulator runs the animation loop: spawn, poll, advance, draw, cleanup.
type Simulator struct {
	engine    *rain.Engine
	driver    term.Driver
	metrics   []Metric
	observers []Observer
	log       zerolog.Logger
}

func New(engine *rain.Engine, driver term.Driver) *Simulator {
	return &Simulator{
		engine:    engine,
		driver:    driver,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		log:       logger.With("sim"),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run drives the loop until a quit key, MaxTicks or ctx cancellation. The
// terminal is restored on every path; a restore failure is joined to the
// returned error.
func (s *Simulator) Run(ctx context.Context, cfg Config) (result *Result, err error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	result = &Result{
		Live:    make([]int, 0, max(cfg.MaxTicks, 0)),
		Metrics: make(map[string]float64),
	}
	start := time.Now()

	if err := s.driver.Init(); err != nil {
		result.Reason = StopError
		return result, errors.Join(term.Wrap("init", err), s.restore())
	}
	defer func() {
		result.Elapsed = time.Since(start)
		if rerr := s.restore(); rerr != nil {
			err = errors.Join(err, rerr)
		}
		for _, m := range s.metrics {
			result.Metrics[m.Name()] = m.Value()
		}
		if err != nil && result.Reason == "" {
			result.Reason = StopError
		}
		if err != nil && result.Reason != StopCanceled {
			s.log.Error().Err(err).Int("ticks", result.Ticks).Msg("loop aborted")
			return
		}
		s.log.Info().Str("reason", string(result.Reason)).Int("ticks", result.Ticks).Msg("loop finished")
	}()

	cols, rows, err := s.driver.Size()
	if err != nil {
		return result, term.Wrap("size", err)
	}
	s.engine.Resize(cols, rows)
	s.log.Info().Int("cols", cols).Int("rows", rows).Dur("interval", cfg.Interval).
		Str("spawn", s.engine.Policy().String()).Msg("loop started")

	for _, m := range s.metrics {
		m.Reset()
	}

	for {
		if ctx.Err() != nil {
			result.Reason = StopCanceled
			return result, ctx.Err()
		}
		if cfg.MaxTicks > 0 && result.Ticks >= cfg.MaxTicks {
			result.Reason = StopMaxTicks
			return result, nil
		}

		before := s.engine.Len()
		s.engine.Spawn()
		spawned := s.engine.Len() - before

		ev, err := s.driver.Poll(ctx, cfg.Interval)
		if err != nil {
			return result, term.Wrap("poll", err)
		}
		if ev.Quit() {
			result.Reason = StopQuit
			return result, nil
		}
		resized := false
		if ev.Kind == term.EventResize {
			s.engine.Resize(ev.Cols, ev.Rows)
			resized = true
			result.Resizes++
			s.log.Info().Int("cols", ev.Cols).Int("rows", ev.Rows).Msg("resized")
		}

		frame := s.engine.Advance()
		if err := s.driver.Draw(frame); err != nil {
			return result, term.Wrap("draw", err)
		}
		retired := s.engine.Cleanup()

		result.Ticks++
		result.Spawned += spawned
		result.Retired += retired
		live := s.engine.Len()
		result.Live = append(result.Live, live)
		result.Peak = max(result.Peak, live)

		info := TickInfo{
			Tick:    result.Ticks,
			Live:    live,
			Spawned: spawned,
			Retired: retired,
			Resized: resized,
			Frame:   frame,
		}
		for _, m := range s.metrics {
			m.Observe(info)
		}
		for _, obs := range s.observers {
			obs.OnTick(info)
		}
		if result.Ticks%500 == 0 {
			s.log.Debug().Int("tick", result.Ticks).Int("live", live).Msg("tick")
		}
	}
}

func (s *Simulator) restore() error {
	return term.Wrap("fini", s.driver.Fini())
}

func validateConfig(cfg Config) error {
	if cfg.Interval < 0 {
		return fmt.Errorf("sim: interval must not be negative, got %v", cfg.Interval)
	}
	if cfg.MaxTicks < 0 {
		return fmt.Errorf("sim: max ticks must not be negative, got %d", cfg.MaxTicks)
	}
	return nil
}
