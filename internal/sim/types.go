package sim

import (
	"time"

	"github.com/san-kum/digirain/internal/rain"
)

// DefaultInterval is the input poll bound, and so the nominal tick length.
const DefaultInterval = 20 * time.Millisecond

// TickInfo describes one completed tick.
type TickInfo struct {
	Tick    int
	Live    int
	Spawned int
	Retired int
	Resized bool
	Frame   *rain.Frame
}

type Metric interface {
	Name() string
	Observe(t TickInfo)
	Value() float64
	Reset()
}

type Observer interface {
	OnTick(t TickInfo)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(TickInfo)

func (f ObserverFunc) OnTick(t TickInfo) { f(t) }

type Config struct {
	Interval time.Duration
	// MaxTicks stops the loop after that many ticks. Zero runs until quit.
	MaxTicks int
}

type StopReason string

const (
	StopQuit     StopReason = "quit"
	StopMaxTicks StopReason = "max_ticks"
	StopCanceled StopReason = "canceled"
	StopError    StopReason = "error"
)

type Result struct {
	Ticks   int
	Spawned int
	Retired int
	Resizes int
	Peak    int
	Live    []int
	Reason  StopReason
	Elapsed time.Duration
	Metrics map[string]float64
}
