package metrics

import "github.com/san-kum/digirain/internal/sim"

// Coverage is the mean fraction of screen cells holding a glyph.
type Coverage struct {
	name    string
	sum     float64
	samples int
}

func NewCoverage() *Coverage {
	return &Coverage{name: "coverage"}
}

func (c *Coverage) Name() string { return c.name }

func (c *Coverage) Observe(t sim.TickInfo) {
	c.samples++
	if t.Frame == nil {
		return
	}
	cells := t.Frame.Cols * t.Frame.Rows
	if cells == 0 {
		return
	}
	c.sum += float64(t.Frame.NonBlank()) / float64(cells)
}

func (c *Coverage) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *Coverage) Reset() {
	c.sum = 0
	c.samples = 0
}

// Turnover is the mean number of streams retired per tick.
type Turnover struct {
	name    string
	retired int
	samples int
}

func NewTurnover() *Turnover {
	return &Turnover{name: "turnover"}
}

func (t *Turnover) Name() string { return t.name }

func (t *Turnover) Observe(info sim.TickInfo) {
	t.retired += info.Retired
	t.samples++
}

func (t *Turnover) Value() float64 {
	if t.samples == 0 {
		return 0
	}
	return float64(t.retired) / float64(t.samples)
}

func (t *Turnover) Reset() {
	t.retired = 0
	t.samples = 0
}

// Default returns a fresh set of every stream metric.
func Default() []sim.Metric {
	return []sim.Metric{NewDensity(), NewPeak(), NewCoverage(), NewTurnover()}
}
