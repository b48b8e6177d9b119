package metrics

import "github.com/san-kum/digirain/internal/sim"

// Density is the mean number of live streams per tick.
type Density struct {
	name    string
	total   int
	samples int
}

func NewDensity() *Density {
	return &Density{name: "density"}
}

func (d *Density) Name() string { return d.name }

func (d *Density) Observe(t sim.TickInfo) {
	d.total += t.Live
	d.samples++
}

func (d *Density) Value() float64 {
	if d.samples == 0 {
		return 0
	}
	return float64(d.total) / float64(d.samples)
}

func (d *Density) Reset() {
	d.total = 0
	d.samples = 0
}

// Peak is the largest live stream count seen.
type Peak struct {
	name string
	peak int
}

func NewPeak() *Peak {
	return &Peak{name: "peak"}
}

func (p *Peak) Name() string { return p.name }

func (p *Peak) Observe(t sim.TickInfo) {
	p.peak = max(p.peak, t.Live)
}

func (p *Peak) Value() float64 { return float64(p.peak) }

func (p *Peak) Reset() { p.peak = 0 }
