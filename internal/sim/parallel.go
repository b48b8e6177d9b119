package sim

import (
	"context"
	"sync"

	"github.com/san-kum/digirain/internal/rain"
	"github.com/san-kum/digirain/internal/term"
)

// Spec describes one headless run of an Ensemble.
type Spec struct {
	Cols, Rows int
	Seed       uint64
	Policy     rain.SpawnPolicy
}

// Ensemble runs independent headless simulations concurrently. Each run has
// its own engine, driver and metrics, so nothing is shared between goroutines.
type Ensemble struct {
	specs      []Spec
	ticks      int
	newMetrics func() []Metric
}

// NewEnsemble prepares runs of the given length. newMetrics may be nil.
func NewEnsemble(ticks int, newMetrics func() []Metric, specs ...Spec) *Ensemble {
	return &Ensemble{specs: specs, ticks: ticks, newMetrics: newMetrics}
}

func (e *Ensemble) Run(ctx context.Context) ([]*Result, error) {
	results := make([]*Result, len(e.specs))
	errs := make([]error, len(e.specs))

	var wg sync.WaitGroup
	for i, spec := range e.specs {
		wg.Add(1)
		go func(idx int, spec Spec) {
			defer wg.Done()

			eng := rain.New(spec.Cols, spec.Rows, rain.WithSeed(spec.Seed), rain.WithSpawnPolicy(spec.Policy))
			s := New(eng, term.NewHeadless(spec.Cols, spec.Rows))
			if e.newMetrics != nil {
				for _, m := range e.newMetrics() {
					s.AddMetric(m)
				}
			}
			results[idx], errs[idx] = s.Run(ctx, Config{MaxTicks: e.ticks})
		}(i, spec)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
