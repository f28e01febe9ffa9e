package sim

import (
	"context"
	"sync"

	"github.com/san-kum/particlefield/internal/field"
)

// Factory builds the effect, surface and metrics for one ensemble run.
type Factory func(seed int64) (Effect, field.Surface, []Metric, error)

// Ensemble runs independent headless loops for consecutive seeds.
type Ensemble struct {
	factory   Factory
	cfg       Config
	numRuns   int
	seedStart int64
}

func NewEnsemble(factory Factory, cfg Config, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{factory: factory, cfg: cfg, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context, frames int) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			effect, surface, metrics, err := e.factory(e.seedStart + int64(idx))
			if err != nil {
				errs[idx] = err
				return
			}
			loop, err := NewLoop(effect, surface, e.cfg)
			if err != nil {
				errs[idx] = err
				return
			}
			for _, m := range metrics {
				loop.AddMetric(m)
			}
			results[idx], errs[idx] = loop.Run(ctx, frames)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
