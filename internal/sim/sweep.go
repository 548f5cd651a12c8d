package sim

import (
	"context"
	"sync"

	"github.com/hmaier/fluidlab/internal/sph"
)

// Variant is one parameter variation inside a sweep.
type Variant struct {
	Name   string
	Params sph.Params
	Seed   func(st *sph.State)
}

// Sweep runs the same scenario across parameter variants, one simulator
// per variant, concurrently. Each run owns its state, so the runs share
// nothing but the immutable configs.
type Sweep struct {
	variants []Variant
	metrics  func() []Metric
}

// NewSweep builds a sweep over variants. metrics, if non-nil, is invoked
// per run to give every simulator its own metric instances.
func NewSweep(variants []Variant, metrics func() []Metric) *Sweep {
	return &Sweep{variants: variants, metrics: metrics}
}

// Run executes every variant and returns the results in variant order.
// The first run error, if any, is returned after all runs finish.
func (sw *Sweep) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(sw.variants))
	errs := make([]error, len(sw.variants))

	var wg sync.WaitGroup
	for i, v := range sw.variants {
		wg.Add(1)
		go func(idx int, v Variant) {
			defer wg.Done()

			st := sph.NewState(v.Params.N)
			if v.Seed != nil {
				v.Seed(st)
			}

			s := New(sph.NewConstants(v.Params), st)
			if sw.metrics != nil {
				for _, m := range sw.metrics() {
					s.AddMetric(m)
				}
			}

			// Variant runs already saturate cores between them.
			runCfg := cfg
			runCfg.Workers = 1

			results[idx], errs[idx] = s.Run(ctx, runCfg)
		}(i, v)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}

	return results, nil
}
