package sim

import (
	"context"
	"sync"
)

// Ensemble runs copies of a simulation from perturbed initial states in
// parallel. Each run gets its own Simulator built by the factory, so
// stateful systems and integrators are not shared across goroutines.
type Ensemble struct {
	factory func() *Simulator
	numRuns int
	perturb func(run int, x0 State) State
}

func NewEnsemble(factory func() *Simulator, numRuns int, perturb func(int, State) State) *Ensemble {
	return &Ensemble{factory: factory, numRuns: numRuns, perturb: perturb}
}

func (e *Ensemble) Run(ctx context.Context, x0 State, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			start := x0.Clone()
			if e.perturb != nil {
				start = e.perturb(idx, start)
			}
			results[idx], errs[idx] = e.factory().Run(ctx, start, cfg)
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
