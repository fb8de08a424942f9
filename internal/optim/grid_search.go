// Package optim tunes controller parameters by exhaustive search over
// simulated runs.
package optim

import (
	"context"
	"math"

	"github.com/san-kum/armdyn/internal/sim"
)

// Trial builds and runs one simulation for a parameter assignment and
// returns its metrics.
type Trial func(ctx context.Context, params map[string]float64) (map[string]float64, error)

// GridSearch evaluates every combination of the given parameter values
// and keeps the assignment minimizing one metric.
type GridSearch struct {
	names  []string
	values [][]float64
}

func NewGridSearch(names []string, values [][]float64) *GridSearch {
	return &GridSearch{names: names, values: values}
}

// Search runs the full grid. Trials that fail are skipped. Returns the
// best parameters and the best metric value; the value is +Inf when
// every trial failed.
func (g *GridSearch) Search(ctx context.Context, trial Trial, metricName string) (map[string]float64, float64, error) {
	best := math.Inf(1)
	var bestParams map[string]float64

	err := g.walk(ctx, 0, make(map[string]float64), func(params map[string]float64) {
		metrics, err := trial(ctx, params)
		if err != nil {
			return
		}
		val, ok := metrics[metricName]
		if !ok || math.IsNaN(val) {
			return
		}
		if val < best {
			best = val
			bestParams = clone(params)
		}
	})
	return bestParams, best, err
}

func (g *GridSearch) walk(ctx context.Context, depth int, current map[string]float64, visit func(map[string]float64)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if depth == len(g.names) {
		visit(current)
		return nil
	}
	for _, v := range g.values[depth] {
		current[g.names[depth]] = v
		if err := g.walk(ctx, depth+1, current, visit); err != nil {
			return err
		}
	}
	delete(current, g.names[depth])
	return nil
}

func clone(m map[string]float64) map[string]float64 {
	c := make(map[string]float64, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

// TrackingError measures mean squared distance of the joint positions
// from a target configuration, for scoring tuning runs.
type TrackingError struct {
	target  []float64
	total   float64
	samples int
}

func NewTrackingError(target []float64) *TrackingError {
	return &TrackingError{target: target}
}

func (e *TrackingError) Name() string { return "tracking_error" }

func (e *TrackingError) Observe(x sim.State, u sim.Control, t float64) {
	if len(x) < len(e.target) {
		return
	}
	for j, tg := range e.target {
		d := x[j] - tg
		e.total += d * d
	}
	e.samples++
}

func (e *TrackingError) Value() float64 {
	if e.samples == 0 {
		return math.Inf(1)
	}
	return e.total / float64(e.samples)
}

func (e *TrackingError) Reset() {
	e.total = 0
	e.samples = 0
}
