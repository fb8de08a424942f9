package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/armdyn/internal/sim"
)

type oscillator struct{}

func (o *oscillator) Derive(x sim.State, u sim.Control, t float64) sim.State {
	return sim.State{x[1], -x[0]}
}

func (o *oscillator) StateDim() int   { return 2 }
func (o *oscillator) ControlDim() int { return 0 }

func TestRK4Accuracy(t *testing.T) {
	dyn := &oscillator{}
	integ := NewRK4()

	x := sim.State{1.0, 0.0}
	u := sim.Control{}
	dt := 0.01
	steps := 100

	for i := 0; i < steps; i++ {
		x = integ.Step(dyn, x, u, float64(i)*dt, dt)
	}

	expectedX := math.Cos(float64(steps) * dt)
	expectedV := -math.Sin(float64(steps) * dt)

	if math.Abs(x[0]-expectedX) > 1e-4 {
		t.Errorf("position error too large: got %.6f, expected %.6f", x[0], expectedX)
	}
	if math.Abs(x[1]-expectedV) > 1e-4 {
		t.Errorf("velocity error too large: got %.6f, expected %.6f", x[1], expectedV)
	}
}

func TestEulerConvergesWithSmallerStep(t *testing.T) {
	dyn := &oscillator{}
	u := sim.Control{}

	errAt := func(dt float64) float64 {
		integ := NewEuler()
		x := sim.State{1.0, 0.0}
		steps := int(1.0 / dt)
		for i := 0; i < steps; i++ {
			x = integ.Step(dyn, x, u, float64(i)*dt, dt)
		}
		return math.Abs(x[0] - math.Cos(1.0))
	}

	coarse := errAt(0.01)
	fine := errAt(0.001)
	if fine >= coarse {
		t.Errorf("euler error did not shrink: %.2e -> %.2e", coarse, fine)
	}
}
