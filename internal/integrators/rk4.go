package integrators

import "github.com/san-kum/armdyn/internal/sim"

// RK4 is the classic fourth-order Runge-Kutta method with fixed steps.
type RK4 struct {
	k       [4]sim.State
	scratch sim.State
}

func NewRK4() *RK4 { return &RK4{} }

var (
	rk4A = [4]float64{0, 1.0 / 2, 1.0 / 2, 1}
	rk4B = [4][3]float64{
		{},
		{1.0 / 2},
		{0, 1.0 / 2},
		{0, 0, 1},
	}
	rk4C = [4]float64{1.0 / 6, 1.0 / 3, 1.0 / 3, 1.0 / 6}
)

func (r *RK4) ensureScratch(n int) {
	if len(r.scratch) != n {
		for i := range r.k {
			r.k[i] = make(sim.State, n)
		}
		r.scratch = make(sim.State, n)
	}
}

func (r *RK4) Step(dyn sim.System, x sim.State, u sim.Control, t, dt float64) sim.State {
	n := len(x)
	r.ensureScratch(n)

	for s := 0; s < 4; s++ {
		for i := 0; i < n; i++ {
			acc := x[i]
			for p := 0; p < s; p++ {
				acc += dt * rk4B[s][p] * r.k[p][i]
			}
			r.scratch[i] = acc
		}
		copy(r.k[s], dyn.Derive(r.scratch, u, t+rk4A[s]*dt))
	}

	result := make(sim.State, n)
	for i := 0; i < n; i++ {
		sum := 0.0
		for s := 0; s < 4; s++ {
			sum += rk4C[s] * r.k[s][i]
		}
		result[i] = x[i] + dt*sum
	}
	return result
}
