package integrators

import "github.com/san-kum/armdyn/internal/sim"

// RK45 is the Cash-Karp embedded Runge-Kutta pair. Step returns the
// fifth-order solution; the embedded fourth-order estimate is kept for
// the error norm reported by LastError.
type RK45 struct {
	k       [6]sim.State
	scratch sim.State
	lastErr float64
}

func NewRK45() *RK45 { return &RK45{} }

var (
	ckA = [6]float64{0, 1.0 / 5, 3.0 / 10, 3.0 / 5, 1, 7.0 / 8}
	ckB = [6][5]float64{
		{},
		{1.0 / 5},
		{3.0 / 40, 9.0 / 40},
		{3.0 / 10, -9.0 / 10, 6.0 / 5},
		{-11.0 / 54, 5.0 / 2, -70.0 / 27, 35.0 / 27},
		{1631.0 / 55296, 175.0 / 512, 575.0 / 13824, 44275.0 / 110592, 253.0 / 4096},
	}
	ckC5 = [6]float64{37.0 / 378, 0, 250.0 / 621, 125.0 / 594, 0, 512.0 / 1771}
	ckC4 = [6]float64{2825.0 / 27648, 0, 18575.0 / 48384, 13525.0 / 55296, 277.0 / 14336, 1.0 / 4}
)

func (r *RK45) ensureScratch(n int) {
	if len(r.scratch) != n {
		for i := range r.k {
			r.k[i] = make(sim.State, n)
		}
		r.scratch = make(sim.State, n)
	}
}

func (r *RK45) Step(dyn sim.System, x sim.State, u sim.Control, t, dt float64) sim.State {
	n := len(x)
	r.ensureScratch(n)

	for s := 0; s < 6; s++ {
		for i := 0; i < n; i++ {
			acc := x[i]
			for p := 0; p < s; p++ {
				acc += dt * ckB[s][p] * r.k[p][i]
			}
			r.scratch[i] = acc
		}
		copy(r.k[s], dyn.Derive(r.scratch, u, t+ckA[s]*dt))
	}

	result := make(sim.State, n)
	errSum := 0.0
	for i := 0; i < n; i++ {
		sum5, sum4 := 0.0, 0.0
		for s := 0; s < 6; s++ {
			sum5 += ckC5[s] * r.k[s][i]
			sum4 += ckC4[s] * r.k[s][i]
		}
		result[i] = x[i] + dt*sum5
		d := dt * (sum5 - sum4)
		errSum += d * d
	}
	r.lastErr = errSum
	return result
}

// LastError returns the squared embedded error estimate of the most
// recent step.
func (r *RK45) LastError() float64 { return r.lastErr }
