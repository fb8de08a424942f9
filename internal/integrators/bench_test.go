package integrators

import (
	"testing"

	"github.com/san-kum/armdyn/internal/sim"
)

func benchmarkIntegrator(b *testing.B, integ sim.Integrator) {
	dyn := &oscillator{}
	x := sim.State{1.0, 0.0}
	u := sim.Control{}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integ.Step(dyn, x, u, 0, 0.01)
	}
	_ = x
}

func BenchmarkEuler(b *testing.B) { benchmarkIntegrator(b, NewEuler()) }
func BenchmarkRK4(b *testing.B)   { benchmarkIntegrator(b, NewRK4()) }
func BenchmarkRK45(b *testing.B)  { benchmarkIntegrator(b, NewRK45()) }
