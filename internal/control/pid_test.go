package control

import (
	"testing"

	"github.com/san-kum/armdyn/internal/sim"
)

func TestPIDPushesTowardTarget(t *testing.T) {
	p := NewPID(10, 0, 1, []float64{1.0, -1.0})

	// both joints at zero, at rest: torque signs must point at the targets
	u := p.Compute(sim.State{0, 0, 0, 0}, 0)
	if u[0] <= 0 {
		t.Errorf("joint 0: torque %.3f, want positive", u[0])
	}
	if u[1] >= 0 {
		t.Errorf("joint 1: torque %.3f, want negative", u[1])
	}
}

func TestPIDDampsVelocity(t *testing.T) {
	p := NewPID(0, 0, 2, []float64{0})

	u := p.Compute(sim.State{0, 3.0}, 0)
	if u[0] != -6.0 {
		t.Errorf("damping torque %.3f, want -6.0", u[0])
	}
}

func TestPIDIntegralAccumulates(t *testing.T) {
	p := NewPID(0, 1, 0, []float64{1.0})

	u0 := p.Compute(sim.State{0, 0}, 0)
	if u0[0] != 0 {
		t.Errorf("first call should have no integral, got %.3f", u0[0])
	}
	u1 := p.Compute(sim.State{0, 0}, 0.5)
	if u1[0] <= 0 {
		t.Errorf("integral term should push positive, got %.3f", u1[0])
	}

	p.Reset()
	u2 := p.Compute(sim.State{0, 0}, 1.0)
	if u2[0] != 0 {
		t.Errorf("reset did not clear integral, got %.3f", u2[0])
	}
}

func TestNoneIsZero(t *testing.T) {
	n := NewNone(3)
	u := n.Compute(sim.State{1, 2, 3, 4, 5, 6}, 0)
	if len(u) != 3 {
		t.Fatalf("control dim %d, want 3", len(u))
	}
	for j, v := range u {
		if v != 0 {
			t.Errorf("u[%d] = %.3f, want 0", j, v)
		}
	}
}
