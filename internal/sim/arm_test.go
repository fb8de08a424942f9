package sim_test

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/armdyn/internal/chain"
	"github.com/san-kum/armdyn/internal/dynamics"
	"github.com/san-kum/armdyn/internal/integrators"
	"github.com/san-kum/armdyn/internal/sim"
	"github.com/san-kum/armdyn/internal/spatial"
)

var gravity = spatial.Vec{Y: -9.81}

func pendulumArm(nc int) *sim.Arm {
	ch := chain.New()
	ch.Add(chain.Segment{
		Name:    "link",
		Joint:   chain.NewJoint(chain.RotZ),
		Tip:     spatial.FrameTrans(spatial.Vec{X: 1}),
		Inertia: spatial.PointMass(1.0, spatial.Vec{}),
	})
	solver := dynamics.NewVereshchagin(ch, spatial.Twist{Vel: gravity.Neg()}, nc)
	return sim.NewArm(ch, solver, gravity)
}

func TestArmDeriveMatchesPendulum(t *testing.T) {
	arm := pendulumArm(0)

	// at q=0 the link is horizontal: qdd = -g/L * cos(q) = -9.81
	dx := arm.Derive(sim.State{0, 0}, sim.Control{0}, 0)
	if arm.LastCode() != dynamics.CodeOK {
		t.Fatalf("solver code %v", arm.LastCode())
	}
	if math.Abs(dx[1]+9.81) > 1e-9 {
		t.Errorf("qdd %.6f, want -9.81", dx[1])
	}
	// velocity half of the derivative is qdot
	dx = arm.Derive(sim.State{0.3, 1.5}, sim.Control{0}, 0)
	if dx[0] != 1.5 {
		t.Errorf("dq %.3f, want 1.5", dx[0])
	}
}

func TestArmEnergyConservedUnderRK4(t *testing.T) {
	arm := pendulumArm(0)
	s := sim.New(arm, integrators.NewRK4(), noTorque{dim: 1})

	x0 := sim.State{0.5, 0}
	res, err := s.Run(context.Background(), x0, sim.Config{Dt: 0.001, Duration: 5.0, ValidateState: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.EnergyDrift > 1e-6 {
		t.Errorf("relative energy drift %.2e, want < 1e-6", res.EnergyDrift)
	}
}

func TestArmHoldsConstraint(t *testing.T) {
	arm := pendulumArm(1)

	// forbid vertical end-effector acceleration
	arm.SetConstraints([]spatial.Wrench{{Force: spatial.Vec{Y: 1}}}, []float64{0})

	dx := arm.Derive(sim.State{0, 0}, sim.Control{0}, 0)
	if arm.LastCode() != dynamics.CodeOK {
		t.Fatalf("solver code %v", arm.LastCode())
	}
	// gravity is exactly canceled by the constraint force
	if math.Abs(dx[1]) > 1e-9 {
		t.Errorf("qdd %.6f under constraint, want 0", dx[1])
	}
}

func TestArmExternalWrenchChangesMotion(t *testing.T) {
	arm := pendulumArm(0)

	free := arm.Derive(sim.State{0, 0}, sim.Control{0}, 0)

	// push the tip upward against gravity
	arm.SetExternalWrench(0, spatial.Wrench{Force: spatial.Vec{Y: 9.81}})
	pushed := arm.Derive(sim.State{0, 0}, sim.Control{0}, 0)

	if pushed[1] <= free[1] {
		t.Errorf("upward tip force should raise qdd: %.4f vs %.4f", pushed[1], free[1])
	}
	if math.Abs(pushed[1]) > 1e-9 {
		t.Errorf("force m*g at the tip should exactly cancel gravity, qdd = %.6f", pushed[1])
	}
}

type noTorque struct{ dim int }

func (n noTorque) Compute(x sim.State, t float64) sim.Control { return make(sim.Control, n.dim) }
