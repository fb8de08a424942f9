package dynamics

import (
	"testing"

	"github.com/san-kum/armdyn/internal/chain"
	"github.com/san-kum/armdyn/internal/spatial"
)

func testChain() *chain.Chain {
	c := chain.New()
	c.Add(chain.NewSegment("link1", chain.NewJoint(chain.RotZ),
		spatial.FrameTrans(spatial.Vec{X: 1}), spatial.PointMass(1, spatial.Vec{})))
	c.Add(chain.NewSegment("link2", chain.NewJoint(chain.RotZ),
		spatial.FrameTrans(spatial.Vec{X: 1}), spatial.PointMass(1, spatial.Vec{})))
	return c
}

func TestCartToJntSizeMismatch(t *testing.T) {
	solver := NewVereshchagin(testChain(), spatial.Twist{}, 1)
	alfa := []spatial.Wrench{{Force: spatial.Vec{X: 1}}}
	fext := make([]spatial.Wrench, 2)

	good := func() ([]float64, []float64, []float64, []spatial.Wrench, []float64, []spatial.Wrench, []float64) {
		return []float64{0.1, 0.2}, []float64{0, 0}, []float64{7, 7},
			alfa, []float64{0.5}, fext, []float64{7, 7}
	}

	cases := []struct {
		name string
		want Code
		call func() Code
	}{
		{"q short", CodeSizeQ, func() Code {
			_, qd, qdd, a, b, f, tor := good()
			return solver.CartToJnt([]float64{0.1}, qd, qdd, a, b, f, tor)
		}},
		{"qdot long", CodeSizeQDot, func() Code {
			q, _, qdd, a, b, f, tor := good()
			return solver.CartToJnt(q, []float64{0, 0, 0}, qdd, a, b, f, tor)
		}},
		{"qdotdot short", CodeSizeQDotDot, func() Code {
			q, qd, _, a, b, f, tor := good()
			return solver.CartToJnt(q, qd, []float64{7}, a, b, f, tor)
		}},
		{"torques short", CodeSizeTorques, func() Code {
			q, qd, qdd, a, b, f, _ := good()
			return solver.CartToJnt(q, qd, qdd, a, b, f, []float64{7})
		}},
		{"wrenches short", CodeSizeWrenches, func() Code {
			q, qd, qdd, a, b, _, tor := good()
			return solver.CartToJnt(q, qd, qdd, a, b, make([]spatial.Wrench, 1), tor)
		}},
		{"jacobian empty", CodeSizeJacobian, func() Code {
			q, qd, qdd, _, b, f, tor := good()
			return solver.CartToJnt(q, qd, qdd, nil, b, f, tor)
		}},
		{"beta long", CodeSizeBeta, func() Code {
			q, qd, qdd, a, _, f, tor := good()
			return solver.CartToJnt(q, qd, qdd, a, []float64{0.5, 0.5}, f, tor)
		}},
	}

	for _, tc := range cases {
		if code := tc.call(); code != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, code, tc.want)
		}
		if solver.LastError() != tc.want {
			t.Errorf("%s: LastError %v, want %v", tc.name, solver.LastError(), tc.want)
		}
	}
}

func TestCartToJntFailureLeavesOutputsUntouched(t *testing.T) {
	solver := NewVereshchagin(testChain(), spatial.Twist{}, 1)
	qdd := []float64{7, 7}
	torques := []float64{8, 8}

	code := solver.CartToJnt([]float64{0.1}, []float64{0, 0}, qdd,
		[]spatial.Wrench{{Force: spatial.Vec{X: 1}}}, []float64{0.5},
		make([]spatial.Wrench, 2), torques)
	if code != CodeSizeQ {
		t.Fatalf("got %v, want %v", code, CodeSizeQ)
	}
	if qdd[0] != 7 || qdd[1] != 7 {
		t.Errorf("qdotdot mutated on failure: %v", qdd)
	}
	if torques[0] != 8 || torques[1] != 8 {
		t.Errorf("torques mutated on failure: %v", torques)
	}
}

func TestCartToJntEmptyChain(t *testing.T) {
	solver := NewVereshchagin(chain.New(), spatial.Twist{}, 0)
	if code := solver.CartToJnt(nil, nil, nil, nil, nil, nil, nil); code != CodeOK {
		t.Fatalf("empty chain solve: got %v, want %v", code, CodeOK)
	}
	out := make([]spatial.Twist, 1)
	if code := solver.TransformedLinkAccelerations(out); code != CodeOK {
		t.Fatalf("empty chain link accelerations: got %v, want %v", code, CodeOK)
	}

	fd := NewForwardDynamics(chain.New(), spatial.Twist{})
	if code := fd.CartToJnt(nil, nil, nil, nil, nil); code != CodeOK {
		t.Fatalf("empty chain forward solve: got %v, want %v", code, CodeOK)
	}
}

func TestTransformedLinkAccelerationsSize(t *testing.T) {
	solver := NewVereshchagin(testChain(), spatial.Twist{}, 0)
	if code := solver.TransformedLinkAccelerations(make([]spatial.Twist, 2)); code != CodeSizeLinkAcc {
		t.Fatalf("got %v, want %v", code, CodeSizeLinkAcc)
	}
	if code := solver.TransformedLinkAccelerations(make([]spatial.Twist, 3)); code != CodeOK {
		t.Fatalf("got %v, want %v", code, CodeOK)
	}
}

func TestUpdateInternalDataStructuresResizes(t *testing.T) {
	ch := testChain()
	solver := NewVereshchagin(ch, spatial.Twist{}, 0)

	ch.Add(chain.NewSegment("link3", chain.NewJoint(chain.RotZ),
		spatial.FrameTrans(spatial.Vec{X: 0.5}), spatial.PointMass(0.5, spatial.Vec{})))
	solver.UpdateInternalDataStructures()

	qdd := make([]float64, 3)
	torques := make([]float64, 3)
	code := solver.CartToJnt([]float64{0.1, 0.2, 0.3}, []float64{0, 0, 0}, qdd,
		nil, nil, make([]spatial.Wrench, 3), torques)
	if code != CodeOK {
		t.Fatalf("solve after update: %v", code)
	}
}

func TestCodeString(t *testing.T) {
	if CodeOK.String() != "ok" {
		t.Errorf("CodeOK.String() = %q", CodeOK.String())
	}
	if CodeSizeBeta.String() == "unknown code" {
		t.Error("CodeSizeBeta has no message")
	}
}
