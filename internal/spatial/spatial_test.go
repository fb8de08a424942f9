package spatial

import (
	"math"
	"testing"
)

func vecClose(t *testing.T, got, want Vec, tol float64, msg string) {
	t.Helper()
	if math.Abs(got.X-want.X) > tol || math.Abs(got.Y-want.Y) > tol || math.Abs(got.Z-want.Z) > tol {
		t.Errorf("%s: got %+v, want %+v", msg, got, want)
	}
}

func TestRotationOrthonormal(t *testing.T) {
	r := RotZ(0.7).Mul(RotX(-1.2)).Mul(RotY(2.9))
	id := Mat3(r).Mul(Mat3(r.Inverse()))
	want := Mat3Identity()
	for i := range id {
		if math.Abs(id[i]-want[i]) > 1e-12 {
			t.Fatalf("R*R^T not identity at %d: %f", i, id[i])
		}
	}
}

func TestRotAxisAngleMatchesElementary(t *testing.T) {
	a := RotAxisAngle(Vec{Z: 1}, 0.5)
	b := RotZ(0.5)
	for i := range a {
		if math.Abs(a[i]-b[i]) > 1e-12 {
			t.Fatalf("axis-angle about z differs at %d", i)
		}
	}
}

func TestFrameInverseRoundTrip(t *testing.T) {
	f := Frame{M: RotY(0.4).Mul(RotZ(1.1)), P: Vec{1, -2, 0.5}}
	p := Vec{0.3, 0.7, -1.1}
	vecClose(t, f.Inverse().Apply(f.Apply(p)), p, 1e-12, "point round trip")

	tw := Twist{Vel: Vec{1, 2, 3}, Rot: Vec{-1, 0.5, 0.25}}
	back := f.InvTwist(f.MulTwist(tw))
	vecClose(t, back.Vel, tw.Vel, 1e-12, "twist vel round trip")
	vecClose(t, back.Rot, tw.Rot, 1e-12, "twist rot round trip")

	w := Wrench{Force: Vec{0.5, -1, 2}, Torque: Vec{3, 0, -0.5}}
	wb := f.InvWrench(f.MulWrench(w))
	vecClose(t, wb.Force, w.Force, 1e-12, "wrench force round trip")
	vecClose(t, wb.Torque, w.Torque, 1e-12, "wrench torque round trip")
}

func TestDotInvariantUnderFrameChange(t *testing.T) {
	// The power pairing of a twist and a wrench does not depend on the
	// frame they are expressed in.
	f := Frame{M: RotX(0.9).Mul(RotY(-0.3)), P: Vec{0.2, 1.5, -0.7}}
	tw := Twist{Vel: Vec{1, 0, -2}, Rot: Vec{0.5, 0.5, 1}}
	w := Wrench{Force: Vec{-1, 2, 0.1}, Torque: Vec{0, 1, -1}}

	before := Dot(tw, w)
	after := Dot(f.MulTwist(tw), f.MulWrench(w))
	if math.Abs(before-after) > 1e-12 {
		t.Fatalf("power not invariant: %f vs %f", before, after)
	}
}

func TestRigidBodyInertiaPointMass(t *testing.T) {
	// A point mass rotating about z at distance L: momentum-rate wrench
	// must match m*a for the linear part.
	m, l := 2.0, 1.5
	rb := PointMass(m, Vec{X: l})
	tw := Twist{Rot: Vec{Z: 3}} // pure rotation about origin
	w := rb.Apply(tw)
	// F = -H x w = -(m*l x_hat) x (3 z_hat) = 3*m*l y_hat
	vecClose(t, w.Force, Vec{Y: 3 * m * l}, 1e-12, "force")
	// T = H x v = 0 here, I about origin gives m*l^2 about z... I*w:
	vecClose(t, w.Torque, Vec{Z: m * l * l * 3}, 1e-12, "torque")
}

func TestArticulatedInertiaFrameTransform(t *testing.T) {
	// f.MulInertia(a).Apply(f.MulTwist(t)) == f.MulWrench(a.Apply(t))
	rb := NewRigidBodyInertia(1.7, Vec{0.1, -0.2, 0.3}, Mat3Diag(0.2, 0.3, 0.4))
	a := rb.Articulated()
	f := Frame{M: RotZ(1.3).Mul(RotX(0.2)), P: Vec{-0.4, 0.9, 1.2}}
	tw := Twist{Vel: Vec{0.3, -1, 0.8}, Rot: Vec{1.1, 0.2, -0.6}}

	lhs := f.MulInertia(a).Apply(f.MulTwist(tw))
	rhs := f.MulWrench(a.Apply(tw))
	vecClose(t, lhs.Force, rhs.Force, 1e-10, "force")
	vecClose(t, lhs.Torque, rhs.Torque, 1e-10, "torque")
}

func TestWrenchDyad(t *testing.T) {
	w := Wrench{Force: Vec{1, 2, 3}, Torque: Vec{-1, 0.5, 2}}
	d := 4.0
	tw := Twist{Vel: Vec{0.2, -0.3, 1}, Rot: Vec{1, 1, -2}}

	got := WrenchDyad(w, d).Apply(tw)
	want := w.Scale(Dot(tw, w) / d)
	vecClose(t, got.Force, want.Force, 1e-12, "force")
	vecClose(t, got.Torque, want.Torque, 1e-12, "torque")
}

func TestTwistRefPoint(t *testing.T) {
	// Velocity of a point on a rigid body: v(p) = v(0) + w x p.
	tw := Twist{Vel: Vec{1, 0, 0}, Rot: Vec{Z: 2}}
	moved := tw.RefPoint(Vec{X: 1})
	vecClose(t, moved.Vel, Vec{1, 2, 0}, 1e-12, "vel")
	vecClose(t, moved.Rot, tw.Rot, 1e-12, "rot")
}
