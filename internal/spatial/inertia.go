package spatial

// RigidBodyInertia is the spatial inertia of a single rigid body about a
// reference frame. It stores the mass, the first mass moment H = m*cog and
// the rotational inertia about the reference frame origin.
type RigidBodyInertia struct {
	Mass float64
	H    Vec
	I    Mat3
}

// NewRigidBodyInertia builds the inertia of a body with the given mass,
// center of gravity and rotational inertia about the cog, all expressed in
// the reference frame. The rotational inertia is shifted to the frame
// origin with the parallel-axis theorem.
func NewRigidBodyInertia(mass float64, cog Vec, ic Mat3) RigidBodyInertia {
	shift := Mat3Identity().Scale(cog.Dot(cog)).Sub(Outer(cog, cog)).Scale(mass)
	return RigidBodyInertia{
		Mass: mass,
		H:    cog.Scale(mass),
		I:    ic.Add(shift),
	}
}

// PointMass is the inertia of a point mass at p in the reference frame.
func PointMass(mass float64, p Vec) RigidBodyInertia {
	return NewRigidBodyInertia(mass, p, Mat3{})
}

// COG returns the center of gravity in the reference frame.
func (r RigidBodyInertia) COG() Vec {
	if r.Mass == 0 {
		return Vec{}
	}
	return r.H.Scale(1 / r.Mass)
}

// Apply maps a twist to the momentum-rate wrench: F = m*v - H x w,
// T = I*w + H x v.
func (r RigidBodyInertia) Apply(t Twist) Wrench {
	return Wrench{
		Force:  t.Vel.Scale(r.Mass).Sub(r.H.Cross(t.Rot)),
		Torque: r.I.MulVec(t.Rot).Add(r.H.Cross(t.Vel)),
	}
}

// Articulated converts to the general 6x6 operator form.
func (r RigidBodyInertia) Articulated() ArticulatedBodyInertia {
	return ArticulatedBodyInertia{
		M: Mat3Identity().Scale(r.Mass),
		H: CrossMat(r.H),
		I: r.I,
	}
}

// ArticulatedBodyInertia is a 6x6 inertia operator in block form,
//
//	[ M  H^T ]
//	[ H   I  ]
//
// mapping twists [vel; rot] to wrenches [force; torque]. Unlike a rigid-body
// inertia it is closed under the projections of the articulated-body
// recursion, where it becomes rank deficient along freed joint axes.
type ArticulatedBodyInertia struct {
	M, H, I Mat3
}

func (a ArticulatedBodyInertia) Apply(t Twist) Wrench {
	return Wrench{
		Force:  a.M.MulVec(t.Vel).Add(a.H.Transpose().MulVec(t.Rot)),
		Torque: a.H.MulVec(t.Vel).Add(a.I.MulVec(t.Rot)),
	}
}

func (a ArticulatedBodyInertia) Add(b ArticulatedBodyInertia) ArticulatedBodyInertia {
	return ArticulatedBodyInertia{M: a.M.Add(b.M), H: a.H.Add(b.H), I: a.I.Add(b.I)}
}

func (a ArticulatedBodyInertia) Sub(b ArticulatedBodyInertia) ArticulatedBodyInertia {
	return ArticulatedBodyInertia{M: a.M.Sub(b.M), H: a.H.Sub(b.H), I: a.I.Sub(b.I)}
}

func (a ArticulatedBodyInertia) AddRigid(r RigidBodyInertia) ArticulatedBodyInertia {
	return a.Add(r.Articulated())
}

// WrenchDyad returns the rank-one operator w*w^T/d, the term removed from a
// child's articulated inertia by the joint motion subspace.
func WrenchDyad(w Wrench, d float64) ArticulatedBodyInertia {
	return ArticulatedBodyInertia{
		M: Outer(w.Force, w.Force).Scale(1 / d),
		H: Outer(w.Torque, w.Force).Scale(1 / d),
		I: Outer(w.Torque, w.Torque).Scale(1 / d),
	}
}

// MulInertia expresses a child-frame articulated inertia in the parent
// frame, so that f.MulInertia(a).Apply(f.MulTwist(t)) == f.MulWrench(a.Apply(t)).
func (f Frame) MulInertia(a ArticulatedBodyInertia) ArticulatedBodyInertia {
	r := Mat3(f.M)
	rt := r.Transpose()
	px := CrossMat(f.P)

	m := r.Mul(a.M).Mul(rt)
	h := r.Mul(a.H).Mul(rt)
	i := r.Mul(a.I).Mul(rt)

	hNew := h.Add(px.Mul(m))
	iNew := i.Sub(h.Mul(px)).Add(px.Mul(h.Transpose())).Sub(px.Mul(m).Mul(px))
	return ArticulatedBodyInertia{M: m, H: hNew, I: iNew}
}
