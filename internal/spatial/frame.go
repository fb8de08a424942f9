package spatial

// Frame is a rigid transform: the pose of a child frame expressed in its
// parent frame (rotation M, origin P).
type Frame struct {
	M Rotation
	P Vec
}

func FrameIdentity() Frame { return Frame{M: RotationIdentity()} }

// FrameTrans returns a pure translation.
func FrameTrans(p Vec) Frame { return Frame{M: RotationIdentity(), P: p} }

// Mul composes two transforms: (f.Mul(g)).Apply(v) == f.Apply(g.Apply(v)).
func (f Frame) Mul(g Frame) Frame {
	return Frame{M: f.M.Mul(g.M), P: f.M.Apply(g.P).Add(f.P)}
}

func (f Frame) Inverse() Frame {
	ri := f.M.Inverse()
	return Frame{M: ri, P: ri.Apply(f.P).Neg()}
}

// Apply transforms a point from the child frame into the parent frame.
func (f Frame) Apply(v Vec) Vec { return f.M.Apply(v).Add(f.P) }

// MulTwist expresses a child-frame twist in the parent frame, moving the
// reference point to the parent origin.
func (f Frame) MulTwist(t Twist) Twist {
	rot := f.M.Apply(t.Rot)
	return Twist{
		Vel: f.M.Apply(t.Vel).Add(f.P.Cross(rot)),
		Rot: rot,
	}
}

// InvTwist expresses a parent-frame twist in the child frame, moving the
// reference point to the child origin.
func (f Frame) InvTwist(t Twist) Twist {
	return Twist{
		Vel: f.M.ApplyInverse(t.Vel.Sub(f.P.Cross(t.Rot))),
		Rot: f.M.ApplyInverse(t.Rot),
	}
}

// MulWrench expresses a child-frame wrench in the parent frame, moving the
// reference point to the parent origin.
func (f Frame) MulWrench(w Wrench) Wrench {
	force := f.M.Apply(w.Force)
	return Wrench{
		Force:  force,
		Torque: f.M.Apply(w.Torque).Add(f.P.Cross(force)),
	}
}

// InvWrench expresses a parent-frame wrench in the child frame, moving the
// reference point to the child origin.
func (f Frame) InvWrench(w Wrench) Wrench {
	return Wrench{
		Force:  f.M.ApplyInverse(w.Force),
		Torque: f.M.ApplyInverse(w.Torque.Sub(f.P.Cross(w.Force))),
	}
}
