package spatial

// Twist is a 6-D spatial velocity or acceleration: linear part Vel and
// angular part Rot, at an implicit reference point and frame.
type Twist struct {
	Vel Vec
	Rot Vec
}

func (t Twist) Add(o Twist) Twist {
	return Twist{Vel: t.Vel.Add(o.Vel), Rot: t.Rot.Add(o.Rot)}
}

func (t Twist) Sub(o Twist) Twist {
	return Twist{Vel: t.Vel.Sub(o.Vel), Rot: t.Rot.Sub(o.Rot)}
}

func (t Twist) Scale(s float64) Twist {
	return Twist{Vel: t.Vel.Scale(s), Rot: t.Rot.Scale(s)}
}

// RefPoint moves the reference point by p (expressed in the twist's frame).
func (t Twist) RefPoint(p Vec) Twist {
	return Twist{Vel: t.Vel.Add(t.Rot.Cross(p)), Rot: t.Rot}
}

// Cross is the motion-space spatial cross product t x o.
func (t Twist) Cross(o Twist) Twist {
	return Twist{
		Vel: t.Rot.Cross(o.Vel).Add(t.Vel.Cross(o.Rot)),
		Rot: t.Rot.Cross(o.Rot),
	}
}

// CrossWrench is the force-space (dual) spatial cross product t x* w.
func (t Twist) CrossWrench(w Wrench) Wrench {
	return Wrench{
		Force:  t.Rot.Cross(w.Force),
		Torque: t.Rot.Cross(w.Torque).Add(t.Vel.Cross(w.Force)),
	}
}

// Dot is the power pairing of a twist and a wrench.
func Dot(t Twist, w Wrench) float64 {
	return t.Vel.Dot(w.Force) + t.Rot.Dot(w.Torque)
}
