package spatial

// Wrench is a 6-D spatial force: linear part Force and moment Torque, at an
// implicit reference point and frame.
type Wrench struct {
	Force  Vec
	Torque Vec
}

func (w Wrench) Add(o Wrench) Wrench {
	return Wrench{Force: w.Force.Add(o.Force), Torque: w.Torque.Add(o.Torque)}
}

func (w Wrench) Sub(o Wrench) Wrench {
	return Wrench{Force: w.Force.Sub(o.Force), Torque: w.Torque.Sub(o.Torque)}
}

func (w Wrench) Scale(s float64) Wrench {
	return Wrench{Force: w.Force.Scale(s), Torque: w.Torque.Scale(s)}
}

// RefPoint moves the reference point by p (expressed in the wrench's frame).
func (w Wrench) RefPoint(p Vec) Wrench {
	return Wrench{Force: w.Force, Torque: w.Torque.Add(w.Force.Cross(p))}
}
