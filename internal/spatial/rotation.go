package spatial

import "math"

// Rotation is a 3x3 rotation matrix mapping vectors from the child frame
// into the parent frame.
type Rotation Mat3

func RotationIdentity() Rotation { return Rotation(Mat3Identity()) }

func RotX(angle float64) Rotation {
	c, s := math.Cos(angle), math.Sin(angle)
	return Rotation{
		1, 0, 0,
		0, c, -s,
		0, s, c,
	}
}

func RotY(angle float64) Rotation {
	c, s := math.Cos(angle), math.Sin(angle)
	return Rotation{
		c, 0, s,
		0, 1, 0,
		-s, 0, c,
	}
}

func RotZ(angle float64) Rotation {
	c, s := math.Cos(angle), math.Sin(angle)
	return Rotation{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	}
}

// RotRPY builds a rotation from fixed-axis roll, pitch, yaw angles,
// applied as RotZ(yaw) * RotY(pitch) * RotX(roll).
func RotRPY(roll, pitch, yaw float64) Rotation {
	return RotZ(yaw).Mul(RotY(pitch)).Mul(RotX(roll))
}

// RotAxisAngle returns the rotation about the (normalized) axis by angle,
// using the Rodrigues formula.
func RotAxisAngle(axis Vec, angle float64) Rotation {
	a := axis.Normalize()
	c, s := math.Cos(angle), math.Sin(angle)
	k := CrossMat(a)
	m := Mat3Identity().Add(k.Scale(s)).Add(k.Mul(k).Scale(1 - c))
	return Rotation(m)
}

func (r Rotation) Mul(o Rotation) Rotation {
	return Rotation(Mat3(r).Mul(Mat3(o)))
}

// Inverse returns the transpose, which is the inverse for rotations.
func (r Rotation) Inverse() Rotation {
	return Rotation(Mat3(r).Transpose())
}

// Apply rotates v from the child frame into the parent frame.
func (r Rotation) Apply(v Vec) Vec { return Mat3(r).MulVec(v) }

// ApplyInverse rotates v from the parent frame into the child frame.
func (r Rotation) ApplyInverse(v Vec) Vec {
	return Mat3(r).Transpose().MulVec(v)
}

// MulTwist rotates both parts of a twist; the reference point is unchanged.
func (r Rotation) MulTwist(t Twist) Twist {
	return Twist{Vel: r.Apply(t.Vel), Rot: r.Apply(t.Rot)}
}

// InvTwist rotates both parts of a twist into the child frame.
func (r Rotation) InvTwist(t Twist) Twist {
	return Twist{Vel: r.ApplyInverse(t.Vel), Rot: r.ApplyInverse(t.Rot)}
}

// MulWrench rotates both parts of a wrench; the reference point is unchanged.
func (r Rotation) MulWrench(w Wrench) Wrench {
	return Wrench{Force: r.Apply(w.Force), Torque: r.Apply(w.Torque)}
}

// InvWrench rotates both parts of a wrench into the child frame.
func (r Rotation) InvWrench(w Wrench) Wrench {
	return Wrench{Force: r.ApplyInverse(w.Force), Torque: r.ApplyInverse(w.Torque)}
}
