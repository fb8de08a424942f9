package spatial

import "math"

// Vec is a 3-D vector.
type Vec struct {
	X, Y, Z float64
}

func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

func (v Vec) Scale(s float64) Vec { return Vec{v.X * s, v.Y * s, v.Z * s} }

func (v Vec) Neg() Vec { return Vec{-v.X, -v.Y, -v.Z} }

func (v Vec) Dot(o Vec) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

func (v Vec) Cross(o Vec) Vec {
	return Vec{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec) Norm() float64 { return math.Sqrt(v.Dot(v)) }

// Normalize returns the unit vector along v, or the zero vector when v is
// shorter than eps.
func (v Vec) Normalize() Vec {
	n := v.Norm()
	if n < 1e-15 {
		return Vec{}
	}
	return v.Scale(1 / n)
}
