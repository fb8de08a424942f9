package spatial

// Mat3 is a 3x3 matrix in row-major order.
type Mat3 [9]float64

func Mat3Identity() Mat3 {
	return Mat3{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

// Mat3Diag returns the diagonal matrix diag(x, y, z).
func Mat3Diag(x, y, z float64) Mat3 {
	return Mat3{x, 0, 0, 0, y, 0, 0, 0, z}
}

// CrossMat returns the skew-symmetric matrix [v x] such that
// CrossMat(v).MulVec(w) == v.Cross(w).
func CrossMat(v Vec) Mat3 {
	return Mat3{
		0, -v.Z, v.Y,
		v.Z, 0, -v.X,
		-v.Y, v.X, 0,
	}
}

// Outer returns the outer product a*b^T.
func Outer(a, b Vec) Mat3 {
	return Mat3{
		a.X * b.X, a.X * b.Y, a.X * b.Z,
		a.Y * b.X, a.Y * b.Y, a.Y * b.Z,
		a.Z * b.X, a.Z * b.Y, a.Z * b.Z,
	}
}

func (m Mat3) Add(o Mat3) Mat3 {
	var r Mat3
	for i := range m {
		r[i] = m[i] + o[i]
	}
	return r
}

func (m Mat3) Sub(o Mat3) Mat3 {
	var r Mat3
	for i := range m {
		r[i] = m[i] - o[i]
	}
	return r
}

func (m Mat3) Scale(s float64) Mat3 {
	var r Mat3
	for i := range m {
		r[i] = m[i] * s
	}
	return r
}

func (m Mat3) Transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

func (m Mat3) Mul(o Mat3) Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			s := 0.0
			for k := 0; k < 3; k++ {
				s += m[3*i+k] * o[3*k+j]
			}
			r[3*i+j] = s
		}
	}
	return r
}

func (m Mat3) MulVec(v Vec) Vec {
	return Vec{
		m[0]*v.X + m[1]*v.Y + m[2]*v.Z,
		m[3]*v.X + m[4]*v.Y + m[5]*v.Z,
		m[6]*v.X + m[7]*v.Y + m[8]*v.Z,
	}
}
