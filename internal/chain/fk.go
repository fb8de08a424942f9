package chain

import (
	"github.com/san-kum/armdyn/internal/spatial"
)

// Poses computes the tip frame of every segment in base coordinates.
// q must have length NumJoints; fixed joints consume no entry.
func (c *Chain) Poses(q []float64) []spatial.Frame {
	out := make([]spatial.Frame, c.NumSegments())
	total := spatial.FrameIdentity()
	j := 0
	for i, s := range c.segments {
		qi := 0.0
		if s.Joint.IsMovable() {
			qi = q[j]
			j++
		}
		total = total.Mul(s.Pose(qi))
		out[i] = total
	}
	return out
}

// Velocities computes each segment's twist (reference point at the segment
// tip, expressed in the tip frame), the same recursion the solvers use.
func (c *Chain) Velocities(q, qdot []float64) []spatial.Twist {
	out := make([]spatial.Twist, c.NumSegments())
	j := 0
	var parent spatial.Twist
	for i, s := range c.segments {
		var qi, qdi float64
		if s.Joint.IsMovable() {
			qi, qdi = q[j], qdot[j]
			j++
		}
		f := s.Pose(qi)
		vj := f.M.InvTwist(s.Twist(qi, qdi))
		v := f.InvTwist(parent).Add(vj)
		if i == 0 {
			v = vj
		}
		out[i] = v
		parent = v
	}
	return out
}
