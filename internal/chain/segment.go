package chain

import (
	"github.com/san-kum/armdyn/internal/spatial"
)

// Segment is one link of a chain: a joint at the segment root followed by
// a fixed transform to the tip, where the next segment attaches. Inertia
// is the rigid-body inertia of the link expressed in the tip frame.
type Segment struct {
	Name    string
	Joint   Joint
	Tip     spatial.Frame
	Inertia spatial.RigidBodyInertia
}

func NewSegment(name string, j Joint, tip spatial.Frame, inertia spatial.RigidBodyInertia) Segment {
	return Segment{Name: name, Joint: j, Tip: tip, Inertia: inertia}
}

// Pose returns the tip frame at joint value q, expressed in the segment
// root frame.
func (s Segment) Pose(q float64) spatial.Frame {
	return s.Joint.Pose(q).Mul(s.Tip)
}

// Twist returns the tip velocity caused by the joint moving at rate qdot,
// with reference point at the tip, expressed in the segment root frame.
func (s Segment) Twist(q, qdot float64) spatial.Twist {
	return s.Joint.Twist(qdot).RefPoint(s.Pose(q).P)
}
