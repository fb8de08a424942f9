package chain

import (
	"github.com/san-kum/armdyn/internal/spatial"
)

// JointType selects the motion subspace of a joint.
type JointType int

const (
	RotX JointType = iota
	RotY
	RotZ
	TransX
	TransY
	TransZ
	RotAxis
	TransAxis
	Fixed
)

func (t JointType) String() string {
	switch t {
	case RotX:
		return "rotx"
	case RotY:
		return "roty"
	case RotZ:
		return "rotz"
	case TransX:
		return "transx"
	case TransY:
		return "transy"
	case TransZ:
		return "transz"
	case RotAxis:
		return "rotaxis"
	case TransAxis:
		return "transaxis"
	case Fixed:
		return "fixed"
	}
	return "unknown"
}

// Joint is a single-degree-of-freedom joint located at the segment root.
// Axis is only used by the RotAxis and TransAxis types and is normalized
// on construction.
type Joint struct {
	Type JointType
	Axis spatial.Vec
}

func NewJoint(t JointType) Joint { return Joint{Type: t} }

func NewJointAxis(t JointType, axis spatial.Vec) Joint {
	return Joint{Type: t, Axis: axis.Normalize()}
}

func (j Joint) IsMovable() bool { return j.Type != Fixed }

// Pose returns the transform produced by the joint at value q, expressed
// in the joint root frame.
func (j Joint) Pose(q float64) spatial.Frame {
	switch j.Type {
	case RotX:
		return spatial.Frame{M: spatial.RotX(q)}
	case RotY:
		return spatial.Frame{M: spatial.RotY(q)}
	case RotZ:
		return spatial.Frame{M: spatial.RotZ(q)}
	case TransX:
		return spatial.FrameTrans(spatial.Vec{X: q})
	case TransY:
		return spatial.FrameTrans(spatial.Vec{Y: q})
	case TransZ:
		return spatial.FrameTrans(spatial.Vec{Z: q})
	case RotAxis:
		return spatial.Frame{M: spatial.RotAxisAngle(j.Axis, q)}
	case TransAxis:
		return spatial.FrameTrans(j.Axis.Scale(q))
	}
	return spatial.FrameIdentity()
}

// Twist returns the joint twist at rate qdot, at the joint origin in the
// joint root frame.
func (j Joint) Twist(qdot float64) spatial.Twist {
	switch j.Type {
	case RotX:
		return spatial.Twist{Rot: spatial.Vec{X: qdot}}
	case RotY:
		return spatial.Twist{Rot: spatial.Vec{Y: qdot}}
	case RotZ:
		return spatial.Twist{Rot: spatial.Vec{Z: qdot}}
	case TransX:
		return spatial.Twist{Vel: spatial.Vec{X: qdot}}
	case TransY:
		return spatial.Twist{Vel: spatial.Vec{Y: qdot}}
	case TransZ:
		return spatial.Twist{Vel: spatial.Vec{Z: qdot}}
	case RotAxis:
		return spatial.Twist{Rot: j.Axis.Scale(qdot)}
	case TransAxis:
		return spatial.Twist{Vel: j.Axis.Scale(qdot)}
	}
	return spatial.Twist{}
}
