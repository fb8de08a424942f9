package viz

import (
	"math"

	"github.com/san-kum/armdyn/internal/spatial"
)

// Plane selects which world plane the arm is projected onto.
type Plane int

const (
	PlaneXY Plane = iota
	PlaneXZ
)

// Project drops a world point onto the drawing plane.
func (p Plane) Project(v spatial.Vec) (float64, float64) {
	if p == PlaneXZ {
		return v.X, v.Z
	}
	return v.X, v.Y
}

// PlaneForGravity picks the drawing plane that contains the gravity
// vector, so the arm visibly hangs.
func PlaneForGravity(g spatial.Vec) Plane {
	if g.Z != 0 && g.Y == 0 {
		return PlaneXZ
	}
	return PlaneXY
}

// DrawArm renders segment tips as a linkage: base marker, link lines,
// joint dots, and a larger marker on the end effector.
func DrawArm(v *Viewport, poses []spatial.Frame, plane Plane) {
	if len(poses) == 0 {
		return
	}
	prevX, prevY := 0.0, 0.0
	v.Marker(prevX, prevY, 1)
	for i, f := range poses {
		x, y := plane.Project(f.P)
		v.Segment(prevX, prevY, x, y)
		r := 0
		if i == len(poses)-1 {
			r = 1
		}
		v.Marker(x, y, r)
		prevX, prevY = x, y
	}
}

// Reach returns the total link length of the chain under pose, used to
// size the viewport so the arm always fits.
func Reach(poses []spatial.Frame, plane Plane) float64 {
	reach := 0.0
	prevX, prevY := 0.0, 0.0
	for _, f := range poses {
		x, y := plane.Project(f.P)
		reach += math.Hypot(x-prevX, y-prevY)
		prevX, prevY = x, y
	}
	if reach == 0 {
		return 1
	}
	return reach
}
