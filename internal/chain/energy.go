package chain

import (
	"github.com/san-kum/armdyn/internal/spatial"
)

// MechanicalEnergy returns the kinetic plus gravitational potential energy
// of the chain at the given joint state. gravity is the gravitational
// acceleration in base coordinates (e.g. {Y: -9.81}); potential energy is
// measured from the base origin.
func (c *Chain) MechanicalEnergy(gravity spatial.Vec, q, qdot []float64) float64 {
	poses := c.Poses(q)
	twists := c.Velocities(q, qdot)

	e := 0.0
	for i := 0; i < c.NumSegments(); i++ {
		in := c.Segment(i).Inertia
		e += 0.5 * spatial.Dot(twists[i], in.Apply(twists[i]))
		cog := poses[i].Apply(in.COG())
		e -= in.Mass * gravity.Dot(cog)
	}
	return e
}
