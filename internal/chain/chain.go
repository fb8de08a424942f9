package chain

// Chain is an ordered serial chain of segments, base to tip.
type Chain struct {
	segments []Segment
	nj       int
}

func New() *Chain { return &Chain{} }

// Add appends a segment at the tip.
func (c *Chain) Add(s Segment) {
	c.segments = append(c.segments, s)
	if s.Joint.IsMovable() {
		c.nj++
	}
}

// NumSegments returns ns, the number of segments.
func (c *Chain) NumSegments() int { return len(c.segments) }

// NumJoints returns nj, the number of movable joints (nj <= ns).
func (c *Chain) NumJoints() int { return c.nj }

// Segment returns the i-th segment, 0 = attached to the base.
func (c *Chain) Segment(i int) Segment { return c.segments[i] }
