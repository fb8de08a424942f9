package metrics

import "github.com/san-kum/armdyn/internal/sim"

// ControlEffort integrates the squared control signal over time with
// the trapezoid rule. Lower is better for the same task.
type ControlEffort struct {
	effort  float64
	prev    float64
	prevT   float64
	samples int
}

func NewControlEffort() *ControlEffort { return &ControlEffort{} }

func (c *ControlEffort) Name() string { return "control_effort" }

func (c *ControlEffort) Observe(x sim.State, u sim.Control, t float64) {
	cur := 0.0
	for _, v := range u {
		cur += v * v
	}
	if c.samples > 0 && t > c.prevT {
		c.effort += 0.5 * (c.prev + cur) * (t - c.prevT)
	}
	c.prev = cur
	c.prevT = t
	c.samples++
}

func (c *ControlEffort) Value() float64 { return c.effort }

func (c *ControlEffort) Reset() {
	c.effort = 0
	c.prev = 0
	c.prevT = 0
	c.samples = 0
}

// MaxAbsState records the largest absolute state component seen, a
// cheap blow-up detector for parameter sweeps.
type MaxAbsState struct {
	max float64
}

func NewMaxAbsState() *MaxAbsState { return &MaxAbsState{} }

func (m *MaxAbsState) Name() string { return "max_abs_state" }

func (m *MaxAbsState) Observe(x sim.State, u sim.Control, t float64) {
	for _, v := range x {
		if v < 0 {
			v = -v
		}
		if v > m.max {
			m.max = v
		}
	}
}

func (m *MaxAbsState) Value() float64 { return m.max }

func (m *MaxAbsState) Reset() { m.max = 0 }
