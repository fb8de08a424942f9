package control

import "github.com/san-kum/armdyn/internal/sim"

// PID is a joint-space PID controller: the state is assumed to be
// [q; qdot], the error is Target - q per joint, and the derivative term
// acts on the measured joint velocity.
type PID struct {
	Kp, Ki, Kd float64
	Target     []float64

	integral []float64
	prevT    float64
	first    bool
}

func NewPID(kp, ki, kd float64, target []float64) *PID {
	return &PID{
		Kp:       kp,
		Ki:       ki,
		Kd:       kd,
		Target:   target,
		integral: make([]float64, len(target)),
		first:    true,
	}
}

func (p *PID) Compute(x sim.State, t float64) sim.Control {
	nj := len(p.Target)
	u := make(sim.Control, nj)
	if len(x) < 2*nj {
		return u
	}

	dt := t - p.prevT
	if p.first || dt <= 0 {
		dt = 0
	}
	p.first = false
	p.prevT = t

	for j := 0; j < nj; j++ {
		err := p.Target[j] - x[j]
		p.integral[j] += err * dt
		u[j] = p.Kp*err + p.Ki*p.integral[j] - p.Kd*x[nj+j]
	}
	return u
}

// Reset clears the integral state.
func (p *PID) Reset() {
	for j := range p.integral {
		p.integral[j] = 0
	}
	p.first = true
}
