package sim

import (
	"github.com/san-kum/armdyn/internal/chain"
	"github.com/san-kum/armdyn/internal/dynamics"
	"github.com/san-kum/armdyn/internal/spatial"
)

// Arm adapts a chain driven by the hybrid dynamics solver to the System
// interface. State is [q; qdot] (length 2*nj), control is the applied
// joint torque vector. Constraints and external wrenches are held on the
// Arm and applied on every derivative evaluation.
type Arm struct {
	chain   *chain.Chain
	solver  *dynamics.Vereshchagin
	gravity spatial.Vec
	nj      int

	alfa []spatial.Wrench
	beta []float64
	fext []spatial.Wrench

	// scratch, reused across Derive calls
	qdd      []float64
	torques  []float64
	lastCode dynamics.Code
}

func NewArm(ch *chain.Chain, solver *dynamics.Vereshchagin, gravity spatial.Vec) *Arm {
	nj := ch.NumJoints()
	return &Arm{
		chain:   ch,
		solver:  solver,
		gravity: gravity,
		nj:      nj,
		alfa:    make([]spatial.Wrench, solver.NumConstraints()),
		beta:    make([]float64, solver.NumConstraints()),
		fext:    make([]spatial.Wrench, ch.NumSegments()),
		qdd:     make([]float64, nj),
		torques: make([]float64, nj),
	}
}

// SetConstraints replaces the task-space constraint directions and
// targets. Lengths must match the solver's constraint count.
func (a *Arm) SetConstraints(alfa []spatial.Wrench, beta []float64) {
	copy(a.alfa, alfa)
	copy(a.beta, beta)
}

// SetExternalWrench applies a wrench (segment tip frame) to segment i.
func (a *Arm) SetExternalWrench(i int, w spatial.Wrench) { a.fext[i] = w }

func (a *Arm) StateDim() int   { return 2 * a.nj }
func (a *Arm) ControlDim() int { return a.nj }

// LastCode reports the solver code of the most recent Derive call.
func (a *Arm) LastCode() dynamics.Code { return a.lastCode }

func (a *Arm) Derive(x State, u Control, t float64) State {
	q := x[:a.nj]
	qdot := x[a.nj:]

	// the solver overwrites the torque array with constraint torques
	for j := 0; j < a.nj; j++ {
		a.torques[j] = 0
		if j < len(u) {
			a.torques[j] = u[j]
		}
	}

	a.lastCode = a.solver.CartToJnt(q, qdot, a.qdd, a.alfa, a.beta, a.fext, a.torques)
	dx := make(State, 2*a.nj)
	if a.lastCode != dynamics.CodeOK {
		return dx
	}
	copy(dx[:a.nj], qdot)
	copy(dx[a.nj:], a.qdd)
	return dx
}

// Energy implements EnergyComputer.
func (a *Arm) Energy(x State) float64 {
	return a.chain.MechanicalEnergy(a.gravity, x[:a.nj], x[a.nj:])
}

// Chain returns the underlying chain, for visualization.
func (a *Arm) Chain() *chain.Chain { return a.chain }

// Joints splits a state into its position and velocity halves.
func (a *Arm) Joints(x State) (q, qdot []float64) {
	return x[:a.nj], x[a.nj:]
}
