// Package metrics provides streaming trajectory metrics collected
// while a simulation runs.
package metrics

import (
	"math"

	"github.com/san-kum/armdyn/internal/chain"
	"github.com/san-kum/armdyn/internal/sim"
	"github.com/san-kum/armdyn/internal/spatial"
)

// ChainEnergy averages the mechanical energy of an arm trajectory.
// States are [q; qdot] vectors for the given chain.
type ChainEnergy struct {
	chain   *chain.Chain
	gravity spatial.Vec
	total   float64
	samples int
}

func NewChainEnergy(ch *chain.Chain, gravity spatial.Vec) *ChainEnergy {
	return &ChainEnergy{chain: ch, gravity: gravity}
}

func (e *ChainEnergy) Name() string { return "mechanical_energy" }

func (e *ChainEnergy) Observe(x sim.State, u sim.Control, t float64) {
	nj := e.chain.NumJoints()
	if len(x) < 2*nj {
		return
	}
	e.total += e.chain.MechanicalEnergy(e.gravity, x[:nj], x[nj:2*nj])
	e.samples++
}

func (e *ChainEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *ChainEnergy) Reset() {
	e.total = 0
	e.samples = 0
}

// EnergyDrift tracks the worst relative deviation from the initial
// mechanical energy. For a passive frictionless arm this measures
// integrator error.
type EnergyDrift struct {
	chain    *chain.Chain
	gravity  spatial.Vec
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift(ch *chain.Chain, gravity spatial.Vec) *EnergyDrift {
	return &EnergyDrift{chain: ch, gravity: gravity}
}

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(x sim.State, u sim.Control, t float64) {
	nj := e.chain.NumJoints()
	if len(x) < 2*nj {
		return
	}
	energy := e.chain.MechanicalEnergy(e.gravity, x[:nj], x[nj:2*nj])
	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++
	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}
