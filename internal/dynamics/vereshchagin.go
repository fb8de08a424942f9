package dynamics

import (
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/armdyn/internal/chain"
	"github.com/san-kum/armdyn/internal/spatial"
)

// DefaultSVDEps is the default relative singular-value threshold of the
// constraint solve: singular values below eps times the largest one are
// treated as zero, turning the inversion of the acceleration-energy matrix
// into a robust pseudo-inverse.
const DefaultSVDEps = 1e-12

// segmentRecord holds every per-segment quantity produced by the four
// sweeps. Quantities with a Tilde suffix are expressed in the segment tip
// frame; their plain counterparts are transformed to the segment root
// frame (the parent's tip frame). Record 0 is the base.
type segmentRecord struct {
	F     spatial.Frame // pose of the tip in the segment root frame
	FBase spatial.Frame // pose of the tip in base coordinates

	Z   spatial.Twist // unit joint twist, root frame, root reference point
	V   spatial.Twist // segment twist, tip frame
	Acc spatial.Twist // acceleration twist, tip frame
	C   spatial.Twist // bias (velocity-product) acceleration, root frame

	U      spatial.Wrench // bias wrench, tip frame
	R      spatial.Wrench // bias wrench of the sub-chain, root frame
	RTilde spatial.Wrench // bias wrench of the sub-chain, tip frame

	PTilde spatial.ArticulatedBodyInertia // articulated inertia, tip frame
	P      spatial.ArticulatedBodyInertia // articulated inertia, root frame
	PZ     spatial.Wrench                 // P*Z
	PC     spatial.Wrench                 // P*C
	D      float64                        // Z^T * P * Z

	E      []spatial.Wrench // unit constraint force columns, root frame
	ETilde []spatial.Wrench // unit constraint force columns, tip frame
	EZ     []float64        // E^T * Z
	M      *mat.Dense       // nc x nc acceleration energy accumulated so far
	G      []float64        // nc bias acceleration energy accumulated so far

	u         float64 // joint-space residual: applied torque + totalBias
	totalBias float64 // -Z^T * (R + PC)

	// decomposition of the joint acceleration
	nullspaceAcc float64
	constAcc     float64
	biasAcc      float64
	parentAcc    float64
}

// Vereshchagin is the hybrid forward-dynamics solver: given joint
// positions, velocities and applied torques, external segment wrenches, a
// base acceleration and up to nc task-space acceleration constraints at
// the end-effector, it computes the resulting joint accelerations and the
// constraint torques.
//
// The solver keeps a reference to the chain and captures its segment and
// joint counts at construction and in UpdateInternalDataStructures; no
// copy of the segments is made, so the chain must outlive the solver and
// must not be mutated between updates.
type Vereshchagin struct {
	chain   *chain.Chain
	nj, ns  int
	nc      int
	accRoot spatial.Twist
	fTotal  spatial.Frame

	results []segmentRecord // ns+1 records, 0 = base

	svdEps    float64
	truncated int
	lastErr   Code

	// constraint solve scratch, sized nc once at construction
	svd    mat.SVD
	um, vm *mat.Dense
	sv     []float64
	rhs    []float64
	tmp    []float64
	nu     []float64
}

// NewVereshchagin allocates a solver for the chain's current topology.
// accRoot is the fictitious base acceleration; pass the negated gravity
// vector in its linear part to simulate gravity. nc is the number of
// constraint directions and is fixed for the solver's lifetime.
func NewVereshchagin(ch *chain.Chain, accRoot spatial.Twist, nc int) *Vereshchagin {
	s := &Vereshchagin{
		chain:   ch,
		nc:      nc,
		accRoot: accRoot,
		svdEps:  DefaultSVDEps,
	}
	if nc > 0 {
		s.um = mat.NewDense(nc, nc, nil)
		s.vm = mat.NewDense(nc, nc, nil)
		s.sv = make([]float64, nc)
		s.rhs = make([]float64, nc)
		s.tmp = make([]float64, nc)
		s.nu = make([]float64, nc)
	}
	s.UpdateInternalDataStructures()
	return s
}

// UpdateInternalDataStructures implements Solver.
func (s *Vereshchagin) UpdateInternalDataStructures() {
	s.nj = s.chain.NumJoints()
	s.ns = s.chain.NumSegments()
	s.results = make([]segmentRecord, s.ns+1)
	for i := range s.results {
		rec := &s.results[i]
		rec.F = spatial.FrameIdentity()
		rec.FBase = spatial.FrameIdentity()
		if s.nc > 0 {
			rec.E = make([]spatial.Wrench, s.nc)
			rec.ETilde = make([]spatial.Wrench, s.nc)
			rec.EZ = make([]float64, s.nc)
			rec.G = make([]float64, s.nc)
			rec.M = mat.NewDense(s.nc, s.nc, nil)
		}
	}
}

// LastError implements Solver.
func (s *Vereshchagin) LastError() Code { return s.lastErr }

// SetSVDEps sets the relative singular-value threshold of the constraint
// solve.
func (s *Vereshchagin) SetSVDEps(eps float64) { s.svdEps = eps }

// TruncatedSingularValues reports how many singular values were dropped in
// the most recent constraint solve, a diagnostic for redundant or
// conflicting constraint directions.
func (s *Vereshchagin) TruncatedSingularValues() int { return s.truncated }

// NumConstraints returns nc.
func (s *Vereshchagin) NumConstraints() int { return s.nc }

// CartToJnt runs the four sweeps once. Inputs: joint positions q and
// velocities qdot (length nj), constraint jacobian columns alfa (nc unit
// force directions at the end-effector, base coordinates), desired
// accelerations beta along those directions (length nc), external wrenches
// fext per segment in segment tip frames (length ns, gravity excluded) and
// applied joint torques (length nj). Outputs: qdotdot receives the joint
// accelerations and torques is overwritten with the constraint torques.
// All sizes are validated before any output is touched.
func (s *Vereshchagin) CartToJnt(q, qdot, qdotdot []float64, alfa []spatial.Wrench, beta []float64, fext []spatial.Wrench, torques []float64) Code {
	switch {
	case len(q) != s.nj:
		s.lastErr = CodeSizeQ
	case len(qdot) != s.nj:
		s.lastErr = CodeSizeQDot
	case len(qdotdot) != s.nj:
		s.lastErr = CodeSizeQDotDot
	case len(torques) != s.nj:
		s.lastErr = CodeSizeTorques
	case len(fext) != s.ns:
		s.lastErr = CodeSizeWrenches
	case len(alfa) != s.nc:
		s.lastErr = CodeSizeJacobian
	case len(beta) != s.nc:
		s.lastErr = CodeSizeBeta
	default:
		s.lastErr = CodeOK
	}
	if s.lastErr != CodeOK {
		return s.lastErr
	}

	// an empty chain has nothing to sweep
	if s.ns == 0 {
		s.truncated = 0
		return CodeOK
	}

	s.outwardSweep(q, qdot, fext)
	s.inwardSweep(alfa, torques)
	s.constraintCalculation(beta)
	s.finalSweep(qdotdot, torques)
	return CodeOK
}

// outwardSweep computes poses, twists and bias accelerations base to tip,
// folding in the external wrenches. Each segment only reads its parent's
// already-computed record.
func (s *Vereshchagin) outwardSweep(q, qdot []float64, fext []spatial.Wrench) {
	s.fTotal = spatial.FrameIdentity()
	j := 0
	for i := 1; i <= s.ns; i++ {
		seg := s.chain.Segment(i - 1)
		rec := &s.results[i]

		var qi, qdi float64
		if seg.Joint.IsMovable() {
			qi, qdi = q[j], qdot[j]
			j++
		}

		rec.F = seg.Pose(qi)
		s.fTotal = s.fTotal.Mul(rec.F)
		rec.FBase = s.fTotal

		// joint-rate twist in the tip frame, and the unit joint twist
		// brought back to the root frame and root reference point
		vj := rec.F.M.InvTwist(seg.Twist(qi, qdi))
		rec.Z = rec.F.MulTwist(rec.F.M.InvTwist(seg.Twist(qi, 1)))

		if i == 1 {
			rec.V = vj
		} else {
			rec.V = rec.F.InvTwist(s.results[i-1].V).Add(vj)
		}

		// velocity-product acceleration, moved to the root frame
		rec.C = rec.F.MulTwist(rec.V.Cross(vj))
		// gyroscopic bias wrench minus the applied external wrench
		rec.U = rec.V.CrossWrench(seg.Inertia.Apply(rec.V)).Sub(fext[i-1])
	}
}

// inwardSweep composes articulated-body inertias and bias wrenches tip to
// base and accumulates the constraint quantities E, M and G. A fixed joint
// contributes no motion subspace, so its child's quantities pass through
// without the rank-one reduction.
func (s *Vereshchagin) inwardSweep(alfa []spatial.Wrench, torques []float64) {
	j := s.nj - 1
	for i := s.ns; i >= 0; i-- {
		rec := &s.results[i]

		if i == s.ns {
			rec.PTilde = s.chain.Segment(i - 1).Inertia.Articulated()
			rec.RTilde = rec.U
			if s.nc > 0 {
				rec.M.Zero()
				baseToTip := s.fTotal.M.Inverse()
				for c := 0; c < s.nc; c++ {
					rec.G[c] = 0
					rec.ETilde[c] = baseToTip.MulWrench(alfa[c])
				}
			}
		} else {
			child := &s.results[i+1]
			var own spatial.ArticulatedBodyInertia
			if i > 0 {
				own = s.chain.Segment(i - 1).Inertia.Articulated()
				rec.RTilde = rec.U
			} else {
				rec.RTilde = spatial.Wrench{}
			}

			if s.chain.Segment(i).Joint.IsMovable() {
				rec.PTilde = own.Add(child.P).Sub(spatial.WrenchDyad(child.PZ, child.D))
				rec.RTilde = rec.RTilde.Add(child.R).Add(child.PC).
					Add(child.PZ.Scale(child.u / child.D))
				if s.nc > 0 {
					ciZDu := child.C.Add(child.Z.Scale(child.u / child.D))
					for c := 0; c < s.nc; c++ {
						rec.ETilde[c] = child.E[c].Sub(child.PZ.Scale(child.EZ[c] / child.D))
						rec.G[c] = child.G[c] + spatial.Dot(ciZDu, child.E[c])
					}
					for r := 0; r < s.nc; r++ {
						for c := 0; c < s.nc; c++ {
							rec.M.Set(r, c, child.M.At(r, c)-child.EZ[r]*child.EZ[c]/child.D)
						}
					}
				}
			} else {
				// locked joint: rigid composition, nothing is absorbed
				rec.PTilde = own.Add(child.P)
				rec.RTilde = rec.RTilde.Add(child.R).Add(child.PC)
				if s.nc > 0 {
					for c := 0; c < s.nc; c++ {
						rec.ETilde[c] = child.E[c]
						rec.G[c] = child.G[c] + spatial.Dot(child.C, child.E[c])
					}
					rec.M.Copy(child.M)
				}
			}
		}

		if i != 0 {
			rec.P = rec.F.MulInertia(rec.PTilde)
			rec.R = rec.F.MulWrench(rec.RTilde)
			rec.PZ = rec.P.Apply(rec.Z)
			rec.D = spatial.Dot(rec.Z, rec.PZ)
			rec.PC = rec.P.Apply(rec.C)
			rec.totalBias = -spatial.Dot(rec.Z, rec.R.Add(rec.PC))

			if s.chain.Segment(i - 1).Joint.IsMovable() {
				rec.u = torques[j] + rec.totalBias
				j--
			} else {
				rec.u = rec.totalBias
			}

			for c := 0; c < s.nc; c++ {
				rec.E[c] = rec.F.MulWrench(rec.ETilde[c])
				rec.EZ[c] = spatial.Dot(rec.Z, rec.E[c])
			}
		}
	}
}

// constraintCalculation solves M0*nu = beta - E0~^T*a0 - G0 for the
// constraint force magnitudes via a truncated SVD pseudo-inverse, so that
// rank-deficient constraint sets (redundant or conflicting directions)
// still produce finite forces.
func (s *Vereshchagin) constraintCalculation(beta []float64) {
	s.truncated = 0
	if s.nc == 0 {
		return
	}
	base := &s.results[0]
	for c := 0; c < s.nc; c++ {
		s.rhs[c] = beta[c] - spatial.Dot(s.accRoot, base.ETilde[c]) - base.G[c]
	}

	if !s.svd.Factorize(base.M, mat.SVDFull) {
		// factorization did not converge; drop the constraint forces
		// rather than feed garbage into the final sweep
		s.truncated = s.nc
		for c := 0; c < s.nc; c++ {
			s.nu[c] = 0
		}
		return
	}
	s.svd.UTo(s.um)
	s.svd.VTo(s.vm)
	s.sv = s.svd.Values(s.sv)

	// singular values come back in descending order
	thresh := s.svdEps * s.sv[0]
	for k := 0; k < s.nc; k++ {
		acc := 0.0
		for r := 0; r < s.nc; r++ {
			acc += s.um.At(r, k) * s.rhs[r]
		}
		if s.sv[k] <= thresh || s.sv[k] == 0 {
			s.truncated++
			s.tmp[k] = 0
		} else {
			s.tmp[k] = acc / s.sv[k]
		}
	}
	for c := 0; c < s.nc; c++ {
		acc := 0.0
		for k := 0; k < s.nc; k++ {
			acc += s.vm.At(c, k) * s.tmp[k]
		}
		s.nu[c] = acc
	}
}

// finalSweep propagates accelerations base to tip, summing the parent,
// nullspace, bias and constraint contributions per joint, and derives the
// constraint torques.
func (s *Vereshchagin) finalSweep(qdotdot, torques []float64) {
	j := 0
	for i := 1; i <= s.ns; i++ {
		rec := &s.results[i]

		var ap spatial.Twist
		if i == 1 {
			ap = s.accRoot
		} else {
			ap = s.results[i-1].Acc
		}

		if s.chain.Segment(i - 1).Joint.IsMovable() {
			var constraintForce spatial.Wrench
			for c := 0; c < s.nc; c++ {
				constraintForce = constraintForce.Add(rec.E[c].Scale(s.nu[c]))
			}
			constraintTorque := -spatial.Dot(rec.Z, constraintForce)

			rec.parentAcc = -spatial.Dot(rec.Z, rec.P.Apply(ap)) / rec.D
			rec.constAcc = constraintTorque / rec.D
			rec.biasAcc = rec.totalBias / rec.D
			rec.nullspaceAcc = (rec.u - rec.totalBias) / rec.D

			qdd := rec.u/rec.D + rec.parentAcc + rec.constAcc
			qdotdot[j] = qdd
			torques[j] = constraintTorque
			j++

			rec.Acc = rec.F.InvTwist(ap.Add(rec.Z.Scale(qdd)).Add(rec.C))
		} else {
			rec.parentAcc, rec.constAcc, rec.biasAcc, rec.nullspaceAcc = 0, 0, 0, 0
			rec.Acc = rec.F.InvTwist(ap.Add(rec.C))
		}
	}
}

// TransformedLinkAccelerations writes the per-segment acceleration twists
// of the most recent CartToJnt call into out, rotated to base coordinates.
// out must have length ns+1; entry 0 is the base acceleration.
func (s *Vereshchagin) TransformedLinkAccelerations(out []spatial.Twist) Code {
	if len(out) != s.ns+1 {
		s.lastErr = CodeSizeLinkAcc
		return s.lastErr
	}
	out[0] = s.accRoot
	for i := 1; i <= s.ns; i++ {
		out[i] = s.results[i].FBase.M.MulTwist(s.results[i].Acc)
	}
	s.lastErr = CodeOK
	return CodeOK
}
