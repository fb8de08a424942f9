package dynamics

import (
	"github.com/san-kum/armdyn/internal/chain"
	"github.com/san-kum/armdyn/internal/spatial"
)

// fdRecord is the per-segment state of the unconstrained solver, the
// subset of segmentRecord the articulated-body recursion needs.
type fdRecord struct {
	F      spatial.Frame
	Z      spatial.Twist
	V      spatial.Twist
	Acc    spatial.Twist
	C      spatial.Twist
	U      spatial.Wrench
	R      spatial.Wrench
	RTilde spatial.Wrench
	PTilde spatial.ArticulatedBodyInertia
	P      spatial.ArticulatedBodyInertia
	PZ     spatial.Wrench
	PC     spatial.Wrench
	D      float64
	u      float64
}

// ForwardDynamics computes unconstrained joint accelerations from joint
// state, applied torques and external wrenches: the articulated-body
// algorithm without the constraint machinery. It is the nc=0 special case
// of the hybrid solver and serves as its reference implementation.
//
// Same contract as Vereshchagin: the chain reference is borrowed, buffers
// are sized by UpdateInternalDataStructures, and instances are not safe
// for concurrent use.
type ForwardDynamics struct {
	chain   *chain.Chain
	nj, ns  int
	accRoot spatial.Twist
	results []fdRecord
	lastErr Code
}

func NewForwardDynamics(ch *chain.Chain, accRoot spatial.Twist) *ForwardDynamics {
	s := &ForwardDynamics{chain: ch, accRoot: accRoot}
	s.UpdateInternalDataStructures()
	return s
}

// UpdateInternalDataStructures implements Solver.
func (s *ForwardDynamics) UpdateInternalDataStructures() {
	s.nj = s.chain.NumJoints()
	s.ns = s.chain.NumSegments()
	s.results = make([]fdRecord, s.ns+1)
}

// LastError implements Solver.
func (s *ForwardDynamics) LastError() Code { return s.lastErr }

// CartToJnt computes joint accelerations for the given joint state,
// applied torques and external wrenches (segment tip frames, length ns).
func (s *ForwardDynamics) CartToJnt(q, qdot, qdotdot []float64, fext []spatial.Wrench, torques []float64) Code {
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
	default:
		s.lastErr = CodeOK
	}
	if s.lastErr != CodeOK {
		return s.lastErr
	}

	// outward: kinematics and bias terms
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
		vj := rec.F.M.InvTwist(seg.Twist(qi, qdi))
		rec.Z = rec.F.MulTwist(rec.F.M.InvTwist(seg.Twist(qi, 1)))
		if i == 1 {
			rec.V = vj
		} else {
			rec.V = rec.F.InvTwist(s.results[i-1].V).Add(vj)
		}
		rec.C = rec.F.MulTwist(rec.V.Cross(vj))
		rec.U = rec.V.CrossWrench(seg.Inertia.Apply(rec.V)).Sub(fext[i-1])
	}

	// inward: articulated inertia and bias force
	j = s.nj - 1
	for i := s.ns; i >= 1; i-- {
		rec := &s.results[i]
		rec.PTilde = s.chain.Segment(i - 1).Inertia.Articulated()
		rec.RTilde = rec.U
		if i < s.ns {
			child := &s.results[i+1]
			if s.chain.Segment(i).Joint.IsMovable() {
				rec.PTilde = rec.PTilde.Add(child.P).Sub(spatial.WrenchDyad(child.PZ, child.D))
				rec.RTilde = rec.RTilde.Add(child.R).Add(child.PC).
					Add(child.PZ.Scale(child.u / child.D))
			} else {
				rec.PTilde = rec.PTilde.Add(child.P)
				rec.RTilde = rec.RTilde.Add(child.R).Add(child.PC)
			}
		}
		rec.P = rec.F.MulInertia(rec.PTilde)
		rec.R = rec.F.MulWrench(rec.RTilde)
		rec.PZ = rec.P.Apply(rec.Z)
		rec.D = spatial.Dot(rec.Z, rec.PZ)
		rec.PC = rec.P.Apply(rec.C)
		if s.chain.Segment(i - 1).Joint.IsMovable() {
			rec.u = torques[j] - spatial.Dot(rec.Z, rec.R.Add(rec.PC))
			j--
		} else {
			rec.u = -spatial.Dot(rec.Z, rec.R.Add(rec.PC))
		}
	}

	// outward: accelerations
	j = 0
	for i := 1; i <= s.ns; i++ {
		rec := &s.results[i]
		ap := s.accRoot
		if i > 1 {
			ap = s.results[i-1].Acc
		}
		if s.chain.Segment(i - 1).Joint.IsMovable() {
			qdd := (rec.u - spatial.Dot(rec.Z, rec.P.Apply(ap))) / rec.D
			qdotdot[j] = qdd
			j++
			rec.Acc = rec.F.InvTwist(ap.Add(rec.Z.Scale(qdd)).Add(rec.C))
		} else {
			rec.Acc = rec.F.InvTwist(ap.Add(rec.C))
		}
	}
	return CodeOK
}
