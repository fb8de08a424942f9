package dynamics

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/armdyn/internal/chain"
	"github.com/san-kum/armdyn/internal/spatial"
)

const g = 9.81

// gravityAcc is the fictitious base acceleration that emulates gravity
// pulling along -y.
var gravityAcc = spatial.Twist{Vel: spatial.Vec{Y: g}}

func pendulumChain(m, l float64) *chain.Chain {
	c := chain.New()
	c.Add(chain.NewSegment("link", chain.NewJoint(chain.RotZ),
		spatial.FrameTrans(spatial.Vec{X: l}), spatial.PointMass(m, spatial.Vec{})))
	return c
}

func planar2R(m1, m2, l1, l2 float64) *chain.Chain {
	c := chain.New()
	c.Add(chain.NewSegment("link1", chain.NewJoint(chain.RotZ),
		spatial.FrameTrans(spatial.Vec{X: l1}), spatial.PointMass(m1, spatial.Vec{})))
	c.Add(chain.NewSegment("link2", chain.NewJoint(chain.RotZ),
		spatial.FrameTrans(spatial.Vec{X: l2}), spatial.PointMass(m2, spatial.Vec{})))
	return c
}

// planar2RAccel is the closed-form manipulator equation for the planar 2R
// arm with point masses at the link tips, angles measured from +x, gravity
// along -y, an optional end-effector force in base coordinates.
func planar2RAccel(m1, m2, l1, l2 float64, q, qd, tau []float64, fee spatial.Vec) []float64 {
	c2, s2 := math.Cos(q[1]), math.Sin(q[1])
	c1 := math.Cos(q[0])
	c12 := math.Cos(q[0] + q[1])
	s1 := math.Sin(q[0])
	s12 := math.Sin(q[0] + q[1])

	m11 := (m1+m2)*l1*l1 + m2*l2*l2 + 2*m2*l1*l2*c2
	m12 := m2*l2*l2 + m2*l1*l2*c2
	m22 := m2 * l2 * l2

	cor1 := -m2 * l1 * l2 * s2 * (2*qd[0]*qd[1] + qd[1]*qd[1])
	cor2 := m2 * l1 * l2 * s2 * qd[0] * qd[0]

	grav1 := (m1+m2)*g*l1*c1 + m2*g*l2*c12
	grav2 := m2 * g * l2 * c12

	// generalized force of an end-effector force: J^T * f
	j11, j21 := -l1*s1-l2*s12, l1*c1+l2*c12
	j12, j22 := -l2*s12, l2*c12
	q1 := j11*fee.X + j21*fee.Y
	q2 := j12*fee.X + j22*fee.Y

	r1 := tau[0] + q1 - cor1 - grav1
	r2 := tau[1] + q2 - cor2 - grav2

	det := m11*m22 - m12*m12
	return []float64{
		(m22*r1 - m12*r2) / det,
		(m11*r2 - m12*r1) / det,
	}
}

var _ = Describe("Vereshchagin", func() {
	Context("without constraints", func() {
		It("matches the closed-form pendulum equation", func() {
			m, l := 1.3, 0.8
			solver := NewVereshchagin(pendulumChain(m, l), gravityAcc, 0)

			q := []float64{0.3}
			qdd := make([]float64, 1)
			torques := make([]float64, 1)
			code := solver.CartToJnt(q, []float64{0}, qdd, nil, nil,
				make([]spatial.Wrench, 1), torques)

			Expect(code).To(Equal(CodeOK))
			Expect(qdd[0]).To(BeNumerically("~", -(g/l)*math.Cos(0.3), 1e-9))
		})

		It("matches the closed-form planar 2R equations with velocity, torque and an end-effector force", func() {
			m1, m2, l1, l2 := 1.1, 0.7, 0.9, 0.6
			ch := planar2R(m1, m2, l1, l2)
			solver := NewVereshchagin(ch, gravityAcc, 0)

			q := []float64{0.4, -1.1}
			qd := []float64{0.8, -0.3}
			tau := []float64{0.25, -0.1}
			fee := spatial.Vec{X: 1.5, Y: -0.4}

			// external wrench on the last segment: the base-frame force
			// rotated into the tip frame, applied at the tip
			poses := ch.Poses(q)
			fext := make([]spatial.Wrench, 2)
			fext[1] = poses[1].M.InvWrench(spatial.Wrench{Force: fee})

			qdd := make([]float64, 2)
			torques := []float64{tau[0], tau[1]}
			code := solver.CartToJnt(q, qd, qdd, nil, nil, fext, torques)
			Expect(code).To(Equal(CodeOK))

			want := planar2RAccel(m1, m2, l1, l2, q, qd, tau, fee)
			Expect(qdd[0]).To(BeNumerically("~", want[0], 1e-9))
			Expect(qdd[1]).To(BeNumerically("~", want[1], 1e-9))
		})

		It("agrees with the unconstrained articulated-body solver", func() {
			m1, m2, l1, l2 := 2.0, 0.5, 1.2, 0.4
			ch := planar2R(m1, m2, l1, l2)
			hybrid := NewVereshchagin(ch, gravityAcc, 0)
			plain := NewForwardDynamics(ch, gravityAcc)

			q := []float64{-0.9, 2.1}
			qd := []float64{1.4, -2.2}
			tau := []float64{0.5, 0.75}
			fext := make([]spatial.Wrench, 2)
			fext[0] = spatial.Wrench{Force: spatial.Vec{Z: 0.3}, Torque: spatial.Vec{X: -0.2}}

			qddH := make([]float64, 2)
			tH := []float64{tau[0], tau[1]}
			Expect(hybrid.CartToJnt(q, qd, qddH, nil, nil, fext, tH)).To(Equal(CodeOK))

			qddP := make([]float64, 2)
			Expect(plain.CartToJnt(q, qd, qddP, fext, tau)).To(Equal(CodeOK))

			Expect(qddH[0]).To(BeNumerically("~", qddP[0], 1e-10))
			Expect(qddH[1]).To(BeNumerically("~", qddP[1], 1e-10))
		})
	})

	Context("with constraints", func() {
		It("achieves the commanded end-effector acceleration", func() {
			ch := planar2R(1.0, 1.0, 1.0, 0.7)
			solver := NewVereshchagin(ch, spatial.Twist{}, 2)

			// unit force directions x and y at the end-effector
			alfa := []spatial.Wrench{
				{Force: spatial.Vec{X: 1}},
				{Force: spatial.Vec{Y: 1}},
			}
			beta := []float64{0.6, -1.2}

			q := []float64{0.5, 0.8}
			qdd := make([]float64, 2)
			torques := make([]float64, 2)
			code := solver.CartToJnt(q, []float64{0, 0}, qdd, alfa, beta,
				make([]spatial.Wrench, 2), torques)
			Expect(code).To(Equal(CodeOK))
			Expect(solver.TruncatedSingularValues()).To(Equal(0))

			acc := make([]spatial.Twist, 3)
			Expect(solver.TransformedLinkAccelerations(acc)).To(Equal(CodeOK))
			for c := range alfa {
				Expect(spatial.Dot(acc[2], alfa[c])).To(BeNumerically("~", beta[c], 1e-9))
			}
		})

		It("returns finite forces for redundant, conflicting constraints", func() {
			ch := planar2R(1.0, 1.0, 1.0, 0.7)
			solver := NewVereshchagin(ch, gravityAcc, 2)

			dir := spatial.Wrench{Force: spatial.Vec{Y: 1}}
			alfa := []spatial.Wrench{dir, dir}
			beta := []float64{1.0, -1.0} // same direction, opposite targets

			qdd := make([]float64, 2)
			torques := make([]float64, 2)
			code := solver.CartToJnt([]float64{0.2, 0.4}, []float64{0, 0}, qdd,
				alfa, beta, make([]spatial.Wrench, 2), torques)

			Expect(code).To(Equal(CodeOK))
			Expect(solver.TruncatedSingularValues()).To(BeNumerically(">=", 1))
			for j := 0; j < 2; j++ {
				Expect(math.IsNaN(qdd[j]) || math.IsInf(qdd[j], 0)).To(BeFalse())
				Expect(math.IsNaN(torques[j]) || math.IsInf(torques[j], 0)).To(BeFalse())
			}
		})

		It("decomposes each joint acceleration into its four contributions", func() {
			ch := planar2R(1.0, 0.8, 1.0, 0.7)
			solver := NewVereshchagin(ch, gravityAcc, 1)

			alfa := []spatial.Wrench{{Force: spatial.Vec{X: 1}}}
			beta := []float64{0.5}
			q := []float64{0.3, -0.6}
			qd := []float64{0.5, 0.2}
			tau := []float64{0.1, -0.3}

			qdd := make([]float64, 2)
			torques := []float64{tau[0], tau[1]}
			code := solver.CartToJnt(q, qd, qdd, alfa, beta,
				make([]spatial.Wrench, 2), torques)
			Expect(code).To(Equal(CodeOK))

			for i := 1; i <= 2; i++ {
				rec := &solver.results[i]
				sum := rec.parentAcc + rec.nullspaceAcc + rec.biasAcc + rec.constAcc
				Expect(sum).To(BeNumerically("~", qdd[i-1], 1e-10))

				// the constraint contribution recomputed from the stored
				// unit-force columns and solved magnitudes
				var cf spatial.Wrench
				for c := range alfa {
					cf = cf.Add(rec.E[c].Scale(solver.nu[c]))
				}
				Expect(rec.constAcc).To(BeNumerically("~", -spatial.Dot(rec.Z, cf)/rec.D, 1e-10))
			}
		})

		It("handles a chain ending in a fixed tool segment", func() {
			ch := planar2R(1.0, 1.0, 1.0, 0.7)
			ch.Add(chain.NewSegment("tool", chain.NewJoint(chain.Fixed),
				spatial.FrameTrans(spatial.Vec{X: 0.1}), spatial.PointMass(0.2, spatial.Vec{})))
			solver := NewVereshchagin(ch, gravityAcc, 1)

			alfa := []spatial.Wrench{{Force: spatial.Vec{Y: 1}}}
			qdd := make([]float64, 2)
			torques := make([]float64, 2)
			code := solver.CartToJnt([]float64{0.2, 0.1}, []float64{0, 0}, qdd,
				alfa, []float64{0.3}, make([]spatial.Wrench, 3), torques)
			Expect(code).To(Equal(CodeOK))

			acc := make([]spatial.Twist, 4)
			Expect(solver.TransformedLinkAccelerations(acc)).To(Equal(CodeOK))
			for j := 0; j < 2; j++ {
				Expect(math.IsNaN(qdd[j])).To(BeFalse())
			}
		})
	})

	It("is deterministic across repeated calls", func() {
		ch := planar2R(1.0, 1.0, 1.0, 0.7)
		solver := NewVereshchagin(ch, gravityAcc, 1)
		alfa := []spatial.Wrench{{Force: spatial.Vec{Y: 1}}}

		run := func() ([]float64, []float64) {
			qdd := make([]float64, 2)
			torques := []float64{0.2, -0.1}
			code := solver.CartToJnt([]float64{0.7, -0.2}, []float64{0.3, 0.4}, qdd,
				alfa, []float64{0.9}, make([]spatial.Wrench, 2), torques)
			Expect(code).To(Equal(CodeOK))
			return qdd, torques
		}

		a1, t1 := run()
		a2, t2 := run()
		Expect(a2).To(Equal(a1))
		Expect(t2).To(Equal(t1))
	})
})
