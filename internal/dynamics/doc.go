// Package dynamics implements forward dynamics solvers for serial chains.
//
// Two implementations of the [Solver] capability are provided:
//
//   - [Vereshchagin]: hybrid dynamics (Vereshchagin 1989), an
//     articulated-body method extended with task-space acceleration
//     constraints at the end-effector
//   - [ForwardDynamics]: plain unconstrained articulated-body dynamics
//
// Both pre-allocate all per-segment state at construction and reuse it on
// every call, keeping the per-call path allocation free for control-loop
// use. Solver instances are NOT safe for concurrent use; calls from
// multiple goroutines require external serialization.
//
// Operations report [Code] values rather than errors: the hot path is
// meant for fixed-rate loops where allocation-free, branch-cheap status
// checks matter.
package dynamics
