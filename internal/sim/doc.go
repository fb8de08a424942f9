// Package sim provides the simulation primitives for driving a chain
// through time:
//
//   - [State]: flat state vector, for an arm [q; qdot]
//   - [System]: interface for systems with dX/dt = f(X, u, t)
//   - [Integrator], [Controller], [Metric], [Observer]
//   - [Simulator]: orchestrates a run
//   - [Arm]: adapts a chain plus hybrid dynamics solver to [System]
//   - [Ensemble]: runs perturbed copies of a simulation in parallel
//
// Simulator and Arm instances are NOT thread-safe; Ensemble builds an
// independent Simulator per run.
package sim
