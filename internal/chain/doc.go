// Package chain models open (serial) kinematic chains.
//
// A [Chain] is an ordered sequence of [Segment] values, base to tip. Each
// segment is a joint followed by a fixed transform to the segment tip,
// which is where the next segment attaches. Segment inertia is expressed
// in the tip frame.
//
// The package only answers kinematic and energy queries. Dynamics
// lives in the dynamics package, which consumes a Chain and assumes its
// segment and joint counts stay constant between calls to
// UpdateInternalDataStructures on the solver.
package chain
