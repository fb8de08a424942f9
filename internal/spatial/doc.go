// Package spatial provides the 3-D and 6-D algebra used by the chain
// dynamics solvers:
//
//   - [Vec], [Mat3], [Rotation], [Frame]: rigid-body poses
//   - [Twist]: 6-D velocity or acceleration (linear + angular)
//   - [Wrench]: 6-D force (force + moment)
//   - [RigidBodyInertia]: inertia of a single body about a reference frame
//   - [ArticulatedBodyInertia]: 6x6 inertia operator of a sub-chain
//
// Twists and wrenches carry an implicit reference frame and reference
// point. Frame and Rotation multiplication change both or only the
// orientation respectively; [Twist.RefPoint] moves the reference point.
package spatial
