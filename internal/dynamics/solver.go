package dynamics

// Solver is the capability shared by chain dynamics solvers. Concrete
// implementations add their own solve entry points with the argument
// shapes their algorithm needs.
type Solver interface {
	// UpdateInternalDataStructures re-reads the chain's segment and joint
	// counts and resizes all internal buffers. It must be called after any
	// structural change to the chain; using the solver with stale buffers
	// is a contract violation with undefined numeric results.
	UpdateInternalDataStructures()

	// LastError returns the code of the most recent operation.
	LastError() Code
}
