package neat

import "errors"

// Errors returned while compiling or running a phenotype. They are always
// wrapped with context; match them with errors.Is.
var (
	// ErrInputArity is returned when Activate receives a different number of
	// values than the network has input nodes.
	ErrInputArity = errors.New("input arity mismatch")

	// ErrUnknownFunction is returned when an activation or aggregation name
	// is missing from the configured function tables.
	ErrUnknownFunction = errors.New("unknown function")

	// ErrInvalidMode is returned for an unrecognized modulatory mode,
	// plasticity-parameter scope or network kind.
	ErrInvalidMode = errors.New("invalid mode")

	// ErrModulatoryRange is returned when a modulatory ratio lies outside [0, 1].
	ErrModulatoryRange = errors.New("modulatory ratio out of range")

	// ErrScopeConsistency is returned when the plasticity-parameter scope is
	// selected while the compatibility weighting of the other scope is nonzero.
	ErrScopeConsistency = errors.New("plasticity scope inconsistent with compatibility coefficients")

	// ErrCycle is returned when a feed-forward layering hits a dependency cycle.
	ErrCycle = errors.New("dependency cycle")

	ErrMissingNode = errors.New("node gene not found")

	// ErrUnknownConnection is returned when a weight update addresses a
	// (source, target) pair that was not compiled into the phenotype.
	ErrUnknownConnection = errors.New("connection not compiled")
)
