package grasp

import "errors"

var (
	// ErrInvalidDimension indicates n < 2, or a flow/distance slice whose
	// length does not equal n*n.
	ErrInvalidDimension = errors.New("grasp: instance dimension must be >= 2 and matrices must have length n*n")

	// ErrAllocation would indicate a scratch buffer allocation failure. Go's
	// allocator panics rather than returning nil on exhaustion, and this
	// module's buffers are all fixed-size from an already-validated n, so
	// this error is declared for API parity with the original's explicit
	// allocation-failure path but is never returned.
	ErrAllocation = errors.New("grasp: scratch buffer allocation failed")
)
