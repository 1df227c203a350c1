package solution

import "errors"

var (
	// ErrUnknownCommodity is returned when a query names a commodity index
	// absent from a PrimalSolution.
	ErrUnknownCommodity = errors.New("solution: unknown commodity")

	// ErrRequiresSimpleArcs is returned by DecomposeToPaths when the
	// underlying network contains a hyper-arc; path decomposition is only
	// defined over simple-arc chains.
	ErrRequiresSimpleArcs = errors.New("solution: path decomposition requires simple arcs")

	// ErrInfeasibleDecomposition is returned by DecomposeToPaths when the
	// arc-flow assignment does not satisfy flow conservation closely enough
	// to trace a source-to-sink walk: some intermediate vertex is reached
	// with positive residual flow but has no outgoing arc to continue on.
	ErrInfeasibleDecomposition = errors.New("solution: arc flow does not decompose into paths")
)
