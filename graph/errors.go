package graph

import "errors"

// Sentinel errors for the graph package. Callers must branch with
// errors.Is, never by string comparison.
var (
	// ErrEmptyTails indicates an arc was constructed with no tail.
	ErrEmptyTails = errors.New("graph: arc must have at least one tail")

	// ErrNonPositiveMultiplier indicates a tail multiplier was <= 0.
	ErrNonPositiveMultiplier = errors.New("graph: tail multiplier must be positive")

	// ErrUnbalancedHyperTree indicates a hyper-tree's arc-multiplicity
	// mapping violates the head/tail/intermediate balance invariant.
	ErrUnbalancedHyperTree = errors.New("graph: hyper-tree is not balanced")

	// ErrNegativeMultiplicity indicates a hyper-tree was given a negative
	// arc multiplicity; multiplicities must be non-negative.
	ErrNegativeMultiplicity = errors.New("graph: arc multiplicity must be non-negative")

	// ErrNotAChain indicates a Path was constructed from arcs that do not
	// form a single directed simple chain.
	ErrNotAChain = errors.New("graph: arcs do not form a simple chain")

	// ErrPathRequiresSimpleArcs indicates a Path was built from a
	// hyper-arc; paths are chains of single-tail arcs only.
	ErrPathRequiresSimpleArcs = errors.New("graph: path arcs must be simple (single-tail)")
)
