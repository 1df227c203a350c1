package colgen

import "errors"

// Sentinel errors for the colgen package.
var (
	// ErrUnknownCommodity indicates an operation referenced a commodity
	// index outside the RMP's problem.
	ErrUnknownCommodity = errors.New("colgen: unknown commodity")

	// ErrNotLinear indicates a dual query was made against an RMP solve
	// that enforced integrality, which carries no well-defined dual.
	ErrNotLinear = errors.New("colgen: dual solution requires a linear-relaxation solve")
)
