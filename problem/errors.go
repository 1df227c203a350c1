package problem

import "errors"

// Sentinel errors for the problem package.
var (
	// ErrInvalidCommodity indicates a commodity violates
	// 0 <= demand <= capacity < +Inf.
	ErrInvalidCommodity = errors.New("problem: invalid commodity (need 0 <= demand <= capacity < +Inf)")

	// ErrInvalidConstraintBounds indicates lb > ub, both bounds infinite,
	// or another infeasible combination of bounds was requested.
	ErrInvalidConstraintBounds = errors.New("problem: invalid constraint bounds")

	// ErrEmptyConstraintStack indicates Pop was called with nothing on
	// the constraint stack.
	ErrEmptyConstraintStack = errors.New("problem: constraint stack is empty")

	// ErrUnknownArc indicates an operation referenced an arc outside the
	// problem's arc set.
	ErrUnknownArc = errors.New("problem: unknown arc")

	// ErrUnbalancedPop indicates a pop's per-arc secondary-index removal
	// did not match what the corresponding push inserted; this signals a
	// programming error in the push/pop discipline, not a user error.
	ErrUnbalancedPop = errors.New("problem: constraint stack pop did not match its push")
)
