package mip

import "errors"

// Infeasibility and unboundedness are not errors in this package: they are
// ordinary Solve outcomes a caller must expect and branch on (StatusInfeasible,
// StatusUnbounded), the same way a caller branches on StatusOptimal versus
// StatusTimeLimit. err is reserved for failures that mean the call itself was
// malformed, not that the model it described turned out to have no optimum.
var (
	// ErrUnknownHandle is returned when a VarHandle or RowHandle does not
	// belong to the model it was passed to.
	ErrUnknownHandle = errors.New("mip: unknown variable or row handle")
)
