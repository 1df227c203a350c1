package branch

import "errors"

// Sentinel errors for the branch package.
var (
	// ErrNoCommodities indicates Solve was called on a Problem with no
	// commodities, which the coordinator treats as a caller error rather
	// than a trivially empty solution.
	ErrNoCommodities = errors.New("branch: problem has no commodities")

	// ErrSolverInfeasible indicates the black-box engine reported an exact
	// solve as infeasible or unbounded. This should not occur: every RMP
	// and direct formulation this package builds carries penalised
	// artificials that absorb infeasibility instead of failing, and every
	// structural variable's cost and bounds rule out an unbounded optimum.
	ErrSolverInfeasible = errors.New("branch: exact solve reported infeasible or unbounded")
)
