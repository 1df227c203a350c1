package mip

import (
	"time"

	"github.com/arcflow/arcflow/graph"
	"github.com/arcflow/arcflow/problem"
)

// VarHandle identifies a variable added to a Model.
type VarHandle int

// RowHandle identifies a row added to a Model.
type RowHandle int

// Status is the outcome of a Model.Solve call.
type Status int

const (
	// StatusOptimal means the returned primal is a global optimum of the
	// model as posed (linear relaxation, or exact if integral).
	StatusOptimal Status = iota
	// StatusTimeLimit means the time limit was reached before an exact
	// optimum was confirmed; Result still carries the best incumbent
	// found, if any.
	StatusTimeLimit
	// StatusInfeasible means no feasible point exists.
	StatusInfeasible
	// StatusUnbounded means the objective is unbounded below.
	StatusUnbounded
)

// SolveOptions configures one Solve call.
type SolveOptions struct {
	// TimeLimit bounds wall-clock solve time; zero means no limit.
	TimeLimit time.Duration
	// Silent suppresses engine-internal diagnostic output.
	Silent bool
	// LinearRelaxation ignores integrality even for Integer variables.
	LinearRelaxation bool
}

// Result is a Model.Solve outcome: status, objective value, and the
// primal/dual vectors indexed by VarHandle/RowHandle.
type Result struct {
	Status    Status
	Objective float64
	Primal    []float64 // indexed by VarHandle
	RowDual   []float64 // indexed by RowHandle
}

// Model is the black-box LP/MIP engine contract: create a minimization
// model, add variables (lb fixed at 0) and rows, edit coefficients, solve,
// and retrieve primal values and row duals. Concrete engines bind to this
// interface; nothing else in the library depends on which one is wired in.
type Model interface {
	// AddVariable adds a variable with lb=0, the given upper bound (may be
	// +Inf), objective coefficient cost, and a zero coefficient in every
	// existing row.
	AddVariable(cost, ub float64, kind graph.VarType) VarHandle

	// AddRow adds a row of the given relational kind and right-hand side,
	// with a zero coefficient on every existing variable.
	AddRow(kind problem.ConstraintKind, rhs float64) RowHandle

	// SetCoefficient sets variable v's coefficient in row r.
	SetCoefficient(r RowHandle, v VarHandle, coeff float64) error

	// SetObjectiveCoefficient overwrites v's objective coefficient.
	SetObjectiveCoefficient(v VarHandle, cost float64) error

	// SetUpperBound overwrites v's upper bound.
	SetUpperBound(v VarHandle, ub float64) error

	// Solve optimizes the model under opts and returns the result.
	Solve(opts SolveOptions) (Result, error)
}
