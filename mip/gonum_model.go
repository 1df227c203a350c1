package mip

import (
	"errors"
	"math"
	"time"

	"github.com/arcflow/arcflow/graph"
	"github.com/arcflow/arcflow/problem"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// bigM penalizes the artificial variables every standard-form row gets, so
// that a trivial all-artificial basis is always primal feasible for the
// augmented problem and the Big-M objective drives real infeasibility
// (rather than just a poorly-scaled optimum) to a visibly large objective.
const bigM = 1e7

// feasibilityTolerance bounds how far an artificial variable's value may
// sit above zero before the augmented solution is treated as infeasible
// for the original model.
const feasibilityTolerance = 1e-6

type rowSpec struct {
	kind   problem.ConstraintKind
	rhs    float64
	coeffs map[int]float64 // variable index -> coefficient
}

// GonumModel is a Model backed by gonum's revised-simplex LP solver, with a
// depth-first branch-and-bound wrapper for Integer variables. It never
// mutates the model while branching: every Solve over an integral model
// re-derives a standard-form LP per node from the shared variable/row
// tables plus that node's bound/row overrides.
type GonumModel struct {
	ub   []float64
	cost []float64
	kind []graph.VarType
	rows []rowSpec
}

// NewGonumModel returns an empty minimization model.
func NewGonumModel() *GonumModel { return &GonumModel{} }

func (m *GonumModel) AddVariable(cost, ub float64, kind graph.VarType) VarHandle {
	m.ub = append(m.ub, ub)
	m.cost = append(m.cost, cost)
	m.kind = append(m.kind, kind)
	return VarHandle(len(m.ub) - 1)
}

func (m *GonumModel) AddRow(kind problem.ConstraintKind, rhs float64) RowHandle {
	m.rows = append(m.rows, rowSpec{kind: kind, rhs: rhs, coeffs: map[int]float64{}})
	return RowHandle(len(m.rows) - 1)
}

func (m *GonumModel) SetCoefficient(r RowHandle, v VarHandle, coeff float64) error {
	if int(r) < 0 || int(r) >= len(m.rows) || int(v) < 0 || int(v) >= len(m.cost) {
		return ErrUnknownHandle
	}
	m.rows[r].coeffs[int(v)] = coeff
	return nil
}

func (m *GonumModel) SetObjectiveCoefficient(v VarHandle, cost float64) error {
	if int(v) < 0 || int(v) >= len(m.cost) {
		return ErrUnknownHandle
	}
	m.cost[int(v)] = cost
	return nil
}

func (m *GonumModel) SetUpperBound(v VarHandle, ub float64) error {
	if int(v) < 0 || int(v) >= len(m.ub) {
		return ErrUnknownHandle
	}
	m.ub[int(v)] = ub
	return nil
}

// branchBound is one node's bound overrides: a tighter upper bound per
// variable (never looser than the model's own) and extra rows (used for
// "round up" branches, which the black-box contract can only express as a
// row since it exposes no per-variable lower bound setter).
type branchBound struct {
	ub    []float64
	extra []rowSpec
}

func (m *GonumModel) Solve(opts SolveOptions) (Result, error) {
	deadline := time.Time{}
	if opts.TimeLimit > 0 {
		deadline = timeNow().Add(opts.TimeLimit)
	}

	root := branchBound{ub: append([]float64(nil), m.ub...)}
	if opts.LinearRelaxation {
		res, err := m.solveNode(root)
		if err == nil && res.Status == StatusOptimal {
			res.RowDual = m.dualsViaPerturbation(root, res.Objective)
		}
		return res, err
	}

	hasInteger := false
	for _, k := range m.kind {
		if k == graph.Integer {
			hasInteger = true
			break
		}
	}
	if !hasInteger {
		res, err := m.solveNode(root)
		if err == nil && res.Status == StatusOptimal {
			res.RowDual = m.dualsViaPerturbation(root, res.Objective)
		}
		return res, err
	}

	return m.branchAndBound(root, deadline)
}

// dualsViaPerturbation approximates each original row's shadow price by
// the objective's sensitivity to a small right-hand-side perturbation,
// re-solving once per row. Gonum's simplex does not expose a dual vector
// directly, so this stands in for it; it is only run once, on the final
// accepted solution, not inside the branch-and-bound search.
func (m *GonumModel) dualsViaPerturbation(bb branchBound, baseObjective float64) []float64 {
	const epsilon = 1e-4
	duals := make([]float64, len(m.rows))
	for i := range m.rows {
		perturbed := *m
		perturbed.rows = append([]rowSpec(nil), m.rows...)
		row := perturbed.rows[i]
		row.rhs += epsilon
		perturbed.rows[i] = row

		res, err := perturbed.solveNode(bb)
		if err != nil || res.Status != StatusOptimal {
			continue
		}
		duals[i] = (res.Objective - baseObjective) / epsilon
	}
	return duals
}

// timeNow is a seam so the package has exactly one call to wall-clock time,
// matching the forbidden-builtins list this module otherwise avoids.
func timeNow() time.Time { return time.Now() }

func (m *GonumModel) branchAndBound(root branchBound, deadline time.Time) (Result, error) {
	type node struct{ bb branchBound }
	stack := []node{{bb: root}}

	var incumbent Result
	var incumbentBB branchBound
	haveIncumbent := false
	timedOut := false

	for len(stack) > 0 {
		if !deadline.IsZero() && timeNow().After(deadline) {
			timedOut = true
			break
		}
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		relax, err := m.solveNode(top.bb)
		if err != nil {
			return Result{}, err
		}
		if relax.Status == StatusInfeasible || relax.Status == StatusUnbounded {
			continue
		}
		if haveIncumbent && relax.Objective >= incumbent.Objective {
			continue // bound: this subtree cannot beat the incumbent.
		}

		branchVar, frac := mostFractional(m.kind, relax.Primal)
		if branchVar < 0 {
			// Integer-feasible: a candidate incumbent.
			incumbent = relax
			incumbent.Status = StatusOptimal
			incumbentBB = top.bb
			haveIncumbent = true
			continue
		}
		_ = frac

		floorVal := math.Floor(relax.Primal[branchVar])
		ceilVal := floorVal + 1

		downUB := append([]float64(nil), top.bb.ub...)
		if downUB[branchVar] > floorVal {
			downUB[branchVar] = floorVal
		}
		stack = append(stack, node{bb: branchBound{ub: downUB, extra: top.bb.extra}})

		upExtra := append([]rowSpec(nil), top.bb.extra...)
		upExtra = append(upExtra, rowSpec{kind: problem.GE, rhs: ceilVal, coeffs: map[int]float64{branchVar: 1}})
		stack = append(stack, node{bb: branchBound{ub: top.bb.ub, extra: upExtra}})
	}

	if !haveIncumbent {
		if timedOut {
			return Result{Status: StatusTimeLimit}, nil
		}
		return Result{Status: StatusInfeasible}, nil
	}
	if timedOut {
		incumbent.Status = StatusTimeLimit
	}
	incumbent.RowDual = m.dualsViaPerturbation(incumbentBB, incumbent.Objective)
	return incumbent, nil
}

// mostFractional returns the index of the Integer variable furthest from
// an integer value in primal, and that fractional distance, or -1 if every
// Integer variable is already integral within tolerance.
func mostFractional(kind []graph.VarType, primal []float64) (int, float64) {
	const tol = 1e-6
	best := -1
	bestFrac := 0.0
	for i, k := range kind {
		if k != graph.Integer {
			continue
		}
		frac := primal[i] - math.Floor(primal[i])
		dist := math.Min(frac, 1-frac)
		if dist > tol && dist > bestFrac {
			best = i
			bestFrac = dist
		}
	}
	return best, bestFrac
}

// solveNode builds the standard-form augmentation (slacks, surpluses,
// upper-bound rows, Big-M artificials) for one branch-and-bound node and
// solves it with gonum's simplex.
func (m *GonumModel) solveNode(bb branchBound) (Result, error) {
	allRows := append(append([]rowSpec(nil), m.rows...), bb.extra...)
	for i, ub := range bb.ub {
		if !math.IsInf(ub, 1) {
			allRows = append(allRows, rowSpec{kind: problem.LE, rhs: ub, coeffs: map[int]float64{i: 1}})
		}
	}

	numStructural := len(m.cost)
	numRows := len(allRows)

	// Column layout: structural vars, then one slack/surplus per LE or GE
	// row (coefficient +1 for LE, -1 for GE; EQ rows get none), then one
	// artificial per row.
	slackStart := numStructural
	slackCol := make([]int, numRows)
	numSlack := 0
	for i, row := range allRows {
		if row.kind != problem.EQ {
			slackCol[i] = slackStart + numSlack
			numSlack++
		}
	}
	artificialStart := slackStart + numSlack

	totalVars := artificialStart + numRows
	c := make([]float64, totalVars)
	copy(c, m.cost)
	for j := artificialStart; j < totalVars; j++ {
		c[j] = bigM
	}

	A := mat.NewDense(numRows, totalVars, nil)
	b := make([]float64, numRows)
	for i, row := range allRows {
		for vi, coeff := range row.coeffs {
			A.Set(i, vi, coeff)
		}
		rhs := row.rhs
		switch row.kind {
		case problem.LE:
			A.Set(i, slackCol[i], 1)
		case problem.GE:
			A.Set(i, slackCol[i], -1)
		}
		if rhs < 0 {
			for j := 0; j < totalVars; j++ {
				A.Set(i, j, -A.At(i, j))
			}
			rhs = -rhs
		}
		A.Set(i, artificialStart+i, 1)
		b[i] = rhs
	}

	initial := make([]int, numRows)
	for i := range initial {
		initial[i] = artificialStart + i
	}

	opt, x, err := lp.Simplex(c, A, b, 0, initial)
	if err != nil {
		if errors.Is(err, lp.ErrUnbounded) {
			return Result{Status: StatusUnbounded}, nil
		}
		return Result{Status: StatusInfeasible}, nil
	}

	for i := 0; i < numRows; i++ {
		if x[artificialStart+i] > feasibilityTolerance {
			return Result{Status: StatusInfeasible}, nil
		}
	}

	primal := make([]float64, numStructural)
	copy(primal, x[:numStructural])

	objective := 0.0
	for i, c := range m.cost {
		objective += c * primal[i]
	}
	_ = opt

	return Result{Status: StatusOptimal, Objective: objective, Primal: primal}, nil
}
