package problem

import (
	"fmt"
	"math"

	"github.com/arcflow/arcflow/containers"
	"github.com/arcflow/arcflow/graph"
	"github.com/arcflow/arcflow/network"
)

// Problem is the immutable frame (network, per-arc cost/capacity/variable
// domain, commodities) plus the one mutable piece of state branch-and-bound
// needs: a stack of side constraints with a per-arc secondary index kept
// in lockstep under push/pop.
type Problem struct {
	net *network.Network

	cost     []float64
	capacity []float64
	varType  []graph.VarType

	commodities []Commodity

	constraints      []*constraintRow
	arcConstraints   *containers.LinkedListMap[arcCoeff]
	nextConstraintID int
}

// Network returns the network this Problem is scoped to: the full arc set
// for a Problem from GetProblem, or the network passed to WithNetwork.
// RCVF filtering produces a separate Network, not a mutation of this one.
func (p *Problem) Network() *network.Network { return p.net }

// Commodities returns the problem's commodity list.
func (p *Problem) Commodities() []Commodity { return p.commodities }

// Cost returns arc a's objective coefficient.
func (p *Problem) Cost(a graph.Arc) float64 { return p.cost[a.Index()] }

// Capacity returns arc a's capacity bound (may be +Inf).
func (p *Problem) Capacity(a graph.Arc) float64 { return p.capacity[a.Index()] }

// IsCapacitated reports whether arc a carries a finite capacity bound.
func (p *Problem) IsCapacitated(a graph.Arc) bool {
	return !math.IsInf(p.capacity[a.Index()], 1)
}

// VarType returns arc a's variable domain (continuous or integer).
func (p *Problem) VarType(a graph.Arc) graph.VarType { return p.varType[a.Index()] }

// Constraints returns a read-only snapshot of the current constraint
// stack, bottom to top.
func (p *Problem) Constraints() []ConstraintRow {
	out := make([]ConstraintRow, len(p.constraints))
	for i, r := range p.constraints {
		out[i] = ConstraintRow{Index: r.id, Kind: r.kind, RHS: r.rhs, Penalty: r.penalty, coeffs: r.coeffs}
	}
	return out
}

// ArcConstraints returns, for arc a, the (row, coefficient) pairs of every
// constraint currently on the stack that references it, most-recently
// pushed first.
func (p *Problem) ArcConstraints(a graph.Arc) []ConstraintRow {
	entries, _ := p.arcConstraints.Values(a.Index()) // a.Index() is always a valid arc index; cannot fail.
	out := make([]ConstraintRow, 0, len(entries))
	for _, e := range entries {
		row := p.rowByID(e.rowID)
		if row == nil {
			continue
		}
		out = append(out, ConstraintRow{Index: row.id, Kind: row.kind, RHS: row.rhs, Penalty: row.penalty, coeffs: row.coeffs})
	}
	return out
}

func (p *Problem) rowByID(id int) *constraintRow {
	for _, r := range p.constraints {
		if r.id == id {
			return r
		}
	}
	return nil
}

func (p *Problem) pushRow(kind ConstraintKind, rhs, penalty float64, coeffs map[int]float64) *constraintRow {
	row := &constraintRow{id: p.nextConstraintID, kind: kind, rhs: rhs, penalty: penalty, coeffs: coeffs}
	p.nextConstraintID++
	for ai, c := range coeffs {
		if c == 0 {
			continue
		}
		_, _ = p.arcConstraints.PushHead(ai, arcCoeff{rowID: row.id, coeff: c}) // ai is always a valid arc index; cannot fail.
	}
	p.constraints = append(p.constraints, row)
	return row
}

// PushConstraint pushes a new side-constraint row onto the stack,
// updating the per-arc secondary index for every arc with a non-zero
// coefficient. It is the only mutation branch-and-bound performs on
// Problem, and every call must be matched by exactly one PopConstraint.
func (p *Problem) PushConstraint(kind ConstraintKind, rhs, penalty float64, coeffs []ArcCoefficient) *SideConstraint {
	dense := make(map[int]float64, len(coeffs))
	for _, c := range coeffs {
		dense[c.Arc.Index()] = c.Coefficient
	}
	row := p.pushRow(kind, rhs, penalty, dense)
	return &SideConstraint{rows: []*constraintRow{row}}
}

// PopConstraint removes the top of the constraint stack, undoing its
// secondary-index insertions exactly, so that the constraint list and the
// per-arc index are bit-equal to their pre-push state.
func (p *Problem) PopConstraint() error {
	if len(p.constraints) == 0 {
		return ErrEmptyConstraintStack
	}
	top := p.constraints[len(p.constraints)-1]
	p.constraints = p.constraints[:len(p.constraints)-1]

	for ai, c := range top.coeffs {
		if c == 0 {
			continue
		}
		_, ok, _ := p.arcConstraints.PopHeadWhere(ai, func(e arcCoeff) bool { return e.rowID == top.id }) // ai is always a valid arc index; cannot fail.
		if !ok {
			return fmt.Errorf("problem: arc %d: %w", ai, ErrUnbalancedPop)
		}
	}
	return nil
}

// WithNetwork returns a shallow copy of p with its network replaced by
// net, sharing the same per-arc cost/capacity/variable-domain arrays and
// commodity list (both still keyed by the arc indices net.Filter leaves
// unchanged on the arcs it keeps) and an independent copy of the current
// constraint stack. Reduced-cost variable fixing uses this to scope
// pricing and the RMP to a filtered arc subset without mutating the
// original Problem.
func (p *Problem) WithNetwork(net *network.Network) *Problem {
	clone := p.Clone()
	clone.net = net
	return clone
}

// Clone returns a deep copy of the problem's mutable constraint stack
// state atop the same immutable frame (network, costs, commodities);
// branch-and-bound uses it to hand each branch an independent stack to
// push/pop against.
func (p *Problem) Clone() *Problem {
	clone := &Problem{
		net:         p.net,
		cost:        p.cost,
		capacity:    p.capacity,
		varType:     p.varType,
		commodities: p.commodities,
	}
	clone.arcConstraints = containers.NewLinkedListMap[arcCoeff](len(p.cost))
	for _, row := range p.constraints {
		cp := make(map[int]float64, len(row.coeffs))
		for ai, c := range row.coeffs {
			cp[ai] = c
		}
		clone.pushRow(row.kind, row.rhs, row.penalty, cp)
	}
	return clone
}
