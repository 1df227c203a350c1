package problem

import (
	"math"

	"github.com/arcflow/arcflow/graph"
)

// Commodity is a demand/capacity pair routed between a fixed source and
// sink, with a penalty charged per unit of its demand or capacity rows
// left unsatisfied by artificial slack in the RMP.
type Commodity struct {
	index            int
	source, sink     graph.Vertex
	demand, capacity float64
	violationPenalty float64
}

// NewCommodity validates and constructs a Commodity. It rejects
// demand > capacity, negative demand, and infinite capacity.
func NewCommodity(index int, source, sink graph.Vertex, demand, capacity, violationPenalty float64) (Commodity, error) {
	if demand < 0 || demand > capacity || math.IsInf(capacity, 1) {
		return Commodity{}, ErrInvalidCommodity
	}
	return Commodity{
		index: index, source: source, sink: sink,
		demand: demand, capacity: capacity, violationPenalty: violationPenalty,
	}, nil
}

// Index satisfies containers.Indexable.
func (c Commodity) Index() int { return c.index }

// Source returns the commodity's source vertex.
func (c Commodity) Source() graph.Vertex { return c.source }

// Sink returns the commodity's sink vertex.
func (c Commodity) Sink() graph.Vertex { return c.sink }

// Demand returns the commodity's minimum required flow.
func (c Commodity) Demand() float64 { return c.demand }

// Capacity returns the commodity's maximum allowed flow.
func (c Commodity) Capacity() float64 { return c.capacity }

// ViolationPenalty returns the per-unit cost charged to the demand/capacity
// artificial slacks when the RMP cannot otherwise satisfy this commodity's
// rows.
func (c Commodity) ViolationPenalty() float64 { return c.violationPenalty }

// ConstraintKind is the relational operator of a side-constraint row.
type ConstraintKind int

const (
	// GE is a >= row.
	GE ConstraintKind = iota
	// LE is a <= row.
	LE
	// EQ is an = row.
	EQ
)

func (k ConstraintKind) String() string {
	switch k {
	case GE:
		return ">="
	case LE:
		return "<="
	default:
		return "="
	}
}

// constraintRow is one pushed row of the side-constraint stack: a sparse
// arc->coefficient map, a relational kind, an RHS and a violation penalty
// for the row's artificial slack.
type constraintRow struct {
	id      int
	kind    ConstraintKind
	rhs     float64
	penalty float64
	coeffs  map[int]float64 // arc index -> coefficient
}

// SideConstraint is an opaque handle to one or two pushed constraint rows
// (a bound with both a lower and an upper limit produces both a >= and a
// <= row sharing the same coefficients).
type SideConstraint struct {
	rows []*constraintRow
}

// Rows returns the handle's underlying row IDs, most useful for
// diagnostics.
func (h SideConstraint) Rows() []int {
	out := make([]int, len(h.rows))
	for i, r := range h.rows {
		out[i] = r.id
	}
	return out
}

// ConstraintRow is a read-only view of one pushed side-constraint row, as
// seen by column generation and the RMP.
type ConstraintRow struct {
	Index   int
	Kind    ConstraintKind
	RHS     float64
	Penalty float64
	coeffs  map[int]float64
}

// Coefficient returns the row's coefficient for arc index ai, or 0 if ai
// does not appear in the row.
func (r ConstraintRow) Coefficient(ai int) float64 { return r.coeffs[ai] }

// Arcs returns the arc indices with a non-zero coefficient in the row.
func (r ConstraintRow) Arcs() []int {
	out := make([]int, 0, len(r.coeffs))
	for ai := range r.coeffs {
		out = append(out, ai)
	}
	return out
}

// arcCoeff is one node of Problem's per-arc secondary index: the ID of a
// pushed row and that row's coefficient on the owning arc.
type arcCoeff struct {
	rowID int
	coeff float64
}

// ArcCoefficient pairs an arc with a coefficient, the input shape
// PushConstraint takes. Arc carries a tail list and so is not a comparable
// Go type; constraint coefficients are passed as a slice of these pairs
// rather than a map keyed by Arc.
type ArcCoefficient struct {
	Arc         graph.Arc
	Coefficient float64
}
