package problem

import (
	"math"

	"github.com/arcflow/arcflow/containers"
	"github.com/arcflow/arcflow/graph"
	"github.com/arcflow/arcflow/network"
)

// DefaultViolationPenalty is applied to a Commodity or SideConstraint
// when the caller does not supply one explicitly.
const DefaultViolationPenalty = 1e3

// arcSpec is a builder-time record of one arc's topology and attributes,
// before the arc's Network is frozen.
type arcSpec struct {
	tails    []graph.Tail
	head     graph.Vertex
	cost     float64
	capacity float64
	varType  graph.VarType
}

// Builder is the minimal façade satisfying the external problem-building
// contract: mint vertices, arcs and commodities, push side constraints,
// and materialize the immutable Problem they describe.
type Builder struct {
	numVertices int
	arcs        []arcSpec
	commodities []Commodity
	rows        []*constraintRow
	nextRowID   int
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder { return &Builder{} }

// NewVertex mints and returns the next dense vertex index.
func (b *Builder) NewVertex() graph.Vertex {
	v := graph.NewVertex(b.numVertices)
	b.numVertices++
	return v
}

// ArcOption configures optional attributes of a new arc.
type ArcOption func(*arcSpec)

// WithCost sets an arc's objective coefficient (default 0).
func WithCost(cost float64) ArcOption { return func(s *arcSpec) { s.cost = cost } }

// WithCapacity sets an arc's capacity bound (default +Inf).
func WithCapacity(capacity float64) ArcOption { return func(s *arcSpec) { s.capacity = capacity } }

// WithVarType sets an arc's variable domain (default Continuous).
func WithVarType(t graph.VarType) ArcOption { return func(s *arcSpec) { s.varType = t } }

// NewArc adds a single-tail arc tail--(multiplier)-->head and returns its
// handle. Use NewHyperArc for two or more tails.
func (b *Builder) NewArc(tail graph.Vertex, multiplier float64, head graph.Vertex, opts ...ArcOption) (graph.Arc, error) {
	return b.NewHyperArc([]graph.Tail{{Vertex: tail, Multiplier: multiplier}}, head, opts...)
}

// NewHyperArc adds a multi-tail arc and returns its handle. Rejects an
// empty tail list.
func (b *Builder) NewHyperArc(tails []graph.Tail, head graph.Vertex, opts ...ArcOption) (graph.Arc, error) {
	if len(tails) == 0 {
		return graph.Arc{}, graph.ErrEmptyTails
	}
	spec := arcSpec{tails: append([]graph.Tail(nil), tails...), head: head, capacity: math.Inf(1), varType: graph.Continuous}
	for _, o := range opts {
		o(&spec)
	}
	idx := len(b.arcs)
	b.arcs = append(b.arcs, spec)
	return graph.NewArc(idx, tails, head)
}

// SetCost overwrites arc a's objective coefficient.
func (b *Builder) SetCost(a graph.Arc, cost float64) error {
	s, err := b.arcSpecOf(a)
	if err != nil {
		return err
	}
	s.cost = cost
	return nil
}

// SetCapacity overwrites arc a's capacity bound.
func (b *Builder) SetCapacity(a graph.Arc, capacity float64) error {
	s, err := b.arcSpecOf(a)
	if err != nil {
		return err
	}
	s.capacity = capacity
	return nil
}

// SetVarType overwrites arc a's variable domain.
func (b *Builder) SetVarType(a graph.Arc, t graph.VarType) error {
	s, err := b.arcSpecOf(a)
	if err != nil {
		return err
	}
	s.varType = t
	return nil
}

func (b *Builder) arcSpecOf(a graph.Arc) (*arcSpec, error) {
	if a.Index() < 0 || a.Index() >= len(b.arcs) {
		return nil, ErrUnknownArc
	}
	return &b.arcs[a.Index()], nil
}

// NewCommodity mints a commodity with the given violation penalty,
// rejecting demand > capacity, negative demand, or infinite capacity.
func (b *Builder) NewCommodity(source, sink graph.Vertex, demand, capacity float64, violationPenalty ...float64) (Commodity, error) {
	penalty := DefaultViolationPenalty
	if len(violationPenalty) > 0 {
		penalty = violationPenalty[0]
	}
	c, err := NewCommodity(len(b.commodities), source, sink, demand, capacity, penalty)
	if err != nil {
		return Commodity{}, err
	}
	b.commodities = append(b.commodities, c)
	return c, nil
}

// NewConstraint registers a bound lb <= (coefficients) <= ub, producing an
// equality row when lb == ub, or a >= row and/or a <= row otherwise.
// Rejects lb > ub, bounds that are both infinite, a lower bound of +Inf
// and an upper bound of -Inf.
func (b *Builder) NewConstraint(lb, ub float64, violationPenalty ...float64) (*SideConstraint, error) {
	if lb > ub {
		return nil, ErrInvalidConstraintBounds
	}
	if (math.IsInf(lb, 0) && math.IsInf(ub, 0)) || math.IsInf(lb, 1) || math.IsInf(ub, -1) {
		return nil, ErrInvalidConstraintBounds
	}
	penalty := DefaultViolationPenalty
	if len(violationPenalty) > 0 {
		penalty = violationPenalty[0]
	}

	handle := &SideConstraint{}
	newRow := func(kind ConstraintKind, rhs float64) *constraintRow {
		row := &constraintRow{id: b.nextRowID, kind: kind, rhs: rhs, penalty: penalty, coeffs: map[int]float64{}}
		b.nextRowID++
		b.rows = append(b.rows, row)
		return row
	}

	switch {
	case lb == ub:
		handle.rows = append(handle.rows, newRow(EQ, lb))
	default:
		if !math.IsInf(lb, -1) {
			handle.rows = append(handle.rows, newRow(GE, lb))
		}
		if !math.IsInf(ub, 1) {
			handle.rows = append(handle.rows, newRow(LE, ub))
		}
	}
	return handle, nil
}

// SetConstraintCoefficient sets arc a's coefficient in every row of the
// given constraint handle.
func (b *Builder) SetConstraintCoefficient(h *SideConstraint, a graph.Arc, coeff float64) error {
	if a.Index() < 0 || a.Index() >= len(b.arcs) {
		return ErrUnknownArc
	}
	for _, row := range h.rows {
		row.coeffs[a.Index()] = coeff
	}
	return nil
}

// GetProblem materializes the immutable Problem described so far: it
// freezes the vertex/arc set into a Network, lays out dense per-arc
// metadata arrays, and replays every registered constraint row onto a
// fresh per-arc secondary index.
func (b *Builder) GetProblem() (*Problem, error) {
	vertices := make([]graph.Vertex, b.numVertices)
	for i := range vertices {
		vertices[i] = graph.NewVertex(i)
	}
	arcs := make([]graph.Arc, len(b.arcs))
	cost := make([]float64, len(b.arcs))
	capacity := make([]float64, len(b.arcs))
	varType := make([]graph.VarType, len(b.arcs))
	for i, spec := range b.arcs {
		a, err := graph.NewArc(i, spec.tails, spec.head)
		if err != nil {
			return nil, err
		}
		arcs[i] = a
		cost[i] = spec.cost
		capacity[i] = spec.capacity
		varType[i] = spec.varType
	}

	net, err := network.New(vertices, arcs)
	if err != nil {
		return nil, err
	}

	p := &Problem{
		net:         net,
		cost:        cost,
		capacity:    capacity,
		varType:     varType,
		commodities: append([]Commodity(nil), b.commodities...),
	}
	p.arcConstraints = containers.NewLinkedListMap[arcCoeff](len(arcs))
	for _, row := range b.rows {
		cp := make(map[int]float64, len(row.coeffs))
		for ai, c := range row.coeffs {
			cp[ai] = c
		}
		p.pushRow(row.kind, row.rhs, row.penalty, cp)
	}
	return p, nil
}
