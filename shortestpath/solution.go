package shortestpath

import (
	"math"

	"github.com/arcflow/arcflow/containers"
	"github.com/arcflow/arcflow/graph"
)

// Label is one vertex's best-known cost and hop count in a forward or
// backward propagation, plus the arc that realized it.
type Label struct {
	Value       float64
	Hops        int
	EnteringArc graph.Arc
	HasArc      bool
}

var unreachedLabel = Label{Value: math.Inf(1), Hops: math.MaxInt32}

// dominates reports whether candidate strictly improves on incumbent under
// the engine's dominance rule: lower value, or equal value and fewer hops.
func dominates(candidate, incumbent Label) bool {
	if candidate.Value < incumbent.Value {
		return true
	}
	return candidate.Value == incumbent.Value && candidate.Hops < incumbent.Hops
}

// ShortestPathSolution holds one solve's forward labels (always computed)
// and backward labels (only for non-hyper networks), keyed densely by
// vertex index.
type ShortestPathSolution struct {
	source, sink graph.Vertex
	isHyper      bool

	forward  *containers.IndexedMap[graph.Vertex, Label]
	backward *containers.IndexedMap[graph.Vertex, Label]
}

// ForwardLabel returns v's forward label: the minimum cost of delivering
// one unit of flow at v starting from the solve's source.
func (s *ShortestPathSolution) ForwardLabel(v graph.Vertex) Label { return s.forward.Get(v) }

// BackwardLabel returns v's backward label: the minimum cost such that one
// unit leaving v reaches the solve's sink. Only meaningful for non-hyper
// networks.
func (s *ShortestPathSolution) BackwardLabel(v graph.Vertex) Label { return s.backward.Get(v) }

// Source returns the solve's source vertex.
func (s *ShortestPathSolution) Source() graph.Vertex { return s.source }

// Sink returns the solve's sink vertex.
func (s *ShortestPathSolution) Sink() graph.Vertex { return s.sink }

// IsHyperGraph reports whether the solve ran over a hyper-graph, in which
// case backward labels and the derived per-arc queries are unavailable.
func (s *ShortestPathSolution) IsHyperGraph() bool { return s.isHyper }

// OptimalCost returns the forward label value at the sink: the cheapest
// cost of delivering one unit of flow from source to sink.
func (s *ShortestPathSolution) OptimalCost() float64 { return s.forward.Get(s.sink).Value }
