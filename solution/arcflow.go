package solution

import (
	"github.com/arcflow/arcflow/graph"
	"github.com/arcflow/arcflow/network"
	"github.com/arcflow/arcflow/problem"
)

// ArcFlowSolution is one commodity's flow, keyed by arc index: the amount
// of that commodity delivered at the arc's head.
type ArcFlowSolution struct {
	commodity problem.Commodity
	flow      map[int]float64
}

// NewArcFlowSolution returns an empty arc-flow solution for the given
// commodity.
func NewArcFlowSolution(c problem.Commodity) *ArcFlowSolution {
	return &ArcFlowSolution{commodity: c, flow: map[int]float64{}}
}

// Commodity returns the solution's owning commodity.
func (s *ArcFlowSolution) Commodity() problem.Commodity { return s.commodity }

// Flow returns the amount of the commodity delivered at arc a's head.
func (s *ArcFlowSolution) Flow(a graph.Arc) float64 { return s.flow[a.Index()] }

// AddFlow adds amount to arc a's recorded flow (negative amounts subtract).
func (s *ArcFlowSolution) AddFlow(a graph.Arc, amount float64) {
	if amount == 0 {
		return
	}
	s.flow[a.Index()] += amount
}

// SetFlow overwrites arc a's recorded flow.
func (s *ArcFlowSolution) SetFlow(a graph.Arc, amount float64) { s.flow[a.Index()] = amount }

// Arcs returns the arc indices carrying non-zero flow.
func (s *ArcFlowSolution) Arcs() []int {
	out := make([]int, 0, len(s.flow))
	for ai, f := range s.flow {
		if f != 0 {
			out = append(out, ai)
		}
	}
	return out
}

// DeliveredAtSink returns the flow delivered at the commodity's sink: the
// sum of flow on every arc whose head is the sink.
func (s *ArcFlowSolution) DeliveredAtSink(net *network.Network) float64 {
	var total float64
	for _, a := range net.Arcs() {
		if a.Head() == s.commodity.Sink() {
			total += s.flow[a.Index()]
		}
	}
	return total
}

// IsConserved reports whether the recorded flow satisfies the generalized
// balance invariant at every vertex other than the commodity's source and
// sink: inflow delivered at v equals the flow this assignment requires v to
// supply to its outgoing arcs.
func (s *ArcFlowSolution) IsConserved(net *network.Network, tolerance float64) bool {
	inflow := map[int]float64{}
	required := map[int]float64{}
	for _, a := range net.Arcs() {
		f := s.flow[a.Index()]
		if f == 0 {
			continue
		}
		inflow[a.Head().Index()] += f
		for _, tl := range a.Tails() {
			required[tl.Vertex.Index()] += f * tl.Multiplier
		}
	}
	for _, v := range net.Vertices() {
		if v == s.commodity.Source() || v == s.commodity.Sink() {
			continue
		}
		diff := inflow[v.Index()] - required[v.Index()]
		if diff > tolerance || diff < -tolerance {
			return false
		}
	}
	return true
}
