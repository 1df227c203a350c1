package solution

import (
	"fmt"
	"math"
	"sort"

	"github.com/arcflow/arcflow/graph"
	"github.com/arcflow/arcflow/network"
	"github.com/arcflow/arcflow/problem"
)

// decompositionTolerance is the residual below which an arc is treated as
// fully drained during greedy path decomposition.
const decompositionTolerance = 1e-9

// PathFlow is one path of a PathFlowSolution and the amount of flow
// delivered at its sink by that path.
type PathFlow struct {
	Path *graph.Path
	Flow float64
}

// PathFlowSolution is a commodity's flow expressed as a weighted sum of
// elementary source-to-sink paths, equivalent to an ArcFlowSolution whose
// network contains only simple arcs.
type PathFlowSolution struct {
	commodity problem.Commodity
	paths     []PathFlow
}

// Commodity returns the solution's owning commodity.
func (s *PathFlowSolution) Commodity() problem.Commodity { return s.commodity }

// Paths returns the solution's (path, flow) pairs.
func (s *PathFlowSolution) Paths() []PathFlow { return s.paths }

// TotalFlow returns the sum of flow carried across every path.
func (s *PathFlowSolution) TotalFlow() float64 {
	var total float64
	for _, pf := range s.paths {
		total += pf.Flow
	}
	return total
}

// ToArcFlow projects the path-flow solution back onto arc-flow form: for
// each path, arc i accumulates Flow * the path's own multiplicity on that
// arc.
func (s *PathFlowSolution) ToArcFlow() *ArcFlowSolution {
	out := NewArcFlowSolution(s.commodity)
	for _, pf := range s.paths {
		for _, a := range pf.Path.Arcs() {
			out.AddFlow(a, pf.Flow*pf.Path.Multiplicity(a))
		}
	}
	return out
}

// DecomposeToPaths decomposes an arc-flow solution into elementary paths by
// greedily walking from the commodity's source to its sink along arcs with
// positive residual flow, bottlenecking each walk on the arc whose residual
// is most tightly binding once the chain's backward-compounded multipliers
// are accounted for, and subtracting that walk's consumption before
// repeating. It requires a network with only simple arcs.
func DecomposeToPaths(net *network.Network, s *ArcFlowSolution) (*PathFlowSolution, error) {
	for _, a := range net.Arcs() {
		if a.IsHyperArc() {
			return nil, ErrRequiresSimpleArcs
		}
	}

	residual := make(map[int]float64, len(s.flow))
	for ai, f := range s.flow {
		residual[ai] = f
	}

	out := &PathFlowSolution{commodity: s.commodity}

	source, sink := s.commodity.Source(), s.commodity.Sink()
	maxIterations := len(net.Arcs()) + 1
	for iter := 0; iter < maxIterations; iter++ {
		if !hasPositiveOutflow(net, residual, source) {
			break
		}

		arcs, err := traceWalk(net, residual, source, sink)
		if err != nil {
			return nil, err
		}

		coeff := backwardMultiplicities(arcs)
		amount := math.Inf(1)
		for i, a := range arcs {
			bound := residual[a.Index()] / coeff[i]
			if bound < amount {
				amount = bound
			}
		}
		if amount <= decompositionTolerance {
			break
		}

		for i, a := range arcs {
			residual[a.Index()] -= coeff[i] * amount
		}

		p, err := graph.NewPathFromArcs(arcs)
		if err != nil {
			return nil, err
		}
		out.paths = append(out.paths, PathFlow{Path: p, Flow: amount})
	}
	return out, nil
}

func hasPositiveOutflow(net *network.Network, residual map[int]float64, v graph.Vertex) bool {
	for _, a := range net.OutArcs(v) {
		if residual[a.Index()] > decompositionTolerance {
			return true
		}
	}
	return false
}

// traceWalk follows a deterministic (lowest arc index first) source-to-sink
// walk along arcs with positive residual flow.
func traceWalk(net *network.Network, residual map[int]float64, source, sink graph.Vertex) ([]graph.Arc, error) {
	var arcs []graph.Arc
	cur := source
	seen := map[int]bool{}
	for cur != sink {
		out := append([]graph.Arc(nil), net.OutArcs(cur)...)
		sort.Slice(out, func(i, j int) bool { return out[i].Index() < out[j].Index() })

		var next graph.Arc
		found := false
		for _, a := range out {
			if residual[a.Index()] > decompositionTolerance {
				next = a
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("solution: vertex %d: %w", cur.Index(), ErrInfeasibleDecomposition)
		}
		if seen[next.Index()] {
			return nil, fmt.Errorf("solution: arc %d revisited: %w", next.Index(), ErrInfeasibleDecomposition)
		}
		seen[next.Index()] = true
		arcs = append(arcs, next)
		cur = next.Head()
	}
	return arcs, nil
}

// backwardMultiplicities computes, for each arc in a simple-arc chain, the
// multiplicity it must carry to deliver one unit of flow at the chain's
// final head — the same backward compounding NewPathFromArcs performs.
func backwardMultiplicities(arcs []graph.Arc) []float64 {
	n := len(arcs)
	coeff := make([]float64, n)
	coeff[n-1] = 1
	for i := n - 2; i >= 0; i-- {
		downstream, _ := arcs[i+1].SingleTail()
		coeff[i] = coeff[i+1] * downstream.Multiplier
	}
	return coeff
}
