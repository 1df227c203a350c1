package shortestpath

import "errors"

var (
	// ErrHyperGraphUnsupported is returned by any derived query (min-unit-
	// flow cost/path, backward labels) that is only defined over networks
	// with no hyper-arcs.
	ErrHyperGraphUnsupported = errors.New("shortestpath: operation unsupported on a hyper-graph")

	// ErrUnreached is returned by path reconstruction when it reaches a
	// vertex with no finite label: it is not reachable from the source, or
	// not co-reachable with the sink. MinUnitFlowCost does not return it;
	// it reports such an arc's cost as +Inf.
	ErrUnreached = errors.New("shortestpath: vertex unreached")

	// ErrCycleInLabels is returned by path reconstruction when walking
	// entering arcs revisits a vertex, which would only happen if the
	// acyclicity invariant the network was built under was violated.
	ErrCycleInLabels = errors.New("shortestpath: cycle detected while reconstructing path")
)
