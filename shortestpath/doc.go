// Package shortestpath implements the bidirectional generalized
// shortest-path engine pricing uses to cost a commodity's cheapest
// source-to-sink unit delivery and, for non-hyper networks, the
// per-arc minimum-unit-flow cost and path used by RCVF and
// multi-path pricing.
//
// A ShortestPathGenerator is built once per network and reused across
// every pricing iteration: it caches the topological order and the
// label buffers, resetting them in O(1) between solves instead of
// reallocating.
package shortestpath
