// Package graph defines the primitive value types of the flow model:
// Vertex, Arc (single- or multi-tail, with per-tail flow multipliers),
// HyperTree (a balanced, resource-compatible arc set with one net-inflow
// head), and Path (a HyperTree that reduces to a single directed chain).
//
// Following the ownership discipline of the wider module (see DESIGN.md),
// values here carry only a dense integer index and the data needed to
// describe their own shape; the Problem that creates them owns all
// relational bookkeeping (cost, capacity, variable domain, constraint
// coefficients) in index-keyed side arrays.
package graph
