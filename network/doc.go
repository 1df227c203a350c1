// Package network wraps an ordered vertex and arc set with the derived
// structure pricing and branching need: O(1) arc membership, an
// outgoing-arc index per vertex, a hyper-graph flag, and a topological
// sort over the (assumed acyclic) arc set.
//
// Network never copies per-arc metadata (cost, capacity, variable domain,
// side-constraint coefficients) — that stays with Problem. Filter, used by
// reduced-cost variable fixing, therefore only ever touches the arc index
// set, never the metadata arrays it is keyed into.
package network
