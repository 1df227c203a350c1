// Package problem defines Problem, the immutable frame (network plus
// per-arc cost/capacity/variable-domain and the commodity list) on top of
// which column generation and branch-and-bound operate, plus its one
// mutable piece of state: a stack of side constraints that
// branch-and-bound pushes and pops to explore the search tree.
//
// Problem is the sole owner of vertices, arcs, per-arc metadata and
// commodities (see DESIGN.md's ownership discipline); every other
// component carries only the indices Problem minted.
//
// Builder is the minimal concrete façade satisfying the external
// problem-building contract: new_vertex/new_arc/new_commodity/
// new_constraint/set_cost/set_capacity/set_var_type/
// set_constraint_coefficient/get_problem. Its fluent ergonomics are
// non-normative; only this contract is.
package problem
