// Package branch is the branch-and-bound coordinator: it solves a
// Problem's LP relaxation by column generation, applies reduced-cost
// variable fixing, and — if the relaxation is not already
// integer-feasible — explores an unbalanced branching tree of arc
// families, falling back to an exact MIP solve at each leaf.
//
// The coordinator is the Problem's sole writer: every push it makes onto
// the constraint stack is matched by exactly one pop before Solve
// returns, on every exit path including error.
package branch
