// Package arcflow is a black-box multi-commodity generalized flow
// optimizer: give it a network of simple or hyper-arcs with per-arc
// multipliers, costs, capacities and variable domains, a set of
// commodities, and any side constraints, and it routes flow by column
// generation, reduced-cost variable fixing, and unbalanced branch-and-bound.
//
// The entry points are Optimize (the full branch-and-bound pipeline),
// OptimizeLinearRelaxation (column generation only, no integrality), and
// OptimizeByMIPSolver (a single direct MIP solve, bypassing column
// generation). FilterArcsByReducedCost exposes the reduced-cost variable
// fixing step on its own, and the Get* helpers read values back out of a
// Solution once one of the Optimize calls has produced one.
package arcflow
