// Package mip defines the narrow black-box LP/MIP engine contract the
// rest of the library builds on (model construction, row/variable
// editing, solve, primal/dual retrieval) and a concrete adapter backed
// by gonum's simplex solver.
//
// Nothing outside this package or the branch-and-bound coordinator
// should need to know which concrete engine is wired in; callers only
// see the Model interface.
package mip
