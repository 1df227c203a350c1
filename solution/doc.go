// Package solution defines the primal and dual result types column
// generation and branch-and-bound produce: ArcFlowSolution and
// PathFlowSolution (with flow decomposition between the two),
// PrimalSolution (one ArcFlowSolution per commodity), and DualSolution
// (the four dual maps the RMP exposes to pricing).
//
// Solutions hold only keys (arc and commodity indices) into the owning
// Problem's arrays; they never copy Problem's metadata.
package solution
