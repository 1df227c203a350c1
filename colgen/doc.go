// Package colgen builds the restricted master problem (RMP) over a
// Problem's commodities and side constraints, prices new columns
// against the RMP's dual solution with the bidirectional shortest-path
// engine, and drives the column-generation loop to convergence.
//
// The RMP's rows (demand, capacity, flow-conservation, arc-capacity,
// side-constraint) and its Column admission rule follow the layout the
// branch-and-bound coordinator in package branch assumes; colgen never
// mutates a Problem's constraint stack itself — only the coordinator
// pushes and pops.
package colgen
