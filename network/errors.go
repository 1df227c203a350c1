package network

import "errors"

// Sentinel errors for the network package.
var (
	// ErrDanglingArc indicates an arc references a vertex outside the
	// network's vertex set, violating the containment invariant.
	ErrDanglingArc = errors.New("network: arc references a vertex outside the network")

	// ErrCycleDetected is fatal to the current solve: the shortest-path
	// and branch-and-bound layers both assume an acyclic arc set.
	ErrCycleDetected = errors.New("network: cycle detected during topological sort")
)
