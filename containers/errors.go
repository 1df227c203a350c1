package containers

import "errors"

// Sentinel errors for the containers package. Callers must branch with
// errors.Is, never by string comparison.
var (
	// ErrIndexOutOfRange indicates a key's Index() fell outside the domain
	// the container was constructed for.
	ErrIndexOutOfRange = errors.New("containers: index out of range")

	// ErrUnknownListID indicates an operation referenced a list-id outside
	// the fixed domain a LinkedListMap was constructed with.
	ErrUnknownListID = errors.New("containers: unknown list id")
)
