package graph

import "errors"

// Error types for the graph package.
var (
	// ErrIncompatibleRedefinition is returned when a node is declared more
	// than once with disagreeing payload types.
	ErrIncompatibleRedefinition = errors.New("incompatible redefinition")

	// ErrDuplicateEdge is returned when the same directed (from, to) pair is
	// declared twice, regardless of arrow spelling.
	ErrDuplicateEdge = errors.New("duplicate edge definition")

	// ErrNoEdges is returned when a graph defines no transitions at all.
	ErrNoEdges = errors.New("must define at least one edge")

	// ErrDuplicateMethod is returned when two edges leaving the same node
	// derive the same method name.
	ErrDuplicateMethod = errors.New("duplicate method name")
)

// EdgeError ties a validation failure to the edge that triggered it, so the
// front end can point at the edge's source position.
type EdgeError struct {
	Key EdgeKey
	Err error
}

func (e *EdgeError) Error() string { return e.Err.Error() }

func (e *EdgeError) Unwrap() error { return e.Err }
