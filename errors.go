package vector

import "github.com/pkg/errors"

var (
	// ErrAllocation is returned when storage for the requested capacity cannot be obtained.
	ErrAllocation = errors.New("vector: allocation failed")

	// ErrNotCopyable is returned when a copy is requested for an element type
	// that implements NonCopyable.
	ErrNotCopyable = errors.New("vector: element type is not copyable")
)
