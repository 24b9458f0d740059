package resolver

import "errors"

// Resolution errors.
var (
	// ErrNotFound is returned when every strategy has been tried and none
	// produced a match. Entity-level and non-fatal: callers skip the sire.
	ErrNotFound = errors.New("no stallion record found")

	// ErrNoMatch is returned by an individual strategy when it cannot
	// resolve the name. The resolver moves on to the next strategy.
	ErrNoMatch = errors.New("strategy found no match")
)
