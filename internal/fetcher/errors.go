package fetcher

import "errors"

// Fetcher errors.
var (
	// ErrFetchFailed is returned when a request still fails after all
	// retry attempts. It is a page-level soft failure: callers skip the
	// page and continue, they do not retry at a higher layer.
	ErrFetchFailed = errors.New("fetch failed after all attempts")
)
