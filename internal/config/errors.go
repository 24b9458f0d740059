package config

import "errors"

// Configuration validation errors.
// These are returned by Config.Validate and identify exactly which setting
// is wrong. Package-level sentinels allow callers to use errors.Is while
// still carrying a human-readable message.
var (
	// ErrNoInput is returned when no input CSV file is specified.
	ErrNoInput = errors.New("no input file specified: use --input with a CSV of Sire,sale_year rows")

	// ErrInvalidBaseURL is returned when the base URL is empty.
	ErrInvalidBaseURL = errors.New("invalid base URL: must not be empty")

	// ErrInvalidTimeout is returned when the request timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidMaxAttempts is returned when the attempt count is not positive.
	ErrInvalidMaxAttempts = errors.New("invalid max attempts: must be positive")

	// ErrInvalidRetryDelay is returned when the retry delay bounds are
	// negative or inverted.
	ErrInvalidRetryDelay = errors.New("invalid retry delay: bounds must be non-negative and min <= max")

	// ErrInvalidPageDelay is returned when the page delay bounds are
	// negative or inverted.
	ErrInvalidPageDelay = errors.New("invalid page delay: bounds must be non-negative and min <= max")

	// ErrInvalidYearRange is returned when the first page-year is after
	// the last page-year.
	ErrInvalidYearRange = errors.New("invalid page-year range: first year must not exceed last year")

	// ErrEmptySectionMarker is returned when the section marker is empty.
	// An empty marker would turn the extraction gate into a no-op.
	ErrEmptySectionMarker = errors.New("invalid section marker: must not be empty")

	// ErrInvalidFeeYearSource is returned when the fee-year convention is
	// not one of "literal" or "prior-page-year".
	ErrInvalidFeeYearSource = errors.New(`invalid fee-year source: must be "literal" or "prior-page-year"`)

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified. Only one output format can be used.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")
)
