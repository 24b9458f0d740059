// Package input loads the sire list consumed by a harvest run.
//
// The input is a CSV file whose header must contain exactly the columns
// Sire and sale_year, in any order. A file that does not conform aborts
// the whole run with ErrInvalidSchema before any crawling begins; this is
// the only fatal error class in the pipeline.
package input
