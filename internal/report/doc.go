// Package report renders harvest results in the supported output formats.
//
// Writers implement a single Writer interface so the command layer can
// write to stdout, a file, or both without caring about the format:
//
//   - CSVWriter: the tidy Sire,stud_fee_year,stud_fee_usd stream (default)
//   - JSONWriter: the full RunReport for tool integration
//   - MarkdownWriter: a human-readable document, one section per sire
//
// Rows are emitted in input order and sorted ascending by fact-year within
// each sire; an unresolved sire contributes no rows. No partial rows are
// ever written: a page that failed to fetch or parse simply never reached
// the report.
package report
