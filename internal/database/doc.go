// Package database provides SQLite-based persistence for harvest history.
//
// Every completed run can be saved to a single database file in the XDG
// data directory. The history lets the `sirescan history` command answer
// "what did we record for this sire last time" without re-crawling, and
// makes fee changes across runs visible.
//
// The driver is modernc.org/sqlite (pure Go, no cgo), with WAL enabled and
// a single writer connection, which is all SQLite meaningfully supports.
package database
