// Package pipeline orchestrates the per-sire processing flow.
//
// Each input sire runs through an ordered list of steps that accumulate
// into a SireReport: resolve the name to a canonical identity, then harvest
// the auctions pages. Persistence is not a step; it happens once per run,
// after all sires. A step failure stops that sire's pipeline; the run
// continues with the next sire, because per-entity failures are never
// fatal.
//
// Sires are processed strictly one at a time. Concurrent pipelines would
// defeat the politeness policy the fetcher enforces against the register.
package pipeline
