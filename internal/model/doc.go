// Package model defines the core data structures used throughout sirescan.
//
// This package contains the following main types:
//   - SireEntry: One row of the input stream (name plus sale-year hint)
//   - ResolvedEntity: A stallion's canonical BloodHorse identity (id, slug)
//   - PageFacts: Stud-fee facts extracted from a single auctions page
//   - FactTable: Deduplicated stud-fee facts for one stallion
//   - SireReport / RunReport: Aggregated results handed to report writers
//
// Models live in their own package so that resolver, harvester, report, and
// database can all use them without import cycles. All types are
// serializable to JSON for report output and database storage.
package model
