// Package main provides the entry point for the sirescan CLI.
//
// sirescan harvests stud-fee histories for Thoroughbred stallions from the
// BloodHorse stallion register. It resolves sire names to canonical
// stallion identities, crawls their auctions pages over a fixed range of
// page-years, and writes a tidy fee table.
//
// Usage:
//
//	sirescan harvest --input sires.csv --output fees.csv
//	sirescan resolve "Gio Ponti"
//
// See --help for all available options.
package main

// main is the entry point for sirescan.
func main() {
	Execute()
}
