// Package extractor pulls stud-fee facts out of fetched auctions pages.
//
// Extraction is deliberately regex-driven rather than a structural parse:
// the register exposes no stable markup schema at this level of access, and
// a tolerant pattern survives the incidental markup churn that breaks
// selector-based scraping. The trade is strict correctness for resilience.
//
// A page must contain the configured section marker before any pattern
// matching happens; a page without it simply has no applicable data and
// yields an empty result, not an error.
package extractor
