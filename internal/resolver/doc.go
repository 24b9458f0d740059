// Package resolver maps free-text sire names to canonical BloodHorse
// identities.
//
// # Architecture
//
// Resolution runs an ordered list of strategies; the first one that finds a
// match wins. Two strategies are built in:
//
//   - probe-redirect: request an auctions page addressed with the sentinel
//     stallion id 0 and a locally guessed slug, and read the id and
//     canonical slug out of the redirect target without following it
//   - search-query: query the register's search endpoint and scan the
//     result markup for the first stallion link
//
// The probe strategy is tried first because it costs a single request and
// the redirect target carries the server's own canonical slug, which
// corrects local guesses. New strategies are added by implementing Strategy
// and registering it; the crawl loop never changes.
//
// A name that no strategy can resolve yields ErrNotFound. That is an
// entity-level, non-fatal outcome: the caller skips the sire and continues.
package resolver
