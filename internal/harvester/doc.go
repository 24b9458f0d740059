// Package harvester drives the page-year crawl for one resolved stallion
// and merges extracted facts into a deduplicated table.
//
// # Merge rule
//
// Page-years are visited strictly in ascending order, and a fact-year is
// recorded only the first time it is observed. Together those two rules
// make the output reproducible: whatever the earliest-crawled page asserts
// for a fact-year is what the table keeps, even when a later page asserts
// a different amount for the same year. Ascending iteration order is load
// bearing; do not parallelize the loop.
//
// # Failure posture
//
// A page that fails to fetch after the fetcher's own retries is skipped;
// it contributes no facts and causes no further retries. A page without
// the section marker contributes an empty fact set. Neither is an error.
package harvester
