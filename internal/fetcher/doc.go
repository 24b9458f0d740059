// Package fetcher provides the polite HTTP primitive used by every network
// operation in sirescan.
//
// The Client wraps net/http with the crawl politeness policy: a realistic
// identifying header set, a per-request timeout, bounded retries with a
// jittered sleep between attempts, and a separate jittered pause used by
// callers between successive page fetches against the same host.
//
// The fetcher has no knowledge of document semantics. It returns bodies as
// strings and leaves interpretation to the extractor and resolver.
package fetcher
