// Package log provides crawl-aware logging built on top of the standard
// slog package.
//
// The CrawlHandler wraps any slog.Handler and:
//   - redacts request-header attributes that may carry session secrets
//     (Cookie, Authorization and friends), which sirescan config files can
//     inject into every request
//   - truncates oversized string attributes, so debug logging of page
//     bodies or long redirect targets never floods the terminal
//
// Even in verbose mode, redaction stays active: debug logs are the ones
// most likely to be pasted into bug reports.
//
// Usage:
//
//	logger := log.NewCrawlLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
package log
