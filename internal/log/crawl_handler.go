package log

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// sensitiveKeys contains attribute keys that are always redacted.
// The config file lets users attach arbitrary request headers, most
// commonly a Cookie for a session that has passed the site's interstitial,
// so header-shaped attributes are treated as secrets.
var sensitiveKeys = map[string]bool{
	"cookie":              true,
	"set-cookie":          true,
	"authorization":       true,
	"proxy-authorization": true,
	"x-api-key":           true,
	"x-auth-token":        true,
}

// MaskValue is the string used to replace redacted values.
const MaskValue = "***REDACTED***"

// MaxValueLen is the maximum length of a logged string attribute.
// Page bodies run to hundreds of kilobytes; anything longer than this is
// truncated with an ellipsis marker.
const MaxValueLen = 512

// CrawlHandler wraps an slog.Handler to redact header secrets and truncate
// oversized values before records reach the underlying handler. It works
// with any underlying handler (text, JSON, ...).
type CrawlHandler struct {
	handler slog.Handler
}

// NewCrawlHandler creates a CrawlHandler wrapping the given handler.
// If handler is nil, slog.Default().Handler() is used.
func NewCrawlHandler(handler slog.Handler) *CrawlHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &CrawlHandler{handler: handler}
}

// Enabled reports whether the handler handles records at the given level.
func (h *CrawlHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle rewrites the record's attributes and passes it on.
func (h *CrawlHandler) Handle(ctx context.Context, r slog.Record) error {
	clean := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		clean.AddAttrs(h.cleanAttr(a))
		return true
	})
	return h.handler.Handle(ctx, clean)
}

// WithAttrs returns a new handler with the given attributes added,
// cleaned first.
func (h *CrawlHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	cleaned := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		cleaned[i] = h.cleanAttr(a)
	}
	return &CrawlHandler{handler: h.handler.WithAttrs(cleaned)}
}

// WithGroup returns a new handler with the given group name.
func (h *CrawlHandler) WithGroup(name string) slog.Handler {
	return &CrawlHandler{handler: h.handler.WithGroup(name)}
}

// cleanAttr redacts or truncates a single attribute, recursing into groups.
func (h *CrawlHandler) cleanAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		cleaned := make([]slog.Attr, len(attrs))
		for i, ga := range attrs {
			cleaned[i] = h.cleanAttr(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(cleaned...)}
	}

	if sensitiveKeys[strings.ToLower(a.Key)] {
		return slog.String(a.Key, MaskValue)
	}

	if a.Value.Kind() == slog.KindString {
		if s := a.Value.String(); len(s) > MaxValueLen {
			return slog.String(a.Key, s[:MaxValueLen]+"...(truncated)")
		}
	}

	return a
}

// NewCrawlLogger creates a slog.Logger writing text records to w through a
// CrawlHandler. Verbose selects LevelDebug; otherwise only warnings and
// errors are emitted.
func NewCrawlLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	textHandler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(NewCrawlHandler(textHandler))
}
