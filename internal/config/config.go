package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// The politeness values mirror the behavior the BloodHorse site tolerates
// well in practice: small jittered delays between pages and a short bounded
// retry loop per request.
const (
	// DefaultBaseURL is the root of the BloodHorse stallion register.
	// All crawl and resolution URLs are built relative to this.
	// Tests override it with an httptest server address.
	DefaultBaseURL = "https://www.bloodhorse.com/stallion-register"

	// DefaultUserAgent is a realistic desktop browser User-Agent. The
	// register serves an interstitial to obviously robotic clients, so we
	// identify as a mainstream browser.
	DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

	// DefaultTimeout is the per-request timeout. Auctions pages are small;
	// anything slower than this is effectively down.
	DefaultTimeout = 12 * time.Second

	// DefaultMaxAttempts is the number of tries per request, including the
	// first. Transient 5xx responses from the register usually clear on
	// the second attempt.
	DefaultMaxAttempts = 3

	// DefaultRetryDelayMin and DefaultRetryDelayMax bound the jittered
	// sleep between retry attempts of a single request.
	DefaultRetryDelayMin = 2 * time.Second
	DefaultRetryDelayMax = 4 * time.Second

	// DefaultPageDelayMin and DefaultPageDelayMax bound the jittered sleep
	// between successive auctions-page fetches for the same stallion.
	// This is independent of the retry delay and exists purely to cap the
	// aggregate request rate against the host.
	DefaultPageDelayMin = 1 * time.Second
	DefaultPageDelayMax = 3 * time.Second

	// DefaultFirstPageYear and DefaultLastPageYear delimit the auctions
	// pages visited per stallion. Both endpoints are inclusive. This is a
	// crawl parameter, not a property of any stallion.
	DefaultFirstPageYear = 2006
	DefaultLastPageYear  = 2025

	// DefaultSectionMarker is the literal substring an auctions page must
	// contain before fee extraction is attempted. Stud fees are listed in
	// the Weanlings results table only.
	DefaultSectionMarker = "Weanlings"

	// DefaultMaxBodySize limits the response body size read per page.
	// 5MB is far beyond any real auctions page and prevents memory
	// exhaustion from unexpected responses.
	DefaultMaxBodySize = 5 * 1024 * 1024

	// ProbeSentinelID is the stallion id used in probe-redirect URLs.
	// The register redirects requests for id 0 to the canonical page of
	// whatever stallion the slug matches.
	ProbeSentinelID = "0"

	// ProbeSentinelYear is the page-year used in probe-redirect URLs.
	// Any year works for the probe; the redirect preserves the path shape.
	ProbeSentinelYear = 2000

	// AppName is the application name used for XDG directory paths.
	AppName = "sirescan"
)

// FeeYearSource selects how the fact-year of an extracted fee is derived.
// The source scripts this tool descends from disagreed on the convention,
// so it is an explicit configuration choice rather than a hardcoded rule.
type FeeYearSource string

const (
	// FeeYearLiteral takes the four-digit year embedded in the fee text as
	// the fact-year. This is the default.
	FeeYearLiteral FeeYearSource = "literal"

	// FeeYearPriorPageYear records every fee found on a page against
	// pageYear-1, following the "weanlings sold in Y carry the fee charged
	// in Y-1" convention.
	FeeYearPriorPageYear FeeYearSource = "prior-page-year"
)

// Valid reports whether the FeeYearSource is a known value.
func (s FeeYearSource) Valid() bool {
	return s == FeeYearLiteral || s == FeeYearPriorPageYear
}

// Config holds all configuration options for sirescan.
// It is populated from CLI flags and an optional YAML file, validated once,
// and then treated as read-only for the whole run. Components receive it by
// injection rather than through global state.
type Config struct {
	// BaseURL is the root URL for all register requests.
	BaseURL string

	// UserAgent is the User-Agent header sent with every request.
	UserAgent string

	// Headers are extra HTTP headers added to every request, e.g. a
	// Cookie from the config file. Values may be sensitive and are
	// redacted by the log handler.
	Headers map[string]string

	// Timeout is the per-request timeout.
	Timeout time.Duration

	// MaxAttempts is the number of tries per request, including the first.
	MaxAttempts int

	// RetryDelayMin and RetryDelayMax bound the jittered sleep between
	// retry attempts. Zero bounds disable the sleep, which tests rely on.
	RetryDelayMin time.Duration
	RetryDelayMax time.Duration

	// PageDelayMin and PageDelayMax bound the jittered sleep between
	// successive page fetches for one stallion.
	PageDelayMin time.Duration
	PageDelayMax time.Duration

	// FirstPageYear and LastPageYear delimit the crawled auctions pages,
	// both inclusive.
	FirstPageYear int
	LastPageYear  int

	// SectionMarker gates fee extraction: pages without this substring
	// contribute no facts.
	SectionMarker string

	// FeeYearSource selects the fact-year convention for extracted fees.
	FeeYearSource FeeYearSource

	// MaxBodySize is the maximum response body size in bytes to read.
	MaxBodySize int64

	// InputFile is the CSV file of Sire,sale_year rows to process.
	InputFile string

	// OutputFile is where the report is written. Empty means stdout.
	OutputFile string

	// JSONReport selects JSON output instead of the default CSV.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport selects Markdown output instead of the default CSV.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ConfigFilePath is the path to the YAML configuration file. Empty
	// means search the standard locations.
	ConfigFilePath string

	// DBDir is the directory holding the SQLite harvest history database.
	// Empty disables persistence.
	DBDir string

	// SaveToDB indicates whether harvest results are saved to the history
	// database. Set automatically when DBDir is configured.
	SaveToDB bool

	// Verbose enables slog.LevelDebug output. When false, only warnings
	// and errors are logged.
	Verbose bool
}

// New creates a Config with default values. Many defaults are non-zero, so
// callers must start from New rather than a zero Config.
func New() *Config {
	return &Config{
		BaseURL:       DefaultBaseURL,
		UserAgent:     DefaultUserAgent,
		Timeout:       DefaultTimeout,
		MaxAttempts:   DefaultMaxAttempts,
		RetryDelayMin: DefaultRetryDelayMin,
		RetryDelayMax: DefaultRetryDelayMax,
		PageDelayMin:  DefaultPageDelayMin,
		PageDelayMax:  DefaultPageDelayMax,
		FirstPageYear: DefaultFirstPageYear,
		LastPageYear:  DefaultLastPageYear,
		SectionMarker: DefaultSectionMarker,
		FeeYearSource: FeeYearLiteral,
		MaxBodySize:   DefaultMaxBodySize,
	}
}

// XDGDataDir returns the XDG data directory for sirescan.
// On Linux: ~/.local/share/sirescan.
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for sirescan.
// On Linux: ~/.config/sirescan.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks the configuration and returns the first problem found as
// a sentinel error. It is called once after flag and file loading, before
// any input is read or any request is made.
func (c *Config) Validate() error {
	if c.InputFile == "" {
		return ErrNoInput
	}
	if c.BaseURL == "" {
		return ErrInvalidBaseURL
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.MaxAttempts <= 0 {
		return ErrInvalidMaxAttempts
	}
	if c.RetryDelayMin < 0 || c.RetryDelayMax < c.RetryDelayMin {
		return ErrInvalidRetryDelay
	}
	if c.PageDelayMin < 0 || c.PageDelayMax < c.PageDelayMin {
		return ErrInvalidPageDelay
	}
	if c.FirstPageYear > c.LastPageYear {
		return ErrInvalidYearRange
	}
	if c.SectionMarker == "" {
		return ErrEmptySectionMarker
	}
	if !c.FeeYearSource.Valid() {
		return ErrInvalidFeeYearSource
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}
	return nil
}
