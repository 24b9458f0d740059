package fetcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"time"

	"sirescan/internal/config"
)

// Client is a rate-limited HTTP GET wrapper.
// It attaches the configured header set to every request, retries transient
// failures a bounded number of times with a jittered sleep in between, and
// exposes a separate Pause used between successive page fetches.
//
// A Client is safe for sequential reuse across many URLs; sirescan never
// issues concurrent requests, by design.
type Client struct {
	// client performs normal requests, following redirects.
	client *http.Client

	// probeClient performs probe requests without following redirects,
	// so the Location header of the first response stays observable.
	probeClient *http.Client

	// userAgent and headers form the fixed identifying header set.
	userAgent string
	headers   map[string]string

	// maxAttempts is the number of tries per request, including the first.
	maxAttempts int

	// retryDelayMin and retryDelayMax bound the jittered sleep between
	// retry attempts. Both zero disables the sleep.
	retryDelayMin time.Duration
	retryDelayMax time.Duration

	// pageDelayMin and pageDelayMax bound the jittered Pause between
	// successive page fetches.
	pageDelayMin time.Duration
	pageDelayMax time.Duration

	// maxBodySize limits how much of a response body is read.
	maxBodySize int64

	logger *slog.Logger
}

// New creates a Client from the configuration.
// The logger may be nil, in which case slog.Default() is used.
func New(cfg *config.Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	transport := http.DefaultTransport

	return &Client{
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		probeClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
			CheckRedirect: func(_ *http.Request, _ []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		userAgent:     cfg.UserAgent,
		headers:       cfg.Headers,
		maxAttempts:   cfg.MaxAttempts,
		retryDelayMin: cfg.RetryDelayMin,
		retryDelayMax: cfg.RetryDelayMax,
		pageDelayMin:  cfg.PageDelayMin,
		pageDelayMax:  cfg.PageDelayMax,
		maxBodySize:   cfg.MaxBodySize,
		logger:        logger,
	}
}

// Fetch GETs url and returns the response body.
// On transport error or non-2xx status it retries up to the configured
// attempt count, sleeping a jittered duration between attempts. When all
// attempts fail it returns ErrFetchFailed; the failure is terminal for the
// page, callers must not retry above this layer.
func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		body, err := c.get(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err
		c.logger.Debug("fetch attempt failed",
			"url", url,
			"attempt", attempt,
			"error", err,
		)

		if attempt < c.maxAttempts {
			if err := c.sleep(ctx, c.retryDelayMin, c.retryDelayMax); err != nil {
				return "", err
			}
		}
	}

	c.logger.Warn("fetch failed after all attempts",
		"url", url,
		"attempts", c.maxAttempts,
	)
	return "", fmt.Errorf("%w: %s: %w", ErrFetchFailed, url, lastErr)
}

// get performs a single GET attempt.
func (c *Client) get(ctx context.Context, url string) (string, error) {
	req, err := c.newRequest(ctx, url)
	if err != nil {
		return "", err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Probe GETs url without following redirects and returns the Location
// header of the response. A non-redirect response yields an empty location
// and a nil error; deciding what that means is the caller's business.
// Retry and jitter behavior matches Fetch.
func (c *Client) Probe(ctx context.Context, url string) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		req, err := c.newRequest(ctx, url)
		if err != nil {
			return "", err
		}

		resp, err := c.probeClient.Do(req)
		if err == nil {
			_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
			_ = resp.Body.Close()

			if resp.StatusCode >= 300 && resp.StatusCode < 400 {
				return resp.Header.Get("Location"), nil
			}
			c.logger.Debug("probe did not redirect",
				"url", url,
				"status", resp.StatusCode,
			)
			return "", nil
		}
		lastErr = err
		c.logger.Debug("probe attempt failed",
			"url", url,
			"attempt", attempt,
			"error", err,
		)

		if attempt < c.maxAttempts {
			if err := c.sleep(ctx, c.retryDelayMin, c.retryDelayMax); err != nil {
				return "", err
			}
		}
	}

	return "", fmt.Errorf("%w: %s: %w", ErrFetchFailed, url, lastErr)
}

// Pause sleeps a jittered duration between successive page fetches for the
// same entity. This is independent of the retry delay; it bounds the
// aggregate request rate against one host. Zero delay bounds make Pause a
// no-op, which tests rely on.
func (c *Client) Pause(ctx context.Context) error {
	return c.sleep(ctx, c.pageDelayMin, c.pageDelayMax)
}

// newRequest builds a GET request carrying the identifying header set.
func (c *Client) newRequest(ctx context.Context, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	return req, nil
}

// sleep waits a duration sampled uniformly from [min, max], honoring
// context cancellation. A non-positive max returns immediately.
func (c *Client) sleep(ctx context.Context, min, max time.Duration) error {
	if max <= 0 {
		return nil
	}

	d := min
	if max > min {
		d += time.Duration(rand.Int64N(int64(max - min + 1)))
	}
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
