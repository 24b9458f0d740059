package resolver

import (
	"context"
	"fmt"
	"regexp"

	"sirescan/internal/config"
	"sirescan/internal/fetcher"
	"sirescan/internal/model"
)

// redirectPattern extracts the stallion id and canonical slug from a
// redirect target such as "/stallion-register/stallions/123456/gio-ponti/auctions/2000".
var redirectPattern = regexp.MustCompile(`/stallions/(\d{6})/([^/]+)/auctions/`)

// ProbeRedirectStrategy resolves a name by requesting an auctions page
// addressed with the sentinel stallion id 0 and a locally guessed slug.
// The register answers with a redirect to the canonical page; the Location
// header carries both the six-digit id and the canonical slug.
//
// The returned slug is always the one from the redirect target, never the
// local guess: the server corrects misspelled or incomplete guesses.
type ProbeRedirectStrategy struct {
	client  *fetcher.Client
	baseURL string
}

// NewProbeRedirectStrategy creates a probe-redirect strategy.
func NewProbeRedirectStrategy(client *fetcher.Client, baseURL string) *ProbeRedirectStrategy {
	return &ProbeRedirectStrategy{client: client, baseURL: baseURL}
}

// Name returns the strategy name.
func (s *ProbeRedirectStrategy) Name() string {
	return "probe-redirect"
}

// Resolve probes each slug candidate in order and parses the first
// redirect target that matches the stallion URL pattern.
func (s *ProbeRedirectStrategy) Resolve(ctx context.Context, entry model.SireEntry) (model.ResolvedEntity, error) {
	for _, slug := range Candidates(entry.Name) {
		if err := ctx.Err(); err != nil {
			return model.ResolvedEntity{}, err
		}

		location, err := s.client.Probe(ctx, s.probeURL(slug))
		if err != nil || location == "" {
			continue
		}

		m := redirectPattern.FindStringSubmatch(location)
		if m == nil {
			continue
		}

		entity, err := model.NewResolvedEntity(m[1], m[2])
		if err != nil {
			continue
		}
		return entity, nil
	}

	return model.ResolvedEntity{}, ErrNoMatch
}

// probeURL builds the sentinel-addressed auctions URL for a slug guess.
func (s *ProbeRedirectStrategy) probeURL(slug string) string {
	return fmt.Sprintf("%s/stallions/%s/%s/auctions/%d",
		s.baseURL, config.ProbeSentinelID, slug, config.ProbeSentinelYear)
}
