package resolver

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"sirescan/internal/fetcher"
	"sirescan/internal/model"
)

// stallionHrefPattern matches stallion page links in search result markup,
// e.g. "/stallion-register/stallions/123456/gio-ponti".
var stallionHrefPattern = regexp.MustCompile(`/stallions/(\d{6})/([^/?#"]+)`)

// SearchQueryStrategy resolves a name through the register's search
// endpoint. It queries first with the exact input name, then with the
// slugified name-country variant, and takes the first result link whose
// href matches the stallion URL pattern.
type SearchQueryStrategy struct {
	client  *fetcher.Client
	baseURL string
}

// NewSearchQueryStrategy creates a search-query strategy.
func NewSearchQueryStrategy(client *fetcher.Client, baseURL string) *SearchQueryStrategy {
	return &SearchQueryStrategy{client: client, baseURL: baseURL}
}

// Name returns the strategy name.
func (s *SearchQueryStrategy) Name() string {
	return "search-query"
}

// Resolve queries the search endpoint with each query form in order and
// scans the result markup for the first stallion link.
func (s *SearchQueryStrategy) Resolve(ctx context.Context, entry model.SireEntry) (model.ResolvedEntity, error) {
	for _, query := range s.queries(entry.Name) {
		if err := ctx.Err(); err != nil {
			return model.ResolvedEntity{}, err
		}

		body, err := s.client.Fetch(ctx, s.searchURL(query))
		if err != nil {
			continue
		}

		entity, ok := firstStallionLink(body)
		if ok {
			return entity, nil
		}
	}

	return model.ResolvedEntity{}, ErrNoMatch
}

// queries returns the query forms to try: the exact name, then the
// slugified variant when it differs.
func (s *SearchQueryStrategy) queries(name string) []string {
	exact := strings.TrimSpace(name)
	slug := Slugify(name)
	if slug == "" || slug == exact {
		return []string{exact}
	}
	return []string{exact, slug}
}

// searchURL builds the search endpoint URL for a query.
func (s *SearchQueryStrategy) searchURL(query string) string {
	return fmt.Sprintf("%s/search?keyword=%s", s.baseURL, url.QueryEscape(query))
}

// firstStallionLink scans markup for the first anchor whose href matches
// the stallion URL pattern and returns the identity it encodes. The id in
// the returned entity is always literally present in the markup.
func firstStallionLink(body string) (model.ResolvedEntity, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return model.ResolvedEntity{}, false
	}

	var found model.ResolvedEntity
	var ok bool
	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		m := stallionHrefPattern.FindStringSubmatch(href)
		if m == nil {
			return true
		}
		entity, err := model.NewResolvedEntity(m[1], m[2])
		if err != nil {
			return true
		}
		found, ok = entity, true
		return false
	})

	return found, ok
}
