package harvester

import (
	"context"
	"fmt"
	"log/slog"

	"sirescan/internal/config"
	"sirescan/internal/model"
)

// Fetcher is the networking primitive the harvester depends on.
// *fetcher.Client satisfies it; tests substitute deterministic fakes so no
// live requests or real sleeps happen in the suite.
type Fetcher interface {
	// Fetch GETs a URL and returns the body, or an error when the page
	// could not be retrieved after the fetcher's own retries.
	Fetch(ctx context.Context, url string) (string, error)

	// Pause blocks for the inter-page politeness delay.
	Pause(ctx context.Context) error
}

// Extractor turns one fetched body into page facts.
// *extractor.Extractor satisfies it.
type Extractor interface {
	Extract(body string, pageYear int) model.PageFacts
}

// Result is the outcome of harvesting one stallion.
type Result struct {
	// Table holds the deduplicated facts.
	Table *model.FactTable

	// PagesFetched counts pages successfully retrieved.
	PagesFetched int

	// PagesFailed counts page-years skipped after fetch failure.
	PagesFailed int
}

// Harvester iterates the configured page-year range for resolved stallions.
type Harvester struct {
	fetcher   Fetcher
	extractor Extractor

	baseURL   string
	firstYear int
	lastYear  int

	logger *slog.Logger
}

// New creates a Harvester from the configuration.
func New(f Fetcher, e Extractor, cfg *config.Config, logger *slog.Logger) *Harvester {
	if logger == nil {
		logger = slog.Default()
	}
	return &Harvester{
		fetcher:   f,
		extractor: e,
		baseURL:   cfg.BaseURL,
		firstYear: cfg.FirstPageYear,
		lastYear:  cfg.LastPageYear,
		logger:    logger,
	}
}

// Harvest visits every page-year in the configured closed range, ascending,
// and merges extracted facts first-observation-wins. The range endpoints
// are a crawl parameter, independent of the stallion.
//
// Page-year and fact-year are independent axes: a page addressed with 2015
// may assert fees for 2014 or 2016, and the merge treats them like any
// other fact-year.
func (h *Harvester) Harvest(ctx context.Context, entity model.ResolvedEntity) (Result, error) {
	res := Result{Table: model.NewFactTable()}

	for pageYear := h.firstYear; pageYear <= h.lastYear; pageYear++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		url := h.pageURL(entity, pageYear)
		body, err := h.fetcher.Fetch(ctx, url)
		if err != nil {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			// Soft failure: the page contributes no facts.
			res.PagesFailed++
			h.logger.Debug("page skipped",
				"stallion", entity.String(),
				"pageYear", pageYear,
				"error", err,
			)
			continue
		}
		res.PagesFetched++

		facts := h.extractor.Extract(body, pageYear)
		inserted := res.Table.Merge(facts)
		h.logger.Debug("page harvested",
			"stallion", entity.String(),
			"pageYear", pageYear,
			"factsFound", len(facts),
			"factsNew", inserted,
		)

		if pageYear < h.lastYear {
			if err := h.fetcher.Pause(ctx); err != nil {
				return res, err
			}
		}
	}

	return res, nil
}

// pageURL builds the auctions page URL for a stallion and page-year.
func (h *Harvester) pageURL(entity model.ResolvedEntity, pageYear int) string {
	return fmt.Sprintf("%s/stallions/%s/%s/auctions/%d",
		h.baseURL, entity.ID, entity.Slug, pageYear)
}
