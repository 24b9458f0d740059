package pipeline

import (
	"context"
	"log/slog"

	"sirescan/internal/harvester"
	"sirescan/internal/model"
	"sirescan/internal/resolver"
)

// ResolveStep maps the sire name to its canonical identity.
// A name no strategy can resolve fails the step with resolver.ErrNotFound,
// which the run treats as "skip this sire".
type ResolveStep struct {
	resolver *resolver.Resolver
	logger   *slog.Logger
}

// NewResolveStep creates a resolution step.
func NewResolveStep(r *resolver.Resolver, logger *slog.Logger) *ResolveStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &ResolveStep{resolver: r, logger: logger}
}

// Name returns the step name.
func (s *ResolveStep) Name() string {
	return "resolve"
}

// Do resolves the sire and records the identity and winning strategy.
func (s *ResolveStep) Do(ctx context.Context, report *model.SireReport) error {
	entity, strategy, err := s.resolver.Resolve(ctx, model.SireEntry{
		Name:     report.Sire,
		SaleYear: report.SaleYear,
	})
	if err != nil {
		return err
	}

	report.Resolved = &entity
	report.Strategy = strategy
	s.logger.Info("resolved sire",
		"sire", report.Sire,
		"id", entity.ID,
		"slug", entity.Slug,
		"strategy", strategy,
	)
	return nil
}

// HarvestStep crawls the page-year range for the resolved identity and
// records the deduplicated fee rows. It requires ResolveStep to have run.
type HarvestStep struct {
	harvester *harvester.Harvester
	logger    *slog.Logger
}

// NewHarvestStep creates a harvest step.
func NewHarvestStep(h *harvester.Harvester, logger *slog.Logger) *HarvestStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &HarvestStep{harvester: h, logger: logger}
}

// Name returns the step name.
func (s *HarvestStep) Name() string {
	return "harvest"
}

// Do harvests fees for the resolved identity and records them sorted by
// fact-year.
func (s *HarvestStep) Do(ctx context.Context, report *model.SireReport) error {
	res, err := s.harvester.Harvest(ctx, *report.Resolved)
	if err != nil {
		return err
	}

	report.Fees = res.Table.Rows()
	report.PagesFetched = res.PagesFetched
	report.PagesFailed = res.PagesFailed

	s.logger.Info("harvested sire",
		"sire", report.Sire,
		"feeYears", len(report.Fees),
		"pagesFetched", res.PagesFetched,
		"pagesFailed", res.PagesFailed,
	)
	return nil
}
