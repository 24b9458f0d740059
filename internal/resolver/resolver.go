package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"sirescan/internal/config"
	"sirescan/internal/fetcher"
	"sirescan/internal/model"
)

// Strategy is a single way of resolving a sire name to a canonical
// identity. Strategies report ErrNoMatch when they cannot resolve the name;
// any other error is treated the same way, since resolution failures are
// never fatal for the run.
type Strategy interface {
	// Name returns the strategy's name for logging and reporting.
	Name() string

	// Resolve attempts to resolve the entry to a canonical identity.
	Resolve(ctx context.Context, entry model.SireEntry) (model.ResolvedEntity, error)
}

// Resolver tries an ordered list of strategies; the first success wins.
type Resolver struct {
	strategies []Strategy
	logger     *slog.Logger
}

// New creates a Resolver with the built-in strategies in priority order:
// probe-redirect first, search-query second.
func New(client *fetcher.Client, cfg *config.Config, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		strategies: []Strategy{
			NewProbeRedirectStrategy(client, cfg.BaseURL),
			NewSearchQueryStrategy(client, cfg.BaseURL),
		},
		logger: logger,
	}
}

// NewWithStrategies creates a Resolver with an explicit strategy list.
// Used by tests and by callers that want a custom priority order.
func NewWithStrategies(logger *slog.Logger, strategies ...Strategy) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{strategies: strategies, logger: logger}
}

// Resolve maps a sire name to its canonical identity. It returns the
// resolved entity and the name of the strategy that matched. When every
// strategy fails it returns ErrNotFound; that outcome is not retried.
func (r *Resolver) Resolve(ctx context.Context, entry model.SireEntry) (model.ResolvedEntity, string, error) {
	for _, s := range r.strategies {
		entity, err := s.Resolve(ctx, entry)
		if err == nil {
			r.logger.Debug("resolved",
				"sire", entry.Name,
				"strategy", s.Name(),
				"id", entity.ID,
				"slug", entity.Slug,
			)
			return entity, s.Name(), nil
		}
		if ctx.Err() != nil {
			return model.ResolvedEntity{}, "", ctx.Err()
		}
		if !errors.Is(err, ErrNoMatch) {
			r.logger.Debug("strategy failed",
				"sire", entry.Name,
				"strategy", s.Name(),
				"error", err,
			)
		}
	}

	return model.ResolvedEntity{}, "", fmt.Errorf("%w: %q", ErrNotFound, entry.Name)
}
