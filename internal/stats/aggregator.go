// Package stats provides the population baselines and dashboard rollups the
// scorer and presentation layer share. Everything is recomputed from the
// current graph on each call; there is no cache to invalidate.
package stats

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ananya/fraudlens/backend/internal/domain"
)

// Source is the read contract the aggregator needs.
type Source interface {
	ClaimAmountStats(ctx context.Context, claimType string) (domain.AmountStats, error)
	Overview(ctx context.Context) (domain.GraphOverview, error)
}

// Aggregator rolls up graph-wide counts and per-claim-type baselines.
type Aggregator struct {
	source Source
	logger *slog.Logger
}

// New wires an aggregator over the given source.
func New(source Source, logger *slog.Logger) *Aggregator {
	return &Aggregator{source: source, logger: logger}
}

// AmountBaseline returns mean/stdev of claim amounts for one claim type.
func (a *Aggregator) AmountBaseline(ctx context.Context, claimType string) (domain.AmountStats, error) {
	stats, err := a.source.ClaimAmountStats(ctx, claimType)
	if err != nil {
		return domain.AmountStats{}, fmt.Errorf("amount baseline for %s: %w", claimType, err)
	}
	return stats, nil
}

// Overview returns the graph-wide rollup for dashboard consumption.
func (a *Aggregator) Overview(ctx context.Context) (domain.GraphOverview, error) {
	overview, err := a.source.Overview(ctx)
	if err != nil {
		return domain.GraphOverview{}, fmt.Errorf("graph overview: %w", err)
	}
	if a.logger != nil {
		a.logger.Debug("computed graph overview",
			"claimants", overview.Claimants, "claims", overview.Claims, "rings", overview.Rings)
	}
	return overview, nil
}
