package detect

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/ananya/fraudlens/backend/internal/config"
	"github.com/ananya/fraudlens/backend/internal/domain"
)

// ClusterSource supplies the resource-usage projections the pattern
// detectors aggregate over.
type ClusterSource interface {
	ResourceUsage(ctx context.Context, kind domain.ResourceKind, minClaims int) ([]domain.ResourceUsage, error)
	ConnectionsWithin(ctx context.Context, claimantIDs []string) (int, error)
}

// Thresholds are the per-call detector parameters. Handlers start from a
// detector's Defaults and overlay caller overrides.
type Thresholds struct {
	MinClaims      int
	MinConnections int
	TopN           int
}

// SharedResourceDetector surfaces clusters of socially-linked claimants
// funneling claims through one repair shop or medical provider. Resource
// sharing alone is not suspicious; the connection floor demands social
// linkage on top of the volume floor.
type SharedResourceDetector struct {
	source  ClusterSource
	kind    domain.ResourceKind
	pattern domain.PatternType
	cfg     config.PatternThresholds
	logger  *slog.Logger
}

// NewRepairShopDetector builds the shared-repair-shop detector.
func NewRepairShopDetector(source ClusterSource, cfg config.PatternThresholds, logger *slog.Logger) *SharedResourceDetector {
	return &SharedResourceDetector{
		source:  source,
		kind:    domain.ResourceRepairShop,
		pattern: domain.PatternSharedRepairShop,
		cfg:     cfg,
		logger:  logger,
	}
}

// NewMedicalProviderDetector builds the shared-medical-provider detector.
func NewMedicalProviderDetector(source ClusterSource, cfg config.PatternThresholds, logger *slog.Logger) *SharedResourceDetector {
	return &SharedResourceDetector{
		source:  source,
		kind:    domain.ResourceMedicalProvider,
		pattern: domain.PatternSharedMedicalProvider,
		cfg:     cfg,
		logger:  logger,
	}
}

// Defaults returns the configured thresholds for this detector.
func (d *SharedResourceDetector) Defaults() Thresholds {
	return Thresholds{
		MinClaims:      d.cfg.MinClaims,
		MinConnections: d.cfg.MinConnections,
		TopN:           d.cfg.TopN,
	}
}

// Detect returns candidate clusters ordered by suspicion score descending,
// ties broken by resource id ascending, truncated to TopN.
func (d *SharedResourceDetector) Detect(ctx context.Context, t Thresholds) ([]domain.CandidateCluster, error) {
	if t.MinClaims <= 0 || t.MinConnections <= 0 || t.TopN <= 0 {
		return nil, fmt.Errorf("%w: minClaims=%d minConnections=%d topN=%d",
			ErrInvalidThreshold, t.MinClaims, t.MinConnections, t.TopN)
	}

	usages, err := d.source.ResourceUsage(ctx, d.kind, t.MinClaims)
	if err != nil {
		return nil, fmt.Errorf("%s detector: %w", d.pattern, err)
	}

	clusters := make([]domain.CandidateCluster, 0, len(usages))
	for _, u := range usages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if u.ClaimCount < t.MinClaims {
			continue
		}
		if max := d.cfg.MaxClusterSize; max > 0 && len(u.ClaimantIDs) > max {
			if d.logger != nil {
				d.logger.Warn("skipping oversized cluster",
					"pattern", d.pattern, "resource", u.ResourceID, "claimants", len(u.ClaimantIDs))
			}
			continue
		}

		connections, err := d.source.ConnectionsWithin(ctx, u.ClaimantIDs)
		if err != nil {
			return nil, fmt.Errorf("%s detector: %w", d.pattern, err)
		}
		if connections < t.MinConnections {
			continue
		}

		clusters = append(clusters, domain.CandidateCluster{
			Pattern:        d.pattern,
			ResourceID:     u.ResourceID,
			ResourceName:   u.ResourceName,
			ClaimantIDs:    u.ClaimantIDs,
			ClaimCount:     u.ClaimCount,
			Connections:    connections,
			SuspicionScore: float64(u.ClaimCount)*d.cfg.ClaimWeight + float64(connections)*d.cfg.ConnectionWeight,
		})
	}

	return rankClusters(clusters, t.TopN), nil
}

// RecurringWitnessDetector surfaces witnesses recurring across claims from
// distinct claimants. Recurrence across otherwise-unrelated claimants is the
// signal itself, so there is no connection term.
type RecurringWitnessDetector struct {
	source ClusterSource
	cfg    config.PatternThresholds
	logger *slog.Logger
}

// NewRecurringWitnessDetector builds the recurring-witness detector.
func NewRecurringWitnessDetector(source ClusterSource, cfg config.PatternThresholds, logger *slog.Logger) *RecurringWitnessDetector {
	return &RecurringWitnessDetector{source: source, cfg: cfg, logger: logger}
}

// Defaults returns the configured thresholds for this detector.
func (d *RecurringWitnessDetector) Defaults() Thresholds {
	return Thresholds{MinClaims: d.cfg.MinClaims, TopN: d.cfg.TopN}
}

// Detect returns recurring-witness clusters ranked like the shared-resource
// detectors. MinConnections is ignored: witnesses carry no connection term.
func (d *RecurringWitnessDetector) Detect(ctx context.Context, t Thresholds) ([]domain.CandidateCluster, error) {
	if t.MinClaims <= 0 || t.TopN <= 0 {
		return nil, fmt.Errorf("%w: minClaims=%d topN=%d", ErrInvalidThreshold, t.MinClaims, t.TopN)
	}

	usages, err := d.source.ResourceUsage(ctx, domain.ResourceWitness, t.MinClaims)
	if err != nil {
		return nil, fmt.Errorf("%s detector: %w", domain.PatternRecurringWitness, err)
	}

	clusters := make([]domain.CandidateCluster, 0, len(usages))
	for _, u := range usages {
		if u.ClaimCount < t.MinClaims {
			continue
		}
		clusters = append(clusters, domain.CandidateCluster{
			Pattern:        domain.PatternRecurringWitness,
			ResourceID:     u.ResourceID,
			ResourceName:   u.ResourceName,
			ClaimantIDs:    u.ClaimantIDs,
			ClaimCount:     u.ClaimCount,
			SuspicionScore: float64(u.ClaimCount) * d.cfg.ClaimWeight,
		})
	}

	return rankClusters(clusters, t.TopN), nil
}

func rankClusters(clusters []domain.CandidateCluster, topN int) []domain.CandidateCluster {
	sort.Slice(clusters, func(i, j int) bool {
		if clusters[i].SuspicionScore != clusters[j].SuspicionScore {
			return clusters[i].SuspicionScore > clusters[j].SuspicionScore
		}
		return clusters[i].ResourceID < clusters[j].ResourceID
	})
	if len(clusters) > topN {
		clusters = clusters[:topN]
	}
	return clusters
}
