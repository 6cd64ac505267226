package detect

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ananya/fraudlens/backend/internal/config"
	"github.com/ananya/fraudlens/backend/internal/domain"
)

// ScoreSource is the read contract the propensity scorer needs. Every method
// is a bounded read against the current graph snapshot.
type ScoreSource interface {
	ClaimContext(ctx context.Context, claimID string) (domain.ClaimContext, error)
	RingConnectionCount(ctx context.Context, claimantID string) (int, error)
	ResourceClaimTotal(ctx context.Context, resourceID string, kind domain.ResourceKind) (int, error)
	LawyerClientCount(ctx context.Context, lawyerID string) (int, error)
	ClaimHistory(ctx context.Context, claimantID string) (domain.ClaimHistory, error)
	SharedAddressCount(ctx context.Context, claimantID string) (int, error)
	ClaimAmountStats(ctx context.Context, claimType string) (domain.AmountStats, error)
}

// PropensityScorer converts one claim's graph neighborhood into a bounded
// [0,100] risk score with attributed factors. Pure read-and-compute; factor
// order is fixed so explanations are reproducible.
type PropensityScorer struct {
	source ScoreSource
	cfg    config.ScoringConfig
	logger *slog.Logger
}

// NewPropensityScorer wires a scorer over the given source.
func NewPropensityScorer(source ScoreSource, cfg config.ScoringConfig, logger *slog.Logger) *PropensityScorer {
	return &PropensityScorer{source: source, cfg: cfg, logger: logger}
}

// ScoreClaim scores a single claim. Returns domain.ErrClaimNotFound (wrapped)
// for an unknown claim; any factor sub-query failure fails the whole call so
// a partial score never understates risk.
func (s *PropensityScorer) ScoreClaim(ctx context.Context, claimID string) (domain.ScoreResult, error) {
	cc, err := s.source.ClaimContext(ctx, claimID)
	if err != nil {
		return domain.ScoreResult{}, err
	}

	var factors []domain.ScoreFactor
	var total float64
	add := func(f *domain.ScoreFactor) {
		if f != nil {
			factors = append(factors, *f)
			total += f.Score
		}
	}

	// Fixed evaluation order.
	f, err := s.ringConnections(ctx, cc)
	if err != nil {
		return domain.ScoreResult{}, err
	}
	add(f)

	f, err = s.suspiciousRepairShop(ctx, cc)
	if err != nil {
		return domain.ScoreResult{}, err
	}
	add(f)

	f, err = s.suspiciousMedicalProvider(ctx, cc)
	if err != nil {
		return domain.ScoreResult{}, err
	}
	add(f)

	f, err = s.suspiciousLawyer(ctx, cc)
	if err != nil {
		return domain.ScoreResult{}, err
	}
	add(f)

	f, err = s.multipleClaims(ctx, cc)
	if err != nil {
		return domain.ScoreResult{}, err
	}
	add(f)

	f, err = s.sharedAddress(ctx, cc)
	if err != nil {
		return domain.ScoreResult{}, err
	}
	add(f)

	f, err = s.amountOutlier(ctx, cc)
	if err != nil {
		return domain.ScoreResult{}, err
	}
	add(f)

	if total > s.cfg.TotalCap {
		total = s.cfg.TotalCap
	}

	result := domain.ScoreResult{
		ClaimID:        claimID,
		Score:          total,
		RiskLevel:      s.riskLevel(total),
		Factors:        factors,
		Recommendation: s.recommendation(total),
	}
	if s.logger != nil {
		s.logger.Info("scored claim",
			"claim", claimID, "score", total, "risk", result.RiskLevel, "factors", len(factors))
	}
	return result, nil
}

func (s *PropensityScorer) riskLevel(total float64) domain.RiskLevel {
	switch {
	case total >= s.cfg.HighTier:
		return domain.RiskHigh
	case total >= s.cfg.MediumTier:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}

func (s *PropensityScorer) recommendation(total float64) string {
	if total >= s.cfg.InvestigateAt {
		return domain.RecommendInvestigate
	}
	return domain.RecommendStandard
}

func (s *PropensityScorer) ringConnections(ctx context.Context, cc domain.ClaimContext) (*domain.ScoreFactor, error) {
	count, err := s.source.RingConnectionCount(ctx, cc.ClaimantID)
	if err != nil {
		return nil, err
	}
	score, severity, ok := factorScore(s.cfg.RingConnections, float64(count))
	if !ok {
		return nil, nil
	}
	return &domain.ScoreFactor{
		Name:        "ring_connections",
		Score:       score,
		Description: fmt.Sprintf("Connected to %d known fraud ring member(s)", count),
		Severity:    severity,
	}, nil
}

func (s *PropensityScorer) suspiciousRepairShop(ctx context.Context, cc domain.ClaimContext) (*domain.ScoreFactor, error) {
	if cc.ShopID == "" {
		return nil, nil
	}
	count, err := s.source.ResourceClaimTotal(ctx, cc.ShopID, domain.ResourceRepairShop)
	if err != nil {
		return nil, err
	}
	score, severity, ok := factorScore(s.cfg.RepairShop, float64(count))
	if !ok {
		return nil, nil
	}
	return &domain.ScoreFactor{
		Name:        "suspicious_repair_shop",
		Score:       score,
		Description: fmt.Sprintf("Repair shop has %d claims in system", count),
		Severity:    severity,
	}, nil
}

func (s *PropensityScorer) suspiciousMedicalProvider(ctx context.Context, cc domain.ClaimContext) (*domain.ScoreFactor, error) {
	if cc.ProviderID == "" {
		return nil, nil
	}
	count, err := s.source.ResourceClaimTotal(ctx, cc.ProviderID, domain.ResourceMedicalProvider)
	if err != nil {
		return nil, err
	}
	score, severity, ok := factorScore(s.cfg.MedicalProvider, float64(count))
	if !ok {
		return nil, nil
	}
	return &domain.ScoreFactor{
		Name:        "suspicious_medical_provider",
		Score:       score,
		Description: fmt.Sprintf("Medical provider has %d claims in system", count),
		Severity:    severity,
	}, nil
}

func (s *PropensityScorer) suspiciousLawyer(ctx context.Context, cc domain.ClaimContext) (*domain.ScoreFactor, error) {
	if cc.LawyerID == "" {
		return nil, nil
	}
	count, err := s.source.LawyerClientCount(ctx, cc.LawyerID)
	if err != nil {
		return nil, err
	}
	score, severity, ok := factorScore(s.cfg.Lawyer, float64(count))
	if !ok {
		return nil, nil
	}
	return &domain.ScoreFactor{
		Name:        "suspicious_lawyer",
		Score:       score,
		Description: fmt.Sprintf("Lawyer represents %d claimants in system", count),
		Severity:    severity,
	}, nil
}

func (s *PropensityScorer) multipleClaims(ctx context.Context, cc domain.ClaimContext) (*domain.ScoreFactor, error) {
	history, err := s.source.ClaimHistory(ctx, cc.ClaimantID)
	if err != nil {
		return nil, err
	}
	score, severity, ok := factorScore(s.cfg.MultipleClaims, float64(history.Count))
	if !ok {
		return nil, nil
	}
	return &domain.ScoreFactor{
		Name:        "multiple_claims",
		Score:       score,
		Description: fmt.Sprintf("Claimant has filed %d claims", history.Count),
		Severity:    severity,
	}, nil
}

func (s *PropensityScorer) sharedAddress(ctx context.Context, cc domain.ClaimContext) (*domain.ScoreFactor, error) {
	count, err := s.source.SharedAddressCount(ctx, cc.ClaimantID)
	if err != nil {
		return nil, err
	}
	score, severity, ok := factorScore(s.cfg.SharedAddress, float64(count))
	if !ok {
		return nil, nil
	}
	return &domain.ScoreFactor{
		Name:        "shared_address",
		Score:       score,
		Description: fmt.Sprintf("Address shared with %d other claimant(s)", count),
		Severity:    severity,
	}, nil
}

func (s *PropensityScorer) amountOutlier(ctx context.Context, cc domain.ClaimContext) (*domain.ScoreFactor, error) {
	stats, err := s.source.ClaimAmountStats(ctx, cc.Claim.Type)
	if err != nil {
		return nil, err
	}
	if stats.Count == 0 {
		return nil, nil
	}

	// A single-claim population reports an undefined stdev; treating it as 1
	// keeps the z-score finite.
	stdev := stats.Stdev
	if stdev == 0 {
		stdev = 1
	}
	z := (cc.Claim.Amount - stats.Mean) / stdev

	score, severity, ok := factorScore(s.cfg.AmountOutlier, z)
	if !ok || score <= 0 {
		return nil, nil
	}
	return &domain.ScoreFactor{
		Name:        "high_claim_amount",
		Score:       score,
		Description: fmt.Sprintf("Claim amount $%.2f is %.1f sigma above average for %s claims", cc.Claim.Amount, z, cc.Claim.Type),
		Severity:    severity,
	}, nil
}

// factorScore applies one factor configuration to a measured value: below
// Min the factor does not trigger; otherwise the raw (measured-Offset)*PerUnit
// score is capped at Cap and severity turns high at HighAt (0 = always
// medium).
func factorScore(fc config.FactorConfig, measured float64) (float64, domain.Severity, bool) {
	if measured < fc.Min {
		return 0, "", false
	}
	raw := (measured - fc.Offset) * fc.PerUnit
	if raw > fc.Cap {
		raw = fc.Cap
	}
	if raw < 0 {
		raw = 0
	}
	severity := domain.SeverityMedium
	if fc.HighAt > 0 && measured >= fc.HighAt {
		severity = domain.SeverityHigh
	}
	return raw, severity, true
}
