package detect

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ananya/fraudlens/backend/internal/config"
	"github.com/ananya/fraudlens/backend/internal/domain"
)

type stubScoreSource struct {
	claim           domain.ClaimContext
	claimErr        error
	ringConnections int
	shopClaims      int
	providerClaims  int
	lawyerClients   int
	lawyerErr       error
	history         domain.ClaimHistory
	sharedAddresses int
	amountStats     domain.AmountStats
}

func (s *stubScoreSource) ClaimContext(_ context.Context, claimID string) (domain.ClaimContext, error) {
	if s.claimErr != nil {
		return domain.ClaimContext{}, s.claimErr
	}
	return s.claim, nil
}

func (s *stubScoreSource) RingConnectionCount(context.Context, string) (int, error) {
	return s.ringConnections, nil
}

func (s *stubScoreSource) ResourceClaimTotal(_ context.Context, _ string, kind domain.ResourceKind) (int, error) {
	if kind == domain.ResourceRepairShop {
		return s.shopClaims, nil
	}
	return s.providerClaims, nil
}

func (s *stubScoreSource) LawyerClientCount(context.Context, string) (int, error) {
	return s.lawyerClients, s.lawyerErr
}

func (s *stubScoreSource) ClaimHistory(context.Context, string) (domain.ClaimHistory, error) {
	return s.history, nil
}

func (s *stubScoreSource) SharedAddressCount(context.Context, string) (int, error) {
	return s.sharedAddresses, nil
}

func (s *stubScoreSource) ClaimAmountStats(context.Context, string) (domain.AmountStats, error) {
	return s.amountStats, nil
}

func cleanClaim() domain.ClaimContext {
	return domain.ClaimContext{
		Claim: domain.Claim{
			ID:         "CLAIM_000001",
			ClaimantID: "CLM_01",
			Amount:     5000,
			Type:       "collision",
		},
		ClaimantID: "CLM_01",
	}
}

func newTestScorer(source ScoreSource) *PropensityScorer {
	return NewPropensityScorer(source, config.DefaultDetection().Scoring, discardLogger())
}

func TestPropensityScorer_CleanClaimScoresZero(t *testing.T) {
	source := &stubScoreSource{
		claim:       cleanClaim(),
		amountStats: domain.AmountStats{Mean: 5000, Stdev: 2000, Count: 50},
	}

	result, err := newTestScorer(source).ScoreClaim(context.Background(), "CLAIM_000001")
	require.NoError(t, err)

	assert.Zero(t, result.Score)
	assert.Equal(t, domain.RiskLow, result.RiskLevel)
	assert.Equal(t, domain.RecommendStandard, result.Recommendation)
	assert.Empty(t, result.Factors)
}

func TestPropensityScorer_RingConnectionsCapAtForty(t *testing.T) {
	source := &stubScoreSource{
		claim:           cleanClaim(),
		ringConnections: 3,
		amountStats:     domain.AmountStats{Mean: 5000, Stdev: 2000, Count: 50},
	}

	result, err := newTestScorer(source).ScoreClaim(context.Background(), "CLAIM_000001")
	require.NoError(t, err)

	require.Len(t, result.Factors, 1)
	factor := result.Factors[0]
	assert.Equal(t, "ring_connections", factor.Name)
	assert.Equal(t, 40.0, factor.Score)
	assert.Equal(t, domain.SeverityHigh, factor.Severity)
	assert.Contains(t, factor.Description, "3 known fraud ring member(s)")

	assert.Equal(t, 40.0, result.Score)
	assert.Equal(t, domain.RiskMedium, result.RiskLevel)
	assert.Equal(t, domain.RecommendInvestigate, result.Recommendation)
}

func TestPropensityScorer_RepairShopVolume(t *testing.T) {
	claim := cleanClaim()
	claim.ShopID = "SHOP_01"
	source := &stubScoreSource{
		claim:       claim,
		shopClaims:  25,
		amountStats: domain.AmountStats{Mean: 5000, Stdev: 2000, Count: 50},
	}

	result, err := newTestScorer(source).ScoreClaim(context.Background(), "CLAIM_000001")
	require.NoError(t, err)

	require.Len(t, result.Factors, 1)
	factor := result.Factors[0]
	assert.Equal(t, "suspicious_repair_shop", factor.Name)
	// (25-9)*2 capped at 20, high at >= 20 claims.
	assert.Equal(t, 20.0, factor.Score)
	assert.Equal(t, domain.SeverityHigh, factor.Severity)
}

func TestPropensityScorer_ShopBelowFloorNoFactor(t *testing.T) {
	claim := cleanClaim()
	claim.ShopID = "SHOP_01"
	source := &stubScoreSource{
		claim:       claim,
		shopClaims:  9,
		amountStats: domain.AmountStats{Mean: 5000, Stdev: 2000, Count: 50},
	}

	result, err := newTestScorer(source).ScoreClaim(context.Background(), "CLAIM_000001")
	require.NoError(t, err)
	assert.Empty(t, result.Factors)
}

func TestPropensityScorer_AmountOutlier(t *testing.T) {
	claim := cleanClaim()
	claim.Claim.Amount = 15000
	source := &stubScoreSource{
		claim:       claim,
		amountStats: domain.AmountStats{Mean: 5000, Stdev: 2500, Count: 50},
	}

	result, err := newTestScorer(source).ScoreClaim(context.Background(), "CLAIM_000001")
	require.NoError(t, err)

	require.Len(t, result.Factors, 1)
	factor := result.Factors[0]
	assert.Equal(t, "high_claim_amount", factor.Name)
	// z = 4, (4-2)*5 = 10, at the cap.
	assert.Equal(t, 10.0, factor.Score)
	assert.Contains(t, factor.Description, "4.0 sigma")
}

func TestPropensityScorer_ZeroStdevTreatedAsOne(t *testing.T) {
	claim := cleanClaim()
	claim.Claim.Amount = 5003
	source := &stubScoreSource{
		claim:       claim,
		amountStats: domain.AmountStats{Mean: 5000, Stdev: 0, Count: 1},
	}

	result, err := newTestScorer(source).ScoreClaim(context.Background(), "CLAIM_000001")
	require.NoError(t, err)

	require.Len(t, result.Factors, 1)
	// stdev 0 falls back to 1, so z = 3 and score = (3-2)*5.
	assert.Equal(t, 5.0, result.Factors[0].Score)
}

func TestPropensityScorer_ExactlyTwoSigmaDoesNotTrigger(t *testing.T) {
	claim := cleanClaim()
	claim.Claim.Amount = 9000
	source := &stubScoreSource{
		claim:       claim,
		amountStats: domain.AmountStats{Mean: 5000, Stdev: 2000, Count: 50},
	}

	result, err := newTestScorer(source).ScoreClaim(context.Background(), "CLAIM_000001")
	require.NoError(t, err)
	assert.Empty(t, result.Factors)
}

func TestPropensityScorer_NoPopulationSkipsAmountFactor(t *testing.T) {
	claim := cleanClaim()
	claim.Claim.Amount = 999999
	source := &stubScoreSource{
		claim:       claim,
		amountStats: domain.AmountStats{Count: 0},
	}

	result, err := newTestScorer(source).ScoreClaim(context.Background(), "CLAIM_000001")
	require.NoError(t, err)
	assert.Empty(t, result.Factors)
}

func TestPropensityScorer_TotalCappedAtHundred(t *testing.T) {
	claim := cleanClaim()
	claim.ShopID = "SHOP_01"
	claim.ProviderID = "MED_01"
	claim.LawyerID = "LAW_01"
	claim.Claim.Amount = 50000
	source := &stubScoreSource{
		claim:           claim,
		ringConnections: 5,
		shopClaims:      30,
		providerClaims:  20,
		lawyerClients:   20,
		history:         domain.ClaimHistory{Count: 8, TotalAmount: 200000},
		sharedAddresses: 6,
		amountStats:     domain.AmountStats{Mean: 5000, Stdev: 2000, Count: 100},
	}

	result, err := newTestScorer(source).ScoreClaim(context.Background(), "CLAIM_000001")
	require.NoError(t, err)

	require.Len(t, result.Factors, 7)
	assert.Equal(t, 100.0, result.Score)
	assert.Equal(t, domain.RiskHigh, result.RiskLevel)
	assert.Equal(t, domain.RecommendInvestigate, result.Recommendation)

	// Factor order is fixed regardless of magnitudes.
	names := make([]string, len(result.Factors))
	var rawTotal float64
	for i, f := range result.Factors {
		names[i] = f.Name
		rawTotal += f.Score
	}
	assert.Equal(t, []string{
		"ring_connections",
		"suspicious_repair_shop",
		"suspicious_medical_provider",
		"suspicious_lawyer",
		"multiple_claims",
		"shared_address",
		"high_claim_amount",
	}, names)
	assert.Greater(t, rawTotal, 100.0)
}

func TestPropensityScorer_UnknownClaim(t *testing.T) {
	source := &stubScoreSource{
		claimErr: fmt.Errorf("claim CLAIM_MISSING: %w", domain.ErrClaimNotFound),
	}

	_, err := newTestScorer(source).ScoreClaim(context.Background(), "CLAIM_MISSING")
	require.ErrorIs(t, err, domain.ErrClaimNotFound)
}

func TestPropensityScorer_FactorFailureFailsWholeScore(t *testing.T) {
	claim := cleanClaim()
	claim.LawyerID = "LAW_01"
	boom := errors.New("session expired")
	source := &stubScoreSource{
		claim:     claim,
		lawyerErr: boom,
	}

	_, err := newTestScorer(source).ScoreClaim(context.Background(), "CLAIM_000001")
	require.ErrorIs(t, err, boom)
}

func TestFactorScore_Table(t *testing.T) {
	fc := config.FactorConfig{Min: 3, Offset: 2, PerUnit: 5, Cap: 15, HighAt: 5}

	tests := []struct {
		measured float64
		score    float64
		severity domain.Severity
		ok       bool
	}{
		{2, 0, "", false},
		{3, 5, domain.SeverityMedium, true},
		{4, 10, domain.SeverityMedium, true},
		{5, 15, domain.SeverityHigh, true},
		{9, 15, domain.SeverityHigh, true},
	}
	for _, tc := range tests {
		score, severity, ok := factorScore(fc, tc.measured)
		assert.Equal(t, tc.ok, ok, "measured %v", tc.measured)
		assert.Equal(t, tc.score, score, "measured %v", tc.measured)
		if tc.ok {
			assert.Equal(t, tc.severity, severity, "measured %v", tc.measured)
		}
	}
}
