package domain

// Severity qualifies how strongly a single factor contributed.
type Severity string

const (
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// RiskLevel is the tier derived from the total propensity score.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// Recommendation tags attached to a score result.
const (
	RecommendInvestigate = "flag for investigation"
	RecommendStandard    = "standard processing"
)

// ScoreFactor is one triggered risk factor with its capped sub-score and a
// human-readable explanation.
type ScoreFactor struct {
	Name        string   `json:"name"`
	Score       float64  `json:"score"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
}

// ScoreResult is the outcome of scoring one claim. Factors preserve the fixed
// evaluation order so explanations are reproducible run to run; untriggered
// factors are omitted.
type ScoreResult struct {
	ClaimID        string        `json:"claimId"`
	Score          float64       `json:"fraudPropensityScore"`
	RiskLevel      RiskLevel     `json:"riskLevel"`
	Factors        []ScoreFactor `json:"contributingFactors"`
	Recommendation string        `json:"recommendation"`
}
