package domain

// PatternType identifies which detector produced a candidate cluster.
type PatternType string

const (
	PatternSharedRepairShop      PatternType = "shared_repair_shop"
	PatternSharedMedicalProvider PatternType = "shared_medical_provider"
	PatternRecurringWitness      PatternType = "recurring_witness"
)

// CandidateCluster is a pattern detector result: the claimants sharing one
// suspicious resource, with the aggregate metrics the suspicion score was
// derived from. Ephemeral; produced per detection run.
type CandidateCluster struct {
	Pattern        PatternType `json:"patternType"`
	ResourceID     string      `json:"entityId"`
	ResourceName   string      `json:"entityName"`
	ClaimantIDs    []string    `json:"claimantIds"`
	ClaimCount     int         `json:"claimCount"`
	Connections    int         `json:"connections"`
	SuspicionScore float64     `json:"suspicionScore"`
}

// SweepResult bundles the output of one concurrent detection sweep.
type SweepResult struct {
	Communities      map[string]int     `json:"communities"`
	RepairShops      []CandidateCluster `json:"repairShops"`
	MedicalProviders []CandidateCluster `json:"medicalProviders"`
	Witnesses        []CandidateCluster `json:"witnesses"`
}
