package domain

// ResourceUsage is the per-resource projection the pattern detectors consume:
// one service provider (or recurring witness) with the distinct claimants and
// claims attached to it.
type ResourceUsage struct {
	ResourceID   string   `json:"resourceId"`
	ResourceName string   `json:"resourceName"`
	ClaimantIDs  []string `json:"claimantIds"`
	ClaimCount   int      `json:"claimCount"`
}

// ClaimContext is one claim plus the identifiers of its linked parties, as the
// propensity scorer needs them. Resource ids are empty when the claim has no
// such link.
type ClaimContext struct {
	Claim      Claim  `json:"claim"`
	ClaimantID string `json:"claimantId"`
	ShopID     string `json:"shopId,omitempty"`
	ProviderID string `json:"providerId,omitempty"`
	LawyerID   string `json:"lawyerId,omitempty"`
}

// ClaimHistory summarizes a claimant's filing record.
type ClaimHistory struct {
	Count       int     `json:"count"`
	TotalAmount float64 `json:"totalAmount"`
}
