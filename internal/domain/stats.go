package domain

// AmountStats is the population baseline for one claim type.
type AmountStats struct {
	Mean  float64 `json:"mean"`
	Stdev float64 `json:"stdev"`
	Count int     `json:"count"`
}

// GraphOverview is the dashboard rollup computed by the statistics aggregator.
type GraphOverview struct {
	Claimants         int     `json:"claimants"`
	Claims            int     `json:"claims"`
	Rings             int     `json:"rings"`
	RingMembers       int     `json:"ringMembers"`
	MembersWithClaims int     `json:"membersWithClaims"`
	RingClaims        int     `json:"ringClaims"`
	RingClaimAmount   float64 `json:"ringClaimAmount"`
}
