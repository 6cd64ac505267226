package domain

// EdgeLabel names a relationship type in the claims graph.
type EdgeLabel string

const (
	EdgeHasPolicy       EdgeLabel = "HAS_POLICY"
	EdgeFiledClaim      EdgeLabel = "FILED_CLAIM"
	EdgeInvolvesVehicle EdgeLabel = "INVOLVES_VEHICLE"
	EdgeInsuredBy       EdgeLabel = "INSURED_BY"
	EdgeRepairedAt      EdgeLabel = "REPAIRED_AT"
	EdgeTreatedBy       EdgeLabel = "TREATED_BY"
	EdgeRepresentedBy   EdgeLabel = "REPRESENTED_BY"
	EdgeHasWitness      EdgeLabel = "HAS_WITNESS"
	EdgeRelatedTo       EdgeLabel = "RELATED_TO"
	EdgeSharesAddress   EdgeLabel = "SHARES_ADDRESS"
	EdgeSharesPhone     EdgeLabel = "SHARES_PHONE"
)

// RelationalLabels are the claimant-to-claimant edge types. They are the only
// edges that participate in community detection and connection counting.
var RelationalLabels = []EdgeLabel{EdgeRelatedTo, EdgeSharesAddress, EdgeSharesPhone}

// IsRelational reports whether the label connects two claimants.
func (l EdgeLabel) IsRelational() bool {
	switch l {
	case EdgeRelatedTo, EdgeSharesAddress, EdgeSharesPhone:
		return true
	}
	return false
}

// Weight returns the community-detection weight of a relational edge. Family
// or associate ties count more than incidental address/phone overlap.
// Non-relational labels weigh zero.
func (l EdgeLabel) Weight() float64 {
	switch l {
	case EdgeRelatedTo:
		return 2.0
	case EdgeSharesAddress, EdgeSharesPhone:
		return 1.5
	}
	return 0
}

// RelationalEdge is one claimant-to-claimant connection as returned by the
// graph access layer.
type RelationalEdge struct {
	SourceID string    `json:"sourceId"`
	TargetID string    `json:"targetId"`
	Label    EdgeLabel `json:"label"`
}
