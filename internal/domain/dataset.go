package domain

import "time"

// ClaimRecord is a claim plus the identifiers of the entities its edges
// point at, as serialized in a generated dataset.
type ClaimRecord struct {
	Claim
	VehicleID  string   `json:"vehicleId,omitempty"`
	ShopID     string   `json:"shopId,omitempty"`
	ProviderID string   `json:"providerId,omitempty"`
	LawyerID   string   `json:"lawyerId,omitempty"`
	WitnessIDs []string `json:"witnessIds,omitempty"`
}

// Dataset is one self-contained synthetic graph: every node and edge the
// loader needs, in load order.
type Dataset struct {
	GeneratedAt      time.Time         `json:"generatedAt"`
	Seed             int64             `json:"seed"`
	Claimants        []Claimant        `json:"claimants"`
	Policies         []Policy          `json:"policies"`
	Vehicles         []Vehicle         `json:"vehicles"`
	RepairShops      []ServiceProvider `json:"repairShops"`
	MedicalProviders []ServiceProvider `json:"medicalProviders"`
	Lawyers          []ServiceProvider `json:"lawyers"`
	Witnesses        []Witness         `json:"witnesses"`
	Claims           []ClaimRecord     `json:"claims"`
	Relationships    []RelationalEdge  `json:"relationships"`
}
