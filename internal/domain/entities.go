package domain

import "time"

// Claimant is the primary social node of the claims graph. IsRingMember and
// RingID are ground-truth labels written by ingestion (investigator-confirmed
// rings); detection never sets them, but the scorer reads them for the
// ring-connection factor.
type Claimant struct {
	ID           string    `json:"claimantId"`
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	Phone        string    `json:"phone"`
	DateOfBirth  time.Time `json:"dateOfBirth"`
	IsRingMember bool      `json:"isRingMember"`
	RingID       string    `json:"ringId,omitempty"`
}

// Policy links a claimant to an insured vehicle.
type Policy struct {
	ID         string    `json:"policyId"`
	ClaimantID string    `json:"claimantId"`
	Type       string    `json:"type"`
	Premium    float64   `json:"premium"`
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
}

// Vehicle is attached to a policy via INVOLVES_VEHICLE / INSURED_BY edges.
type Vehicle struct {
	ID       string `json:"vehicleId"`
	PolicyID string `json:"policyId"`
	Make     string `json:"make"`
	Model    string `json:"model"`
	Year     int    `json:"year"`
	VIN      string `json:"vin"`
}

// Claim carries the attributes the scorer and aggregator read. IsRingClaim and
// RingID mirror the claimant-side ground-truth labels.
type Claim struct {
	ID          string    `json:"claimId"`
	ClaimantID  string    `json:"claimantId"`
	PolicyID    string    `json:"policyId"`
	Amount      float64   `json:"amount"`
	Type        string    `json:"type"`
	Date        time.Time `json:"date"`
	Status      string    `json:"status"`
	Description string    `json:"description,omitempty"`
	IsRingClaim bool      `json:"isRingClaim"`
	RingID      string    `json:"ringId,omitempty"`
}

// ResourceKind discriminates the service-provider node labels a claim can
// reference. Witness is included because the recurring-witness detector treats
// witnesses as one more shareable resource.
type ResourceKind string

const (
	ResourceRepairShop      ResourceKind = "RepairShop"
	ResourceMedicalProvider ResourceKind = "MedicalProvider"
	ResourceLawyer          ResourceKind = "Lawyer"
	ResourceWitness         ResourceKind = "Witness"
)

// ServiceProvider is a repair shop, medical provider or lawyer node.
type ServiceProvider struct {
	ID        string       `json:"providerId"`
	Kind      ResourceKind `json:"kind"`
	Name      string       `json:"name"`
	Specialty string       `json:"specialty,omitempty"`
	Address   string       `json:"address"`
	Phone     string       `json:"phone"`
}

// Witness appears on claims via HAS_WITNESS. IsRecurring is an ingestion-time
// flag: the witness was planted across otherwise-unrelated claims.
type Witness struct {
	ID          string `json:"witnessId"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	IsRecurring bool   `json:"isRecurring"`
}
