package generator

// Config drives the synthetic claims-graph generator.
type Config struct {
	NumClaimants        int     // legitimate background population
	NumRings            int     // planted fraud rings
	MinRingSize         int
	MaxRingSize         int
	NumRepairShops      int
	NumFraudShops       int     // shops ring claims are steered towards
	NumMedicalProviders int
	NumFraudProviders   int
	NumLawyers          int
	NumFraudLawyers     int
	NumWitnesses        int
	RelatedChance       float64 // RELATED_TO edge probability between ring members
	SharedAddressChance float64 // ring member adopts a ring-shared address
	SharedPhoneChance   float64 // ring member adopts a ring-shared phone
	Seed                int64
}

// DefaultConfig returns a population large enough for every detector and
// factor to trigger.
func DefaultConfig() Config {
	return Config{
		NumClaimants:        400,
		NumRings:            5,
		MinRingSize:         4,
		MaxRingSize:         8,
		NumRepairShops:      25,
		NumFraudShops:       4,
		NumMedicalProviders: 20,
		NumFraudProviders:   3,
		NumLawyers:          15,
		NumFraudLawyers:     3,
		NumWitnesses:        40,
		RelatedChance:       0.5,
		SharedAddressChance: 0.4,
		SharedPhoneChance:   0.3,
		Seed:                42,
	}
}
