package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DetectionConfig carries the tunable constants of the detection core. The
// defaults reproduce the reference heuristics; none of them has a derived
// justification, so they are deliberately configuration rather than code.
type DetectionConfig struct {
	Community CommunityConfig `yaml:"community"`
	Patterns  PatternsConfig  `yaml:"patterns"`
	Scoring   ScoringConfig   `yaml:"scoring"`
}

// CommunityConfig tunes the modularity partitioner.
type CommunityConfig struct {
	// Seed fixes the node-visit shuffle so repeated runs over an unchanged
	// graph produce identical partitions.
	Seed      int64 `yaml:"seed"`
	MaxPasses int   `yaml:"maxPasses"`
}

// PatternThresholds parameterize one shared-resource detector.
type PatternThresholds struct {
	MinClaims        int     `yaml:"minClaims"`
	MinConnections   int     `yaml:"minConnections"`
	TopN             int     `yaml:"topN"`
	ClaimWeight      float64 `yaml:"claimWeight"`
	ConnectionWeight float64 `yaml:"connectionWeight"`
	// MaxClusterSize bounds the quadratic pair-connection count.
	MaxClusterSize int `yaml:"maxClusterSize"`
}

// PatternsConfig groups the three pattern detectors.
type PatternsConfig struct {
	RepairShops      PatternThresholds `yaml:"repairShops"`
	MedicalProviders PatternThresholds `yaml:"medicalProviders"`
	Witnesses        PatternThresholds `yaml:"witnesses"`
}

// FactorConfig describes one propensity factor: trigger at Min, raw score
// (measured - Offset) * PerUnit capped at Cap, severity high once the measured
// value reaches HighAt (0 means the factor is always medium).
type FactorConfig struct {
	Min     float64 `yaml:"min"`
	Offset  float64 `yaml:"offset"`
	PerUnit float64 `yaml:"perUnit"`
	Cap     float64 `yaml:"cap"`
	HighAt  float64 `yaml:"highAt"`
}

// ScoringConfig holds the seven factor configurations plus the tier cutoffs.
type ScoringConfig struct {
	RingConnections FactorConfig `yaml:"ringConnections"`
	RepairShop      FactorConfig `yaml:"repairShop"`
	MedicalProvider FactorConfig `yaml:"medicalProvider"`
	Lawyer          FactorConfig `yaml:"lawyer"`
	MultipleClaims  FactorConfig `yaml:"multipleClaims"`
	SharedAddress   FactorConfig `yaml:"sharedAddress"`
	AmountOutlier   FactorConfig `yaml:"amountOutlier"`

	TotalCap      float64 `yaml:"totalCap"`
	HighTier      float64 `yaml:"highTier"`
	MediumTier    float64 `yaml:"mediumTier"`
	InvestigateAt float64 `yaml:"investigateAt"`
}

// DefaultDetection returns the reference tuning.
func DefaultDetection() DetectionConfig {
	return DetectionConfig{
		Community: CommunityConfig{
			Seed:      42,
			MaxPasses: 50,
		},
		Patterns: PatternsConfig{
			RepairShops: PatternThresholds{
				MinClaims:        5,
				MinConnections:   3,
				TopN:             10,
				ClaimWeight:      0.3,
				ConnectionWeight: 0.5,
				MaxClusterSize:   200,
			},
			MedicalProviders: PatternThresholds{
				MinClaims:        4,
				MinConnections:   2,
				TopN:             10,
				ClaimWeight:      0.4,
				ConnectionWeight: 0.6,
				MaxClusterSize:   200,
			},
			Witnesses: PatternThresholds{
				MinClaims:        3,
				MinConnections:   0,
				TopN:             10,
				ClaimWeight:      0.7,
				ConnectionWeight: 0,
				MaxClusterSize:   200,
			},
		},
		Scoring: ScoringConfig{
			RingConnections: FactorConfig{Min: 1, Offset: 0, PerUnit: 15, Cap: 40, HighAt: 3},
			RepairShop:      FactorConfig{Min: 10, Offset: 9, PerUnit: 2, Cap: 20, HighAt: 20},
			MedicalProvider: FactorConfig{Min: 8, Offset: 7, PerUnit: 2.5, Cap: 20, HighAt: 15},
			Lawyer:          FactorConfig{Min: 10, Offset: 9, PerUnit: 1.5, Cap: 15, HighAt: 0},
			MultipleClaims:  FactorConfig{Min: 3, Offset: 2, PerUnit: 5, Cap: 15, HighAt: 5},
			SharedAddress:   FactorConfig{Min: 2, Offset: 0, PerUnit: 5, Cap: 15, HighAt: 4},
			AmountOutlier:   FactorConfig{Min: 2, Offset: 2, PerUnit: 5, Cap: 10, HighAt: 0},
			TotalCap:        100,
			HighTier:        70,
			MediumTier:      40,
			InvestigateAt:   40,
		},
	}
}

// LoadDetectionFile overlays a YAML tuning file on top of the defaults, so a
// file only needs to name the values it changes.
func LoadDetectionFile(path string) (DetectionConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DetectionConfig{}, fmt.Errorf("read detection config: %w", err)
	}

	cfg := DefaultDetection()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DetectionConfig{}, fmt.Errorf("parse detection config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return DetectionConfig{}, fmt.Errorf("detection config %s: %w", path, err)
	}
	return cfg, nil
}

func (c DetectionConfig) validate() error {
	for name, p := range map[string]PatternThresholds{
		"repairShops":      c.Patterns.RepairShops,
		"medicalProviders": c.Patterns.MedicalProviders,
		"witnesses":        c.Patterns.Witnesses,
	} {
		if p.MinClaims <= 0 {
			return fmt.Errorf("%s.minClaims must be positive", name)
		}
		if p.TopN <= 0 {
			return fmt.Errorf("%s.topN must be positive", name)
		}
		if p.MinConnections < 0 {
			return fmt.Errorf("%s.minConnections must not be negative", name)
		}
	}
	if c.Scoring.TotalCap <= 0 {
		return fmt.Errorf("scoring.totalCap must be positive")
	}
	if c.Scoring.MediumTier > c.Scoring.HighTier {
		return fmt.Errorf("scoring.mediumTier must not exceed scoring.highTier")
	}
	return nil
}
