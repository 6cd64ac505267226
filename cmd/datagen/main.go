package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ananya/fraudlens/backend/internal/generator"
)

func main() {
	cfg := generator.DefaultConfig()
	var (
		claimants     = flag.Int("claimants", cfg.NumClaimants, "number of legitimate claimants to generate")
		rings         = flag.Int("rings", cfg.NumRings, "number of fraud rings to plant")
		minRingSize   = flag.Int("min-ring-size", cfg.MinRingSize, "minimum claimants per ring")
		maxRingSize   = flag.Int("max-ring-size", cfg.MaxRingSize, "maximum claimants per ring")
		relatedChance = flag.Float64("related-chance", cfg.RelatedChance, "probability of a RELATED_TO edge between ring members")
		addressChance = flag.Float64("shared-address-chance", cfg.SharedAddressChance, "probability a ring member uses a shared address")
		phoneChance   = flag.Float64("shared-phone-chance", cfg.SharedPhoneChance, "probability a ring member uses a shared phone")
		seed          = flag.Int64("seed", cfg.Seed, "random seed for deterministic generation")
		outputDir     = flag.String("output-dir", "data", "directory to write dataset.json")
		writeStdout   = flag.Bool("stdout", false, "write the dataset to stdout instead of a file")
	)
	flag.Parse()

	genCfg := cfg
	genCfg.NumClaimants = *claimants
	genCfg.NumRings = *rings
	genCfg.MinRingSize = *minRingSize
	genCfg.MaxRingSize = *maxRingSize
	genCfg.RelatedChance = clampProbability(*relatedChance)
	genCfg.SharedAddressChance = clampProbability(*addressChance)
	genCfg.SharedPhoneChance = clampProbability(*phoneChance)
	genCfg.Seed = *seed

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	gen := generator.New(genCfg)
	dataset, err := gen.Generate(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}

	if *writeStdout {
		if err := json.NewEncoder(os.Stdout).Encode(dataset); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write dataset to stdout: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := generator.WriteDataset(dataset, *outputDir); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write dataset: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stdout, "Generated %d claimants and %d claims into %s\n", len(dataset.Claimants), len(dataset.Claims), *outputDir)
}

func clampProbability(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
