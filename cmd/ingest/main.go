package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ananya/fraudlens/backend/internal/config"
	"github.com/ananya/fraudlens/backend/internal/graph"
	"github.com/ananya/fraudlens/backend/internal/ingest"
	"github.com/ananya/fraudlens/backend/internal/logging"
	"github.com/ananya/fraudlens/backend/internal/repository"
)

func main() {
	var (
		datasetPath = flag.String("dataset", "data/dataset.json", "Path to the generated dataset JSON")
		workers     = flag.Int("workers", 4, "Number of concurrent workers for ingestion")
	)
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging).With("component", "ingest")

	dataset, err := ingest.ReadDataset(*datasetPath)
	if err != nil {
		logger.Error("failed to load dataset", "error", err, "path", *datasetPath)
		os.Exit(1)
	}
	if len(dataset.Claimants) == 0 {
		logger.Error("dataset has no claimants", "path", *datasetPath)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	graphClient, err := buildGraphClient(ctx, cfg)
	if err != nil {
		logger.Error("failed to create graph client", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := graphClient.Close(context.Background()); err != nil {
			logger.Warn("closing graph client failed", "error", err)
		}
	}()

	if err := graphClient.VerifyConnectivity(ctx); err != nil {
		logger.Error("graph connectivity check failed", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to graph", "uri", cfg.Graph.URI, "database", cfg.Graph.Database)

	repo := repository.New(graphClient)
	loader := ingest.NewLoader(repo, *workers, logger)

	start := time.Now()
	logger.Info("ingesting dataset",
		"claimants", len(dataset.Claimants),
		"claims", len(dataset.Claims),
		"workers", *workers,
	)
	if err := loader.Load(ctx, dataset); err != nil {
		logger.Error("ingestion failed", "error", err)
		os.Exit(1)
	}

	logger.Info("ingestion complete",
		"duration", time.Since(start).String(),
		"claimants", len(dataset.Claimants),
		"claims", len(dataset.Claims),
		"relationships", len(dataset.Relationships),
	)
}

func buildGraphClient(ctx context.Context, cfg config.Config) (graph.Client, error) {
	if cfg.Graph.URI == "" {
		return nil, fmt.Errorf("GRAPH_URI is required for ingestion")
	}
	opts := graph.Options{
		URI:            cfg.Graph.URI,
		Database:       cfg.Graph.Database,
		Username:       cfg.Graph.Username,
		Password:       cfg.Graph.Password,
		MaxConnections: cfg.Graph.MaxConnections,
	}
	return graph.NewNeo4jClient(ctx, opts)
}
