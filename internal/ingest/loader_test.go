package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ananya/fraudlens/backend/internal/domain"
	"github.com/ananya/fraudlens/backend/internal/graph"
	"github.com/ananya/fraudlens/backend/internal/repository"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(nopWriter{}, nil))
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func smallDataset() domain.Dataset {
	return domain.Dataset{
		GeneratedAt: time.Now().UTC(),
		Seed:        42,
		Claimants: []domain.Claimant{
			{ID: "CLM_01", Name: "Maria Garcia", Address: "1 Oak Ave, Fairview", Phone: "555-001-0001"},
			{ID: "CLM_02", Name: "James Lee", Address: "1 Oak Ave, Fairview", Phone: "555-001-0002"},
		},
		Policies: []domain.Policy{
			{ID: "POL_CLM_01_0", ClaimantID: "CLM_01", Type: "auto"},
		},
		Vehicles: []domain.Vehicle{
			{ID: "VEH_POL_CLM_01_0", PolicyID: "POL_CLM_01_0", Make: "Toyota", Year: 2018},
		},
		RepairShops: []domain.ServiceProvider{
			{ID: "SHOP_01", Kind: domain.ResourceRepairShop, Name: "Apex Auto Body"},
		},
		Witnesses: []domain.Witness{
			{ID: "WIT_001", Name: "Pat Smith", IsRecurring: true},
		},
		Claims: []domain.ClaimRecord{
			{
				Claim: domain.Claim{
					ID:         "CLAIM_000001",
					ClaimantID: "CLM_01",
					PolicyID:   "POL_CLM_01_0",
					Amount:     4200,
					Type:       "collision",
					Status:     "submitted",
				},
				VehicleID:  "VEH_POL_CLM_01_0",
				ShopID:     "SHOP_01",
				WitnessIDs: []string{"WIT_001"},
			},
		},
		Relationships: []domain.RelationalEdge{
			{SourceID: "CLM_01", TargetID: "CLM_02", Label: domain.EdgeSharesAddress},
		},
	}
}

func TestLoader_LoadWritesEveryEntity(t *testing.T) {
	mem := graph.NewMemoryClient()
	loader := NewLoader(repository.New(mem), 2, testLogger())

	require.NoError(t, loader.Load(context.Background(), smallDataset()))

	calls := mem.WriteCalls()
	// 8 constraints + 2 claimants + 1 shop + 1 policy + 1 vehicle + 1 claim
	// + 1 witness attachment + 1 relationship.
	assert.Len(t, calls, 16)

	var sawWitness, sawEdge bool
	for _, call := range calls {
		if strings.Contains(call.Query, "HAS_WITNESS") {
			sawWitness = true
		}
		if strings.Contains(call.Query, "SHARES_ADDRESS") {
			sawEdge = true
		}
	}
	assert.True(t, sawWitness, "witness attachment missing")
	assert.True(t, sawEdge, "relational edge missing")
}

func TestLoader_UnknownWitnessFailsPhase(t *testing.T) {
	ds := smallDataset()
	ds.Claims[0].WitnessIDs = []string{"WIT_MISSING"}

	loader := NewLoader(repository.New(graph.NewMemoryClient()), 2, testLogger())
	err := loader.Load(context.Background(), ds)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WIT_MISSING")
}

func TestLoader_GraphErrorSurfaces(t *testing.T) {
	boom := errors.New("write conflict")
	mem := graph.NewMemoryClient().WithError(boom)
	loader := NewLoader(repository.New(mem), 2, testLogger())

	err := loader.Load(context.Background(), smallDataset())
	require.ErrorIs(t, err, boom)
}

func TestLoader_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mem := graph.NewMemoryClient()
	loader := NewLoader(repository.New(mem), 2, testLogger())

	// Constraints run on the already-cancelled context; MemoryClient ignores
	// context, so the load proceeds but must not hang.
	done := make(chan error, 1)
	go func() { done <- loader.Load(ctx, smallDataset()) }()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("load did not return after cancellation")
	}
}

func TestTaskError_Message(t *testing.T) {
	var taskErr TaskError
	taskErr.append(errors.New("first"))
	taskErr.append(errors.New("second"))

	err := taskErr.asError()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "first")
	assert.Contains(t, err.Error(), "second")
}

func TestReadDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.json")
	raw, err := json.Marshal(smallDataset())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	ds, err := ReadDataset(path)
	require.NoError(t, err)
	assert.Len(t, ds.Claimants, 2)
	assert.Equal(t, "CLAIM_000001", ds.Claims[0].Claim.ID)
	assert.Equal(t, domain.EdgeSharesAddress, ds.Relationships[0].Label)
}

func TestReadDataset_MissingFile(t *testing.T) {
	_, err := ReadDataset(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}
