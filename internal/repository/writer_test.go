package repository

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/ananya/fraudlens/backend/internal/domain"
	"github.com/ananya/fraudlens/backend/internal/graph"
)

func TestRepository_UpsertClaimant(t *testing.T) {
	mem := graph.NewMemoryClient()
	repo := New(mem)

	claimant := domain.Claimant{
		ID:           "CLM_RING_01_00",
		Name:         "Maria Garcia",
		Address:      "742 Maple St, Springfield",
		Phone:        "555-013-4821",
		DateOfBirth:  time.Date(1978, 4, 12, 0, 0, 0, 0, time.UTC),
		IsRingMember: true,
		RingID:       "RING_01",
	}

	if err := repo.UpsertClaimant(context.Background(), claimant); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	calls := mem.WriteCalls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 write query, got %d", len(calls))
	}
	if !strings.Contains(calls[0].Query, "MERGE (c:Claimant") {
		t.Fatalf("unexpected cypher: %s", calls[0].Query)
	}
	if calls[0].Params["claimantId"] != "CLM_RING_01_00" {
		t.Fatalf("unexpected params: %+v", calls[0].Params)
	}
	props, ok := calls[0].Params["props"].(map[string]any)
	if !ok {
		t.Fatalf("expected props map, got %T", calls[0].Params["props"])
	}
	if props["isRingMember"] != true || props["ringId"] != "RING_01" {
		t.Fatalf("ring labels not persisted: %+v", props)
	}
	if props["dateOfBirth"] != "1978-04-12" {
		t.Fatalf("unexpected dateOfBirth: %v", props["dateOfBirth"])
	}
}

func TestRepository_UpsertClaimantRequiresID(t *testing.T) {
	repo := New(graph.NewMemoryClient())
	if err := repo.UpsertClaimant(context.Background(), domain.Claimant{Name: "No ID"}); err == nil {
		t.Fatal("expected error for missing id")
	}
}

func TestRepository_UpsertClaimLinksResources(t *testing.T) {
	mem := graph.NewMemoryClient()
	repo := New(mem)

	claim := domain.Claim{
		ID:         "CLAIM_000042",
		ClaimantID: "CLM_01",
		PolicyID:   "POL_CLM_01_0",
		Amount:     18250.40,
		Type:       "injury",
		Date:       time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC),
		Status:     "submitted",
	}

	err := repo.UpsertClaim(context.Background(), claim, "VEH_POL_CLM_01_0", "SHOP_02", "", "LAW_01")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	calls := mem.WriteCalls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 write query, got %d", len(calls))
	}
	params := calls[0].Params
	if params["shopId"] != "SHOP_02" || params["lawyerId"] != "LAW_01" {
		t.Fatalf("resource links missing: %+v", params)
	}
	if params["providerId"] != "" {
		t.Fatalf("expected empty providerId, got %v", params["providerId"])
	}
}

func TestRepository_EnsureConstraints(t *testing.T) {
	mem := graph.NewMemoryClient()
	repo := New(mem)

	if err := repo.EnsureConstraints(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	calls := mem.WriteCalls()
	if len(calls) != len(constraintCyphers) {
		t.Fatalf("expected %d constraint writes, got %d", len(constraintCyphers), len(calls))
	}
	for _, call := range calls {
		if !strings.Contains(call.Query, "IF NOT EXISTS") {
			t.Fatalf("constraint not idempotent: %s", call.Query)
		}
	}
}

func TestRepository_CreateRelationalEdge(t *testing.T) {
	mem := graph.NewMemoryClient()
	repo := New(mem)

	edge := domain.RelationalEdge{SourceID: "CLM_01", TargetID: "CLM_02", Label: domain.EdgeSharesAddress}
	if err := repo.CreateRelationalEdge(context.Background(), edge); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	calls := mem.WriteCalls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 write query, got %d", len(calls))
	}
	if !strings.Contains(calls[0].Query, "SHARES_ADDRESS") {
		t.Fatalf("expected label in cypher: %s", calls[0].Query)
	}
}

func TestRepository_CreateRelationalEdgeRejectsOtherLabels(t *testing.T) {
	repo := New(graph.NewMemoryClient())

	edge := domain.RelationalEdge{SourceID: "CLM_01", TargetID: "CLAIM_01", Label: domain.EdgeFiledClaim}
	if err := repo.CreateRelationalEdge(context.Background(), edge); err == nil {
		t.Fatal("expected error for non-relational label")
	}
}
