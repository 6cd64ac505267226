package detect

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ananya/fraudlens/backend/internal/config"
	"github.com/ananya/fraudlens/backend/internal/domain"
)

type stubEdgeSource struct {
	edges []domain.RelationalEdge
	err   error
}

func (s *stubEdgeSource) RelationalEdges(context.Context) ([]domain.RelationalEdge, error) {
	return s.edges, s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(discardWriter{}, nil))
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

func triangle(a, b, c string) []domain.RelationalEdge {
	return []domain.RelationalEdge{
		{SourceID: a, TargetID: b, Label: domain.EdgeRelatedTo},
		{SourceID: b, TargetID: c, Label: domain.EdgeRelatedTo},
		{SourceID: a, TargetID: c, Label: domain.EdgeRelatedTo},
	}
}

func TestCommunityDetector_SeparatesDenseGroups(t *testing.T) {
	edges := triangle("CLM_A1", "CLM_A2", "CLM_A3")
	edges = append(edges, triangle("CLM_B1", "CLM_B2", "CLM_B3")...)
	// Weak bridge between the two groups.
	edges = append(edges, domain.RelationalEdge{
		SourceID: "CLM_A3", TargetID: "CLM_B1", Label: domain.EdgeSharesAddress,
	})

	detector := NewCommunityDetector(&stubEdgeSource{edges: edges}, config.CommunityConfig{Seed: 42}, discardLogger())
	membership, err := detector.Detect(context.Background())
	require.NoError(t, err)
	require.Len(t, membership, 6)

	assert.Equal(t, membership["CLM_A1"], membership["CLM_A2"])
	assert.Equal(t, membership["CLM_A1"], membership["CLM_A3"])
	assert.Equal(t, membership["CLM_B1"], membership["CLM_B2"])
	assert.Equal(t, membership["CLM_B1"], membership["CLM_B3"])
	assert.NotEqual(t, membership["CLM_A1"], membership["CLM_B1"])
}

func TestCommunityDetector_Deterministic(t *testing.T) {
	edges := triangle("CLM_A1", "CLM_A2", "CLM_A3")
	edges = append(edges, triangle("CLM_B1", "CLM_B2", "CLM_B3")...)
	edges = append(edges,
		domain.RelationalEdge{SourceID: "CLM_A1", TargetID: "CLM_B2", Label: domain.EdgeSharesPhone},
		domain.RelationalEdge{SourceID: "CLM_C1", TargetID: "CLM_C2", Label: domain.EdgeRelatedTo},
	)

	cfg := config.CommunityConfig{Seed: 42}
	first, err := NewCommunityDetector(&stubEdgeSource{edges: edges}, cfg, discardLogger()).Detect(context.Background())
	require.NoError(t, err)

	second, err := NewCommunityDetector(&stubEdgeSource{edges: edges}, cfg, discardLogger()).Detect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCommunityDetector_EmptyGraph(t *testing.T) {
	detector := NewCommunityDetector(&stubEdgeSource{}, config.CommunityConfig{Seed: 42}, discardLogger())
	membership, err := detector.Detect(context.Background())
	require.NoError(t, err)
	assert.Empty(t, membership)
	assert.NotNil(t, membership)
}

func TestCommunityDetector_EveryClaimantAssigned(t *testing.T) {
	edges := []domain.RelationalEdge{
		{SourceID: "CLM_01", TargetID: "CLM_02", Label: domain.EdgeRelatedTo},
		{SourceID: "CLM_03", TargetID: "CLM_04", Label: domain.EdgeSharesPhone},
		{SourceID: "CLM_05", TargetID: "CLM_06", Label: domain.EdgeSharesAddress},
	}

	detector := NewCommunityDetector(&stubEdgeSource{edges: edges}, config.CommunityConfig{Seed: 7}, discardLogger())
	membership, err := detector.Detect(context.Background())
	require.NoError(t, err)
	require.Len(t, membership, 6)

	// Community indices are compact, starting at zero.
	seen := make(map[int]bool)
	for _, c := range membership {
		seen[c] = true
	}
	for i := 0; i < len(seen); i++ {
		assert.True(t, seen[i], "community index %d missing", i)
	}

	// Each isolated pair belongs together.
	assert.Equal(t, membership["CLM_01"], membership["CLM_02"])
	assert.Equal(t, membership["CLM_03"], membership["CLM_04"])
	assert.Equal(t, membership["CLM_05"], membership["CLM_06"])
	assert.NotEqual(t, membership["CLM_01"], membership["CLM_03"])
}

func TestCommunityDetector_SourceError(t *testing.T) {
	boom := errors.New("connection reset")
	detector := NewCommunityDetector(&stubEdgeSource{err: boom}, config.CommunityConfig{Seed: 42}, discardLogger())

	_, err := detector.Detect(context.Background())
	require.ErrorIs(t, err, boom)
}

func TestBuildWeightedGraph_StrongestLabelWins(t *testing.T) {
	edges := []domain.RelationalEdge{
		{SourceID: "CLM_01", TargetID: "CLM_02", Label: domain.EdgeSharesAddress},
		{SourceID: "CLM_02", TargetID: "CLM_01", Label: domain.EdgeRelatedTo},
	}

	g := buildWeightedGraph(edges)
	require.Len(t, g.ids, 2)
	assert.Equal(t, 2.0, g.adj[0][1])
	assert.Equal(t, 2.0, g.totalWeight)
}

func TestBuildWeightedGraph_IgnoresSelfEdges(t *testing.T) {
	edges := []domain.RelationalEdge{
		{SourceID: "CLM_01", TargetID: "CLM_01", Label: domain.EdgeRelatedTo},
		{SourceID: "CLM_01", TargetID: "CLM_02", Label: domain.EdgeSharesPhone},
	}

	g := buildWeightedGraph(edges)
	require.Len(t, g.ids, 2)
	assert.Equal(t, 1.5, g.adj[0][1])
}
