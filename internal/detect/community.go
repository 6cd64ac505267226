package detect

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sort"

	"github.com/ananya/fraudlens/backend/internal/config"
	"github.com/ananya/fraudlens/backend/internal/domain"
)

// EdgeSource supplies the relational subgraph the community detector
// partitions.
type EdgeSource interface {
	RelationalEdges(ctx context.Context) ([]domain.RelationalEdge, error)
}

// CommunityDetector groups claimants into latent clusters by greedy
// modularity optimization over the weighted relational subgraph.
type CommunityDetector struct {
	source EdgeSource
	cfg    config.CommunityConfig
	logger *slog.Logger
}

// NewCommunityDetector wires a detector over the given edge source.
func NewCommunityDetector(source EdgeSource, cfg config.CommunityConfig, logger *slog.Logger) *CommunityDetector {
	return &CommunityDetector{source: source, cfg: cfg, logger: logger}
}

// Detect partitions the relational subgraph and returns claimantID ->
// community index. A graph with no relational edges yields an empty map, not
// an error. Indices are compact, assigned in sorted-claimant order, and
// stable for one invocation only.
func (d *CommunityDetector) Detect(ctx context.Context) (map[string]int, error) {
	edges, err := d.source.RelationalEdges(ctx)
	if err != nil {
		return nil, fmt.Errorf("load relational subgraph: %w", err)
	}
	if len(edges) == 0 {
		return map[string]int{}, nil
	}

	g := buildWeightedGraph(edges)
	claimantIDs := append([]string(nil), g.ids...)

	rng := rand.New(rand.NewSource(d.cfg.Seed))
	maxPasses := d.cfg.MaxPasses
	if maxPasses <= 0 {
		maxPasses = 50
	}

	// membership[i] tracks where original node i currently lives across
	// aggregation levels.
	membership := make([]int, len(claimantIDs))
	for i := range membership {
		membership[i] = i
	}

	for pass := 0; pass < maxPasses; pass++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		community, moved := localMove(g, rng)
		if !moved {
			break
		}

		var mapped []int
		g, mapped = aggregate(g, community)
		for i := range membership {
			membership[i] = mapped[membership[i]]
		}
		if len(g.ids) == len(community) {
			break
		}
	}

	result := renumberBySortedID(claimantIDs, membership)
	if d.logger != nil {
		d.logger.Info("community detection finished",
			"claimants", len(claimantIDs),
			"communities", countDistinct(result),
		)
	}
	return result, nil
}

// renumberBySortedID assigns compact community indices in order of first
// appearance when walking claimants sorted by id, so two runs over the same
// snapshot label communities identically.
func renumberBySortedID(ids []string, membership []int) map[string]int {
	byID := make(map[string]int, len(ids))
	for i, id := range ids {
		byID[id] = membership[i]
	}

	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)

	relabel := make(map[int]int)
	result := make(map[string]int, len(ids))
	for _, id := range sorted {
		c := byID[id]
		idx, ok := relabel[c]
		if !ok {
			idx = len(relabel)
			relabel[c] = idx
		}
		result[id] = idx
	}
	return result
}

func countDistinct(m map[string]int) int {
	seen := make(map[int]struct{}, len(m))
	for _, v := range m {
		seen[v] = struct{}{}
	}
	return len(seen)
}
