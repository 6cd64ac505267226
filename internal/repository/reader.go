package repository

import (
	"context"
	"fmt"
	"sort"

	"github.com/ananya/fraudlens/backend/internal/domain"
	"github.com/ananya/fraudlens/backend/internal/graph"
)

// RelationalEdges returns every claimant-to-claimant edge, one row per
// unordered pair and label.
func (r *Repository) RelationalEdges(ctx context.Context) ([]domain.RelationalEdge, error) {
	res, err := r.client.ExecuteRead(ctx, relationalEdgesCypher, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch relational edges: %w", err)
	}

	edges := make([]domain.RelationalEdge, 0, len(res.Records))
	for _, rec := range res.Records {
		edges = append(edges, domain.RelationalEdge{
			SourceID: rec.String("sourceId"),
			TargetID: rec.String("targetId"),
			Label:    domain.EdgeLabel(rec.String("label")),
		})
	}
	return edges, nil
}

// ResourceUsage lists resources of the given kind together with the distinct
// claimants and claims attached to them, pre-filtered to minClaims to bound
// what crosses the wire. Witnesses are additionally restricted to those the
// ingestion layer flagged as recurring.
func (r *Repository) ResourceUsage(ctx context.Context, kind domain.ResourceKind, minClaims int) ([]domain.ResourceUsage, error) {
	var cypher string
	switch kind {
	case domain.ResourceRepairShop:
		cypher = repairShopUsageCypher
	case domain.ResourceMedicalProvider:
		cypher = medicalProviderUsageCypher
	case domain.ResourceWitness:
		cypher = recurringWitnessUsageCypher
	default:
		return nil, fmt.Errorf("unsupported resource kind %q", kind)
	}

	res, err := r.client.ExecuteRead(ctx, cypher, map[string]any{"minClaims": minClaims})
	if err != nil {
		return nil, fmt.Errorf("fetch %s usage: %w", kind, err)
	}

	usages := make([]domain.ResourceUsage, 0, len(res.Records))
	for _, rec := range res.Records {
		claimants := rec.Strings("claimantIds")
		sort.Strings(claimants)
		usages = append(usages, domain.ResourceUsage{
			ResourceID:   rec.String("resourceId"),
			ResourceName: rec.String("resourceName"),
			ClaimantIDs:  claimants,
			ClaimCount:   rec.Int("claimCount"),
		})
	}
	return usages, nil
}

// ConnectionsWithin counts the distinct connected unordered claimant pairs
// inside the given set. The count is pushed to the store so the quadratic
// pair enumeration happens against its indexes, not in process.
func (r *Repository) ConnectionsWithin(ctx context.Context, claimantIDs []string) (int, error) {
	if len(claimantIDs) < 2 {
		return 0, nil
	}
	res, err := r.client.ExecuteRead(ctx, connectionsWithinCypher, map[string]any{"claimantIds": claimantIDs})
	if err != nil {
		return 0, fmt.Errorf("count connections within cluster: %w", err)
	}
	return singleInt(res, "connections"), nil
}

// ClaimantRingFlags resolves the ground-truth ring-membership flag for a set
// of claimants.
func (r *Repository) ClaimantRingFlags(ctx context.Context, claimantIDs []string) (map[string]bool, error) {
	if len(claimantIDs) == 0 {
		return map[string]bool{}, nil
	}
	res, err := r.client.ExecuteRead(ctx, claimantRingFlagsCypher, map[string]any{"claimantIds": claimantIDs})
	if err != nil {
		return nil, fmt.Errorf("fetch claimant ring flags: %w", err)
	}

	flags := make(map[string]bool, len(res.Records))
	for _, rec := range res.Records {
		flags[rec.String("claimantId")] = rec.Bool("isRingMember")
	}
	return flags, nil
}

// ClaimContext loads one claim with its claimant and linked service
// providers. Returns domain.ErrClaimNotFound when the claim is absent.
func (r *Repository) ClaimContext(ctx context.Context, claimID string) (domain.ClaimContext, error) {
	res, err := r.client.ExecuteRead(ctx, claimContextCypher, map[string]any{"claimId": claimID})
	if err != nil {
		return domain.ClaimContext{}, fmt.Errorf("fetch claim %s: %w", claimID, err)
	}
	if len(res.Records) == 0 {
		return domain.ClaimContext{}, fmt.Errorf("claim %s: %w", claimID, domain.ErrClaimNotFound)
	}

	rec := res.Records[0]
	return domain.ClaimContext{
		Claim: domain.Claim{
			ID:     rec.String("claimId"),
			Amount: rec.Float("amount"),
			Type:   rec.String("claimType"),
			Status: rec.String("status"),
		},
		ClaimantID: rec.String("claimantId"),
		ShopID:     rec.String("shopId"),
		ProviderID: rec.String("providerId"),
		LawyerID:   rec.String("lawyerId"),
	}, nil
}

// RingConnectionCount counts distinct relational neighbours of the claimant
// that carry the ring-member flag.
func (r *Repository) RingConnectionCount(ctx context.Context, claimantID string) (int, error) {
	res, err := r.client.ExecuteRead(ctx, ringConnectionCountCypher, map[string]any{"claimantId": claimantID})
	if err != nil {
		return 0, fmt.Errorf("count ring connections for %s: %w", claimantID, err)
	}
	return singleInt(res, "ringConnections"), nil
}

// ResourceClaimTotal returns the system-wide claim count of one repair shop
// or medical provider.
func (r *Repository) ResourceClaimTotal(ctx context.Context, resourceID string, kind domain.ResourceKind) (int, error) {
	var cypher string
	switch kind {
	case domain.ResourceRepairShop:
		cypher = repairShopClaimTotalCypher
	case domain.ResourceMedicalProvider:
		cypher = medicalProviderClaimTotalCypher
	default:
		return 0, fmt.Errorf("unsupported resource kind %q", kind)
	}

	res, err := r.client.ExecuteRead(ctx, cypher, map[string]any{"resourceId": resourceID})
	if err != nil {
		return 0, fmt.Errorf("count claims for %s %s: %w", kind, resourceID, err)
	}
	return singleInt(res, "totalClaims"), nil
}

// LawyerClientCount counts the distinct claimants one lawyer represents.
func (r *Repository) LawyerClientCount(ctx context.Context, lawyerID string) (int, error) {
	res, err := r.client.ExecuteRead(ctx, lawyerClientCountCypher, map[string]any{"resourceId": lawyerID})
	if err != nil {
		return 0, fmt.Errorf("count clients for lawyer %s: %w", lawyerID, err)
	}
	return singleInt(res, "clientCount"), nil
}

// ClaimHistory summarizes the claimant's filed claims.
func (r *Repository) ClaimHistory(ctx context.Context, claimantID string) (domain.ClaimHistory, error) {
	res, err := r.client.ExecuteRead(ctx, claimHistoryCypher, map[string]any{"claimantId": claimantID})
	if err != nil {
		return domain.ClaimHistory{}, fmt.Errorf("fetch claim history for %s: %w", claimantID, err)
	}
	if len(res.Records) == 0 {
		return domain.ClaimHistory{}, nil
	}
	return domain.ClaimHistory{
		Count:       res.Records[0].Int("totalClaims"),
		TotalAmount: res.Records[0].Float("totalAmount"),
	}, nil
}

// SharedAddressCount counts other claimants registered at the claimant's
// address.
func (r *Repository) SharedAddressCount(ctx context.Context, claimantID string) (int, error) {
	res, err := r.client.ExecuteRead(ctx, sharedAddressCountCypher, map[string]any{"claimantId": claimantID})
	if err != nil {
		return 0, fmt.Errorf("count shared address for %s: %w", claimantID, err)
	}
	return singleInt(res, "sharedCount"), nil
}

// ClaimAmountStats returns mean and standard deviation of claim amounts for
// one claim type, recomputed from the full current population.
func (r *Repository) ClaimAmountStats(ctx context.Context, claimType string) (domain.AmountStats, error) {
	res, err := r.client.ExecuteRead(ctx, amountStatsCypher, map[string]any{"claimType": claimType})
	if err != nil {
		return domain.AmountStats{}, fmt.Errorf("fetch amount stats for %s: %w", claimType, err)
	}
	if len(res.Records) == 0 {
		return domain.AmountStats{}, nil
	}
	rec := res.Records[0]
	return domain.AmountStats{
		Mean:  rec.Float("mean"),
		Stdev: rec.Float("stdev"),
		Count: rec.Int("count"),
	}, nil
}

// Overview computes the dashboard rollup in a handful of aggregate queries.
func (r *Repository) Overview(ctx context.Context) (domain.GraphOverview, error) {
	var out domain.GraphOverview

	res, err := r.client.ExecuteRead(ctx, countClaimantsCypher, nil)
	if err != nil {
		return out, fmt.Errorf("count claimants: %w", err)
	}
	out.Claimants = singleInt(res, "total")

	res, err = r.client.ExecuteRead(ctx, countClaimsCypher, nil)
	if err != nil {
		return out, fmt.Errorf("count claims: %w", err)
	}
	out.Claims = singleInt(res, "total")

	res, err = r.client.ExecuteRead(ctx, ringMemberStatsCypher, nil)
	if err != nil {
		return out, fmt.Errorf("ring member stats: %w", err)
	}
	if len(res.Records) > 0 {
		rec := res.Records[0]
		out.Rings = rec.Int("rings")
		out.RingMembers = rec.Int("members")
		out.MembersWithClaims = rec.Int("membersWithClaims")
	}

	res, err = r.client.ExecuteRead(ctx, ringClaimStatsCypher, nil)
	if err != nil {
		return out, fmt.Errorf("ring claim stats: %w", err)
	}
	if len(res.Records) > 0 {
		out.RingClaims = res.Records[0].Int("ringClaims")
		out.RingClaimAmount = res.Records[0].Float("ringAmount")
	}

	return out, nil
}

// ClaimantSubgraph fetches the depth-2 neighborhood around one claimant for
// investigation views.
func (r *Repository) ClaimantSubgraph(ctx context.Context, claimantID string) (domain.Subgraph, error) {
	res, err := r.client.ExecuteRead(ctx, claimantSubgraphCypher, map[string]any{"claimantId": claimantID})
	if err != nil {
		return domain.Subgraph{}, fmt.Errorf("fetch subgraph for %s: %w", claimantID, err)
	}

	sub := domain.Subgraph{CenterID: claimantID}
	if len(res.Records) == 0 {
		return sub, nil
	}

	rec := res.Records[0]
	if rawNodes, ok := rec["nodes"].([]any); ok {
		for _, rn := range rawNodes {
			m, ok := rn.(map[string]any)
			if !ok {
				continue
			}
			node := domain.SubgraphNode{}
			node.ID, _ = m["id"].(string)
			node.Type, _ = m["type"].(string)
			node.Label, _ = m["label"].(string)
			sub.Nodes = append(sub.Nodes, node)
		}
	}
	if rawEdges, ok := rec["edges"].([]any); ok {
		for _, re := range rawEdges {
			m, ok := re.(map[string]any)
			if !ok {
				continue
			}
			edge := domain.SubgraphEdge{}
			if t, ok := m["type"].(string); ok {
				edge.Type = domain.EdgeLabel(t)
			}
			edge.Source, _ = m["source"].(string)
			edge.Target, _ = m["target"].(string)
			sub.Edges = append(sub.Edges, edge)
		}
	}
	return sub, nil
}

func singleInt(res graph.Result, key string) int {
	if len(res.Records) == 0 {
		return 0
	}
	return res.Records[0].Int(key)
}
