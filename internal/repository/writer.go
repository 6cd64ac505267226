package repository

import (
	"context"
	"fmt"

	"github.com/ananya/fraudlens/backend/internal/domain"
)

var constraintCyphers = []string{
	`CREATE CONSTRAINT claimant_id IF NOT EXISTS FOR (c:Claimant) REQUIRE c.claimantId IS UNIQUE`,
	`CREATE CONSTRAINT policy_id IF NOT EXISTS FOR (p:Policy) REQUIRE p.policyId IS UNIQUE`,
	`CREATE CONSTRAINT vehicle_id IF NOT EXISTS FOR (v:Vehicle) REQUIRE v.vehicleId IS UNIQUE`,
	`CREATE CONSTRAINT claim_id IF NOT EXISTS FOR (cl:Claim) REQUIRE cl.claimId IS UNIQUE`,
	`CREATE CONSTRAINT shop_id IF NOT EXISTS FOR (s:RepairShop) REQUIRE s.shopId IS UNIQUE`,
	`CREATE CONSTRAINT provider_id IF NOT EXISTS FOR (m:MedicalProvider) REQUIRE m.providerId IS UNIQUE`,
	`CREATE CONSTRAINT lawyer_id IF NOT EXISTS FOR (l:Lawyer) REQUIRE l.lawyerId IS UNIQUE`,
	`CREATE CONSTRAINT witness_id IF NOT EXISTS FOR (w:Witness) REQUIRE w.witnessId IS UNIQUE`,
}

const upsertClaimantCypher = `
MERGE (c:Claimant {claimantId: $claimantId})
SET c += $props`

const upsertPolicyCypher = `
MATCH (c:Claimant {claimantId: $claimantId})
MERGE (p:Policy {policyId: $policyId})
SET p += $props
MERGE (c)-[:HAS_POLICY]->(p)`

const upsertVehicleCypher = `
MATCH (p:Policy {policyId: $policyId})
MERGE (v:Vehicle {vehicleId: $vehicleId})
SET v += $props
MERGE (p)-[:INSURED_BY]->(v)`

const upsertRepairShopCypher = `
MERGE (s:RepairShop {shopId: $resourceId})
SET s += $props`

const upsertMedicalProviderCypher = `
MERGE (m:MedicalProvider {providerId: $resourceId})
SET m += $props`

const upsertLawyerCypher = `
MERGE (l:Lawyer {lawyerId: $resourceId})
SET l += $props`

const upsertClaimCypher = `
MATCH (c:Claimant {claimantId: $claimantId})
MERGE (cl:Claim {claimId: $claimId})
SET cl += $props
MERGE (c)-[:FILED_CLAIM]->(cl)
WITH cl
OPTIONAL MATCH (v:Vehicle {vehicleId: $vehicleId})
FOREACH (_ IN CASE WHEN v IS NULL THEN [] ELSE [1] END | MERGE (cl)-[:INVOLVES_VEHICLE]->(v))
WITH cl
OPTIONAL MATCH (s:RepairShop {shopId: $shopId})
FOREACH (_ IN CASE WHEN s IS NULL THEN [] ELSE [1] END | MERGE (cl)-[:REPAIRED_AT]->(s))
WITH cl
OPTIONAL MATCH (m:MedicalProvider {providerId: $providerId})
FOREACH (_ IN CASE WHEN m IS NULL THEN [] ELSE [1] END | MERGE (cl)-[:TREATED_BY]->(m))
WITH cl
OPTIONAL MATCH (l:Lawyer {lawyerId: $lawyerId})
FOREACH (_ IN CASE WHEN l IS NULL THEN [] ELSE [1] END | MERGE (cl)-[:REPRESENTED_BY]->(l))`

const attachWitnessCypher = `
MATCH (cl:Claim {claimId: $claimId})
MERGE (w:Witness {witnessId: $witnessId})
SET w += $props
MERGE (cl)-[:HAS_WITNESS]->(w)`

// EnsureConstraints creates the per-label uniqueness constraints the loaders
// rely on. Safe to call repeatedly.
func (r *Repository) EnsureConstraints(ctx context.Context) error {
	for _, cypher := range constraintCyphers {
		if _, err := r.client.ExecuteWrite(ctx, cypher, nil); err != nil {
			return fmt.Errorf("ensure constraint: %w", err)
		}
	}
	return nil
}

// UpsertClaimant creates or refreshes a claimant node.
func (r *Repository) UpsertClaimant(ctx context.Context, c domain.Claimant) error {
	if c.ID == "" {
		return fmt.Errorf("claimant id is required")
	}
	props := map[string]any{
		"name":         c.Name,
		"address":      c.Address,
		"phone":        c.Phone,
		"dateOfBirth":  c.DateOfBirth.Format("2006-01-02"),
		"isRingMember": c.IsRingMember,
	}
	if c.RingID != "" {
		props["ringId"] = c.RingID
	}

	_, err := r.client.ExecuteWrite(ctx, upsertClaimantCypher, map[string]any{
		"claimantId": c.ID,
		"props":      props,
	})
	if err != nil {
		return fmt.Errorf("upsert claimant %s: %w", c.ID, err)
	}
	return nil
}

// UpsertPolicy creates a policy node and links it to its claimant.
func (r *Repository) UpsertPolicy(ctx context.Context, p domain.Policy) error {
	if p.ID == "" || p.ClaimantID == "" {
		return fmt.Errorf("policy id and claimant id are required")
	}
	_, err := r.client.ExecuteWrite(ctx, upsertPolicyCypher, map[string]any{
		"policyId":   p.ID,
		"claimantId": p.ClaimantID,
		"props": map[string]any{
			"type":      p.Type,
			"premium":   p.Premium,
			"startDate": p.StartDate.Format("2006-01-02"),
			"endDate":   p.EndDate.Format("2006-01-02"),
		},
	})
	if err != nil {
		return fmt.Errorf("upsert policy %s: %w", p.ID, err)
	}
	return nil
}

// UpsertVehicle creates a vehicle node and links it to its policy.
func (r *Repository) UpsertVehicle(ctx context.Context, v domain.Vehicle) error {
	if v.ID == "" || v.PolicyID == "" {
		return fmt.Errorf("vehicle id and policy id are required")
	}
	_, err := r.client.ExecuteWrite(ctx, upsertVehicleCypher, map[string]any{
		"vehicleId": v.ID,
		"policyId":  v.PolicyID,
		"props": map[string]any{
			"make":  v.Make,
			"model": v.Model,
			"year":  v.Year,
			"vin":   v.VIN,
		},
	})
	if err != nil {
		return fmt.Errorf("upsert vehicle %s: %w", v.ID, err)
	}
	return nil
}

// UpsertServiceProvider creates a repair shop, medical provider or lawyer.
func (r *Repository) UpsertServiceProvider(ctx context.Context, sp domain.ServiceProvider) error {
	if sp.ID == "" {
		return fmt.Errorf("service provider id is required")
	}
	var cypher string
	switch sp.Kind {
	case domain.ResourceRepairShop:
		cypher = upsertRepairShopCypher
	case domain.ResourceMedicalProvider:
		cypher = upsertMedicalProviderCypher
	case domain.ResourceLawyer:
		cypher = upsertLawyerCypher
	default:
		return fmt.Errorf("unsupported service provider kind %q", sp.Kind)
	}

	props := map[string]any{
		"name":    sp.Name,
		"address": sp.Address,
		"phone":   sp.Phone,
	}
	if sp.Specialty != "" {
		props["specialty"] = sp.Specialty
	}

	_, err := r.client.ExecuteWrite(ctx, cypher, map[string]any{
		"resourceId": sp.ID,
		"props":      props,
	})
	if err != nil {
		return fmt.Errorf("upsert %s %s: %w", sp.Kind, sp.ID, err)
	}
	return nil
}

// UpsertClaim creates the claim node, the FILED_CLAIM edge and the optional
// vehicle/shop/provider/lawyer links in one statement. Empty resource ids
// simply skip their edge.
func (r *Repository) UpsertClaim(ctx context.Context, cl domain.Claim, vehicleID, shopID, providerID, lawyerID string) error {
	if cl.ID == "" || cl.ClaimantID == "" {
		return fmt.Errorf("claim id and claimant id are required")
	}
	props := map[string]any{
		"amount":      cl.Amount,
		"type":        cl.Type,
		"date":        cl.Date.Format("2006-01-02"),
		"status":      cl.Status,
		"isRingClaim": cl.IsRingClaim,
	}
	if cl.Description != "" {
		props["description"] = cl.Description
	}
	if cl.RingID != "" {
		props["ringId"] = cl.RingID
	}

	_, err := r.client.ExecuteWrite(ctx, upsertClaimCypher, map[string]any{
		"claimId":    cl.ID,
		"claimantId": cl.ClaimantID,
		"props":      props,
		"vehicleId":  vehicleID,
		"shopId":     shopID,
		"providerId": providerID,
		"lawyerId":   lawyerID,
	})
	if err != nil {
		return fmt.Errorf("upsert claim %s: %w", cl.ID, err)
	}
	return nil
}

// AttachWitness links a witness to a claim, creating the witness on first
// sight.
func (r *Repository) AttachWitness(ctx context.Context, claimID string, w domain.Witness) error {
	if claimID == "" || w.ID == "" {
		return fmt.Errorf("claim id and witness id are required")
	}
	_, err := r.client.ExecuteWrite(ctx, attachWitnessCypher, map[string]any{
		"claimId":   claimID,
		"witnessId": w.ID,
		"props": map[string]any{
			"name":        w.Name,
			"phone":       w.Phone,
			"isRecurring": w.IsRecurring,
		},
	})
	if err != nil {
		return fmt.Errorf("attach witness %s to claim %s: %w", w.ID, claimID, err)
	}
	return nil
}

// CreateRelationalEdge merges one claimant-to-claimant edge. The label is
// interpolated because Cypher cannot parameterize relationship types; only
// known relational labels are accepted.
func (r *Repository) CreateRelationalEdge(ctx context.Context, e domain.RelationalEdge) error {
	if !e.Label.IsRelational() {
		return fmt.Errorf("label %q is not a relational edge type", e.Label)
	}
	cypher := fmt.Sprintf(`
MATCH (a:Claimant {claimantId: $sourceId})
MATCH (b:Claimant {claimantId: $targetId})
MERGE (a)-[:%s]->(b)`, e.Label)

	_, err := r.client.ExecuteWrite(ctx, cypher, map[string]any{
		"sourceId": e.SourceID,
		"targetId": e.TargetID,
	})
	if err != nil {
		return fmt.Errorf("create %s edge %s->%s: %w", e.Label, e.SourceID, e.TargetID, err)
	}
	return nil
}
