// Package generator synthesises claims graphs with planted fraud rings so the
// detectors have ground truth to find: rings share addresses and phones, file
// inflated claims through the same shops and providers, and reuse witnesses.
package generator

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ananya/fraudlens/backend/internal/domain"
)

// Generator produces a deterministic synthetic dataset for a given seed.
type Generator struct {
	cfg  Config
	rand *rand.Rand
}

// New returns a configured Generator, filling zero config fields from the
// defaults.
func New(cfg Config) *Generator {
	def := DefaultConfig()
	if cfg.NumClaimants <= 0 {
		cfg.NumClaimants = def.NumClaimants
	}
	if cfg.NumRings < 0 {
		cfg.NumRings = def.NumRings
	}
	if cfg.MinRingSize <= 1 {
		cfg.MinRingSize = def.MinRingSize
	}
	if cfg.MaxRingSize < cfg.MinRingSize {
		cfg.MaxRingSize = cfg.MinRingSize
	}
	if cfg.NumRepairShops <= 0 {
		cfg.NumRepairShops = def.NumRepairShops
	}
	if cfg.NumMedicalProviders <= 0 {
		cfg.NumMedicalProviders = def.NumMedicalProviders
	}
	if cfg.NumLawyers <= 0 {
		cfg.NumLawyers = def.NumLawyers
	}
	if cfg.NumWitnesses <= 0 {
		cfg.NumWitnesses = def.NumWitnesses
	}
	if cfg.RelatedChance <= 0 {
		cfg.RelatedChance = def.RelatedChance
	}
	if cfg.SharedAddressChance <= 0 {
		cfg.SharedAddressChance = def.SharedAddressChance
	}
	if cfg.SharedPhoneChance <= 0 {
		cfg.SharedPhoneChance = def.SharedPhoneChance
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return &Generator{cfg: cfg, rand: rand.New(rand.NewSource(cfg.Seed))}
}

type claimBand struct {
	min, max float64
}

var claimTypes = map[string]claimBand{
	"collision": {2000, 15000},
	"injury":    {5000, 50000},
	"theft":     {3000, 25000},
	"vandalism": {500, 5000},
}

var claimTypeOrder = []string{"collision", "injury", "theft", "vandalism"}

var claimStatuses = []string{"submitted", "under_review", "approved", "denied"}

// datasetEpoch anchors generated dates so a seed always yields an identical
// dataset, independent of wall-clock time.
var datasetEpoch = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

// Generate synthesises the full dataset. It respects context cancellation.
func (g *Generator) Generate(ctx context.Context) (domain.Dataset, error) {
	ds := domain.Dataset{
		GeneratedAt: time.Now().UTC(),
		Seed:        g.cfg.Seed,
	}

	g.generateResources(&ds)

	ringMembers := make(map[string][]domain.Claimant)
	for r := 0; r < g.cfg.NumRings; r++ {
		if err := ctx.Err(); err != nil {
			return domain.Dataset{}, err
		}
		ringID := fmt.Sprintf("RING_%02d", r+1)
		members := g.generateRing(ringID, &ds)
		ringMembers[ringID] = members
	}

	for i := 0; i < g.cfg.NumClaimants; i++ {
		if err := ctx.Err(); err != nil {
			return domain.Dataset{}, err
		}
		ds.Claimants = append(ds.Claimants, domain.Claimant{
			ID:          fmt.Sprintf("CLM_LEG_%04d", i),
			Name:        g.fullName(),
			Address:     g.address(),
			Phone:       g.phone(),
			DateOfBirth: g.birthDate(),
		})
	}

	g.generatePoliciesAndVehicles(&ds)
	g.generateWitnesses(&ds)

	if err := g.generateClaims(ctx, &ds, ringMembers); err != nil {
		return domain.Dataset{}, err
	}

	return ds, nil
}

func (g *Generator) generateResources(ds *domain.Dataset) {
	for i := 0; i < g.cfg.NumRepairShops; i++ {
		ds.RepairShops = append(ds.RepairShops, domain.ServiceProvider{
			ID:      fmt.Sprintf("SHOP_%02d", i),
			Kind:    domain.ResourceRepairShop,
			Name:    g.pick(shopNames) + " " + g.pick(shopSuffixes),
			Address: g.address(),
			Phone:   g.phone(),
		})
	}
	for i := 0; i < g.cfg.NumMedicalProviders; i++ {
		ds.MedicalProviders = append(ds.MedicalProviders, domain.ServiceProvider{
			ID:        fmt.Sprintf("MED_%02d", i),
			Kind:      domain.ResourceMedicalProvider,
			Name:      "Dr. " + g.lastName() + " Clinic",
			Specialty: g.pick(specialties),
			Address:   g.address(),
			Phone:     g.phone(),
		})
	}
	for i := 0; i < g.cfg.NumLawyers; i++ {
		ds.Lawyers = append(ds.Lawyers, domain.ServiceProvider{
			ID:        fmt.Sprintf("LAW_%02d", i),
			Kind:      domain.ResourceLawyer,
			Name:      g.lastName() + " & Associates",
			Specialty: "personal injury",
			Address:   g.address(),
			Phone:     g.phone(),
		})
	}
}

// generateRing creates the members of one ring, their shared address/phone
// pools and the relational edges among them. SHARES_ADDRESS and SHARES_PHONE
// edges are derived from actually-equal attributes, not sampled
// independently, so the graph stays consistent with the node properties.
func (g *Generator) generateRing(ringID string, ds *domain.Dataset) []domain.Claimant {
	size := g.cfg.MinRingSize + g.rand.Intn(g.cfg.MaxRingSize-g.cfg.MinRingSize+1)

	sharedAddresses := make([]string, max(1, size/3))
	for i := range sharedAddresses {
		sharedAddresses[i] = g.address()
	}
	sharedPhones := make([]string, max(1, size/4))
	for i := range sharedPhones {
		sharedPhones[i] = g.phone()
	}

	members := make([]domain.Claimant, size)
	for i := 0; i < size; i++ {
		address := g.address()
		if g.rand.Float64() < g.cfg.SharedAddressChance {
			address = sharedAddresses[g.rand.Intn(len(sharedAddresses))]
		}
		phone := g.phone()
		if g.rand.Float64() < g.cfg.SharedPhoneChance {
			phone = sharedPhones[g.rand.Intn(len(sharedPhones))]
		}
		members[i] = domain.Claimant{
			ID:           fmt.Sprintf("CLM_%s_%02d", ringID, i),
			Name:         g.fullName(),
			Address:      address,
			Phone:        phone,
			DateOfBirth:  g.birthDate(),
			IsRingMember: true,
			RingID:       ringID,
		}
	}
	ds.Claimants = append(ds.Claimants, members...)

	for i := 0; i < size; i++ {
		for j := i + 1; j < size; j++ {
			if g.rand.Float64() < g.cfg.RelatedChance {
				ds.Relationships = append(ds.Relationships, domain.RelationalEdge{
					SourceID: members[i].ID,
					TargetID: members[j].ID,
					Label:    domain.EdgeRelatedTo,
				})
			}
			if members[i].Address == members[j].Address {
				ds.Relationships = append(ds.Relationships, domain.RelationalEdge{
					SourceID: members[i].ID,
					TargetID: members[j].ID,
					Label:    domain.EdgeSharesAddress,
				})
			}
			if members[i].Phone == members[j].Phone {
				ds.Relationships = append(ds.Relationships, domain.RelationalEdge{
					SourceID: members[i].ID,
					TargetID: members[j].ID,
					Label:    domain.EdgeSharesPhone,
				})
			}
		}
	}
	return members
}

func (g *Generator) generatePoliciesAndVehicles(ds *domain.Dataset) {
	for _, c := range ds.Claimants {
		numPolicies := 1
		if c.IsRingMember && g.rand.Float64() < 0.4 {
			numPolicies = 2
		}
		for p := 0; p < numPolicies; p++ {
			start := datasetEpoch.AddDate(0, -g.rand.Intn(36), 0)
			policy := domain.Policy{
				ID:         fmt.Sprintf("POL_%s_%d", c.ID, p),
				ClaimantID: c.ID,
				Type:       "auto",
				Premium:    float64(600 + g.rand.Intn(2400)),
				StartDate:  start,
				EndDate:    start.AddDate(1, 0, 0),
			}
			ds.Policies = append(ds.Policies, policy)

			vehicleID := fmt.Sprintf("VEH_%s", policy.ID)
			ds.Vehicles = append(ds.Vehicles, domain.Vehicle{
				ID:       vehicleID,
				PolicyID: policy.ID,
				Make:     g.pick(vehicleMakes),
				Model:    g.pick(vehicleModels),
				Year:     2005 + g.rand.Intn(20),
				VIN:      vin(vehicleID),
			})
		}
	}
}

func (g *Generator) generateWitnesses(ds *domain.Dataset) {
	for i := 0; i < g.cfg.NumWitnesses; i++ {
		// One recurring professional witness per ring; the rest are
		// ordinary bystanders.
		recurring := i < g.cfg.NumRings
		ds.Witnesses = append(ds.Witnesses, domain.Witness{
			ID:          fmt.Sprintf("WIT_%03d", i),
			Name:        g.fullName(),
			Phone:       g.phone(),
			IsRecurring: recurring,
		})
	}
}

func (g *Generator) generateClaims(ctx context.Context, ds *domain.Dataset, ringMembers map[string][]domain.Claimant) error {
	policiesByClaimant := make(map[string][]domain.Policy)
	for _, p := range ds.Policies {
		policiesByClaimant[p.ClaimantID] = append(policiesByClaimant[p.ClaimantID], p)
	}
	vehicleByPolicy := make(map[string]string)
	for _, v := range ds.Vehicles {
		vehicleByPolicy[v.PolicyID] = v.ID
	}

	fraudShops := providerIDs(ds.RepairShops[:min(g.cfg.NumFraudShops, len(ds.RepairShops))])
	legitShops := providerIDs(ds.RepairShops[min(g.cfg.NumFraudShops, len(ds.RepairShops)):])
	fraudProviders := providerIDs(ds.MedicalProviders[:min(g.cfg.NumFraudProviders, len(ds.MedicalProviders))])
	legitProviders := providerIDs(ds.MedicalProviders[min(g.cfg.NumFraudProviders, len(ds.MedicalProviders)):])
	fraudLawyers := providerIDs(ds.Lawyers[:min(g.cfg.NumFraudLawyers, len(ds.Lawyers))])
	legitLawyers := providerIDs(ds.Lawyers[min(g.cfg.NumFraudLawyers, len(ds.Lawyers)):])

	ringStrategy := make(map[string]int)
	ringShop := make(map[string]string)
	ringProvider := make(map[string]string)
	ringWitness := make(map[string]string)
	idx := 0
	for _, ringID := range sortedRingIDs(ringMembers) {
		ringStrategy[ringID] = idx % 3
		if len(fraudShops) > 0 {
			ringShop[ringID] = fraudShops[idx%len(fraudShops)]
		}
		if len(fraudProviders) > 0 {
			ringProvider[ringID] = fraudProviders[idx%len(fraudProviders)]
		}
		if idx < len(ds.Witnesses) {
			ringWitness[ringID] = ds.Witnesses[idx].ID
		}
		idx++
	}

	seq := 0
	for _, c := range ds.Claimants {
		if err := ctx.Err(); err != nil {
			return err
		}
		policies := policiesByClaimant[c.ID]
		if len(policies) == 0 {
			continue
		}

		numClaims := g.rand.Intn(3) // 0..2 for the background population
		if c.IsRingMember {
			numClaims = 2 + g.rand.Intn(3) // 2..4
		}

		for n := 0; n < numClaims; n++ {
			policy := policies[g.rand.Intn(len(policies))]
			claimType := claimTypeOrder[g.rand.Intn(len(claimTypeOrder))]
			band := claimTypes[claimType]

			amount := band.min + g.rand.Float64()*(band.max-band.min)
			if c.IsRingMember {
				amount = band.max * (0.7 + g.rand.Float64()*0.6)
			}

			seq++
			rec := domain.ClaimRecord{
				Claim: domain.Claim{
					ID:          fmt.Sprintf("CLAIM_%06d", seq),
					ClaimantID:  c.ID,
					PolicyID:    policy.ID,
					Amount:      float64(int(amount*100)) / 100,
					Type:        claimType,
					Date:        datasetEpoch.AddDate(0, 0, -g.rand.Intn(720)),
					Status:      g.pick(claimStatuses),
					IsRingClaim: c.IsRingMember,
					RingID:      c.RingID,
				},
				VehicleID: vehicleByPolicy[policy.ID],
			}

			if c.IsRingMember {
				g.steerRingClaim(&rec, c.RingID, ringStrategy, ringShop, ringProvider,
					fraudShops, fraudProviders, fraudLawyers, legitShops, legitProviders, legitLawyers)
				if wid, ok := ringWitness[c.RingID]; ok && g.rand.Float64() < 0.6 {
					rec.WitnessIDs = append(rec.WitnessIDs, wid)
				}
			} else {
				rec.ShopID = g.pickID(legitShops)
				if g.rand.Float64() < 0.3 {
					rec.ProviderID = g.pickID(legitProviders)
				}
				if g.rand.Float64() < 0.2 {
					rec.LawyerID = g.pickID(legitLawyers)
				}
				if g.rand.Float64() < 0.15 && len(ds.Witnesses) > g.cfg.NumRings {
					w := ds.Witnesses[g.cfg.NumRings+g.rand.Intn(len(ds.Witnesses)-g.cfg.NumRings)]
					rec.WitnessIDs = append(rec.WitnessIDs, w.ID)
				}
			}

			ds.Claims = append(ds.Claims, rec)
		}
	}
	return nil
}

// steerRingClaim routes a ring claim through the ring's designated shared
// resources so each ring deterministically trips one of the pattern
// detectors.
func (g *Generator) steerRingClaim(rec *domain.ClaimRecord, ringID string,
	strategy map[string]int, ringShop, ringProvider map[string]string,
	fraudShops, fraudProviders, fraudLawyers, legitShops, legitProviders, legitLawyers []string) {

	switch strategy[ringID] {
	case 0: // shared repair shop ring
		rec.ShopID = ringShop[ringID]
		if g.rand.Float64() < 0.5 {
			rec.ProviderID = g.pickID(legitProviders)
		}
		rec.LawyerID = g.pickID(legitLawyers)
	case 1: // medical mill ring
		rec.ShopID = g.pickID(legitShops)
		rec.ProviderID = ringProvider[ringID]
		if g.rand.Float64() < 0.7 {
			rec.LawyerID = g.pickID(fraudLawyers)
		}
	default: // mixed
		if g.rand.Float64() < 0.9 {
			rec.ShopID = g.pickID(fraudShops)
		} else {
			rec.ShopID = g.pickID(legitShops)
		}
		if g.rand.Float64() < 0.8 {
			rec.ProviderID = g.pickID(fraudProviders)
		}
		if g.rand.Float64() < 0.85 {
			rec.LawyerID = g.pickID(fraudLawyers)
		} else {
			rec.LawyerID = g.pickID(legitLawyers)
		}
	}
}

// vin derives a stable pseudo-VIN from the vehicle id via a namespaced UUID,
// so regenerated datasets keep identical vehicle identities.
func vin(vehicleID string) string {
	u := uuid.NewSHA1(uuid.NameSpaceOID, []byte(vehicleID))
	return strings.ToUpper(strings.ReplaceAll(u.String(), "-", ""))[:17]
}

func providerIDs(providers []domain.ServiceProvider) []string {
	out := make([]string, len(providers))
	for i, p := range providers {
		out[i] = p.ID
	}
	return out
}

func sortedRingIDs(ringMembers map[string][]domain.Claimant) []string {
	ids := make([]string, 0, len(ringMembers))
	for id := range ringMembers {
		ids = append(ids, id)
	}
	// Ring ids are zero-padded, so lexical order is generation order.
	sort.Strings(ids)
	return ids
}

func (g *Generator) pick(options []string) string {
	return options[g.rand.Intn(len(options))]
}

func (g *Generator) pickID(ids []string) string {
	if len(ids) == 0 {
		return ""
	}
	return ids[g.rand.Intn(len(ids))]
}

func (g *Generator) fullName() string {
	return g.pick(firstNames) + " " + g.lastName()
}

func (g *Generator) lastName() string {
	return g.pick(lastNames)
}

func (g *Generator) address() string {
	return fmt.Sprintf("%d %s, %s", 1+g.rand.Intn(9999), g.pick(streets), g.pick(cities))
}

func (g *Generator) phone() string {
	return fmt.Sprintf("555-%03d-%04d", g.rand.Intn(1000), g.rand.Intn(10000))
}

func (g *Generator) birthDate() time.Time {
	return time.Date(1950+g.rand.Intn(50), time.Month(1+g.rand.Intn(12)), 1+g.rand.Intn(28), 0, 0, 0, 0, time.UTC)
}
