package generator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ananya/fraudlens/backend/internal/domain"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.NumClaimants = 50
	cfg.NumRings = 3
	cfg.Seed = 42
	return cfg
}

func TestGenerator_Deterministic(t *testing.T) {
	first, err := New(testConfig()).Generate(context.Background())
	require.NoError(t, err)
	second, err := New(testConfig()).Generate(context.Background())
	require.NoError(t, err)

	require.Equal(t, len(first.Claimants), len(second.Claimants))
	require.Equal(t, len(first.Claims), len(second.Claims))
	for i := range first.Claimants {
		assert.Equal(t, first.Claimants[i], second.Claimants[i])
	}
	for i := range first.Claims {
		assert.Equal(t, first.Claims[i], second.Claims[i])
	}
	assert.Equal(t, first.Relationships, second.Relationships)
}

func TestGenerator_PlantsRings(t *testing.T) {
	cfg := testConfig()
	ds, err := New(cfg).Generate(context.Background())
	require.NoError(t, err)

	rings := make(map[string][]domain.Claimant)
	for _, c := range ds.Claimants {
		if c.IsRingMember {
			require.NotEmpty(t, c.RingID)
			rings[c.RingID] = append(rings[c.RingID], c)
		}
	}
	require.Len(t, rings, cfg.NumRings)
	for ringID, members := range rings {
		assert.GreaterOrEqual(t, len(members), cfg.MinRingSize, ringID)
		assert.LessOrEqual(t, len(members), cfg.MaxRingSize, ringID)
	}

	// Ring members file more, inflated claims tied back to their ring.
	ringClaims := 0
	for _, rec := range ds.Claims {
		if rec.IsRingClaim {
			ringClaims++
			assert.NotEmpty(t, rec.RingID)
		}
	}
	assert.Greater(t, ringClaims, 0)
}

func TestGenerator_SharedAttributeEdgesAreConsistent(t *testing.T) {
	ds, err := New(testConfig()).Generate(context.Background())
	require.NoError(t, err)

	byID := make(map[string]domain.Claimant, len(ds.Claimants))
	for _, c := range ds.Claimants {
		byID[c.ID] = c
	}

	for _, e := range ds.Relationships {
		require.True(t, e.Label.IsRelational(), "unexpected label %s", e.Label)
		src, ok := byID[e.SourceID]
		require.True(t, ok, "unknown source %s", e.SourceID)
		dst, ok := byID[e.TargetID]
		require.True(t, ok, "unknown target %s", e.TargetID)

		switch e.Label {
		case domain.EdgeSharesAddress:
			assert.Equal(t, src.Address, dst.Address)
		case domain.EdgeSharesPhone:
			assert.Equal(t, src.Phone, dst.Phone)
		}
	}
}

func TestGenerator_ReferentialIntegrity(t *testing.T) {
	ds, err := New(testConfig()).Generate(context.Background())
	require.NoError(t, err)

	policies := make(map[string]bool)
	for _, p := range ds.Policies {
		policies[p.ID] = true
	}
	vehicles := make(map[string]bool)
	for _, v := range ds.Vehicles {
		require.True(t, policies[v.PolicyID], "vehicle %s references unknown policy", v.ID)
		vehicles[v.ID] = true
	}
	shops := make(map[string]bool)
	for _, s := range ds.RepairShops {
		shops[s.ID] = true
	}
	witnesses := make(map[string]bool)
	for _, w := range ds.Witnesses {
		witnesses[w.ID] = true
	}

	for _, rec := range ds.Claims {
		require.True(t, policies[rec.PolicyID], "claim %s references unknown policy", rec.ID)
		if rec.VehicleID != "" {
			require.True(t, vehicles[rec.VehicleID], "claim %s references unknown vehicle", rec.ID)
		}
		if rec.ShopID != "" {
			require.True(t, shops[rec.ShopID], "claim %s references unknown shop", rec.ID)
		}
		for _, wid := range rec.WitnessIDs {
			require.True(t, witnesses[wid], "claim %s references unknown witness", rec.ID)
		}
		assert.Greater(t, rec.Amount, 0.0)
	}
}

func TestGenerator_RecurringWitnessesMatchRings(t *testing.T) {
	cfg := testConfig()
	ds, err := New(cfg).Generate(context.Background())
	require.NoError(t, err)

	recurring := 0
	for _, w := range ds.Witnesses {
		if w.IsRecurring {
			recurring++
		}
	}
	assert.Equal(t, cfg.NumRings, recurring)
}

func TestGenerator_StableVINs(t *testing.T) {
	v := vin("VEH_POL_CLM_01_0")
	assert.Len(t, v, 17)
	assert.Equal(t, v, vin("VEH_POL_CLM_01_0"))
	assert.NotEqual(t, v, vin("VEH_POL_CLM_01_1"))
}

func TestGenerator_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(testConfig()).Generate(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
