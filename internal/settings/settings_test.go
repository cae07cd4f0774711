package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pradeepsavadi/snowflake-observability/pkg/config"
)

func testDefaults() Settings {
	return Defaults(config.DashboardConfig{
		DefaultLookbackDays: 30,
		CreditCost:          2.5,
		StorageCostPerTB:    23.0,
		AlertCostSpikePct:   50,
		AlertQueryTimeSec:   300,
		AlertFailureRatePct: 10,
		AlertFreshnessHours: 24,
	})
}

func TestLoadEmptyStoreReturnsDefaults(t *testing.T) {
	store := newTestStore(t)

	got, err := Load(context.Background(), store, testDefaults())
	require.NoError(t, err)
	require.Equal(t, testDefaults(), got)
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	want := Settings{
		CreditCost:          3.5,
		StorageCostPerTB:    21.0,
		LookbackDays:        60,
		AlertCostSpikePct:   75,
		AlertQueryTimeSec:   120,
		AlertFailureRatePct: 5,
		AlertFreshnessHours: 12,
	}
	require.NoError(t, Save(ctx, store, want, "alice"))

	got, err := Load(ctx, store, testDefaults())
	require.NoError(t, err)
	require.Equal(t, want, got)

	row, err := store.Get(ctx, "credit_cost")
	require.NoError(t, err)
	require.Equal(t, "alice", row.UpdatedBy)
}

func TestLoadOverlaysPartialValues(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, Setting{Key: "credit_cost", Value: "4.0"}))

	got, err := Load(ctx, store, testDefaults())
	require.NoError(t, err)
	require.InDelta(t, 4.0, got.CreditCost, 1e-9)
	require.Equal(t, 30, got.LookbackDays, "untouched keys keep their defaults")
}

func TestLoadIgnoresUnparsableValues(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, Setting{Key: "credit_cost", Value: "not-a-number"}))
	require.NoError(t, store.Upsert(ctx, Setting{Key: "some_future_key", Value: "ignored"}))

	got, err := Load(ctx, store, testDefaults())
	require.NoError(t, err)
	require.InDelta(t, 2.5, got.CreditCost, 1e-9)
}
