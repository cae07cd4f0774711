package settings

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := NewStore(db)
	require.NoError(t, store.Init(context.Background()))
	return store
}

func TestStoreGetMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "credit_cost")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStoreUpsertThenGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.Upsert(ctx, Setting{
		Key:         "credit_cost",
		Value:       "3.1",
		Description: "Snowflake credit cost in dollars",
		UpdatedBy:   "alice",
	})
	require.NoError(t, err)

	got, err := store.Get(ctx, "credit_cost")
	require.NoError(t, err)
	require.Equal(t, "3.1", got.Value)
	require.Equal(t, "alice", got.UpdatedBy)
	require.False(t, got.UpdatedAt.IsZero())
}

func TestStoreUpsertLastWriteWins(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, Setting{Key: "time_period", Value: "30", UpdatedBy: "alice"}))
	require.NoError(t, store.Upsert(ctx, Setting{Key: "time_period", Value: "90", UpdatedBy: "bob"}))

	got, err := store.Get(ctx, "time_period")
	require.NoError(t, err)
	require.Equal(t, "90", got.Value)
	require.Equal(t, "bob", got.UpdatedBy)

	all, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1, "upserting the same key must not duplicate rows")
}

func TestStoreUpsertSameValueIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	row := Setting{Key: "credit_cost", Value: "2.5", Description: "Snowflake credit cost in dollars", UpdatedBy: "alice"}
	require.NoError(t, store.Upsert(ctx, row))
	first, err := store.Get(ctx, "credit_cost")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, store.Upsert(ctx, row))

	second, err := store.Get(ctx, "credit_cost")
	require.NoError(t, err)
	require.Equal(t, "2.5", second.Value, "rewriting the same value changes nothing but the timestamp")
	require.Equal(t, first.Description, second.Description)
	require.True(t, second.UpdatedAt.After(first.UpdatedAt))

	all, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestStoreUpsertRequiresKey(t *testing.T) {
	store := newTestStore(t)
	require.Error(t, store.Upsert(context.Background(), Setting{Value: "x"}))
}

func TestStoreInitIdempotent(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Init(context.Background()))
}

func TestStoreListSortedByKey(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, Setting{Key: "time_period", Value: "30"}))
	require.NoError(t, store.Upsert(ctx, Setting{Key: "credit_cost", Value: "2.5"}))

	all, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "credit_cost", all[0].Key)
	require.Equal(t, "time_period", all[1].Key)
}
