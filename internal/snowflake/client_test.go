package snowflake

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE usage_history (name TEXT, credits REAL)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO usage_history VALUES ('ANALYTICS_WH', 12.5), ('LOADING_WH', 3.0)`)
	require.NoError(t, err)

	return NewClientFromDB(db, 10*time.Second)
}

func TestQueryScansFullResult(t *testing.T) {
	client := newTestClient(t)

	table, err := client.Query(context.Background(), `SELECT name AS NAME, credits AS CREDITS FROM usage_history ORDER BY credits DESC`)
	require.NoError(t, err)
	require.Equal(t, []string{"NAME", "CREDITS"}, table.Columns)
	require.Equal(t, 2, table.Len())
	require.Equal(t, "ANALYTICS_WH", table.String(0, "NAME"))
	require.InDelta(t, 3.0, table.Float(1, "CREDITS"), 1e-9)
}

func TestQueryEmptyResultIsNotError(t *testing.T) {
	client := newTestClient(t)

	table, err := client.Query(context.Background(), `SELECT name FROM usage_history WHERE credits > 1000`)
	require.NoError(t, err)
	require.True(t, table.Empty())
}

func TestQueryMissingTableIsSourceUnavailable(t *testing.T) {
	client := newTestClient(t)

	_, err := client.Query(context.Background(), `SELECT * FROM absent_view`)
	require.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestPing(t *testing.T) {
	client := newTestClient(t)
	require.NoError(t, client.Ping(context.Background()))
}
