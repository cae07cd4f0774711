package snowflake

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTableAccessors(t *testing.T) {
	table := Table{
		Columns: []string{"NAME", "CREDITS", "RUNS"},
		Rows: [][]any{
			{"ANALYTICS_WH", 12.5, int64(42)},
			{"LOADING_WH", "3.25", nil},
		},
	}

	require.False(t, table.Empty())
	require.Equal(t, 2, table.Len())
	require.Equal(t, 1, table.ColumnIndex("CREDITS"))
	require.Equal(t, -1, table.ColumnIndex("MISSING"))

	require.Equal(t, "ANALYTICS_WH", table.String(0, "NAME"))
	require.Equal(t, "42", table.String(0, "RUNS"))
	require.Equal(t, "", table.String(1, "RUNS"))

	require.InDelta(t, 12.5, table.Float(0, "CREDITS"), 1e-9)
	require.InDelta(t, 3.25, table.Float(1, "CREDITS"), 1e-9, "numeric strings parse")
	require.Zero(t, table.Float(0, "MISSING"))
	require.Zero(t, table.Float(5, "CREDITS"), "out-of-range rows yield zero")
}

func TestTableStringTimestampCell(t *testing.T) {
	when := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
	table := Table{
		Columns: []string{"COST_DATE"},
		Rows:    [][]any{{when}},
	}

	// Fresh from the driver the cell is a time.Time; after a cache round
	// trip it is an RFC 3339 string. Both must render identically.
	require.Equal(t, "2025-06-03T00:00:00Z", table.String(0, "COST_DATE"))

	data, err := json.Marshal(table)
	require.NoError(t, err)
	var decoded Table
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, table.String(0, "COST_DATE"), decoded.String(0, "COST_DATE"))
}

func TestTableSurvivesJSONRoundTrip(t *testing.T) {
	orig := Table{
		Columns: []string{"NAME", "CREDITS"},
		Rows:    [][]any{{"WH", int64(7)}},
	}

	data, err := json.Marshal(orig)
	require.NoError(t, err)

	var decoded Table
	require.NoError(t, json.Unmarshal(data, &decoded))

	// int64 comes back as float64 after the round trip; accessors must not
	// care.
	require.Equal(t, "WH", decoded.String(0, "NAME"))
	require.InDelta(t, 7.0, decoded.Float(0, "CREDITS"), 1e-9)
}
