package dashboard

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pradeepsavadi/snowflake-observability/internal/queries"
	"github.com/pradeepsavadi/snowflake-observability/internal/snowflake"
)

func creditTable() snowflake.Table {
	return snowflake.Table{
		Columns: []string{"COST_DATE", "DAILY_CREDITS"},
		Rows:    [][]any{{"2025-06-01", 12.5}},
	}
}

func TestNewSectionWithData(t *testing.T) {
	table := creditTable()
	sec := NewSection(table, TrendChart(table, "COST_DATE", "DAILY_CREDITS", "Trend"))

	require.Empty(t, sec.Placeholder)
	require.Empty(t, sec.Advisory)
	require.NotNil(t, sec.Chart)
	require.Equal(t, "line", sec.Chart.Type)
	require.Equal(t, 1, sec.Data.Len())
}

func TestNewSectionEmptyGetsPlaceholder(t *testing.T) {
	empty := snowflake.Table{Columns: []string{"A"}}
	sec := NewSection(empty, TrendChart(empty, "A", "A", ""))

	require.Equal(t, NoDataMessage, sec.Placeholder)
	require.Nil(t, sec.Chart, "an empty table has no chart to describe")
	require.Empty(t, sec.Advisory)
}

func TestAdvisorySection(t *testing.T) {
	sec := AdvisorySection("view unavailable")
	require.Equal(t, "view unavailable", sec.Advisory)
	require.Nil(t, sec.Data)
}

func TestBarChartSortAndColor(t *testing.T) {
	table := snowflake.Table{
		Columns: []string{"WAREHOUSE_NAME", "TOTAL_CREDITS"},
		Rows:    [][]any{{"WH", 1.0}},
	}

	spec := BarChart(table, "WAREHOUSE_NAME", "TOTAL_CREDITS", "TOTAL_CREDITS", "Credits")
	require.Equal(t, "bar", spec.Type)
	require.Equal(t, "-x", spec.Y.Sort)
	require.NotNil(t, spec.Color)

	plain := BarChart(table, "WAREHOUSE_NAME", "TOTAL_CREDITS", "", "Credits")
	require.Nil(t, plain.Color)
}

func TestCostAnomalyAlerts(t *testing.T) {
	series := []queries.DailyCost{
		{Date: "2025-06-01", Cost: 100},
		{Date: "2025-06-02", Cost: 900, ZScore: 2.8, Anomaly: true},
	}

	alerts := CostAnomalyAlerts(series)
	require.Len(t, alerts, 1)
	require.Equal(t, AlertWarning, alerts[0].Level)
	require.Contains(t, alerts[0].Message, "2025-06-02")
}

func TestTaskFailureAlerts(t *testing.T) {
	table := snowflake.Table{
		Columns: []string{"TASK_NAME", "TOTAL_RUNS", "FAILED_RUNS"},
		Rows: [][]any{
			{"HEALTHY_TASK", 100.0, 2.0},
			{"FLAKY_TASK", 100.0, 25.0},
			{"NEVER_RAN", 0.0, 0.0},
		},
	}

	alerts := TaskFailureAlerts(table, 10)
	require.Len(t, alerts, 1)
	require.Contains(t, alerts[0].Message, "FLAKY_TASK")
	require.Equal(t, AlertError, alerts[0].Level)
}

func TestFreshnessAlertsRespectsLimit(t *testing.T) {
	table := snowflake.Table{
		Columns: []string{"DATABASE_NAME", "SCHEMA_NAME", "TABLE_NAME", "HOURS_SINCE_UPDATE"},
		Rows: [][]any{
			{"DB", "PUBLIC", "STALE_A", 48.0},
			{"DB", "PUBLIC", "STALE_B", 72.0},
			{"DB", "PUBLIC", "FRESH", 1.0},
			{"DB", "PUBLIC", "STALE_C", 200.0},
		},
	}

	alerts := FreshnessAlerts(table, 24, 2)
	require.Len(t, alerts, 2, "alert count is capped")

	all := FreshnessAlerts(table, 24, 10)
	require.Len(t, all, 3)
}
