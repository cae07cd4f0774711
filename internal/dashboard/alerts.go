package dashboard

import (
	"fmt"

	"github.com/pradeepsavadi/snowflake-observability/internal/queries"
	"github.com/pradeepsavadi/snowflake-observability/internal/snowflake"
)

// CostAnomalyAlerts turns flagged days in the cost series into alert
// badges.
func CostAnomalyAlerts(series []queries.DailyCost) []Alert {
	var alerts []Alert
	for _, day := range series {
		if day.Anomaly {
			alerts = append(alerts, Alert{
				Level:   AlertWarning,
				Message: fmt.Sprintf("Cost anomaly on %s: $%.2f (z-score %.1f)", day.Date, day.Cost, day.ZScore),
			})
		}
	}
	return alerts
}

// TaskFailureAlerts flags tasks whose failure rate over the window exceeds
// the configured threshold percentage.
func TaskFailureAlerts(t snowflake.Table, failureRatePct float64) []Alert {
	var alerts []Alert
	for i := 0; i < t.Len(); i++ {
		total := t.Float(i, "TOTAL_RUNS")
		failed := t.Float(i, "FAILED_RUNS")
		if total == 0 {
			continue
		}
		rate := failed / total * 100
		if rate > failureRatePct {
			alerts = append(alerts, Alert{
				Level: AlertError,
				Message: fmt.Sprintf("Task %s failing %.0f%% of runs (%d of %d)",
					t.String(i, "TASK_NAME"), rate, int(failed), int(total)),
			})
		}
	}
	return alerts
}

// FreshnessAlerts flags tables whose hours since last update exceed the
// configured threshold.
func FreshnessAlerts(t snowflake.Table, freshnessHours float64, limit int) []Alert {
	var alerts []Alert
	for i := 0; i < t.Len() && len(alerts) < limit; i++ {
		hours := t.Float(i, "HOURS_SINCE_UPDATE")
		if hours > freshnessHours {
			alerts = append(alerts, Alert{
				Level: AlertWarning,
				Message: fmt.Sprintf("Table %s.%s.%s stale for %s hours",
					t.String(i, "DATABASE_NAME"), t.String(i, "SCHEMA_NAME"), t.String(i, "TABLE_NAME"),
					FormatNumber(hours)),
			})
		}
	}
	return alerts
}
