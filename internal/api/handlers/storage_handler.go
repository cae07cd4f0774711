package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pradeepsavadi/snowflake-observability/internal/dashboard"
	"github.com/pradeepsavadi/snowflake-observability/internal/queries"
)

type StorageHandler struct {
	svc      *queries.Service
	settings SettingsProvider
}

func NewStorageHandler(svc *queries.Service, settings SettingsProvider) *StorageHandler {
	return &StorageHandler{svc: svc, settings: settings}
}

func (h *StorageHandler) Metrics(c *fiber.Ctx) error {
	cfg := h.settings(c.Context())
	days, err := lookback(c, cfg.LookbackDays)
	if err != nil {
		return badRequest(c, err.Error())
	}

	table, err := h.svc.StorageMetrics(c.Context(), days)
	sec := section("storage_metrics", table, err,
		dashboard.BarChart(table, "DATABASE_NAME", "TOTAL_BYTES", "", "Storage by Database"))
	if err == nil && !table.Empty() {
		var totalBytes float64
		for i := 0; i < table.Len(); i++ {
			totalBytes += table.Float(i, "TOTAL_BYTES")
		}
		monthlyCost := totalBytes / 1e12 * cfg.StorageCostPerTB
		sec = sec.WithTiles(
			dashboard.MetricTile{Label: "Total Storage", Value: dashboard.FormatBytes(totalBytes)},
			dashboard.MetricTile{Label: "Databases", Value: dashboard.FormatNumber(float64(table.Len()))},
			dashboard.MetricTile{Label: "Est. Monthly Cost", Value: "$" + dashboard.FormatNumber(monthlyCost)},
		)
	}

	return c.JSON(fiber.Map{"days": days, "section": sec})
}

// Insights lists optimization candidates: large unqueried tables and tables
// with heavy time-travel/fail-safe overhead.
func (h *StorageHandler) Insights(c *fiber.Ctx) error {
	table, err := h.svc.TableStorageInsights(c.Context())
	return c.JSON(fiber.Map{
		"section": section("table_storage_insights", table, err,
			dashboard.BarChart(table, "TABLE_NAME", "TOTAL_BYTES", "", "Optimization Candidates")),
	})
}
