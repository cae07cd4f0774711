package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/pradeepsavadi/snowflake-observability/internal/dashboard"
	"github.com/pradeepsavadi/snowflake-observability/internal/insights"
	"github.com/pradeepsavadi/snowflake-observability/internal/queries"
)

type OverviewHandler struct {
	svc       *queries.Service
	generator *insights.Generator
	settings  SettingsProvider
}

func NewOverviewHandler(svc *queries.Service, generator *insights.Generator, settings SettingsProvider) *OverviewHandler {
	return &OverviewHandler{svc: svc, generator: generator, settings: settings}
}

// Summary is the landing page payload: headline stats, the cost and query
// volume trends, and an optional AI summary. Each part is fetched
// independently so one failing source never blanks the page.
func (h *OverviewHandler) Summary(c *fiber.Ctx) error {
	cfg := h.settings(c.Context())
	days, err := lookback(c, cfg.LookbackDays)
	if err != nil {
		return badRequest(c, err.Error())
	}

	resp := fiber.Map{"days": days}

	stats, statsErr := h.svc.QuickStats(c.Context(), days)
	if statsErr != nil {
		resp["stats"] = dashboard.AdvisorySection(advisoryMessage(statsErr))
	} else {
		resp["stats"] = dashboard.Section{}.WithTiles(
			dashboard.MetricTile{Label: "Active Warehouses", Value: dashboard.FormatNumber(float64(stats.ActiveWarehouses))},
			dashboard.MetricTile{Label: "Active Databases", Value: dashboard.FormatNumber(float64(stats.ActiveDatabases))},
			dashboard.MetricTile{Label: "Active Users", Value: dashboard.FormatNumber(float64(stats.ActiveUsers))},
			dashboard.MetricTile{Label: "Total Credits", Value: fmt.Sprintf("%.1f", stats.TotalCredits)},
			dashboard.MetricTile{Label: "Estimated Cost", Value: fmt.Sprintf("$%.2f", stats.TotalCredits*cfg.CreditCost)},
		)
	}

	credits, creditsErr := h.svc.DailyCredits(c.Context(), days)
	resp["cost_trend"] = section("daily_credits", credits, creditsErr,
		dashboard.TrendChart(credits, "COST_DATE", "DAILY_CREDITS", "Daily Credit Trend"))

	volume, volumeErr := h.svc.QueryVolume(c.Context(), days)
	resp["query_volume"] = section("query_volume", volume, volumeErr,
		dashboard.TrendChart(volume, "QUERY_DATE", "QUERY_COUNT", "Query Volume"))

	if h.generator.Enabled() && statsErr == nil {
		summary, err := h.generator.Generate(c.Context(), insights.TypeSummary, insights.DigestMetrics(map[string]string{
			"active_warehouses": dashboard.FormatNumber(float64(stats.ActiveWarehouses)),
			"active_databases":  dashboard.FormatNumber(float64(stats.ActiveDatabases)),
			"active_users":      dashboard.FormatNumber(float64(stats.ActiveUsers)),
			"total_credits":     fmt.Sprintf("%.1f", stats.TotalCredits),
			"estimated_cost":    fmt.Sprintf("$%.2f", stats.TotalCredits*cfg.CreditCost),
			"period_days":       fmt.Sprintf("%d", days),
		}))
		if err == nil {
			resp["ai_summary"] = summary
		}
	}

	return c.JSON(resp)
}
