package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pradeepsavadi/snowflake-observability/internal/dashboard"
	"github.com/pradeepsavadi/snowflake-observability/internal/queries"
)

type PerformanceHandler struct {
	svc      *queries.Service
	settings SettingsProvider
}

func NewPerformanceHandler(svc *queries.Service, settings SettingsProvider) *PerformanceHandler {
	return &PerformanceHandler{svc: svc, settings: settings}
}

func (h *PerformanceHandler) Insights(c *fiber.Ctx) error {
	days, err := lookback(c, h.settings(c.Context()).LookbackDays)
	if err != nil {
		return badRequest(c, err.Error())
	}

	table, err := h.svc.QueryPerformanceInsights(c.Context(), days)
	return c.JSON(fiber.Map{
		"days": days,
		"section": section("query_performance", table, err,
			dashboard.BarChart(table, "ISSUE_TYPE", "QUERY_COUNT", "", "Problematic Queries by Issue")),
	})
}

func (h *PerformanceHandler) Pruning(c *fiber.Ctx) error {
	days, err := lookback(c, h.settings(c.Context()).LookbackDays)
	if err != nil {
		return badRequest(c, err.Error())
	}

	table, err := h.svc.PruningEfficiency(c.Context(), days)
	return c.JSON(fiber.Map{
		"days": days,
		"section": section("pruning_efficiency", table, err,
			dashboard.BarChart(table, "TABLE_NAME", "AVG_SCAN_RATIO", "", "Worst Pruning Ratios")),
	})
}
