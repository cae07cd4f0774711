package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pradeepsavadi/snowflake-observability/internal/dashboard"
	"github.com/pradeepsavadi/snowflake-observability/internal/queries"
)

type CostHandler struct {
	svc      *queries.Service
	settings SettingsProvider
}

func NewCostHandler(svc *queries.Service, settings SettingsProvider) *CostHandler {
	return &CostHandler{svc: svc, settings: settings}
}

func (h *CostHandler) Attribution(c *fiber.Ctx) error {
	cfg := h.settings(c.Context())
	days, err := lookback(c, cfg.LookbackDays)
	if err != nil {
		return badRequest(c, err.Error())
	}

	table, err := h.svc.CostAttribution(c.Context(), days, cfg.CreditCost)
	return c.JSON(fiber.Map{
		"days":        days,
		"credit_cost": cfg.CreditCost,
		"section": section("cost_attribution", table, err,
			dashboard.BarChart(table, "RESOURCE_NAME", "ESTIMATED_COST", "", "Cost by Resource")),
	})
}

func (h *CostHandler) Trend(c *fiber.Ctx) error {
	days, err := lookback(c, h.settings(c.Context()).LookbackDays)
	if err != nil {
		return badRequest(c, err.Error())
	}

	table, err := h.svc.DailyCredits(c.Context(), days)
	return c.JSON(fiber.Map{
		"days": days,
		"section": section("daily_credits", table, err,
			dashboard.TrendChart(table, "COST_DATE", "DAILY_CREDITS", "Daily Credit Trend")),
	})
}

// Anomalies flags days whose spend deviates from the window mean by more
// than the Z-score threshold.
func (h *CostHandler) Anomalies(c *fiber.Ctx) error {
	cfg := h.settings(c.Context())
	days, err := lookback(c, cfg.LookbackDays)
	if err != nil {
		return badRequest(c, err.Error())
	}

	series, err := h.svc.CostAnomalies(c.Context(), days, cfg.CreditCost)
	if err != nil {
		return c.JSON(fiber.Map{
			"days":    days,
			"section": dashboard.AdvisorySection(advisoryMessage(err)),
		})
	}

	return c.JSON(fiber.Map{
		"days":        days,
		"credit_cost": cfg.CreditCost,
		"series":      series,
		"alerts":      dashboard.CostAnomalyAlerts(series),
	})
}

func (h *CostHandler) DataTransfer(c *fiber.Ctx) error {
	days, err := lookback(c, h.settings(c.Context()).LookbackDays)
	if err != nil {
		return badRequest(c, err.Error())
	}

	table, err := h.svc.DataTransfer(c.Context(), days)
	return c.JSON(fiber.Map{
		"days": days,
		"section": section("data_transfer", table, err,
			dashboard.BarChart(table, "TRANSFER_TYPE", "TOTAL_BYTES", "", "Data Transfer Volume")),
	})
}
