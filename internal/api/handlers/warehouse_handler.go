package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pradeepsavadi/snowflake-observability/internal/dashboard"
	"github.com/pradeepsavadi/snowflake-observability/internal/queries"
	"github.com/pradeepsavadi/snowflake-observability/internal/snowflake"
)

type WarehouseHandler struct {
	svc      *queries.Service
	settings SettingsProvider
}

func NewWarehouseHandler(svc *queries.Service, settings SettingsProvider) *WarehouseHandler {
	return &WarehouseHandler{svc: svc, settings: settings}
}

func (h *WarehouseHandler) Metrics(c *fiber.Ctx) error {
	days, err := lookback(c, h.settings(c.Context()).LookbackDays)
	if err != nil {
		return badRequest(c, err.Error())
	}

	table, err := h.svc.WarehouseMetrics(c.Context(), days)
	sec := section("warehouse_metrics", table, err,
		dashboard.BarChart(table, "WAREHOUSE_NAME", "TOTAL_CREDITS", "TOTAL_CREDITS", "Credits by Warehouse"))
	if err == nil && !table.Empty() {
		sec = sec.WithTiles(warehouseTiles(table, h.settings(c.Context()).CreditCost)...)
	}

	return c.JSON(fiber.Map{"days": days, "section": sec})
}

func (h *WarehouseHandler) Recommendations(c *fiber.Ctx) error {
	days, err := lookback(c, h.settings(c.Context()).LookbackDays)
	if err != nil {
		return badRequest(c, err.Error())
	}

	table, err := h.svc.WarehouseRecommendations(c.Context(), days)
	return c.JSON(fiber.Map{
		"days":    days,
		"section": section("warehouse_recommendations", table, err, nil),
	})
}

func warehouseTiles(t snowflake.Table, creditCost float64) []dashboard.MetricTile {
	var totalCredits float64
	for i := 0; i < t.Len(); i++ {
		totalCredits += t.Float(i, "TOTAL_CREDITS")
	}

	return []dashboard.MetricTile{
		{Label: "Active Warehouses", Value: dashboard.FormatNumber(float64(t.Len()))},
		{Label: "Total Credits", Value: dashboard.FormatNumber(totalCredits)},
		{Label: "Estimated Cost", Value: "$" + dashboard.FormatNumber(totalCredits*creditCost)},
	}
}
