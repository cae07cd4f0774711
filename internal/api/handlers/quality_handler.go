package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pradeepsavadi/snowflake-observability/internal/dashboard"
	"github.com/pradeepsavadi/snowflake-observability/internal/queries"
)

const staleTableAlertLimit = 10

type QualityHandler struct {
	svc      *queries.Service
	settings SettingsProvider
}

func NewQualityHandler(svc *queries.Service, settings SettingsProvider) *QualityHandler {
	return &QualityHandler{svc: svc, settings: settings}
}

// Freshness lists tables ordered by hours since last modification. It takes
// no lookback because staleness is measured from now, not over a window.
func (h *QualityHandler) Freshness(c *fiber.Ctx) error {
	cfg := h.settings(c.Context())

	table, err := h.svc.TableFreshness(c.Context())
	sec := section("table_freshness", table, err, nil)
	if err == nil {
		sec = sec.WithAlerts(dashboard.FreshnessAlerts(table, float64(cfg.AlertFreshnessHours), staleTableAlertLimit)...)
	}

	return c.JSON(fiber.Map{
		"freshness_threshold_hours": cfg.AlertFreshnessHours,
		"section":                   sec,
	})
}

func (h *QualityHandler) SchemaChanges(c *fiber.Ctx) error {
	days, err := lookback(c, h.settings(c.Context()).LookbackDays)
	if err != nil {
		return badRequest(c, err.Error())
	}

	table, err := h.svc.SchemaChanges(c.Context(), days)
	return c.JSON(fiber.Map{
		"days":    days,
		"section": section("schema_changes", table, err, nil),
	})
}
