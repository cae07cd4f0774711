package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/pradeepsavadi/snowflake-observability/internal/queries"
	"github.com/pradeepsavadi/snowflake-observability/internal/settings"
	"github.com/pradeepsavadi/snowflake-observability/pkg/logger"
)

type SettingsHandler struct {
	store    *settings.Store
	defaults settings.Settings
}

func NewSettingsHandler(store *settings.Store, defaults settings.Settings) *SettingsHandler {
	return &SettingsHandler{store: store, defaults: defaults}
}

// Get returns the effective settings: stored values overlaid on defaults.
// A store failure falls back to defaults so the dashboard still loads.
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	s, err := settings.Load(c.Context(), h.store, h.defaults)
	if err != nil {
		logger.Warn("Settings load failed, serving defaults", zap.Error(err))
	}
	return c.JSON(s)
}

// Update persists the full settings document. Concurrent writers are not
// coordinated; the last write wins per key.
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	s := h.defaults
	if err := c.BodyParser(&s); err != nil {
		return badRequest(c, "invalid request body")
	}

	if s.CreditCost <= 0 {
		return badRequest(c, "credit_cost must be positive")
	}
	if s.StorageCostPerTB <= 0 {
		return badRequest(c, "storage_cost_per_tb must be positive")
	}
	if err := queries.ValidateLookback(s.LookbackDays); err != nil {
		return badRequest(c, err.Error())
	}
	if s.AlertCostSpikePct <= 0 || s.AlertQueryTimeSec <= 0 || s.AlertFailureRatePct <= 0 || s.AlertFreshnessHours <= 0 {
		return badRequest(c, "alert thresholds must be positive")
	}

	updatedBy := c.Get("X-User", "api")
	if err := settings.Save(c.Context(), h.store, s, updatedBy); err != nil {
		logger.Error("Settings save failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to persist settings",
		})
	}

	return c.JSON(s)
}
