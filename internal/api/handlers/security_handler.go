package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pradeepsavadi/snowflake-observability/internal/dashboard"
	"github.com/pradeepsavadi/snowflake-observability/internal/queries"
)

type SecurityHandler struct {
	svc      *queries.Service
	settings SettingsProvider
}

func NewSecurityHandler(svc *queries.Service, settings SettingsProvider) *SecurityHandler {
	return &SecurityHandler{svc: svc, settings: settings}
}

func (h *SecurityHandler) Logins(c *fiber.Ctx) error {
	days, err := lookback(c, h.settings(c.Context()).LookbackDays)
	if err != nil {
		return badRequest(c, err.Error())
	}

	table, err := h.svc.LoginHistory(c.Context(), days)
	sec := section("login_history", table, err, nil)
	if err == nil && !table.Empty() {
		var failures int
		for i := 0; i < table.Len(); i++ {
			if table.String(i, "IS_SUCCESS") == "NO" {
				failures++
			}
		}
		if failures > 0 {
			sec = sec.WithAlerts(dashboard.Alert{
				Level:   dashboard.AlertWarning,
				Message: dashboard.FormatNumber(float64(failures)) + " failed login attempts in this period",
			})
		}
	}

	return c.JSON(fiber.Map{"days": days, "section": sec})
}

func (h *SecurityHandler) AccessPatterns(c *fiber.Ctx) error {
	days, err := lookback(c, h.settings(c.Context()).LookbackDays)
	if err != nil {
		return badRequest(c, err.Error())
	}

	table, err := h.svc.AccessPatterns(c.Context(), days)
	return c.JSON(fiber.Map{
		"days": days,
		"section": section("access_patterns", table, err,
			dashboard.BarChart(table, "USER_NAME", "ACCESS_COUNT", "", "Access Volume by User")),
	})
}
