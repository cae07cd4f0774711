package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pradeepsavadi/snowflake-observability/internal/queries"
)

type AIHandler struct {
	svc      *queries.Service
	settings SettingsProvider
}

func NewAIHandler(svc *queries.Service, settings SettingsProvider) *AIHandler {
	return &AIHandler{svc: svc, settings: settings}
}

// CortexUsage reports the three Cortex service usage views. The views are
// fetched independently: accounts without a given service get its section
// empty while the others still populate.
func (h *AIHandler) CortexUsage(c *fiber.Ctx) error {
	days, err := lookback(c, h.settings(c.Context()).LookbackDays)
	if err != nil {
		return badRequest(c, err.Error())
	}

	usage, err := h.svc.CortexUsage(c.Context(), days)
	if err != nil {
		return badRequest(c, err.Error())
	}

	return c.JSON(fiber.Map{
		"days": days,
		"sections": fiber.Map{
			"analyst":    section("cortex_analyst", usage.Analyst, nil, nil),
			"search":     section("cortex_search", usage.Search, nil, nil),
			"finetuning": section("cortex_finetuning", usage.Finetuning, nil, nil),
		},
	})
}
