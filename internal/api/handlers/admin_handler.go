package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/pradeepsavadi/snowflake-observability/internal/queries"
	"github.com/pradeepsavadi/snowflake-observability/pkg/logger"
)

type AdminHandler struct {
	svc *queries.Service
}

func NewAdminHandler(svc *queries.Service) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// RefreshCache drops every cached query result. The next request for any
// metric hits Snowflake again.
func (h *AdminHandler) RefreshCache(c *fiber.Ctx) error {
	if err := h.svc.FlushCache(c.Context()); err != nil {
		logger.Error("Cache flush failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to flush cache",
		})
	}
	return c.JSON(fiber.Map{"status": "cache flushed"})
}
