package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/pradeepsavadi/snowflake-observability/internal/dashboard"
	"github.com/pradeepsavadi/snowflake-observability/internal/queries"
	"github.com/pradeepsavadi/snowflake-observability/internal/settings"
	"github.com/pradeepsavadi/snowflake-observability/internal/snowflake"
	"github.com/pradeepsavadi/snowflake-observability/pkg/logger"
)

// SettingsProvider returns the effective dashboard settings for a request:
// stored values overlaid on defaults, or plain defaults when the store is
// unreachable.
type SettingsProvider func(ctx context.Context) settings.Settings

// lookback reads and validates the ?days query parameter.
func lookback(c *fiber.Ctx, def int) (int, error) {
	days := c.QueryInt("days", def)
	if err := queries.ValidateLookback(days); err != nil {
		return 0, err
	}
	return days, nil
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

// section converts a query outcome into a section payload. Failures are
// contained here: the section carries an inline advisory and the response
// stays 200 so sibling sections keep rendering.
func section(name string, table snowflake.Table, err error, chart *dashboard.ChartSpec) dashboard.Section {
	if err != nil {
		logger.Warn("Section query failed", zap.String("section", name), zap.Error(err))
		return dashboard.AdvisorySection(advisoryMessage(err))
	}
	return dashboard.NewSection(table, chart)
}

func advisoryMessage(err error) string {
	if errors.Is(err, snowflake.ErrSourceUnavailable) {
		return "This view does not exist or the current role is not authorized to read it"
	}
	return "Unable to load this section"
}
