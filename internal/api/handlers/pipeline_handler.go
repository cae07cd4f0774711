package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pradeepsavadi/snowflake-observability/internal/dashboard"
	"github.com/pradeepsavadi/snowflake-observability/internal/queries"
)

type PipelineHandler struct {
	svc      *queries.Service
	settings SettingsProvider
}

func NewPipelineHandler(svc *queries.Service, settings SettingsProvider) *PipelineHandler {
	return &PipelineHandler{svc: svc, settings: settings}
}

func (h *PipelineHandler) Tasks(c *fiber.Ctx) error {
	cfg := h.settings(c.Context())
	days, err := lookback(c, cfg.LookbackDays)
	if err != nil {
		return badRequest(c, err.Error())
	}

	table, err := h.svc.TaskHistory(c.Context(), days)
	sec := section("task_history", table, err,
		dashboard.BarChart(table, "TASK_NAME", "FAILED_RUNS", "", "Task Failures"))
	if err == nil {
		sec = sec.WithAlerts(dashboard.TaskFailureAlerts(table, cfg.AlertFailureRatePct)...)
	}

	return c.JSON(fiber.Map{"days": days, "section": sec})
}

func (h *PipelineHandler) Pipes(c *fiber.Ctx) error {
	days, err := lookback(c, h.settings(c.Context()).LookbackDays)
	if err != nil {
		return badRequest(c, err.Error())
	}

	usage, err := h.svc.PipeUsage(c.Context(), days)
	if err != nil {
		return c.JSON(fiber.Map{
			"days":    days,
			"section": dashboard.AdvisorySection(advisoryMessage(err)),
		})
	}

	return c.JSON(fiber.Map{
		"days": days,
		"pipe": dashboard.NewSection(usage.Pipe,
			dashboard.BarChart(usage.Pipe, "PIPE_NAME", "TOTAL_BYTES", "", "Snowpipe Volume")),
		"streaming": dashboard.NewSection(usage.Streaming,
			dashboard.BarChart(usage.Streaming, "CHANNEL_NAME", "TOTAL_BYTES", "", "Streaming Volume")),
	})
}

func (h *PipelineHandler) DynamicTables(c *fiber.Ctx) error {
	days, err := lookback(c, h.settings(c.Context()).LookbackDays)
	if err != nil {
		return badRequest(c, err.Error())
	}

	table, err := h.svc.DynamicTableRefreshes(c.Context(), days)
	return c.JSON(fiber.Map{
		"days":    days,
		"section": section("dynamic_table_refreshes", table, err, nil),
	})
}
