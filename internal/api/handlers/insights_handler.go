package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/pradeepsavadi/snowflake-observability/internal/insights"
	"github.com/pradeepsavadi/snowflake-observability/internal/snowflake"
)

type InsightsHandler struct {
	generator *insights.Generator
}

func NewInsightsHandler(generator *insights.Generator) *InsightsHandler {
	return &InsightsHandler{generator: generator}
}

type insightRequest struct {
	Type    string                     `json:"type"`
	Tables  map[string]snowflake.Table `json:"tables"`
	Metrics map[string]string          `json:"metrics"`
	Context string                     `json:"context"`
}

type insightResponse struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Text        string `json:"text,omitempty"`
	Advisory    string `json:"advisory,omitempty"`
	GeneratedAt string `json:"generated_at"`
}

var insightTypes = map[string]insights.InsightType{
	string(insights.TypeSummary):               insights.TypeSummary,
	string(insights.TypeWarehouseOptimization): insights.TypeWarehouseOptimization,
	string(insights.TypeCostSummary):           insights.TypeCostSummary,
	string(insights.TypePerformanceAnalysis):   insights.TypePerformanceAnalysis,
	string(insights.TypeSecurityReview):        insights.TypeSecurityReview,
}

// Generate produces an AI insight over caller-supplied context data. The
// insight is advisory text only; a provider failure degrades to an inline
// notice and the request still succeeds.
func (h *InsightsHandler) Generate(c *fiber.Ctx) error {
	var req insightRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	insightType, ok := insightTypes[req.Type]
	if !ok {
		insightType = insights.TypeSummary
		req.Type = string(insights.TypeSummary)
	}

	contextData := req.Context
	if contextData == "" {
		contextData = insights.Digest(req.Tables)
	}
	if len(req.Metrics) > 0 {
		if contextData != "" {
			contextData += "\n\n"
		}
		contextData += insights.DigestMetrics(req.Metrics)
	}
	if contextData == "" {
		return badRequest(c, "no context data provided")
	}

	resp := insightResponse{
		ID:          uuid.New().String(),
		Type:        req.Type,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}

	text, err := h.generator.Generate(c.Context(), insightType, contextData)
	if err != nil {
		resp.Advisory = insights.ErrUnavailable.Error()
		return c.JSON(resp)
	}
	resp.Text = text
	return c.JSON(resp)
}
