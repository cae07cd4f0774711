package insights

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/pradeepsavadi/snowflake-observability/internal/metrics"
	"github.com/pradeepsavadi/snowflake-observability/pkg/logger"
)

// ErrUnavailable covers every insight failure mode: generation is
// best-effort and callers degrade to rendering without the AI summary.
var ErrUnavailable = errors.New("AI insights temporarily unavailable")

// InsightType selects the prompt template.
type InsightType string

const (
	TypeSummary               InsightType = "summary"
	TypeWarehouseOptimization InsightType = "warehouse_optimization"
	TypeCostSummary           InsightType = "cost_summary"
	TypePerformanceAnalysis   InsightType = "performance_analysis"
	TypeSecurityReview        InsightType = "security_review"
)

const systemPrompt = "You are a Snowflake optimization expert providing concise, actionable insights."

// Completer is a hosted text-completion capability: one prompt in, one
// string out. Implementations bound output length and temperature
// themselves.
type Completer interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

type Generator struct {
	completer Completer
	enabled   bool
}

func NewGenerator(completer Completer, enabled bool) *Generator {
	return &Generator{completer: completer, enabled: enabled}
}

func (g *Generator) Enabled() bool {
	return g.enabled && g.completer != nil
}

// Generate produces a natural-language insight over the given context data.
// The returned string is opaque advisory text; it is never parsed or used
// in computation.
func (g *Generator) Generate(ctx context.Context, insightType InsightType, contextData string) (string, error) {
	if !g.Enabled() {
		return "", ErrUnavailable
	}

	prompt := buildPrompt(insightType, contextData)

	text, err := g.completer.Complete(ctx, systemPrompt, prompt)
	if err != nil {
		metrics.InsightRequests.WithLabelValues(string(insightType), "error").Inc()
		logger.Warn("Insight generation failed",
			zap.String("type", string(insightType)),
			zap.Error(err),
		)
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if text == "" {
		metrics.InsightRequests.WithLabelValues(string(insightType), "empty").Inc()
		return "", ErrUnavailable
	}

	metrics.InsightRequests.WithLabelValues(string(insightType), "success").Inc()
	return text, nil
}

func buildPrompt(insightType InsightType, contextData string) string {
	switch insightType {
	case TypeWarehouseOptimization:
		return fmt.Sprintf(`Analyze the following Snowflake warehouse metrics and provide 3-5 actionable optimization recommendations:

%s

Focus on: cost savings, performance improvements, and right-sizing opportunities.
Keep recommendations specific, practical, and prioritized by potential impact.`, contextData)

	case TypeCostSummary:
		return fmt.Sprintf(`Summarize the following Snowflake cost data and highlight:
1. Key cost drivers
2. Unusual spending patterns
3. Top 3 cost optimization opportunities

Data: %s

Be concise and actionable.`, contextData)

	case TypePerformanceAnalysis:
		return fmt.Sprintf(`Analyze these query performance metrics and identify:
1. Main performance bottlenecks
2. Queries that need immediate attention
3. Recommended optimizations

Metrics: %s

Prioritize by impact on user experience and cost.`, contextData)

	case TypeSecurityReview:
		return fmt.Sprintf(`Review these access patterns and login activities:

%s

Identify any:
1. Unusual access patterns
2. Potential security risks
3. Recommended security improvements`, contextData)

	default:
		return fmt.Sprintf(`Provide a concise executive summary of this Snowflake observability data:

%s

Highlight: key metrics, trends, and top 3 action items.`, contextData)
	}
}
