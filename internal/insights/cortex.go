package insights

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pradeepsavadi/snowflake-observability/internal/snowflake"
)

// CortexCompleter generates completions inside Snowflake itself via
// SNOWFLAKE.CORTEX.COMPLETE, so the packaged deployment needs no external
// LLM credentials.
type CortexCompleter struct {
	db          runner
	model       string
	temperature float32
	maxTokens   int
	timeout     time.Duration
}

type runner interface {
	Query(ctx context.Context, query string) (snowflake.Table, error)
}

func NewCortexCompleter(db runner, model string, temperature float32, maxTokens, timeoutSec int) *CortexCompleter {
	return &CortexCompleter{
		db:          db,
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
		timeout:     time.Duration(timeoutSec) * time.Second,
	}
}

func (c *CortexCompleter) Complete(ctx context.Context, system, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	query := fmt.Sprintf(`
SELECT SNOWFLAKE.CORTEX.COMPLETE(
    '%s',
    [
        {'role': 'system', 'content': '%s'},
        {'role': 'user', 'content': '%s'}
    ],
    {
        'temperature': %.2f,
        'max_tokens': %d
    }
) AS INSIGHT`,
		escapeSQL(c.model),
		escapeSQL(system),
		escapeSQL(prompt),
		c.temperature,
		c.maxTokens,
	)

	table, err := c.db.Query(ctx, query)
	if err != nil {
		return "", fmt.Errorf("cortex complete failed: %w", err)
	}
	if table.Empty() {
		return "", nil
	}
	return table.String(0, "INSIGHT"), nil
}

// escapeSQL doubles single quotes for embedding in a string literal. The
// COMPLETE call takes the prompt as literal text, so this is the only
// escaping the statement needs.
func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
