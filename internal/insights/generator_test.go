package insights

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	system string
	prompt string
	reply  string
	err    error
}

func (f *fakeCompleter) Complete(ctx context.Context, system, prompt string) (string, error) {
	f.system = system
	f.prompt = prompt
	return f.reply, f.err
}

func TestGenerateUsesTypedPrompt(t *testing.T) {
	fake := &fakeCompleter{reply: "Consider downsizing LOADING_WH."}
	gen := NewGenerator(fake, true)

	text, err := gen.Generate(context.Background(), TypeWarehouseOptimization, "WAREHOUSE_NAME | CREDITS\nLOADING_WH | 42")
	require.NoError(t, err)
	require.Equal(t, "Consider downsizing LOADING_WH.", text)
	require.Contains(t, fake.prompt, "warehouse metrics")
	require.Contains(t, fake.prompt, "LOADING_WH | 42")
	require.Contains(t, fake.system, "Snowflake optimization expert")
}

func TestGeneratePromptPerType(t *testing.T) {
	cases := map[InsightType]string{
		TypeCostSummary:         "cost data",
		TypePerformanceAnalysis: "performance metrics",
		TypeSecurityReview:      "access patterns",
		TypeSummary:             "executive summary",
	}

	for insightType, marker := range cases {
		fake := &fakeCompleter{reply: "ok"}
		gen := NewGenerator(fake, true)

		_, err := gen.Generate(context.Background(), insightType, "data")
		require.NoError(t, err)
		require.Contains(t, fake.prompt, marker, "type %s", insightType)
	}
}

func TestGenerateDisabled(t *testing.T) {
	gen := NewGenerator(&fakeCompleter{reply: "never"}, false)
	require.False(t, gen.Enabled())

	_, err := gen.Generate(context.Background(), TypeSummary, "data")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestGenerateNilCompleter(t *testing.T) {
	gen := NewGenerator(nil, true)
	require.False(t, gen.Enabled())

	_, err := gen.Generate(context.Background(), TypeSummary, "data")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestGenerateProviderFailure(t *testing.T) {
	fake := &fakeCompleter{err: errors.New("model overloaded")}
	gen := NewGenerator(fake, true)

	_, err := gen.Generate(context.Background(), TypeSummary, "data")
	require.ErrorIs(t, err, ErrUnavailable, "provider errors collapse to the advisory sentinel")
}

func TestGenerateEmptyReply(t *testing.T) {
	fake := &fakeCompleter{reply: ""}
	gen := NewGenerator(fake, true)

	_, err := gen.Generate(context.Background(), TypeSummary, "data")
	require.ErrorIs(t, err, ErrUnavailable)
}
