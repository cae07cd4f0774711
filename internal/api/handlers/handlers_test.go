package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/pradeepsavadi/snowflake-observability/internal/cache"
	"github.com/pradeepsavadi/snowflake-observability/internal/insights"
	"github.com/pradeepsavadi/snowflake-observability/internal/queries"
	"github.com/pradeepsavadi/snowflake-observability/internal/settings"
	"github.com/pradeepsavadi/snowflake-observability/internal/snowflake"
	"github.com/pradeepsavadi/snowflake-observability/pkg/config"
)

type stubQuerier struct {
	table snowflake.Table
	err   error
}

func (s *stubQuerier) Query(ctx context.Context, query string) (snowflake.Table, error) {
	return s.table, s.err
}

func testSettings() settings.Settings {
	return settings.Settings{
		CreditCost:          2.5,
		StorageCostPerTB:    23.0,
		LookbackDays:        30,
		AlertCostSpikePct:   50,
		AlertQueryTimeSec:   300,
		AlertFailureRatePct: 10,
		AlertFreshnessHours: 24,
	}
}

func fixedProvider() SettingsProvider {
	return func(ctx context.Context) settings.Settings { return testSettings() }
}

func newService(db queries.Querier) *queries.Service {
	return queries.NewService(db, cache.NewMemory(), time.Hour, 1000)
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestLookbackValidation(t *testing.T) {
	svc := newService(&stubQuerier{table: snowflake.Table{Columns: []string{"A"}}})
	app := fiber.New()
	app.Get("/warehouses/metrics", NewWarehouseHandler(svc, fixedProvider()).Metrics)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/warehouses/metrics?days=13", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	require.Contains(t, body["error"], "unsupported lookback")
}

func TestLookbackDefaultsFromSettings(t *testing.T) {
	svc := newService(&stubQuerier{table: snowflake.Table{
		Columns: []string{"WAREHOUSE_NAME", "TOTAL_CREDITS"},
		Rows:    [][]any{{"WH", 10.0}},
	}})
	app := fiber.New()
	app.Get("/warehouses/metrics", NewWarehouseHandler(svc, fixedProvider()).Metrics)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/warehouses/metrics", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	require.Equal(t, float64(30), body["days"])

	section := body["section"].(map[string]any)
	require.NotNil(t, section["data"])
	tiles := section["tiles"].([]any)
	require.Len(t, tiles, 3)
}

func TestSourceUnavailableRendersAdvisoryWith200(t *testing.T) {
	svc := newService(&stubQuerier{err: fmt.Errorf("%w: gone", snowflake.ErrSourceUnavailable)})
	app := fiber.New()
	app.Get("/security/logins", NewSecurityHandler(svc, fixedProvider()).Logins)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/security/logins?days=7", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode, "source failures degrade, they do not fail the request")

	body := decodeBody(t, resp)
	section := body["section"].(map[string]any)
	require.Contains(t, section["advisory"], "not authorized")
	require.Nil(t, section["data"])
}

func TestEmptyResultRendersPlaceholder(t *testing.T) {
	svc := newService(&stubQuerier{table: snowflake.Table{Columns: []string{"TASK_NAME"}}})
	app := fiber.New()
	app.Get("/pipelines/dynamic-tables", NewPipelineHandler(svc, fixedProvider()).DynamicTables)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/pipelines/dynamic-tables", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	section := body["section"].(map[string]any)
	require.Equal(t, "No data available for this period", section["placeholder"])
	require.Empty(t, section["advisory"])
}

func TestOverviewIsolatesSectionFailures(t *testing.T) {
	svc := newService(&stubQuerier{err: fmt.Errorf("%w: gone", snowflake.ErrSourceUnavailable)})
	gen := insights.NewGenerator(nil, false)
	app := fiber.New()
	app.Get("/overview", NewOverviewHandler(svc, gen, fixedProvider()).Summary)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/overview", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	for _, key := range []string{"stats", "cost_trend", "query_volume"} {
		section, ok := body[key].(map[string]any)
		require.True(t, ok, "section %s must still render", key)
		require.NotEmpty(t, section["advisory"])
	}
	require.NotContains(t, body, "ai_summary")
}

func newSettingsApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := settings.NewStore(db)
	require.NoError(t, store.Init(context.Background()))

	defaults := settings.Defaults(config.DashboardConfig{
		DefaultLookbackDays: 30,
		CreditCost:          2.5,
		StorageCostPerTB:    23.0,
		AlertCostSpikePct:   50,
		AlertQueryTimeSec:   300,
		AlertFailureRatePct: 10,
		AlertFreshnessHours: 24,
	})

	handler := NewSettingsHandler(store, defaults)
	app := fiber.New()
	app.Get("/settings", handler.Get)
	app.Put("/settings", handler.Update)
	return app
}

func TestSettingsGetReturnsDefaults(t *testing.T) {
	app := newSettingsApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/settings", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	require.Equal(t, 2.5, body["credit_cost"])
	require.Equal(t, float64(30), body["time_period"])
}

func TestSettingsUpdatePersists(t *testing.T) {
	app := newSettingsApp(t)

	payload := `{"credit_cost": 3.2, "time_period": 60, "storage_cost_per_tb": 23.0,
		"alert_cost_spike_pct": 50, "alert_query_time_sec": 300,
		"alert_failure_rate_pct": 10, "alert_freshness_hours": 24}`
	req := httptest.NewRequest(http.MethodPut, "/settings", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User", "alice")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/settings", nil))
	require.NoError(t, err)
	body := decodeBody(t, resp)
	require.Equal(t, 3.2, body["credit_cost"])
	require.Equal(t, float64(60), body["time_period"])
}

func TestSettingsUpdateRejectsBadValues(t *testing.T) {
	app := newSettingsApp(t)

	cases := []string{
		`{"credit_cost": -1, "time_period": 30}`,
		`{"credit_cost": 2.5, "time_period": 45}`,
		`{"credit_cost": 2.5, "time_period": 30, "storage_cost_per_tb": 0}`,
	}
	for _, payload := range cases {
		req := httptest.NewRequest(http.MethodPut, "/settings", bytes.NewBufferString(payload))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode, "payload %s", payload)
	}
}

type fakeCompleter struct {
	reply string
	err   error
}

func (f *fakeCompleter) Complete(ctx context.Context, system, prompt string) (string, error) {
	return f.reply, f.err
}

func TestInsightsGenerate(t *testing.T) {
	gen := insights.NewGenerator(&fakeCompleter{reply: "Reduce warehouse sizes."}, true)
	app := fiber.New()
	app.Post("/insights", NewInsightsHandler(gen).Generate)

	payload := `{"type": "warehouse_optimization", "metrics": {"total_credits": "118.4"}}`
	req := httptest.NewRequest(http.MethodPost, "/insights", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	require.Equal(t, "Reduce warehouse sizes.", body["text"])
	require.Equal(t, "warehouse_optimization", body["type"])
	require.NotEmpty(t, body["id"])
	require.NotEmpty(t, body["generated_at"])
}

func TestInsightsGenerateDegradesOnFailure(t *testing.T) {
	gen := insights.NewGenerator(&fakeCompleter{err: fmt.Errorf("model down")}, true)
	app := fiber.New()
	app.Post("/insights", NewInsightsHandler(gen).Generate)

	payload := `{"type": "summary", "context": "some metrics"}`
	req := httptest.NewRequest(http.MethodPost, "/insights", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode, "insight failures are advisory, not errors")

	body := decodeBody(t, resp)
	require.Empty(t, body["text"])
	require.Contains(t, body["advisory"], "temporarily unavailable")
}

func TestInsightsGenerateRequiresContext(t *testing.T) {
	gen := insights.NewGenerator(&fakeCompleter{reply: "x"}, true)
	app := fiber.New()
	app.Post("/insights", NewInsightsHandler(gen).Generate)

	req := httptest.NewRequest(http.MethodPost, "/insights", bytes.NewBufferString(`{"type": "summary"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCacheRefresh(t *testing.T) {
	svc := newService(&stubQuerier{table: snowflake.Table{Columns: []string{"A"}}})
	app := fiber.New()
	app.Post("/cache/refresh", NewAdminHandler(svc).RefreshCache)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/cache/refresh", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	require.Equal(t, "cache flushed", body["status"])
}

func TestHealthWithoutPinger(t *testing.T) {
	app := fiber.New()
	app.Get("/health", NewHealthHandler(nil).Check)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	require.Equal(t, "healthy", body["status"])
}
