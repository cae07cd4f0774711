package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/pradeepsavadi/snowflake-observability/pkg/config"
)

func newApp(max int) (*fiber.App, *Limiter) {
	limiter := New(config.RateLimitConfig{Enabled: true, MaxRequestsPerMinute: max})
	app := fiber.New()
	app.Use(limiter.Middleware())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })
	return app, limiter
}

func TestLimiterAllowsWithinBudget(t *testing.T) {
	app, limiter := newApp(5)
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode, "request %d", i)
	}
}

func TestLimiterRejectsOverBudget(t *testing.T) {
	app, limiter := newApp(3)
	defer limiter.Stop()

	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestLimiterRefillKeepsFractionalProgress(t *testing.T) {
	// max=2 gives a 30s refill interval. A caller probing at just under
	// that interval must still earn a token once a full interval of wall
	// time has accumulated; probing must not reset the refill clock.
	limiter := New(config.RateLimitConfig{Enabled: true, MaxRequestsPerMinute: 2})
	defer limiter.Stop()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	require.True(t, limiter.allow("alice"))
	require.True(t, limiter.allow("alice"))
	require.False(t, limiter.allow("alice"), "budget spent")

	now = now.Add(29 * time.Second)
	require.False(t, limiter.allow("alice"), "not yet a full interval")

	now = now.Add(29 * time.Second)
	require.True(t, limiter.allow("alice"), "58s of elapsed time covers one 30s interval")
}

func TestLimiterKeysByUserHeader(t *testing.T) {
	app, limiter := newApp(1)
	defer limiter.Stop()

	alice := httptest.NewRequest(http.MethodGet, "/", nil)
	alice.Header.Set("X-User", "alice")
	resp, err := app.Test(alice)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// A different caller has its own bucket.
	bob := httptest.NewRequest(http.MethodGet, "/", nil)
	bob.Header.Set("X-User", "bob")
	resp, err = app.Test(bob)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	again := httptest.NewRequest(http.MethodGet, "/", nil)
	again.Header.Set("X-User", "alice")
	resp, err = app.Test(again)
	require.NoError(t, err)
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}
