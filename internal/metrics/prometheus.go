package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	QueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "snowobs_query_duration_seconds",
			Help:    "ACCOUNT_USAGE query execution duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"metric"},
	)

	QueryTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snowobs_query_total",
			Help: "Total ACCOUNT_USAGE queries executed",
		},
		[]string{"metric", "status"},
	)

	QueryRows = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "snowobs_query_rows",
			Help:    "Rows returned per query",
			Buckets: []float64{0, 1, 10, 50, 100, 500, 1000},
		},
		[]string{"metric"},
	)

	CacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snowobs_cache_hits_total",
			Help: "Query cache hits",
		},
		[]string{"metric"},
	)

	CacheMisses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snowobs_cache_misses_total",
			Help: "Query cache misses",
		},
		[]string{"metric"},
	)

	InsightRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snowobs_insight_requests_total",
			Help: "AI insight generations attempted",
		},
		[]string{"type", "status"},
	)

	SettingsWrites = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "snowobs_settings_writes_total",
			Help: "Configuration table upserts",
		},
	)
)

func Init() {
	prometheus.MustRegister(QueryDuration)
	prometheus.MustRegister(QueryTotal)
	prometheus.MustRegister(QueryRows)
	prometheus.MustRegister(CacheHits)
	prometheus.MustRegister(CacheMisses)
	prometheus.MustRegister(InsightRequests)
	prometheus.MustRegister(SettingsWrites)
}

func MetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
