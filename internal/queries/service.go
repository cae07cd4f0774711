package queries

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pradeepsavadi/snowflake-observability/internal/cache"
	"github.com/pradeepsavadi/snowflake-observability/internal/metrics"
	"github.com/pradeepsavadi/snowflake-observability/internal/snowflake"
	"github.com/pradeepsavadi/snowflake-observability/pkg/logger"
	"github.com/pradeepsavadi/snowflake-observability/pkg/utils"
)

// ErrInvalidLookback is returned for a lookback window outside the
// supported set.
var ErrInvalidLookback = errors.New("unsupported lookback window")

// LookbackDays are the analysis periods the dashboard offers.
var LookbackDays = []int{1, 7, 14, 30, 60, 90}

func ValidateLookback(days int) error {
	for _, d := range LookbackDays {
		if d == days {
			return nil
		}
	}
	return fmt.Errorf("%w: %d days", ErrInvalidLookback, days)
}

// Querier executes one SQL statement. *snowflake.Client satisfies it.
type Querier interface {
	Query(ctx context.Context, query string) (snowflake.Table, error)
}

// Service is the query library: one method per dashboard metric, each
// cache-through with a fixed TTL and a shared row cap. The cache is an
// explicit dependency rather than process-wide state so callers (and tests)
// scope it themselves.
type Service struct {
	db      Querier
	cache   cache.Store
	ttl     time.Duration
	maxRows int
}

func NewService(db Querier, store cache.Store, ttl time.Duration, maxRows int) *Service {
	if maxRows <= 0 {
		maxRows = 1000
	}
	return &Service{
		db:      db,
		cache:   store,
		ttl:     ttl,
		maxRows: maxRows,
	}
}

// run executes the rendered query through the cache. A cached entry under
// the TTL is returned as-is; otherwise the query executes once and its
// result replaces the entry.
func (s *Service) run(ctx context.Context, metric, query string) (snowflake.Table, error) {
	key := metric + ":" + utils.HashString(query)

	var table snowflake.Table
	hit, err := s.cache.Get(ctx, key, &table)
	if err != nil {
		logger.Warn("Cache read failed", zap.String("metric", metric), zap.Error(err))
	}
	if hit {
		metrics.CacheHits.WithLabelValues(metric).Inc()
		return table, nil
	}
	metrics.CacheMisses.WithLabelValues(metric).Inc()

	start := time.Now()
	table, err = s.db.Query(ctx, query)
	metrics.QueryDuration.WithLabelValues(metric).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.QueryTotal.WithLabelValues(metric, "error").Inc()
		return snowflake.Table{}, err
	}
	metrics.QueryTotal.WithLabelValues(metric, "success").Inc()
	metrics.QueryRows.WithLabelValues(metric).Observe(float64(table.Len()))

	if err := s.cache.Set(ctx, key, table, s.ttl); err != nil {
		logger.Warn("Cache write failed", zap.String("metric", metric), zap.Error(err))
	}

	return table, nil
}

// FlushCache drops all cached results; the next call for any metric
// re-executes its query.
func (s *Service) FlushCache(ctx context.Context) error {
	return s.cache.Flush(ctx)
}

// --- Warehouses ---

func (s *Service) WarehouseMetrics(ctx context.Context, days int) (snowflake.Table, error) {
	if err := ValidateLookback(days); err != nil {
		return snowflake.Table{}, err
	}
	return s.run(ctx, "warehouse_metrics", fmt.Sprintf(warehouseMetricsSQL, days, s.maxRows))
}

func (s *Service) WarehouseRecommendations(ctx context.Context, days int) (snowflake.Table, error) {
	if err := ValidateLookback(days); err != nil {
		return snowflake.Table{}, err
	}
	return s.run(ctx, "warehouse_recommendations", fmt.Sprintf(warehouseRecommendationsSQL, days, s.maxRows))
}

// --- Storage ---

func (s *Service) StorageMetrics(ctx context.Context, days int) (snowflake.Table, error) {
	if err := ValidateLookback(days); err != nil {
		return snowflake.Table{}, err
	}
	return s.run(ctx, "storage_metrics", fmt.Sprintf(storageMetricsSQL, days, s.maxRows))
}

// TableStorageInsights scans a fixed 90-day access window; it takes no
// lookback parameter.
func (s *Service) TableStorageInsights(ctx context.Context) (snowflake.Table, error) {
	return s.run(ctx, "table_storage_insights", fmt.Sprintf(tableStorageInsightsSQL, s.maxRows))
}

// --- Performance ---

func (s *Service) QueryPerformanceInsights(ctx context.Context, days int) (snowflake.Table, error) {
	if err := ValidateLookback(days); err != nil {
		return snowflake.Table{}, err
	}
	return s.run(ctx, "query_performance", fmt.Sprintf(queryPerformanceSQL, days, s.maxRows))
}

func (s *Service) PruningEfficiency(ctx context.Context, days int) (snowflake.Table, error) {
	if err := ValidateLookback(days); err != nil {
		return snowflake.Table{}, err
	}
	return s.run(ctx, "pruning_efficiency", fmt.Sprintf(pruningEfficiencySQL, days, s.maxRows))
}

// --- AI / Cortex ---

// CortexUsage groups the Cortex sub-reports. Each view may be absent on a
// given account, so each is fetched independently and failures leave an
// empty table rather than failing the group.
type CortexUsage struct {
	Analyst    snowflake.Table `json:"analyst"`
	Search     snowflake.Table `json:"search"`
	Finetuning snowflake.Table `json:"finetuning"`
}

func (s *Service) CortexUsage(ctx context.Context, days int) (CortexUsage, error) {
	if err := ValidateLookback(days); err != nil {
		return CortexUsage{}, err
	}

	usage := CortexUsage{}
	usage.Analyst = s.bestEffort(ctx, "cortex_analyst", fmt.Sprintf(cortexAnalystUsageSQL, days, s.maxRows))
	usage.Search = s.bestEffort(ctx, "cortex_search", fmt.Sprintf(cortexSearchUsageSQL, days, s.maxRows))
	usage.Finetuning = s.bestEffort(ctx, "cortex_finetuning", fmt.Sprintf(cortexFinetuningUsageSQL, days, s.maxRows))
	return usage, nil
}

func (s *Service) bestEffort(ctx context.Context, metric, query string) snowflake.Table {
	table, err := s.run(ctx, metric, query)
	if err != nil {
		logger.Warn("Optional usage view unavailable", zap.String("metric", metric), zap.Error(err))
		return snowflake.Table{}
	}
	return table
}

// --- Pipelines ---

func (s *Service) TaskHistory(ctx context.Context, days int) (snowflake.Table, error) {
	if err := ValidateLookback(days); err != nil {
		return snowflake.Table{}, err
	}
	return s.run(ctx, "task_history", fmt.Sprintf(taskHistorySQL, days, s.maxRows))
}

// PipeUsage pairs regular Snowpipe figures with the streaming channel view,
// which is newer and fetched best-effort.
type PipeUsage struct {
	Pipe      snowflake.Table `json:"pipe"`
	Streaming snowflake.Table `json:"streaming"`
}

func (s *Service) PipeUsage(ctx context.Context, days int) (PipeUsage, error) {
	if err := ValidateLookback(days); err != nil {
		return PipeUsage{}, err
	}

	pipe, err := s.run(ctx, "pipe_usage", fmt.Sprintf(pipeUsageSQL, days, s.maxRows))
	if err != nil {
		return PipeUsage{}, err
	}
	streaming := s.bestEffort(ctx, "snowpipe_streaming", fmt.Sprintf(snowpipeStreamingSQL, days, s.maxRows))
	return PipeUsage{Pipe: pipe, Streaming: streaming}, nil
}

func (s *Service) DynamicTableRefreshes(ctx context.Context, days int) (snowflake.Table, error) {
	if err := ValidateLookback(days); err != nil {
		return snowflake.Table{}, err
	}
	return s.run(ctx, "dynamic_table_refreshes", fmt.Sprintf(dynamicTableRefreshSQL, days, s.maxRows))
}

// --- Security ---

func (s *Service) AccessPatterns(ctx context.Context, days int) (snowflake.Table, error) {
	if err := ValidateLookback(days); err != nil {
		return snowflake.Table{}, err
	}
	return s.run(ctx, "access_patterns", fmt.Sprintf(accessPatternsSQL, days, s.maxRows))
}

func (s *Service) LoginHistory(ctx context.Context, days int) (snowflake.Table, error) {
	if err := ValidateLookback(days); err != nil {
		return snowflake.Table{}, err
	}
	return s.run(ctx, "login_history", fmt.Sprintf(loginHistorySQL, days, s.maxRows))
}

// --- Cost ---

func (s *Service) CostAttribution(ctx context.Context, days int, creditCost float64) (snowflake.Table, error) {
	if err := ValidateLookback(days); err != nil {
		return snowflake.Table{}, err
	}
	return s.run(ctx, "cost_attribution", fmt.Sprintf(costAttributionSQL, days, creditCost, s.maxRows))
}

// DailyCredits returns the per-day credit series used for the cost trend
// chart and as input to anomaly detection.
func (s *Service) DailyCredits(ctx context.Context, days int) (snowflake.Table, error) {
	if err := ValidateLookback(days); err != nil {
		return snowflake.Table{}, err
	}
	return s.run(ctx, "daily_credits", fmt.Sprintf(dailyCreditsSQL, days, s.maxRows))
}

func (s *Service) QueryVolume(ctx context.Context, days int) (snowflake.Table, error) {
	if err := ValidateLookback(days); err != nil {
		return snowflake.Table{}, err
	}
	return s.run(ctx, "query_volume", fmt.Sprintf(queryVolumeSQL, days, s.maxRows))
}

func (s *Service) DataTransfer(ctx context.Context, days int) (snowflake.Table, error) {
	if err := ValidateLookback(days); err != nil {
		return snowflake.Table{}, err
	}
	return s.run(ctx, "data_transfer", fmt.Sprintf(dataTransferSQL, days, s.maxRows))
}

// --- Quality ---

func (s *Service) TableFreshness(ctx context.Context) (snowflake.Table, error) {
	return s.run(ctx, "table_freshness", fmt.Sprintf(tableFreshnessSQL, s.maxRows))
}

func (s *Service) SchemaChanges(ctx context.Context, days int) (snowflake.Table, error) {
	if err := ValidateLookback(days); err != nil {
		return snowflake.Table{}, err
	}
	return s.run(ctx, "schema_changes", fmt.Sprintf(schemaChangesSQL, days, s.maxRows))
}

// --- Overview ---

// QuickStats are the headline counts shown in the dashboard sidebar.
type QuickStats struct {
	ActiveWarehouses int64   `json:"active_warehouses"`
	ActiveDatabases  int64   `json:"active_databases"`
	ActiveUsers      int64   `json:"active_users"`
	TotalCredits     float64 `json:"total_credits"`
}

func (s *Service) QuickStats(ctx context.Context, days int) (QuickStats, error) {
	if err := ValidateLookback(days); err != nil {
		return QuickStats{}, err
	}

	table, err := s.run(ctx, "quick_stats", fmt.Sprintf(quickStatsSQL, days))
	if err != nil {
		return QuickStats{}, err
	}
	if table.Empty() {
		return QuickStats{}, nil
	}

	return QuickStats{
		ActiveWarehouses: int64(table.Float(0, "ACTIVE_WAREHOUSES")),
		ActiveDatabases:  int64(table.Float(0, "ACTIVE_DATABASES")),
		ActiveUsers:      int64(table.Float(0, "ACTIVE_USERS")),
		TotalCredits:     table.Float(0, "TOTAL_CREDITS"),
	}, nil
}
