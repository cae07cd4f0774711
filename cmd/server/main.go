package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/pradeepsavadi/snowflake-observability/internal/api/handlers"
	"github.com/pradeepsavadi/snowflake-observability/internal/cache"
	"github.com/pradeepsavadi/snowflake-observability/internal/insights"
	"github.com/pradeepsavadi/snowflake-observability/internal/metrics"
	"github.com/pradeepsavadi/snowflake-observability/internal/middleware/ratelimit"
	"github.com/pradeepsavadi/snowflake-observability/internal/middleware/security"
	"github.com/pradeepsavadi/snowflake-observability/internal/queries"
	"github.com/pradeepsavadi/snowflake-observability/internal/settings"
	"github.com/pradeepsavadi/snowflake-observability/internal/snowflake"
	"github.com/pradeepsavadi/snowflake-observability/pkg/config"
	appLogger "github.com/pradeepsavadi/snowflake-observability/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	err = appLogger.Init(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.OutputPath)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer appLogger.Sync()

	appLogger.Info("Starting Snowflake observability server")

	metrics.Init()

	sfClient, err := snowflake.NewClient(cfg.Snowflake)
	if err != nil {
		appLogger.Fatal("Failed to connect to Snowflake", zap.Error(err))
	}
	defer sfClient.Close()

	settingsDB, err := openSettingsDB(cfg.Settings, sfClient)
	if err != nil {
		appLogger.Fatal("Failed to open settings database", zap.Error(err))
	}

	settingsStore := settings.NewStore(settingsDB)
	if err := settingsStore.Init(context.Background()); err != nil {
		appLogger.Fatal("Failed to initialize settings table", zap.Error(err))
	}
	defaults := settings.Defaults(cfg.Dashboard)

	store, err := newCacheStore(cfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize cache", zap.Error(err))
	}

	svc := queries.NewService(sfClient, store,
		time.Duration(cfg.Cache.TTLSec)*time.Second, cfg.Dashboard.MaxResults)

	generator := insights.NewGenerator(newCompleter(cfg, sfClient), cfg.Insights.Enabled)

	// Handlers resolve effective settings per request so an updated credit
	// cost applies without a restart. A store outage falls back to defaults.
	provider := handlers.SettingsProvider(func(ctx context.Context) settings.Settings {
		s, err := settings.Load(ctx, settingsStore, defaults)
		if err != nil {
			appLogger.Warn("Settings load failed, using defaults", zap.Error(err))
			return defaults
		}
		return s
	})

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    cfg.Server.BodyLimit,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(security.Headers())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, X-User",
		AllowMethods: "GET, POST, PUT, OPTIONS",
	}))

	var limiter *ratelimit.Limiter
	if cfg.RateLimit.Enabled {
		limiter = ratelimit.New(cfg.RateLimit)
		defer limiter.Stop()
		app.Use(limiter.Middleware())
	}

	overviewHandler := handlers.NewOverviewHandler(svc, generator, provider)
	warehouseHandler := handlers.NewWarehouseHandler(svc, provider)
	storageHandler := handlers.NewStorageHandler(svc, provider)
	performanceHandler := handlers.NewPerformanceHandler(svc, provider)
	costHandler := handlers.NewCostHandler(svc, provider)
	pipelineHandler := handlers.NewPipelineHandler(svc, provider)
	securityHandler := handlers.NewSecurityHandler(svc, provider)
	qualityHandler := handlers.NewQualityHandler(svc, provider)
	aiHandler := handlers.NewAIHandler(svc, provider)
	insightsHandler := handlers.NewInsightsHandler(generator)
	settingsHandler := handlers.NewSettingsHandler(settingsStore, defaults)
	adminHandler := handlers.NewAdminHandler(svc)
	healthHandler := handlers.NewHealthHandler(sfClient)

	app.Get("/metrics", metrics.MetricsHandler())

	api := app.Group("/api/v1")

	api.Get("/overview", overviewHandler.Summary)

	api.Get("/warehouses/metrics", warehouseHandler.Metrics)
	api.Get("/warehouses/recommendations", warehouseHandler.Recommendations)

	api.Get("/storage/metrics", storageHandler.Metrics)
	api.Get("/storage/tables", storageHandler.Insights)

	api.Get("/performance/queries", performanceHandler.Insights)
	api.Get("/performance/pruning", performanceHandler.Pruning)

	api.Get("/costs/attribution", costHandler.Attribution)
	api.Get("/costs/trend", costHandler.Trend)
	api.Get("/costs/anomalies", costHandler.Anomalies)
	api.Get("/costs/transfer", costHandler.DataTransfer)

	api.Get("/pipelines/tasks", pipelineHandler.Tasks)
	api.Get("/pipelines/pipes", pipelineHandler.Pipes)
	api.Get("/pipelines/dynamic-tables", pipelineHandler.DynamicTables)

	api.Get("/security/logins", securityHandler.Logins)
	api.Get("/security/access", securityHandler.AccessPatterns)

	api.Get("/quality/freshness", qualityHandler.Freshness)
	api.Get("/quality/schema-changes", qualityHandler.SchemaChanges)

	api.Get("/ai/cortex-usage", aiHandler.CortexUsage)
	api.Post("/insights", insightsHandler.Generate)

	api.Get("/settings", settingsHandler.Get)
	api.Put("/settings", settingsHandler.Update)

	api.Post("/cache/refresh", adminHandler.RefreshCache)

	api.Get("/health", healthHandler.Check)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	appLogger.Info("Server starting", zap.String("address", addr))

	go func() {
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Server shutting down gracefully...")
	app.Shutdown()
	appLogger.Info("Server stopped")
}

// openSettingsDB returns the handle the settings table lives in: a local
// SQLite file for standalone deployments, or the Snowflake session itself
// for the packaged app where local disk does not persist.
func openSettingsDB(cfg config.SettingsConfig, sf *snowflake.Client) (*sql.DB, error) {
	switch cfg.Backend {
	case "snowflake":
		return sf.DB(), nil
	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create settings directory: %w", err)
		}
		db, err := sql.Open("sqlite3", cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open settings database: %w", err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unknown settings backend: %s", cfg.Backend)
	}
}

func newCacheStore(cfg *config.Config) (cache.Store, error) {
	switch cfg.Cache.Backend {
	case "redis":
		return cache.NewRedis(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB)
	case "memory":
		return cache.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", cfg.Cache.Backend)
	}
}

// newCompleter picks the insight backend. Cortex runs the completion inside
// Snowflake; OpenAI serves standalone deployments with an API key.
func newCompleter(cfg *config.Config, sf *snowflake.Client) insights.Completer {
	if !cfg.Insights.Enabled {
		return nil
	}
	switch cfg.Insights.Provider {
	case "openai":
		if cfg.Insights.APIKey == "" {
			appLogger.Warn("Insights enabled with openai provider but no API key; disabling")
			return nil
		}
		return insights.NewOpenAICompleter(cfg.Insights.APIKey, cfg.Insights.Model,
			cfg.Insights.Temperature, cfg.Insights.MaxTokens, cfg.Insights.TimeoutSec)
	default:
		return insights.NewCortexCompleter(sf, cfg.Insights.Model,
			cfg.Insights.Temperature, cfg.Insights.MaxTokens, cfg.Insights.TimeoutSec)
	}
}
