package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Snowflake SnowflakeConfig
	Cache     CacheConfig
	Redis     RedisConfig
	Settings  SettingsConfig
	Insights  InsightsConfig
	Dashboard DashboardConfig
	RateLimit RateLimitConfig
	Logging   LoggingConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  int
	WriteTimeout int
	BodyLimit    int
}

type SnowflakeConfig struct {
	Account      string
	User         string
	Password     string
	Role         string
	Warehouse    string
	Database     string
	Schema       string
	QueryTimeout int
}

type CacheConfig struct {
	Backend string
	TTLSec  int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// SettingsConfig selects where the dashboard settings table lives. The
// standalone deployment keeps it in a local SQLite file; the packaged
// deployment writes it back into the application database in Snowflake.
type SettingsConfig struct {
	Backend    string
	SQLitePath string
}

type InsightsConfig struct {
	Enabled     bool
	Provider    string
	Model       string
	APIKey      string
	Temperature float32
	MaxTokens   int
	TimeoutSec  int
}

type DashboardConfig struct {
	DefaultLookbackDays int
	MaxResults          int
	CreditCost          float64
	StorageCostPerTB    float64
	AlertCostSpikePct   float64
	AlertQueryTimeSec   int
	AlertFailureRatePct float64
	AlertFreshnessHours int
}

type RateLimitConfig struct {
	Enabled              bool
	MaxRequestsPerMinute int
}

type LoggingConfig struct {
	Level      string
	Format     string
	OutputPath string
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/snowflake-observability")

	viper.SetEnvPrefix("SNOWOBS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.readTimeout", 30)
	viper.SetDefault("server.writeTimeout", 120)
	viper.SetDefault("server.bodyLimit", 1048576)

	viper.SetDefault("snowflake.role", "ACCOUNTADMIN")
	viper.SetDefault("snowflake.database", "SNOWFLAKE")
	viper.SetDefault("snowflake.schema", "ACCOUNT_USAGE")
	viper.SetDefault("snowflake.queryTimeout", 120)

	viper.SetDefault("cache.backend", "memory")
	viper.SetDefault("cache.ttlSec", 3600)

	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.db", 0)

	viper.SetDefault("settings.backend", "sqlite")
	viper.SetDefault("settings.sqlitePath", "./data/snowobs.db")

	viper.SetDefault("insights.enabled", true)
	viper.SetDefault("insights.provider", "cortex")
	viper.SetDefault("insights.model", "mistral-large2")
	viper.SetDefault("insights.temperature", 0.3)
	viper.SetDefault("insights.maxTokens", 500)
	viper.SetDefault("insights.timeoutSec", 60)

	viper.SetDefault("dashboard.defaultLookbackDays", 30)
	viper.SetDefault("dashboard.maxResults", 1000)
	viper.SetDefault("dashboard.creditCost", 2.5)
	viper.SetDefault("dashboard.storageCostPerTB", 23.0)
	viper.SetDefault("dashboard.alertCostSpikePct", 50)
	viper.SetDefault("dashboard.alertQueryTimeSec", 300)
	viper.SetDefault("dashboard.alertFailureRatePct", 10)
	viper.SetDefault("dashboard.alertFreshnessHours", 24)

	viper.SetDefault("ratelimit.enabled", true)
	viper.SetDefault("ratelimit.maxRequestsPerMinute", 120)

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
	viper.SetDefault("logging.outputPath", "stdout")
}
