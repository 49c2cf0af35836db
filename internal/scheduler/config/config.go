package config

import (
	"time"

	executorconfig "golang-stock-signal/internal/executor/config"
	"golang-stock-signal/pkg/config"
)

// Scheduler holds scheduler-specific configuration.
type Scheduler struct {
	Enabled        bool   `mapstructure:"enabled"`
	CronExpression string `mapstructure:"cron_expression" validate:"required"`
}

// Cache holds the read-through cache settings of the query endpoints.
type Cache struct {
	PriceTTL        time.Duration `mapstructure:"price_ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// Config holds the full configuration for the scheduler service. The signal,
// alert and ingestion blocks back the synchronous run endpoints.
type Config struct {
	App       config.App               `mapstructure:"app"`
	Logger    config.Logger            `mapstructure:"logger"`
	Database  config.Database          `mapstructure:"database"`
	Redis     config.Redis             `mapstructure:"redis"`
	API       config.API               `mapstructure:"api"`
	Scheduler Scheduler                `mapstructure:"scheduler"`
	Cache     Cache                    `mapstructure:"cache"`
	Signal    executorconfig.Signal    `mapstructure:"signal"`
	Alert     executorconfig.Alert     `mapstructure:"alert"`
	Telegram  executorconfig.Telegram  `mapstructure:"telegram"`
	Ingestion executorconfig.Ingestion `mapstructure:"ingestion"`
}

// Defaults returns the viper defaults of the scheduler service.
func Defaults() map[string]interface{} {
	defaults := executorconfig.Defaults()
	defaults["api.host"] = "0.0.0.0"
	defaults["api.port"] = 8080
	defaults["redis.stream_max_len"] = 1000
	defaults["scheduler.enabled"] = true
	defaults["scheduler.cron_expression"] = "5 * * * *"
	defaults["cache.price_ttl"] = "1m"
	defaults["cache.cleanup_interval"] = "5m"
	return defaults
}

// Load loads the scheduler configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg, Defaults()); err != nil {
		return nil, err
	}
	return &cfg, nil
}
