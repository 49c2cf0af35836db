package config

import (
	"time"

	"golang-stock-signal/internal/entity"
	"golang-stock-signal/pkg/config"
)

// Executor holds stream consumer configuration.
type Executor struct {
	RedisStreamTaskExecutionTimeout time.Duration `mapstructure:"redis_stream_task_execution_timeout"`
	RedisStreamBlock                time.Duration `mapstructure:"redis_stream_block"`
	// MetricsPort serves /metrics when positive.
	MetricsPort int `mapstructure:"metrics_port" validate:"gte=0"`
}

// Signal holds the knobs of the signal engine. It is built once at start up
// and passed by value into the orchestrator, registry and regime gate.
type Signal struct {
	AlertsEnabled        bool                `mapstructure:"alerts_enabled"`
	AlertCooldownMinutes int                 `mapstructure:"alert_cooldown_minutes" validate:"gte=0"`
	LookbackBars         int                 `mapstructure:"lookback_bars" validate:"gte=0"`
	MarketTimezone       string              `mapstructure:"market_timezone"`
	ThresholdPct         float64             `mapstructure:"threshold_pct" validate:"gt=0"`
	ThresholdPosture     string              `mapstructure:"threshold_posture" validate:"oneof=momentum mean_reversion"`
	IncludedSignalTypes  []entity.SignalType `mapstructure:"included_signal_types"`
	RegimeFilterEnabled  bool                `mapstructure:"regime_filter_enabled"`
	SignalRetentionDays  int                 `mapstructure:"signal_retention_days" validate:"gte=0"`
}

// AlertCooldown returns the cooldown window as a duration.
func (s Signal) AlertCooldown() time.Duration {
	return time.Duration(s.AlertCooldownMinutes) * time.Minute
}

// DefaultSignal mirrors the documented defaults.
func DefaultSignal() Signal {
	return Signal{
		AlertsEnabled:        true,
		AlertCooldownMinutes: 30,
		LookbackBars:         400,
		MarketTimezone:       "America/New_York",
		ThresholdPct:         0.03,
		ThresholdPosture:     "momentum",
		RegimeFilterEnabled:  true,
	}
}

// Alert holds configuration for the outbound alert sink.
type Alert struct {
	Provider            string        `mapstructure:"provider" validate:"oneof=discord telegram"`
	WebhookURL          string        `mapstructure:"webhook_url" validate:"omitempty,url"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute" validate:"gt=0"`
}

// Telegram holds configuration for the Telegram notifier.
type Telegram struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// YahooFinance holds the configuration for the Yahoo Finance API.
type YahooFinance struct {
	BaseURL             string        `mapstructure:"base_url" validate:"required,url"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute" validate:"gt=0"`
	Timeout             time.Duration `mapstructure:"timeout"`
}

// FetchAttempt is one (range, interval) combination tried by the ingestion job.
type FetchAttempt struct {
	Range    string `mapstructure:"range"`
	Interval string `mapstructure:"interval"`
}

// Ingestion holds configuration for the price refresh job.
type Ingestion struct {
	Tickers        []string       `mapstructure:"tickers" validate:"min=1"`
	RetentionDays  int            `mapstructure:"retention_days" validate:"gte=0"`
	MaxRetries     int            `mapstructure:"max_retries" validate:"gte=1"`
	InitialBackoff time.Duration  `mapstructure:"initial_backoff"`
	Attempts       []FetchAttempt `mapstructure:"attempts"`
}

// Config holds the full configuration for the execution service.
type Config struct {
	App          config.App      `mapstructure:"app"`
	Logger       config.Logger   `mapstructure:"logger"`
	Database     config.Database `mapstructure:"database"`
	Redis        config.Redis    `mapstructure:"redis"`
	Executor     Executor        `mapstructure:"executor"`
	Signal       Signal          `mapstructure:"signal"`
	Alert        Alert           `mapstructure:"alert"`
	Telegram     Telegram        `mapstructure:"telegram"`
	YahooFinance YahooFinance    `mapstructure:"yahoo_finance"`
	Ingestion    Ingestion       `mapstructure:"ingestion"`
}

// Defaults returns the viper defaults of the execution service.
func Defaults() map[string]interface{} {
	sig := DefaultSignal()
	return map[string]interface{}{
		"logger.level":    "info",
		"logger.encoding": "json",
		"executor.redis_stream_task_execution_timeout": "10m",
		"executor.redis_stream_block":                  "2s",
		"executor.metrics_port":                        9091,
		"signal.alerts_enabled":                        sig.AlertsEnabled,
		"signal.alert_cooldown_minutes":                sig.AlertCooldownMinutes,
		"signal.lookback_bars":                         sig.LookbackBars,
		"signal.market_timezone":                       sig.MarketTimezone,
		"signal.threshold_pct":                         sig.ThresholdPct,
		"signal.threshold_posture":                     sig.ThresholdPosture,
		"signal.regime_filter_enabled":                 sig.RegimeFilterEnabled,
		"signal.included_signal_types":                 []string{},
		"signal.signal_retention_days":                 0,
		"alert.provider":                               "discord",
		"alert.timeout":                                "5s",
		"alert.max_request_per_minute":                 30,
		"yahoo_finance.base_url":                       "https://query1.finance.yahoo.com",
		"yahoo_finance.max_request_per_minute":         60,
		"yahoo_finance.timeout":                        "10s",
		"ingestion.tickers":                            []string{"AAPL", "MSFT", "GOOGL", "TSLA", "^GSPC", "BTC-USD", "ETH-USD", "SOL-USD"},
		"ingestion.retention_days":                     90,
		"ingestion.max_retries":                        3,
		"ingestion.initial_backoff":                    "1500ms",
		"ingestion.attempts": []map[string]string{
			{"range": "1d", "interval": "1m"},
			{"range": "7d", "interval": "60m"},
			{"range": "30d", "interval": "60m"},
		},
	}
}

// Load loads the executor configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg, Defaults()); err != nil {
		return nil, err
	}
	return &cfg, nil
}
