package dto

import (
	"time"

	"golang-stock-signal/internal/entity"
)

// Payload is the output of a signal strategy before it is persisted.
// Timestamp and bar timestamp are supplied by the orchestrator.
type Payload struct {
	Ticker      string                 `json:"ticker"`
	SignalType  entity.SignalType      `json:"signal_type"`
	Strategy    string                 `json:"strategy"`
	Action      entity.Action          `json:"action"`
	SignalValue *float64               `json:"signal_value"`
	Confidence  *float64               `json:"confidence"`
	Strength    entity.Strength        `json:"strength"`
	Params      map[string]interface{} `json:"params"`
	Message     string                 `json:"message"`
}

// TickerSummary is the result of a single run_for_ticker invocation.
type TickerSummary struct {
	RunID       string                              `json:"run_id,omitempty"`
	Ticker      string                              `json:"ticker"`
	Emitted     int                                 `json:"emitted"`
	LastActions map[entity.SignalType]entity.Action `json:"last_actions"`
	Errors      []string                            `json:"errors"`
}

// RunSummary aggregates the per ticker summaries of run_for_all_tickers.
type RunSummary struct {
	TotalEmitted int                       `json:"total_emitted"`
	PerTicker    map[string]*TickerSummary `json:"per_ticker"`
	Errors       map[string][]string       `json:"errors"`
}

// BacktestTrade is one simulated entry or exit.
type BacktestTrade struct {
	Action    entity.Action `json:"action"`
	Price     float64       `json:"price"`
	Timestamp time.Time     `json:"timestamp"`
	PnL       *float64      `json:"pnl,omitempty"`
}

// BacktestResult is the outcome of the moving average PnL accumulator.
type BacktestResult struct {
	Ticker   string          `json:"ticker"`
	Window   int             `json:"window"`
	Trades   []BacktestTrade `json:"trades"`
	TotalPnL float64         `json:"total_pnl"`
	InTrade  bool            `json:"in_trade"`
}
