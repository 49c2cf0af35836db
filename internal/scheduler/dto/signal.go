package dto

import (
	"time"

	"golang-stock-signal/internal/entity"
	executordto "golang-stock-signal/internal/executor/dto"
)

// SignalResponse is the API view of a persisted signal.
type SignalResponse struct {
	ID          uint                   `json:"id"`
	Ticker      string                 `json:"ticker"`
	SignalType  entity.SignalType      `json:"signal_type"`
	Strategy    string                 `json:"strategy"`
	Action      entity.Action          `json:"action"`
	SignalValue *float64               `json:"signal_value"`
	Confidence  *float64               `json:"confidence"`
	Strength    entity.Strength        `json:"strength"`
	Params      map[string]interface{} `json:"params"`
	TriggeredBy entity.TriggeredBy     `json:"triggered_by"`
	Message     string                 `json:"message"`
	Timestamp   time.Time              `json:"timestamp"`
	BarTS       time.Time              `json:"bar_ts"`
}

// SignalSummaryResponse counts persisted signals of one type.
type SignalSummaryResponse struct {
	SignalType entity.SignalType `json:"signal_type"`
	Count      int64             `json:"count"`
}

// PriceResponse is one stored bar.
type PriceResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Price     float64   `json:"price"`
	Volume    *int64    `json:"volume,omitempty"`
}

// RunRequest is the body of the synchronous multi ticker run.
type RunRequest struct {
	Tickers []string `json:"tickers"`
}

// EnqueueResponse is returned when a task is published on the stream.
type EnqueueResponse struct {
	MessageID string `json:"message_id"`
	Task      string `json:"task"`
}

// Summaries returned by the synchronous run endpoints and the backtest.
type (
	TickerSummary  = executordto.TickerSummary
	RunSummary     = executordto.RunSummary
	BacktestResult = executordto.BacktestResult
)
