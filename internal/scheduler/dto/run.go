package dto

import (
	"time"

	"golang-stock-signal/internal/entity"
)

// RunResponse is the DTO for API responses containing orchestrator run details.
type RunResponse struct {
	ID          uint                                `json:"id"`
	RunID       string                              `json:"run_id"`
	Ticker      string                              `json:"ticker"`
	TriggeredBy entity.TriggeredBy                  `json:"triggered_by"`
	Emitted     int                                 `json:"emitted"`
	LastActions map[entity.SignalType]entity.Action `json:"last_actions"`
	Errors      []string                            `json:"errors"`
	StartedAt   time.Time                           `json:"started_at"`
	Duration    int64                               `json:"duration_ms"`
}
