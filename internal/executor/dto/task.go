package dto

import "golang-stock-signal/internal/entity"

type TaskType string

const (
	TaskTypeIngestAndRun TaskType = "ingest_and_run"
	TaskTypeRunTicker    TaskType = "run_ticker"
)

// Task is the message published on the signal task stream.
type Task struct {
	Type        TaskType           `json:"task"`
	Ticker      string             `json:"ticker,omitempty"`
	TriggeredBy entity.TriggeredBy `json:"triggered_by,omitempty"`
}
