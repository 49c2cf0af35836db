package strategy

import (
	"context"

	"golang-stock-signal/internal/entity"
	"golang-stock-signal/internal/executor/dto"
)

// TaskExecutionStrategy defines the interface for the stream task handlers.
type TaskExecutionStrategy interface {
	Execute(ctx context.Context, task dto.Task) (string, error)
	GetType() dto.TaskType
}

// TickerRunner runs the signal registry for one ticker.
type TickerRunner interface {
	RunForTicker(ctx context.Context, ticker string, triggeredBy entity.TriggeredBy) *dto.TickerSummary
}

// IngestRunner refreshes prices and runs every configured ticker.
type IngestRunner interface {
	IngestAndRun(ctx context.Context, triggeredBy entity.TriggeredBy) *dto.RunSummary
}

func triggeredByOrDefault(task dto.Task) entity.TriggeredBy {
	if task.TriggeredBy == "" {
		return entity.TriggeredByAuto
	}
	return task.TriggeredBy
}
