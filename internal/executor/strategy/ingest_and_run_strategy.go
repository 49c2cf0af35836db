package strategy

import (
	"context"
	"encoding/json"
	"fmt"

	"golang-stock-signal/internal/executor/dto"
	"golang-stock-signal/pkg/logger"
)

// IngestAndRunStrategy refreshes prices for all tickers, then runs signals.
type IngestAndRunStrategy struct {
	runner IngestRunner
	logger *logger.Logger
}

// NewIngestAndRunStrategy creates a new IngestAndRunStrategy.
func NewIngestAndRunStrategy(runner IngestRunner, log *logger.Logger) TaskExecutionStrategy {
	return &IngestAndRunStrategy{runner: runner, logger: log}
}

func (s *IngestAndRunStrategy) GetType() dto.TaskType {
	return dto.TaskTypeIngestAndRun
}

func (s *IngestAndRunStrategy) Execute(ctx context.Context, task dto.Task) (string, error) {
	summary := s.runner.IngestAndRun(ctx, triggeredByOrDefault(task))
	output, err := json.Marshal(summary)
	if err != nil {
		return "", fmt.Errorf("failed to marshal run summary: %w", err)
	}
	s.logger.InfoContext(ctx, "Ingest and run finished",
		logger.IntField("total_emitted", summary.TotalEmitted),
		logger.IntField("tickers_with_errors", len(summary.Errors)))
	return string(output), nil
}
