package strategy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"golang-stock-signal/internal/executor/dto"
	"golang-stock-signal/pkg/logger"
)

// RunTickerStrategy runs the signal registry for the ticker named in the task.
type RunTickerStrategy struct {
	runner TickerRunner
	logger *logger.Logger
}

func NewRunTickerStrategy(runner TickerRunner, log *logger.Logger) TaskExecutionStrategy {
	return &RunTickerStrategy{runner: runner, logger: log}
}

func (s *RunTickerStrategy) GetType() dto.TaskType {
	return dto.TaskTypeRunTicker
}

func (s *RunTickerStrategy) Execute(ctx context.Context, task dto.Task) (string, error) {
	ticker := strings.ToUpper(strings.TrimSpace(task.Ticker))
	if ticker == "" {
		return "", errors.New("run_ticker task without ticker")
	}

	summary := s.runner.RunForTicker(ctx, ticker, triggeredByOrDefault(task))
	output, err := json.Marshal(summary)
	if err != nil {
		return "", fmt.Errorf("failed to marshal ticker summary: %w", err)
	}
	return string(output), nil
}
