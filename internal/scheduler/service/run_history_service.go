package service

import (
	"context"
	"encoding/json"
	"strings"

	"golang-stock-signal/internal/entity"
	"golang-stock-signal/internal/scheduler/dto"
	"golang-stock-signal/internal/scheduler/repository"
	"golang-stock-signal/pkg/logger"
)

// RunHistoryService defines the interface for reading orchestrator runs.
type RunHistoryService interface {
	GetRunByID(ctx context.Context, runID string) (*dto.RunResponse, error)
	GetRecentRuns(ctx context.Context, ticker string, limit int) ([]*dto.RunResponse, error)
}

// NewRunHistoryService creates a new run history service.
func NewRunHistoryService(runRepo repository.SignalRunRepository, logger *logger.Logger) RunHistoryService {
	return &runHistoryService{
		runRepo: runRepo,
		logger:  logger,
	}
}

type runHistoryService struct {
	runRepo repository.SignalRunRepository
	logger  *logger.Logger
}

// GetRunByID retrieves a run by its run id.
func (s *runHistoryService) GetRunByID(ctx context.Context, runID string) (*dto.RunResponse, error) {
	run, err := s.runRepo.FindByRunID(ctx, runID)
	if err != nil {
		s.logger.Error("Failed to find run", logger.ErrorField(err), logger.StringField("run_id", runID))
		return nil, err
	}
	return mapToRunResponse(run), nil
}

// GetRecentRuns retrieves the latest runs, optionally for one ticker.
func (s *runHistoryService) GetRecentRuns(ctx context.Context, ticker string, limit int) ([]*dto.RunResponse, error) {
	runs, err := s.runRepo.FindRecent(ctx, strings.ToUpper(ticker), limit)
	if err != nil {
		s.logger.Error("Failed to get recent runs", logger.ErrorField(err), logger.StringField("ticker", ticker))
		return nil, err
	}

	responses := make([]*dto.RunResponse, 0, len(runs))
	for i := range runs {
		responses = append(responses, mapToRunResponse(&runs[i]))
	}
	return responses, nil
}

func mapToRunResponse(run *entity.SignalRun) *dto.RunResponse {
	lastActions := map[entity.SignalType]entity.Action{}
	if len(run.LastActions) > 0 {
		_ = json.Unmarshal(run.LastActions, &lastActions)
	}
	errs := []string(run.Errors)
	if errs == nil {
		errs = []string{}
	}

	return &dto.RunResponse{
		ID:          run.ID,
		RunID:       run.RunID,
		Ticker:      run.Ticker,
		TriggeredBy: run.TriggeredBy,
		Emitted:     run.Emitted,
		LastActions: lastActions,
		Errors:      errs,
		StartedAt:   run.StartedAt,
		Duration:    run.CompletedAt.Sub(run.StartedAt).Milliseconds(),
	}
}
