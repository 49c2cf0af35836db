package http

import (
	"context"

	"golang-stock-signal/internal/entity"
	executordto "golang-stock-signal/internal/executor/dto"
	"golang-stock-signal/internal/scheduler/dto"

	"github.com/stretchr/testify/mock"
)

type mockQueryService struct {
	mock.Mock
}

func (m *mockQueryService) RecentSignals(ctx context.Context, limit int) ([]*dto.SignalResponse, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]*dto.SignalResponse), args.Error(1)
}

func (m *mockQueryService) SignalsByTicker(ctx context.Context, ticker string, limit int) ([]*dto.SignalResponse, error) {
	args := m.Called(ctx, ticker, limit)
	return args.Get(0).([]*dto.SignalResponse), args.Error(1)
}

func (m *mockQueryService) Summary(ctx context.Context) ([]*dto.SignalSummaryResponse, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*dto.SignalSummaryResponse), args.Error(1)
}

func (m *mockQueryService) Prices(ctx context.Context, ticker string, limit int) ([]*dto.PriceResponse, error) {
	args := m.Called(ctx, ticker, limit)
	return args.Get(0).([]*dto.PriceResponse), args.Error(1)
}

type mockSignalService struct {
	mock.Mock
}

func (m *mockSignalService) RunForTicker(ctx context.Context, ticker string, triggeredBy entity.TriggeredBy) *executordto.TickerSummary {
	args := m.Called(ctx, ticker, triggeredBy)
	return args.Get(0).(*executordto.TickerSummary)
}

func (m *mockSignalService) RunForAllTickers(ctx context.Context, tickers []string, triggeredBy entity.TriggeredBy) *executordto.RunSummary {
	args := m.Called(ctx, tickers, triggeredBy)
	return args.Get(0).(*executordto.RunSummary)
}

type mockBacktestService struct {
	mock.Mock
}

func (m *mockBacktestService) Run(ctx context.Context, ticker string, window int) (*executordto.BacktestResult, error) {
	args := m.Called(ctx, ticker, window)
	result, _ := args.Get(0).(*executordto.BacktestResult)
	return result, args.Error(1)
}

type mockRunService struct {
	mock.Mock
}

func (m *mockRunService) GetRunByID(ctx context.Context, runID string) (*dto.RunResponse, error) {
	args := m.Called(ctx, runID)
	run, _ := args.Get(0).(*dto.RunResponse)
	return run, args.Error(1)
}

func (m *mockRunService) GetRecentRuns(ctx context.Context, ticker string, limit int) ([]*dto.RunResponse, error) {
	args := m.Called(ctx, ticker, limit)
	return args.Get(0).([]*dto.RunResponse), args.Error(1)
}

type mockSchedulerService struct {
	mock.Mock
}

func (m *mockSchedulerService) Start(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockSchedulerService) Enqueue(ctx context.Context, task executordto.Task) (string, error) {
	args := m.Called(ctx, task)
	return args.String(0), args.Error(1)
}
