package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang-stock-signal/internal/entity"
	executordto "golang-stock-signal/internal/executor/dto"
	executorservice "golang-stock-signal/internal/executor/service"
	"golang-stock-signal/internal/scheduler/dto"
	"golang-stock-signal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testAPI struct {
	echo      *echo.Echo
	query     *mockQueryService
	signals   *mockSignalService
	backtest  *mockBacktestService
	runs      *mockRunService
	scheduler *mockSchedulerService
}

func newTestAPI() *testAPI {
	api := &testAPI{
		echo:      echo.New(),
		query:     new(mockQueryService),
		signals:   new(mockSignalService),
		backtest:  new(mockBacktestService),
		runs:      new(mockRunService),
		scheduler: new(mockSchedulerService),
	}
	log := logger.NewNop()
	v1 := api.echo.Group("/api/v1")
	NewSignalHandler(api.query, api.signals, []string{"AAPL", "MSFT"}, log).RegisterRoutes(v1.Group("/signals"))
	prices := NewPriceHandler(api.query, api.backtest, log)
	prices.RegisterRoutes(v1.Group("/prices"))
	prices.RegisterBacktestRoutes(v1.Group("/backtest"))
	NewRunHandler(api.runs, log).RegisterRoutes(v1.Group("/runs"))
	NewIngestHandler(api.scheduler, log).RegisterRoutes(v1.Group("/ingest"))
	return api
}

func (api *testAPI) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	api.echo.ServeHTTP(rec, req)
	return rec
}

func TestGetRecentSignals(t *testing.T) {
	api := newTestAPI()
	api.query.On("RecentSignals", mock.Anything, 10).Return([]*dto.SignalResponse{
		{Ticker: "AAPL", SignalType: entity.SignalTypeRSI, Action: entity.ActionBuy},
	}, nil)

	rec := api.do(http.MethodGet, "/api/v1/signals/recent", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	var body []dto.SignalResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, entity.ActionBuy, body[0].Action)
	api.query.AssertExpectations(t)
}

func TestGetRecentSignals_InvalidLimit(t *testing.T) {
	api := newTestAPI()

	for _, limit := range []string{"abc", "0", "-3", "100000"} {
		rec := api.do(http.MethodGet, "/api/v1/signals/recent?limit="+limit, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, limit)
	}
	api.query.AssertNotCalled(t, "RecentSignals", mock.Anything, mock.Anything)
}

func TestGetSignalSummary(t *testing.T) {
	api := newTestAPI()
	api.query.On("Summary", mock.Anything).Return([]*dto.SignalSummaryResponse{
		{SignalType: entity.SignalTypeMACD, Count: 4},
	}, nil)

	rec := api.do(http.MethodGet, "/api/v1/signals/summary", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"signal_type":"MACD","count":4}]`, rec.Body.String())
}

func TestGetSignalsByTicker(t *testing.T) {
	api := newTestAPI()
	api.query.On("SignalsByTicker", mock.Anything, "TSLA", 5).Return([]*dto.SignalResponse{}, nil)
	api.query.On("SignalsByTicker", mock.Anything, "FAIL", 20).Return([]*dto.SignalResponse(nil), errors.New("db down"))

	rec := api.do(http.MethodGet, "/api/v1/signals/TSLA?limit=5", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = api.do(http.MethodGet, "/api/v1/signals/FAIL", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to get signals"}`, rec.Body.String())
}

func TestRunForTicker(t *testing.T) {
	api := newTestAPI()
	api.signals.On("RunForTicker", mock.Anything, "BTC-USD", entity.TriggeredByManual).
		Return(&executordto.TickerSummary{Ticker: "BTC-USD", Emitted: 5, Errors: []string{}})

	rec := api.do(http.MethodPost, "/api/v1/signals/run/btc-usd", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	var body executordto.TickerSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 5, body.Emitted)
	api.signals.AssertExpectations(t)
}

func TestRunForAllTickers(t *testing.T) {
	api := newTestAPI()
	api.signals.On("RunForAllTickers", mock.Anything, []string{"AAPL", "MSFT"}, entity.TriggeredByManual).
		Return(&executordto.RunSummary{TotalEmitted: 10}).Once()
	api.signals.On("RunForAllTickers", mock.Anything, []string{"ETH-USD"}, entity.TriggeredByManual).
		Return(&executordto.RunSummary{TotalEmitted: 5}).Once()

	rec := api.do(http.MethodPost, "/api/v1/signals/run", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_emitted":10`)

	rec = api.do(http.MethodPost, "/api/v1/signals/run", `{"tickers":[" eth-usd ",""]}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_emitted":5`)

	rec = api.do(http.MethodPost, "/api/v1/signals/run", `{"tickers":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	api.signals.AssertExpectations(t)
}

func TestGetPrices(t *testing.T) {
	api := newTestAPI()
	volume := int64(100)
	ts := time.Date(2024, 1, 2, 15, 0, 0, 0, time.UTC)
	api.query.On("Prices", mock.Anything, "AAPL", 500).Return([]*dto.PriceResponse{
		{Timestamp: ts, Price: 187.5, Volume: &volume},
	}, nil)

	rec := api.do(http.MethodGet, "/api/v1/prices/AAPL", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"timestamp":"2024-01-02T15:00:00Z","price":187.5,"volume":100}]`, rec.Body.String())
}

func TestBacktest(t *testing.T) {
	api := newTestAPI()
	api.backtest.On("Run", mock.Anything, "AAPL", 10).
		Return(&executordto.BacktestResult{Ticker: "AAPL", Window: 10, TotalPnL: 3}, nil)
	api.backtest.On("Run", mock.Anything, "MSFT", 5).
		Return(nil, executorservice.ErrNoData)

	rec := api.do(http.MethodGet, "/api/v1/backtest/aapl", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_pnl":3`)

	rec = api.do(http.MethodGet, "/api/v1/backtest/MSFT?window=5", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(http.MethodGet, "/api/v1/backtest/MSFT?window=zero", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRuns(t *testing.T) {
	const (
		knownRun   = "2f1c0b8e-8c7a-4a51-9d38-0d5b1c3e7a10"
		missingRun = "9b0e4a52-1f6d-4c8e-a7b3-5e2d9c8f1a44"
	)
	api := newTestAPI()
	api.runs.On("GetRecentRuns", mock.Anything, "AAPL", 2).Return([]*dto.RunResponse{
		{RunID: knownRun, Ticker: "AAPL", Emitted: 5},
	}, nil)
	api.runs.On("GetRunByID", mock.Anything, knownRun).Return(&dto.RunResponse{RunID: knownRun}, nil)
	api.runs.On("GetRunByID", mock.Anything, missingRun).Return(nil, gorm.ErrRecordNotFound)

	rec := api.do(http.MethodGet, "/api/v1/runs?ticker=AAPL&limit=2", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"run_id":"`+knownRun+`"`)

	rec = api.do(http.MethodGet, "/api/v1/runs/"+strings.ToUpper(knownRun), "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(http.MethodGet, "/api/v1/runs/"+missingRun, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetRunByID_MalformedID(t *testing.T) {
	api := newTestAPI()

	for _, id := range []string{"r1", "not-a-uuid", "2f1c0b8e-8c7a"} {
		rec := api.do(http.MethodGet, "/api/v1/runs/"+id, "")
		assert.Equal(t, http.StatusNotFound, rec.Code, id)
	}
	api.runs.AssertNotCalled(t, "GetRunByID", mock.Anything, mock.Anything)
}

func TestGetRunByID_StoreFailure(t *testing.T) {
	const runID = "2f1c0b8e-8c7a-4a51-9d38-0d5b1c3e7a10"
	api := newTestAPI()
	api.runs.On("GetRunByID", mock.Anything, runID).Return(nil, errors.New("connection reset"))

	rec := api.do(http.MethodGet, "/api/v1/runs/"+runID, "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection reset")
}

func TestEnqueueIngest(t *testing.T) {
	api := newTestAPI()
	task := executordto.Task{Type: executordto.TaskTypeIngestAndRun, TriggeredBy: entity.TriggeredByManual}
	api.scheduler.On("Enqueue", mock.Anything, task).Return("1700000000000-0", nil).Once()
	api.scheduler.On("Enqueue", mock.Anything, task).Return("", errors.New("redis down")).Once()

	rec := api.do(http.MethodPost, "/api/v1/ingest", "")
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.JSONEq(t, `{"message_id":"1700000000000-0","task":"ingest_and_run"}`, rec.Body.String())

	rec = api.do(http.MethodPost, "/api/v1/ingest", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
