package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang-stock-signal/internal/executor/config"
	"golang-stock-signal/internal/executor/dto"
	"golang-stock-signal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chartBody = `{"chart":{"result":[{"timestamp":[1709650800,1709650860,1709654400,1709654460],
"indicators":{"quote":[{"close":[100.0,101.0,null,103.5],"volume":[10,20,30,40]}]}}],"error":null}}`

func newYahooRepo(t *testing.T, handler http.HandlerFunc) YahooFinanceRepository {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{YahooFinance: config.YahooFinance{BaseURL: srv.URL, MaxRequestPerMinute: 6000, Timeout: time.Second}}
	repo, err := NewYahooFinanceRepository(cfg, logger.NewNop())
	require.NoError(t, err)
	return repo
}

func TestYahooFinanceRepository_GetBars(t *testing.T) {
	var gotPath, gotInterval string
	repo := newYahooRepo(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotInterval = r.URL.Query().Get("interval")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chartBody))
	})

	bars, err := repo.GetBars(context.Background(), dto.GetBarsParam{Ticker: "^GSPC", Range: "7d", Interval: "60m"})
	require.NoError(t, err)
	assert.Equal(t, "/v8/finance/chart/%5EGSPC", gotPath)
	assert.Equal(t, "60m", gotInterval)

	require.Len(t, bars, 3)
	assert.Equal(t, 100.0, bars[0].Close)
	assert.Equal(t, 103.5, bars[2].Close)
	assert.Equal(t, int64(40), bars[2].Volume)
}

func TestYahooFinanceRepository_GetBarsResamplesMinuteData(t *testing.T) {
	repo := newYahooRepo(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chartBody))
	})

	bars, err := repo.GetBars(context.Background(), dto.GetBarsParam{Ticker: "AAPL", Range: "1d", Interval: "1m"})
	require.NoError(t, err)
	require.Len(t, bars, 2)

	assert.True(t, bars[0].Timestamp.Equal(time.Date(2024, 3, 5, 15, 0, 0, 0, time.UTC)))
	assert.Equal(t, 101.0, bars[0].Close)
	assert.Equal(t, int64(30), bars[0].Volume)
	assert.True(t, bars[1].Timestamp.Equal(time.Date(2024, 3, 5, 16, 0, 0, 0, time.UTC)))
	assert.Equal(t, 103.5, bars[1].Close)
}

func TestYahooFinanceRepository_GetBarsErrorStatus(t *testing.T) {
	repo := newYahooRepo(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := repo.GetBars(context.Background(), dto.GetBarsParam{Ticker: "AAPL", Range: "1d", Interval: "1m"})
	assert.Error(t, err)
}

func TestResampleHourly(t *testing.T) {
	base := time.Date(2024, 3, 5, 15, 0, 0, 0, time.UTC)
	got := ResampleHourly([]dto.Bar{
		{Timestamp: base.Add(59 * time.Minute), Close: 2, Volume: 1},
		{Timestamp: base.Add(60 * time.Minute), Close: 3, Volume: 2},
		{Timestamp: base.Add(61 * time.Minute), Close: 4, Volume: 3},
	})
	require.Len(t, got, 2)
	assert.Equal(t, dto.Bar{Timestamp: base, Close: 2, Volume: 1}, got[0])
	assert.Equal(t, 4.0, got[1].Close)
	assert.Equal(t, int64(5), got[1].Volume)
}
