package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang-stock-signal/internal/entity"
	"golang-stock-signal/internal/executor/dto"
	"golang-stock-signal/internal/executor/indicator"

	"github.com/shopspring/decimal"
)

var errBoom = errors.New("boom")

func makeBars(ticker string, closes []float64, start time.Time) []entity.PriceBar {
	bars := make([]entity.PriceBar, len(closes))
	for i, c := range closes {
		bars[i] = entity.PriceBar{
			Ticker:    ticker,
			Price:     decimal.NewFromFloat(c),
			Timestamp: start.Add(time.Duration(i) * time.Hour),
		}
	}
	return bars
}

func ramp(n int, from, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = from + float64(i)*step
	}
	return out
}

type fakePriceRepo struct {
	mu       sync.Mutex
	bars     map[string][]entity.PriceBar
	loadErr  error
	upserted []entity.PriceBar
	cutoffs  map[string]time.Time
}

func newFakePriceRepo() *fakePriceRepo {
	return &fakePriceRepo{bars: map[string][]entity.PriceBar{}, cutoffs: map[string]time.Time{}}
}

func (r *fakePriceRepo) LoadHistory(_ context.Context, ticker string, limit int) ([]entity.PriceBar, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	bars := r.bars[ticker]
	if limit > 0 && len(bars) > limit {
		bars = bars[len(bars)-limit:]
	}
	return bars, nil
}

func (r *fakePriceRepo) UpsertBars(_ context.Context, bars []entity.PriceBar) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.upserted = append(r.upserted, bars...)
	return int64(len(bars)), nil
}

func (r *fakePriceRepo) DeleteOlderThan(_ context.Context, ticker string, cutoff time.Time) (int64, error) {
	r.cutoffs[ticker] = cutoff
	return 0, nil
}

type fakeSignalRepo struct {
	rows      []entity.Signal
	upsertErr error
	findErr   error
	cutoff    *time.Time
}

func (r *fakeSignalRepo) Upsert(_ context.Context, signal *entity.Signal) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	for i, row := range r.rows {
		if row.Ticker == signal.Ticker && row.SignalType == signal.SignalType &&
			row.Strategy == signal.Strategy && row.BarTS.Equal(signal.BarTS) {
			r.rows[i] = *signal
			return nil
		}
	}
	r.rows = append(r.rows, *signal)
	return nil
}

func (r *fakeSignalRepo) FindLastTimestamp(_ context.Context, ticker string, signalType entity.SignalType, action entity.Action) (*time.Time, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	var last *time.Time
	for _, row := range r.rows {
		if row.Ticker != ticker || row.SignalType != signalType || row.Action != action {
			continue
		}
		if last == nil || row.Timestamp.After(*last) {
			ts := row.Timestamp
			last = &ts
		}
	}
	return last, nil
}

func (r *fakeSignalRepo) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	r.cutoff = &cutoff
	return 0, nil
}

type fakeRunRepo struct {
	runs []entity.SignalRun
}

func (r *fakeRunRepo) Create(_ context.Context, run *entity.SignalRun) error {
	r.runs = append(r.runs, *run)
	return nil
}

type fakeAlertRepo struct {
	destination string
	err         error
	sent        []string
}

func (r *fakeAlertRepo) SendAlert(_ context.Context, message string, _ string) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, message)
	return nil
}

func (r *fakeAlertRepo) Destination() string {
	return r.destination
}

type stubStrategy struct {
	signalType entity.SignalType
	action     entity.Action
	err        error
	panics     bool
	skip       bool
}

func (s *stubStrategy) GetType() entity.SignalType {
	return s.signalType
}

func (s *stubStrategy) Compute(ticker string, series indicator.Series) (*dto.Payload, error) {
	if s.panics {
		panic("index out of range")
	}
	if s.err != nil {
		return nil, s.err
	}
	if s.skip {
		return nil, nil
	}
	return &dto.Payload{
		Ticker:     ticker,
		SignalType: s.signalType,
		Strategy:   fmt.Sprintf("STUB_%s", s.signalType),
		Action:     s.action,
		Strength:   entity.StrengthMedium,
		Params:     map[string]interface{}{"stub": true},
		Message:    fmt.Sprintf("%s stub -> %s", ticker, s.action),
	}, nil
}

type fakeYahooRepo struct {
	mu    sync.Mutex
	calls []dto.GetBarsParam
	fn    func(call int, param dto.GetBarsParam) ([]dto.Bar, error)
}

func (r *fakeYahooRepo) GetBars(_ context.Context, param dto.GetBarsParam) ([]dto.Bar, error) {
	r.mu.Lock()
	r.calls = append(r.calls, param)
	call := len(r.calls)
	r.mu.Unlock()
	return r.fn(call, param)
}

type fakeSignalService struct {
	tickers []string
}

func (s *fakeSignalService) RunForTicker(_ context.Context, ticker string, _ entity.TriggeredBy) *dto.TickerSummary {
	s.tickers = append(s.tickers, ticker)
	return &dto.TickerSummary{Ticker: ticker}
}

func (s *fakeSignalService) RunForAllTickers(_ context.Context, tickers []string, _ entity.TriggeredBy) *dto.RunSummary {
	s.tickers = append(s.tickers, tickers...)
	return &dto.RunSummary{PerTicker: map[string]*dto.TickerSummary{}, Errors: map[string][]string{}}
}
