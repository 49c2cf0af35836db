package service

import (
	"context"
	"fmt"

	"golang-stock-signal/internal/entity"
	"golang-stock-signal/internal/executor/dto"
	"golang-stock-signal/internal/executor/indicator"
	"golang-stock-signal/internal/executor/repository"
	"golang-stock-signal/pkg/utils"
)

const DefaultBacktestWindow = 10

// BacktestService runs the moving average PnL accumulator over stored prices.
type BacktestService interface {
	Run(ctx context.Context, ticker string, window int) (*dto.BacktestResult, error)
}

type backtestService struct {
	priceRepo repository.PriceRepository
}

func NewBacktestService(priceRepo repository.PriceRepository) BacktestService {
	return &backtestService{priceRepo: priceRepo}
}

func (s *backtestService) Run(ctx context.Context, ticker string, window int) (*dto.BacktestResult, error) {
	if window <= 0 {
		window = DefaultBacktestWindow
	}
	bars, err := s.priceRepo.LoadHistory(ctx, ticker, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load prices for %s: %w", ticker, err)
	}
	return Backtest(ticker, CleanSeries(bars, 0), window)
}

// Backtest buys when flat and the close is below its moving average and sells
// when long and the close is above it. Needs at least window+1 bars.
func Backtest(ticker string, series indicator.Series, window int) (*dto.BacktestResult, error) {
	if len(series) < window+1 {
		return nil, ErrNoData
	}

	closes := series.Closes()
	ma := indicator.SMA(closes, window)
	result := &dto.BacktestResult{Ticker: ticker, Window: window, Trades: []dto.BacktestTrade{}}

	var entry float64
	for i := window; i < len(series); i++ {
		price := closes[i]
		switch {
		case !result.InTrade && price < ma[i]:
			result.InTrade = true
			entry = price
			result.Trades = append(result.Trades, dto.BacktestTrade{Action: entity.ActionBuy, Price: price, Timestamp: series[i].Time})
		case result.InTrade && price > ma[i]:
			result.InTrade = false
			pnl := price - entry
			result.TotalPnL += pnl
			result.Trades = append(result.Trades, dto.BacktestTrade{Action: entity.ActionSell, Price: price, Timestamp: series[i].Time, PnL: utils.ToPointer(pnl)})
		}
	}
	return result, nil
}
