package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang-stock-signal/internal/executor/config"
	"golang-stock-signal/internal/executor/dto"
	"golang-stock-signal/pkg/logger"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

// YahooFinanceRepository fetches price bars from the Yahoo Finance chart API.
type YahooFinanceRepository interface {
	// GetBars returns ascending hourly bars. One minute data is resampled to
	// the last close of each UTC hour with summed volume.
	GetBars(ctx context.Context, param dto.GetBarsParam) ([]dto.Bar, error)
}

type yahooFinanceRepository struct {
	client  *resty.Client
	limiter *rate.Limiter
	logger  *logger.Logger
}

// NewYahooFinanceRepository creates a new rate limited Yahoo Finance client.
func NewYahooFinanceRepository(cfg *config.Config, log *logger.Logger) (YahooFinanceRepository, error) {
	if cfg.YahooFinance.BaseURL == "" {
		return nil, fmt.Errorf("yahoo finance base url is required")
	}
	perMinute := cfg.YahooFinance.MaxRequestPerMinute
	if perMinute <= 0 {
		perMinute = 60
	}
	timeout := cfg.YahooFinance.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := resty.New().
		SetBaseURL(cfg.YahooFinance.BaseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "Mozilla/5.0")

	return &yahooFinanceRepository{
		client:  client,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1),
		logger:  log,
	}, nil
}

func (r *yahooFinanceRepository) GetBars(ctx context.Context, param dto.GetBarsParam) ([]dto.Bar, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var out dto.YahooChartResponse
	resp, err := r.client.R().
		SetContext(ctx).
		SetPathParam("ticker", param.Ticker).
		SetQueryParams(map[string]string{
			"range":    param.Range,
			"interval": param.Interval,
		}).
		SetResult(&out).
		Get("/v8/finance/chart/{ticker}")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chart for %s: %w", param.Ticker, err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("yahoo finance returned status %d for %s", resp.StatusCode(), param.Ticker)
	}
	if out.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo finance error for %s: %s", param.Ticker, out.Chart.Error.Description)
	}
	if len(out.Chart.Result) == 0 || len(out.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, nil
	}

	result := out.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	bars := make([]dto.Bar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) || quote.Close[i] == nil {
			continue
		}
		bar := dto.Bar{Timestamp: time.Unix(ts, 0).UTC(), Close: *quote.Close[i]}
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			bar.Volume = *quote.Volume[i]
		}
		bars = append(bars, bar)
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Timestamp.Before(bars[j].Timestamp) })

	r.logger.Debug("Fetched bars",
		logger.StringField("ticker", param.Ticker),
		logger.StringField("range", param.Range),
		logger.StringField("interval", param.Interval),
		logger.IntField("count", len(bars)))

	if param.Interval == "1m" {
		return ResampleHourly(bars), nil
	}
	return bars, nil
}

// ResampleHourly buckets ascending bars by UTC hour, keeping the last close
// and the summed volume of each bucket. The bucket is labelled by its start.
func ResampleHourly(bars []dto.Bar) []dto.Bar {
	out := make([]dto.Bar, 0, len(bars)/60+1)
	for _, b := range bars {
		hour := b.Timestamp.UTC().Truncate(time.Hour)
		if n := len(out); n > 0 && out[n-1].Timestamp.Equal(hour) {
			out[n-1].Close = b.Close
			out[n-1].Volume += b.Volume
			continue
		}
		out = append(out, dto.Bar{Timestamp: hour, Close: b.Close, Volume: b.Volume})
	}
	return out
}
