package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang-stock-signal/internal/entity"
	"golang-stock-signal/internal/executor/config"
	"golang-stock-signal/internal/executor/dto"
	"golang-stock-signal/internal/executor/repository"
	"golang-stock-signal/pkg/logger"
	"golang-stock-signal/pkg/metrics"

	"github.com/cenkalti/backoff/v5"
	"github.com/shopspring/decimal"
)

var errEmptyBars = errors.New("empty bars")

// IngestionService refreshes stored price bars and triggers the signal run.
type IngestionService interface {
	RefreshTicker(ctx context.Context, ticker string) (int, error)
	RefreshAll(ctx context.Context) map[string]int
	IngestAndRun(ctx context.Context, triggeredBy entity.TriggeredBy) *dto.RunSummary
}

type ingestionService struct {
	ingestion     config.Ingestion
	signal        config.Signal
	yahooFinance  repository.YahooFinanceRepository
	priceRepo     repository.PriceRepository
	signalRepo    repository.SignalRepository
	signalService SignalService
	logger        *logger.Logger
	now           func() time.Time
}

// NewIngestionService creates a new IngestionService.
func NewIngestionService(
	cfg *config.Config,
	yahooFinance repository.YahooFinanceRepository,
	priceRepo repository.PriceRepository,
	signalRepo repository.SignalRepository,
	signalService SignalService,
	log *logger.Logger,
) IngestionService {
	return &ingestionService{
		ingestion:     cfg.Ingestion,
		signal:        cfg.Signal,
		yahooFinance:  yahooFinance,
		priceRepo:     priceRepo,
		signalRepo:    signalRepo,
		signalService: signalService,
		logger:        log,
		now:           time.Now,
	}
}

// RefreshTicker walks the configured (range, interval) attempts, retrying each
// with backoff, and stores the first non-empty result.
func (s *ingestionService) RefreshTicker(ctx context.Context, ticker string) (int, error) {
	var bars []dto.Bar
	for _, attempt := range s.ingestion.Attempts {
		fetched, err := s.fetchWithRetry(ctx, ticker, attempt)
		if err != nil {
			s.logger.Warn("Fetch attempt failed",
				logger.StringField("ticker", ticker),
				logger.StringField("range", attempt.Range),
				logger.StringField("interval", attempt.Interval),
				logger.ErrorField(err))
			if ctx.Err() != nil {
				return 0, ctx.Err()
			}
			continue
		}
		bars = fetched
		break
	}
	if len(bars) == 0 {
		return 0, ErrNoData
	}

	rows := make([]entity.PriceBar, 0, len(bars))
	for _, b := range bars {
		volume := b.Volume
		rows = append(rows, entity.PriceBar{
			Ticker:    ticker,
			Price:     decimal.NewFromFloat(b.Close),
			Volume:    &volume,
			Timestamp: b.Timestamp.UTC(),
		})
	}
	if _, err := s.priceRepo.UpsertBars(ctx, rows); err != nil {
		return 0, fmt.Errorf("failed to store bars for %s: %w", ticker, err)
	}
	metrics.PriceBarsIngestedTotal.WithLabelValues(ticker).Add(float64(len(rows)))

	if s.ingestion.RetentionDays > 0 {
		cutoff := s.now().UTC().AddDate(0, 0, -s.ingestion.RetentionDays)
		if _, err := s.priceRepo.DeleteOlderThan(ctx, ticker, cutoff); err != nil {
			s.logger.Error("Failed to purge old bars", logger.StringField("ticker", ticker), logger.ErrorField(err))
		}
	}
	return len(rows), nil
}

func (s *ingestionService) fetchWithRetry(ctx context.Context, ticker string, attempt config.FetchAttempt) ([]dto.Bar, error) {
	b := backoff.NewExponentialBackOff()
	if s.ingestion.InitialBackoff > 0 {
		b.InitialInterval = s.ingestion.InitialBackoff
	}
	maxTries := s.ingestion.MaxRetries
	if maxTries <= 0 {
		maxTries = 1
	}

	return backoff.Retry(ctx, func() ([]dto.Bar, error) {
		bars, err := s.yahooFinance.GetBars(ctx, dto.GetBarsParam{Ticker: ticker, Range: attempt.Range, Interval: attempt.Interval})
		if err != nil {
			return nil, err
		}
		if len(bars) == 0 {
			return nil, errEmptyBars
		}
		return bars, nil
	}, backoff.WithBackOff(b), backoff.WithMaxTries(uint(maxTries)))
}

// RefreshAll refreshes every configured ticker. Tickers without data are
// skipped and reported with a count of zero.
func (s *ingestionService) RefreshAll(ctx context.Context) map[string]int {
	written := make(map[string]int, len(s.ingestion.Tickers))
	for _, ticker := range s.ingestion.Tickers {
		n, err := s.RefreshTicker(ctx, ticker)
		if err != nil {
			s.logger.Warn("Skipping ticker", logger.StringField("ticker", ticker), logger.ErrorField(err))
		}
		written[ticker] = n
	}
	s.logger.Info("Price refresh completed", logger.Field("written", written))
	return written
}

func (s *ingestionService) IngestAndRun(ctx context.Context, triggeredBy entity.TriggeredBy) *dto.RunSummary {
	s.RefreshAll(ctx)
	summary := s.signalService.RunForAllTickers(ctx, s.ingestion.Tickers, triggeredBy)

	if s.signal.SignalRetentionDays > 0 {
		cutoff := s.now().UTC().AddDate(0, 0, -s.signal.SignalRetentionDays)
		deleted, err := s.signalRepo.DeleteOlderThan(ctx, cutoff)
		if err != nil {
			s.logger.Error("Failed to purge old signals", logger.ErrorField(err))
		} else if deleted > 0 {
			s.logger.Info("Purged old signals", logger.Field("deleted", deleted))
		}
	}
	return summary
}
