package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"golang-stock-signal/internal/entity"
	executorrepository "golang-stock-signal/internal/executor/repository"
	"golang-stock-signal/internal/scheduler/dto"
	"golang-stock-signal/internal/scheduler/repository"
	"golang-stock-signal/pkg/logger"

	"github.com/patrickmn/go-cache"
)

// SignalQueryService serves the read endpoints over signals and prices.
type SignalQueryService interface {
	RecentSignals(ctx context.Context, limit int) ([]*dto.SignalResponse, error)
	SignalsByTicker(ctx context.Context, ticker string, limit int) ([]*dto.SignalResponse, error)
	Summary(ctx context.Context) ([]*dto.SignalSummaryResponse, error)
	Prices(ctx context.Context, ticker string, limit int) ([]*dto.PriceResponse, error)
}

// NewSignalQueryService creates a new signal query service. Price reads are
// cached for priceTTL.
func NewSignalQueryService(
	signalRepo repository.SignalQueryRepository,
	priceRepo executorrepository.PriceRepository,
	priceTTL time.Duration,
	cleanupInterval time.Duration,
	log *logger.Logger,
) SignalQueryService {
	return &signalQueryService{
		signalRepo: signalRepo,
		priceRepo:  priceRepo,
		priceCache: cache.New(priceTTL, cleanupInterval),
		logger:     log,
	}
}

type signalQueryService struct {
	signalRepo repository.SignalQueryRepository
	priceRepo  executorrepository.PriceRepository
	priceCache *cache.Cache
	logger     *logger.Logger
}

func (s *signalQueryService) RecentSignals(ctx context.Context, limit int) ([]*dto.SignalResponse, error) {
	signals, err := s.signalRepo.FindRecent(ctx, limit)
	if err != nil {
		s.logger.Error("Failed to get recent signals", logger.ErrorField(err))
		return nil, err
	}
	return s.mapSignals(signals), nil
}

func (s *signalQueryService) SignalsByTicker(ctx context.Context, ticker string, limit int) ([]*dto.SignalResponse, error) {
	signals, err := s.signalRepo.FindByTicker(ctx, strings.ToUpper(ticker), limit)
	if err != nil {
		s.logger.Error("Failed to get signals by ticker", logger.ErrorField(err), logger.StringField("ticker", ticker))
		return nil, err
	}
	return s.mapSignals(signals), nil
}

func (s *signalQueryService) Summary(ctx context.Context) ([]*dto.SignalSummaryResponse, error) {
	counts, err := s.signalRepo.CountByType(ctx)
	if err != nil {
		s.logger.Error("Failed to summarize signals", logger.ErrorField(err))
		return nil, err
	}

	summary := make([]*dto.SignalSummaryResponse, 0, len(counts))
	for _, c := range counts {
		summary = append(summary, &dto.SignalSummaryResponse{SignalType: c.SignalType, Count: c.Count})
	}
	return summary, nil
}

func (s *signalQueryService) Prices(ctx context.Context, ticker string, limit int) ([]*dto.PriceResponse, error) {
	ticker = strings.ToUpper(ticker)
	key := fmt.Sprintf("%s:%d", ticker, limit)
	if cached, ok := s.priceCache.Get(key); ok {
		return cached.([]*dto.PriceResponse), nil
	}

	bars, err := s.priceRepo.LoadHistory(ctx, ticker, limit)
	if err != nil {
		s.logger.Error("Failed to get prices", logger.ErrorField(err), logger.StringField("ticker", ticker))
		return nil, err
	}

	prices := make([]*dto.PriceResponse, 0, len(bars))
	for _, b := range bars {
		prices = append(prices, &dto.PriceResponse{
			Timestamp: b.Timestamp,
			Price:     b.Price.InexactFloat64(),
			Volume:    b.Volume,
		})
	}
	s.priceCache.SetDefault(key, prices)
	return prices, nil
}

func (s *signalQueryService) mapSignals(signals []entity.Signal) []*dto.SignalResponse {
	responses := make([]*dto.SignalResponse, 0, len(signals))
	for i := range signals {
		responses = append(responses, s.mapToSignalResponse(&signals[i]))
	}
	return responses
}

func (s *signalQueryService) mapToSignalResponse(signal *entity.Signal) *dto.SignalResponse {
	params := map[string]interface{}{}
	if len(signal.Params) > 0 {
		if err := json.Unmarshal(signal.Params, &params); err != nil {
			s.logger.Warn("Failed to decode signal params",
				logger.ErrorField(err),
				logger.Field("signal_id", signal.ID),
				logger.StringField("ticker", signal.Ticker))
			params = map[string]interface{}{}
		}
	}

	return &dto.SignalResponse{
		ID:          signal.ID,
		Ticker:      signal.Ticker,
		SignalType:  signal.SignalType,
		Strategy:    signal.Strategy,
		Action:      signal.Action,
		SignalValue: signal.SignalValue,
		Confidence:  signal.Confidence,
		Strength:    signal.Strength,
		Params:      params,
		TriggeredBy: signal.TriggeredBy,
		Message:     signal.Message,
		Timestamp:   signal.Timestamp,
		BarTS:       signal.BarTS,
	}
}
