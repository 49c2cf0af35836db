package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang-stock-signal/internal/entity"
	"golang-stock-signal/internal/executor/config"
	"golang-stock-signal/internal/executor/dto"
	"golang-stock-signal/internal/executor/indicator"
	"golang-stock-signal/internal/executor/repository"
	"golang-stock-signal/internal/executor/strategy"
	"golang-stock-signal/pkg/logger"
	"golang-stock-signal/pkg/metrics"
	"golang-stock-signal/pkg/utils"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

const (
	errTagNoData  = "no_data"
	stageCompute  = "compute"
	stageEmit     = "emit"
	stageAlert    = "alert"
	stageCooldown = "cooldown"
)

// ErrNoData is returned when a ticker has no usable price history.
var ErrNoData = errors.New("no price data")

// SignalService runs the signal registry against stored price history.
// Failures never escape a ticker run; they are reported in the summary.
type SignalService interface {
	RunForTicker(ctx context.Context, ticker string, triggeredBy entity.TriggeredBy) *dto.TickerSummary
	RunForAllTickers(ctx context.Context, tickers []string, triggeredBy entity.TriggeredBy) *dto.RunSummary
}

type signalService struct {
	cfg        config.Signal
	priceRepo  repository.PriceRepository
	signalRepo repository.SignalRepository
	runRepo    repository.SignalRunRepository
	alertRepo  repository.AlertRepository
	strategies []strategy.SignalStrategy
	gate       *RegimeGate
	cooldown   *CooldownPolicy
	logger     *logger.Logger
	now        func() time.Time
}

// NewSignalService creates a new SignalService. The signal configuration is
// copied and never re-read during a run.
func NewSignalService(
	cfg config.Signal,
	priceRepo repository.PriceRepository,
	signalRepo repository.SignalRepository,
	runRepo repository.SignalRunRepository,
	alertRepo repository.AlertRepository,
	strategies []strategy.SignalStrategy,
	log *logger.Logger,
) SignalService {
	return &signalService{
		cfg:        cfg,
		priceRepo:  priceRepo,
		signalRepo: signalRepo,
		runRepo:    runRepo,
		alertRepo:  alertRepo,
		strategies: strategies,
		gate:       NewRegimeGate(cfg.RegimeFilterEnabled),
		cooldown:   NewCooldownPolicy(signalRepo, cfg.AlertCooldown()),
		logger:     log,
		now:        time.Now,
	}
}

func (s *signalService) RunForTicker(ctx context.Context, ticker string, triggeredBy entity.TriggeredBy) *dto.TickerSummary {
	startedAt := s.now()
	summary := &dto.TickerSummary{
		RunID:       uuid.NewString(),
		Ticker:      ticker,
		LastActions: map[entity.SignalType]entity.Action{},
		Errors:      []string{},
	}
	ctx = logger.WithRunID(ctx, summary.RunID)

	defer func() {
		metrics.SignalRunDuration.Observe(s.now().Sub(startedAt).Seconds())
		for _, tag := range summary.Errors {
			stage, _, _ := strings.Cut(tag, ":")
			metrics.SignalErrorsTotal.WithLabelValues(stage).Inc()
		}
		s.recordRun(ctx, summary, triggeredBy, startedAt)
	}()

	series, err := s.loadSeries(ctx, ticker)
	if err != nil {
		s.logger.WarnContext(ctx, "Skipping ticker without price data", logger.StringField("ticker", ticker), logger.ErrorField(err))
		summary.Errors = append(summary.Errors, errTagNoData)
		return summary
	}
	barTS := series.Last().Time

	destination := s.alertRepo.Destination()
	alertsReady := s.cfg.AlertsEnabled && destination != ""

	for _, st := range s.strategies {
		name := string(st.GetType())

		var payload *dto.Payload
		err := utils.Recover(func() error {
			var computeErr error
			payload, computeErr = st.Compute(ticker, series)
			return computeErr
		})
		if err != nil {
			s.logger.ErrorContext(ctx, "Signal computation failed",
				logger.StringField("ticker", ticker),
				logger.StringField("signal_type", name),
				logger.ErrorField(err))
			summary.Errors = append(summary.Errors, stageCompute+":"+name)
			continue
		}
		if payload == nil {
			s.logger.DebugContext(ctx, "Not enough history for signal",
				logger.StringField("ticker", ticker),
				logger.StringField("signal_type", name))
			continue
		}

		payload = s.gate.Apply(payload, series)

		willAlert := false
		if alertsReady && payload.Action.IsDirectional() {
			state, err := s.cooldown.State(ctx, ticker, payload.SignalType, payload.Action)
			if err != nil {
				s.logger.ErrorContext(ctx, "Failed to evaluate alert cooldown",
					logger.StringField("ticker", ticker),
					logger.StringField("signal_type", name),
					logger.ErrorField(err))
				summary.Errors = append(summary.Errors, stageCooldown+":"+name)
			}
			willAlert = err == nil && state == CooldownEligible
		}

		record, err := s.toEntity(payload, triggeredBy, barTS)
		if err == nil {
			err = s.signalRepo.Upsert(ctx, record)
		}
		if err != nil {
			s.logger.ErrorContext(ctx, "Failed to persist signal",
				logger.StringField("ticker", ticker),
				logger.StringField("signal_type", name),
				logger.ErrorField(err))
			summary.Errors = append(summary.Errors, stageEmit+":"+name)
			continue
		}

		summary.Emitted++
		summary.LastActions[payload.SignalType] = payload.Action
		metrics.SignalsEmittedTotal.WithLabelValues(name, string(payload.Action)).Inc()
		s.logger.DebugContext(ctx, "Signal emitted",
			logger.StringField("ticker", ticker),
			logger.StringField("strategy", payload.Strategy),
			logger.StringField("action", string(payload.Action)),
			logger.Field("will_alert", willAlert))

		if !willAlert {
			continue
		}
		message := payload.Message
		if message == "" {
			message = fmt.Sprintf("%s %s -> %s", ticker, payload.SignalType, payload.Action)
		}
		if err := s.alertRepo.SendAlert(ctx, message, destination); err != nil {
			s.logger.ErrorContext(ctx, "Failed to send alert",
				logger.StringField("ticker", ticker),
				logger.StringField("signal_type", name),
				logger.ErrorField(err))
			summary.Errors = append(summary.Errors, stageAlert+":"+name)
			continue
		}
		metrics.AlertsSentTotal.WithLabelValues(name).Inc()
	}

	s.logger.InfoContext(ctx, "Signal run completed",
		logger.StringField("ticker", ticker),
		logger.IntField("emitted", summary.Emitted),
		logger.Field("errors", summary.Errors))
	return summary
}

func (s *signalService) RunForAllTickers(ctx context.Context, tickers []string, triggeredBy entity.TriggeredBy) *dto.RunSummary {
	result := &dto.RunSummary{
		PerTicker: make(map[string]*dto.TickerSummary, len(tickers)),
		Errors:    map[string][]string{},
	}
	for _, ticker := range tickers {
		summary := s.RunForTicker(ctx, ticker, triggeredBy)
		result.TotalEmitted += summary.Emitted
		result.PerTicker[ticker] = summary
		if len(summary.Errors) > 0 {
			result.Errors[ticker] = summary.Errors
		}
	}
	return result
}

func (s *signalService) loadSeries(ctx context.Context, ticker string) (indicator.Series, error) {
	bars, err := s.priceRepo.LoadHistory(ctx, ticker, s.cfg.LookbackBars)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoData, err)
	}
	cleaned := CleanSeries(bars, s.cfg.LookbackBars)
	if len(cleaned) == 0 {
		return nil, ErrNoData
	}
	return cleaned, nil
}

func (s *signalService) toEntity(payload *dto.Payload, triggeredBy entity.TriggeredBy, barTS time.Time) (*entity.Signal, error) {
	params, err := json.Marshal(payload.Params)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal params: %w", err)
	}
	return &entity.Signal{
		Ticker:      payload.Ticker,
		SignalType:  payload.SignalType,
		Strategy:    payload.Strategy,
		Action:      payload.Action,
		SignalValue: payload.SignalValue,
		Confidence:  payload.Confidence,
		Strength:    payload.Strength,
		Params:      datatypes.JSON(params),
		TriggeredBy: triggeredBy,
		Message:     payload.Message,
		Timestamp:   s.now().UTC(),
		BarTS:       barTS,
	}, nil
}

func (s *signalService) recordRun(ctx context.Context, summary *dto.TickerSummary, triggeredBy entity.TriggeredBy, startedAt time.Time) {
	lastActions, err := json.Marshal(summary.LastActions)
	if err != nil {
		lastActions = []byte("{}")
	}
	run := &entity.SignalRun{
		RunID:       summary.RunID,
		Ticker:      summary.Ticker,
		TriggeredBy: triggeredBy,
		Emitted:     summary.Emitted,
		LastActions: datatypes.JSON(lastActions),
		Errors:      pq.StringArray(summary.Errors),
		StartedAt:   startedAt.UTC(),
		CompletedAt: s.now().UTC(),
	}
	if err := s.runRepo.Create(ctx, run); err != nil {
		s.logger.ErrorContext(ctx, "Failed to record signal run", logger.StringField("ticker", summary.Ticker), logger.ErrorField(err))
	}
}
