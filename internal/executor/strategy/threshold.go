package strategy

import (
	"fmt"
	"math"
	"time"

	"golang-stock-signal/internal/entity"
	"golang-stock-signal/internal/executor/dto"
	"golang-stock-signal/internal/executor/indicator"
)

// Posture selects whether a move away from the open is followed or faded.
type Posture string

const (
	PostureMomentum      Posture = "momentum"
	PostureMeanReversion Posture = "mean_reversion"
)

// ThresholdParams configures the daily-open threshold strategy.
type ThresholdParams struct {
	Pct      float64
	Posture  Posture
	Location *time.Location
}

// ThresholdStrategy compares the latest close with the first close of its
// local trading day.
type ThresholdStrategy struct {
	params ThresholdParams
}

// NewThresholdStrategy creates a new instance of ThresholdStrategy.
func NewThresholdStrategy(params ThresholdParams) *ThresholdStrategy {
	if params.Location == nil {
		params.Location = time.UTC
	}
	if params.Posture == "" {
		params.Posture = PostureMomentum
	}
	return &ThresholdStrategy{params: params}
}

// GetType returns the signal type of this strategy.
func (s *ThresholdStrategy) GetType() entity.SignalType {
	return entity.SignalTypeThreshold
}

// Compute evaluates the daily-open threshold on the latest bar.
// A nil payload means not enough history.
func (s *ThresholdStrategy) Compute(ticker string, series indicator.Series) (*dto.Payload, error) {
	p := s.params
	if p.Pct <= 0 {
		return nil, fmt.Errorf("threshold pct must be positive, got %v", p.Pct)
	}

	open, lastPrice, ok := indicator.DailyOpenAndLast(series, p.Location)
	if !ok || open <= 0 {
		return nil, nil
	}
	change := (lastPrice - open) / open

	up, down := entity.ActionBuy, entity.ActionSell
	suffix := "MOM"
	if p.Posture == PostureMeanReversion {
		up, down = entity.ActionSell, entity.ActionBuy
		suffix = "MR"
	}

	action, strength := entity.ActionNeutral, entity.StrengthLow
	switch {
	case change >= p.Pct:
		action, strength = up, entity.StrengthMedium
		if change >= 1.5*p.Pct {
			strength = entity.StrengthHigh
		}
	case change <= -p.Pct:
		action, strength = down, entity.StrengthMedium
		if change <= -1.5*p.Pct {
			strength = entity.StrengthHigh
		}
	}

	strategy := fmt.Sprintf("THRESH_OPEN_%s_%s", formatFloat(math.Trunc(p.Pct*1000)/10), suffix)
	payload := newPayload(ticker, entity.SignalTypeThreshold, strategy, action, strength)
	payload.SignalValue = value(change)
	payload.Params = map[string]interface{}{
		"basis":     "daily_open",
		"threshold": p.Pct,
		"market_tz": p.Location.String(),
		"posture":   string(p.Posture),
	}
	payload.Message = fmt.Sprintf("%s %.2f%% vs daily open -> %s", ticker, change*100, action)
	return payload, nil
}
