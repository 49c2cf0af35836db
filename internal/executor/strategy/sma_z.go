package strategy

import (
	"fmt"

	"golang-stock-signal/internal/entity"
	"golang-stock-signal/internal/executor/dto"
	"golang-stock-signal/internal/executor/indicator"
)

// SMAZParams holds the z-score window and trigger level.
type SMAZParams struct {
	Window int
	K      float64
}

// DefaultSMAZParams returns a 20 bar window with k=2.
func DefaultSMAZParams() SMAZParams {
	return SMAZParams{Window: 20, K: 2.0}
}

// SMAZStrategy is a mean reversion signal on the rolling z-score of the close.
type SMAZStrategy struct {
	params SMAZParams
}

// NewSMAZStrategy creates a new instance of SMAZStrategy.
func NewSMAZStrategy(params SMAZParams) *SMAZStrategy {
	return &SMAZStrategy{params: params}
}

// GetType returns the signal type of this strategy.
func (s *SMAZStrategy) GetType() entity.SignalType {
	return entity.SignalTypeSMAZ
}

// Compute evaluates the z-score on the latest bar.
// A nil payload means not enough history.
func (s *SMAZStrategy) Compute(ticker string, series indicator.Series) (*dto.Payload, error) {
	p := s.params
	if p.Window <= 0 || p.K <= 0 {
		return nil, fmt.Errorf("invalid sma z-score params %+v", p)
	}

	z := indicator.LastValue(indicator.SMAZScore(series.Closes(), p.Window).Z)
	if !indicator.Defined(z) {
		return nil, nil
	}

	action, strength := entity.ActionNeutral, entity.StrengthLow
	switch {
	case z > p.K:
		action, strength = entity.ActionSell, entity.StrengthMedium
	case z < -p.K:
		action, strength = entity.ActionBuy, entity.StrengthMedium
	}

	payload := newPayload(ticker, entity.SignalTypeSMAZ, fmt.Sprintf("SMAZ_%d_%s", p.Window, formatFloat(p.K)), action, strength)
	payload.SignalValue = value(z)
	payload.Params = map[string]interface{}{
		"window": p.Window,
		"k":      p.K,
	}
	payload.Message = fmt.Sprintf("%s SMA z-score=%.2f -> %s", ticker, z, action)
	return payload, nil
}
