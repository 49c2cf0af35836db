package strategy

import (
	"fmt"

	"golang-stock-signal/internal/entity"
	"golang-stock-signal/internal/executor/dto"
	"golang-stock-signal/internal/executor/indicator"
)

// BollingerParams holds the band window and width in standard deviations.
type BollingerParams struct {
	Window int
	K      float64
}

// DefaultBollingerParams returns a 20 bar window at 2 deviations.
func DefaultBollingerParams() BollingerParams {
	return BollingerParams{Window: 20, K: 2.0}
}

// BollingerStrategy is a mean reversion signal on the Bollinger bands.
type BollingerStrategy struct {
	params BollingerParams
}

// NewBollingerStrategy creates a new instance of BollingerStrategy.
func NewBollingerStrategy(params BollingerParams) *BollingerStrategy {
	return &BollingerStrategy{params: params}
}

// GetType returns the signal type of this strategy.
func (s *BollingerStrategy) GetType() entity.SignalType {
	return entity.SignalTypeBollinger
}

// Compute evaluates the Bollinger bands on the latest bar.
// A nil payload means not enough history.
func (s *BollingerStrategy) Compute(ticker string, series indicator.Series) (*dto.Payload, error) {
	p := s.params
	if p.Window <= 0 || p.K < 0 {
		return nil, fmt.Errorf("invalid bollinger params %+v", p)
	}

	res := indicator.Bollinger(series.Closes(), p.Window, p.K)
	mid, upper, lower, std := indicator.LastValue(res.Middle), indicator.LastValue(res.Upper), indicator.LastValue(res.Lower), indicator.LastValue(res.Std)
	if !indicator.Defined(mid) || !indicator.Defined(upper) || !indicator.Defined(lower) {
		return nil, nil
	}
	closePrice := series.Last().Close

	action, strength := entity.ActionNeutral, entity.StrengthLow
	switch {
	case closePrice > upper:
		action, strength = entity.ActionSell, entity.StrengthMedium
	case closePrice < lower:
		action, strength = entity.ActionBuy, entity.StrengthMedium
	}

	payload := newPayload(ticker, entity.SignalTypeBollinger, fmt.Sprintf("BOLL_%d_%s_mr", p.Window, formatFloat(p.K)), action, strength)
	if std != 0 {
		payload.SignalValue = value((closePrice - mid) / std)
	}
	payload.Params = map[string]interface{}{
		"window":  p.Window,
		"k":       p.K,
		"posture": string(PostureMeanReversion),
	}
	payload.Message = fmt.Sprintf("%s Bollinger -> %s (close=%.2f, sma=%.2f)", ticker, action, closePrice, mid)
	return payload, nil
}
