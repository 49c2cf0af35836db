package strategy

import (
	"fmt"

	"golang-stock-signal/internal/entity"
	"golang-stock-signal/internal/executor/dto"
	"golang-stock-signal/internal/executor/indicator"
)

// MACDParams holds the EMA periods of the MACD signal.
type MACDParams struct {
	Fast   int
	Slow   int
	Signal int
}

// DefaultMACDParams returns the 12/26/9 periods.
func DefaultMACDParams() MACDParams {
	return MACDParams{Fast: 12, Slow: 26, Signal: 9}
}

// MACDStrategy fires on a sign change of the MACD histogram on the latest bar.
type MACDStrategy struct {
	params MACDParams
}

// NewMACDStrategy creates a new instance of MACDStrategy.
func NewMACDStrategy(params MACDParams) *MACDStrategy {
	return &MACDStrategy{params: params}
}

// GetType returns the signal type of this strategy.
func (s *MACDStrategy) GetType() entity.SignalType {
	return entity.SignalTypeMACD
}

// Compute evaluates the MACD histogram crossing on the latest bar.
// A nil payload means not enough history.
func (s *MACDStrategy) Compute(ticker string, series indicator.Series) (*dto.Payload, error) {
	p := s.params
	if p.Fast <= 0 || p.Slow <= 0 || p.Signal <= 0 {
		return nil, fmt.Errorf("invalid macd params %+v", p)
	}
	if len(series) < 2 || len(series) < p.Slow {
		return nil, nil
	}

	res := indicator.MACD(series.Closes(), p.Fast, p.Slow, p.Signal)
	n := len(res.Histogram)
	prev, curr := res.Histogram[n-2], res.Histogram[n-1]
	if !indicator.Defined(prev) || !indicator.Defined(curr) {
		return nil, nil
	}

	action, strength := entity.ActionNeutral, entity.StrengthLow
	switch {
	case prev <= 0 && curr > 0:
		action, strength = entity.ActionBuy, entity.StrengthMedium
	case prev >= 0 && curr < 0:
		action, strength = entity.ActionSell, entity.StrengthMedium
	}

	payload := newPayload(ticker, entity.SignalTypeMACD, fmt.Sprintf("MACD_%d_%d_%d_xover", p.Fast, p.Slow, p.Signal), action, strength)
	payload.SignalValue = value(curr)
	payload.Params = map[string]interface{}{
		"fast":   p.Fast,
		"slow":   p.Slow,
		"signal": p.Signal,
		"mode":   "crossover",
	}
	payload.Message = fmt.Sprintf("%s MACD crossover -> %s (delta=%.4f)", ticker, action, curr)
	return payload, nil
}
