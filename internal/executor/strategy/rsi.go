package strategy

import (
	"fmt"

	"golang-stock-signal/internal/entity"
	"golang-stock-signal/internal/executor/dto"
	"golang-stock-signal/internal/executor/indicator"
)

// RSIParams holds the RSI period and its overbought/oversold bounds.
type RSIParams struct {
	Period     int
	Overbought float64
	Oversold   float64
}

// DefaultRSIParams returns period 14 with bounds 70/30.
func DefaultRSIParams() RSIParams {
	return RSIParams{Period: 14, Overbought: 70, Oversold: 30}
}

// RSIStrategy is the Wilder RSI overbought/oversold signal.
type RSIStrategy struct {
	params RSIParams
}

// NewRSIStrategy creates a new instance of RSIStrategy.
func NewRSIStrategy(params RSIParams) *RSIStrategy {
	return &RSIStrategy{params: params}
}

// GetType returns the signal type of this strategy.
func (s *RSIStrategy) GetType() entity.SignalType {
	return entity.SignalTypeRSI
}

// Compute evaluates the RSI bounds on the latest bar.
// A nil payload means not enough history.
func (s *RSIStrategy) Compute(ticker string, series indicator.Series) (*dto.Payload, error) {
	p := s.params
	if p.Period <= 0 || p.Oversold >= p.Overbought {
		return nil, fmt.Errorf("invalid rsi params %+v", p)
	}

	rsi := indicator.LastValue(indicator.RSI(series.Closes(), p.Period))
	if !indicator.Defined(rsi) {
		return nil, nil
	}

	action, strength := entity.ActionNeutral, entity.StrengthLow
	switch {
	case rsi > p.Overbought:
		action, strength = entity.ActionSell, entity.StrengthMedium
	case rsi < p.Oversold:
		action, strength = entity.ActionBuy, entity.StrengthMedium
	}
	if action != entity.ActionNeutral && (rsi > 80 || rsi < 20) {
		strength = entity.StrengthHigh
	}

	strategy := fmt.Sprintf("RSI_%d_%d_%d", p.Period, int(p.Overbought), int(p.Oversold))
	payload := newPayload(ticker, entity.SignalTypeRSI, strategy, action, strength)
	payload.SignalValue = value(rsi)
	payload.Params = map[string]interface{}{
		"period":     p.Period,
		"overbought": p.Overbought,
		"oversold":   p.Oversold,
		"smoothing":  "Wilder",
	}
	payload.Message = fmt.Sprintf("%s RSI(%d)=%.2f -> %s", ticker, p.Period, rsi, action)
	return payload, nil
}
