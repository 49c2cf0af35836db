package strategy

import (
	"fmt"

	"golang-stock-signal/internal/entity"
	"golang-stock-signal/internal/executor/dto"
	"golang-stock-signal/internal/executor/indicator"
)

// BreakoutParams holds the channel window. UsePrevious builds the channel from
// the bars before the latest one.
type BreakoutParams struct {
	Window      int
	UsePrevious bool
}

// DefaultBreakoutParams returns a 20 bar channel over the previous bars.
func DefaultBreakoutParams() BreakoutParams {
	return BreakoutParams{Window: 20, UsePrevious: true}
}

// BreakoutStrategy fires when the close leaves the rolling high/low channel.
type BreakoutStrategy struct {
	params BreakoutParams
}

// NewBreakoutStrategy creates a new instance of BreakoutStrategy.
func NewBreakoutStrategy(params BreakoutParams) *BreakoutStrategy {
	return &BreakoutStrategy{params: params}
}

// GetType returns the signal type of this strategy.
func (s *BreakoutStrategy) GetType() entity.SignalType {
	return entity.SignalTypeBreakout
}

// Compute evaluates the rolling channel on the latest bar.
// A nil payload means not enough history.
func (s *BreakoutStrategy) Compute(ticker string, series indicator.Series) (*dto.Payload, error) {
	p := s.params
	if p.Window <= 0 {
		return nil, fmt.Errorf("invalid breakout params %+v", p)
	}

	res := indicator.CloseBreakout(series.Closes(), p.Window, p.UsePrevious)
	if !indicator.Defined(indicator.LastValue(res.UpperThreshold)) || !indicator.Defined(indicator.LastValue(res.LowerThreshold)) {
		return nil, nil
	}

	n := len(series)
	action, strength, reading := entity.ActionNeutral, entity.StrengthLow, 0.0
	switch {
	case res.Up[n-1]:
		action, strength, reading = entity.ActionBuy, entity.StrengthHigh, 1.0
	case res.Down[n-1]:
		action, strength, reading = entity.ActionSell, entity.StrengthHigh, -1.0
	}

	mode := "curr"
	if p.UsePrevious {
		mode = "prev"
	}
	payload := newPayload(ticker, entity.SignalTypeBreakout, fmt.Sprintf("BRK_%d_%s", p.Window, mode), action, strength)
	payload.SignalValue = value(reading)
	payload.Params = map[string]interface{}{
		"window":       p.Window,
		"use_previous": p.UsePrevious,
	}
	payload.Message = fmt.Sprintf("%s Close breakout -> %s", ticker, action)
	return payload, nil
}
