package strategy

import (
	"fmt"

	"golang-stock-signal/internal/entity"
	"golang-stock-signal/internal/executor/dto"
	"golang-stock-signal/internal/executor/indicator"
)

// MACrossParams holds the short and long SMA windows.
type MACrossParams struct {
	Short int
	Long  int
}

// DefaultMACrossParams returns the 50/200 windows.
func DefaultMACrossParams() MACrossParams {
	return MACrossParams{Short: 50, Long: 200}
}

// MACrossStrategy reports golden and death crosses of two simple averages.
type MACrossStrategy struct {
	params MACrossParams
}

// NewMACrossStrategy creates a new instance of MACrossStrategy.
func NewMACrossStrategy(params MACrossParams) *MACrossStrategy {
	return &MACrossStrategy{params: params}
}

// GetType returns the signal type of this strategy.
func (s *MACrossStrategy) GetType() entity.SignalType {
	return entity.SignalTypeMACross
}

// Compute evaluates the moving average cross on the latest bar.
// A nil payload means not enough history.
func (s *MACrossStrategy) Compute(ticker string, series indicator.Series) (*dto.Payload, error) {
	p := s.params
	if p.Short <= 0 || p.Long <= p.Short {
		return nil, fmt.Errorf("invalid ma cross params %+v", p)
	}

	res := indicator.MACross(series.Closes(), p.Short, p.Long)
	sm, lm := indicator.LastValue(res.Short), indicator.LastValue(res.Long)
	if !indicator.Defined(sm) || !indicator.Defined(lm) {
		return nil, nil
	}

	n := len(series)
	action, strength := entity.ActionNeutral, entity.StrengthLow
	switch {
	case res.CrossUp[n-1]:
		action, strength = entity.ActionBuy, entity.StrengthHigh
	case res.CrossDown[n-1]:
		action, strength = entity.ActionSell, entity.StrengthHigh
	}

	payload := newPayload(ticker, entity.SignalTypeMACross, fmt.Sprintf("MA_%d_%d", p.Short, p.Long), action, strength)
	if lm != 0 {
		payload.SignalValue = value(sm/lm - 1)
	}
	payload.Params = map[string]interface{}{
		"short": p.Short,
		"long":  p.Long,
	}
	payload.Message = fmt.Sprintf("%s MA(%d/%d) -> %s", ticker, p.Short, p.Long, action)
	return payload, nil
}
