package service

import (
	"testing"

	"golang-stock-signal/internal/entity"
	"golang-stock-signal/internal/executor/dto"

	"github.com/stretchr/testify/assert"
)

func payloadWith(action entity.Action) *dto.Payload {
	return &dto.Payload{
		Ticker:     "AAPL",
		SignalType: entity.SignalTypeMACD,
		Action:     action,
		Strength:   entity.StrengthHigh,
		Message:    "AAPL MACD -> " + string(action),
	}
}

func TestRegimeGate(t *testing.T) {
	up := CleanSeries(makeBars("AAPL", ramp(210, 100, 1), testStart), 0)
	down := CleanSeries(makeBars("AAPL", ramp(210, 400, -1), testStart), 0)
	short := CleanSeries(makeBars("AAPL", ramp(150, 400, -1), testStart), 0)
	gate := NewRegimeGate(true)

	assert.Equal(t, entity.ActionBuy, gate.Apply(payloadWith(entity.ActionBuy), up).Action)
	assert.Equal(t, entity.ActionSell, gate.Apply(payloadWith(entity.ActionSell), down).Action)
	assert.Equal(t, entity.ActionBuy, gate.Apply(payloadWith(entity.ActionBuy), short).Action, "not enough history for the slow average")
	assert.Equal(t, entity.ActionNeutral, gate.Apply(payloadWith(entity.ActionNeutral), up).Action)

	blocked := gate.Apply(payloadWith(entity.ActionSell), up)
	assert.Equal(t, entity.ActionNeutral, blocked.Action)
	assert.Equal(t, entity.StrengthLow, blocked.Strength)
	assert.Equal(t, "AAPL MACD -> SELL [blocked: regime]", blocked.Message)

	assert.Equal(t, entity.ActionNeutral, gate.Apply(payloadWith(entity.ActionBuy), down).Action)
}

func TestRegimeGate_DoesNotMutateInput(t *testing.T) {
	down := CleanSeries(makeBars("AAPL", ramp(210, 400, -1), testStart), 0)
	in := payloadWith(entity.ActionBuy)

	NewRegimeGate(true).Apply(in, down)

	assert.Equal(t, entity.ActionBuy, in.Action)
	assert.Equal(t, entity.StrengthHigh, in.Strength)
}

func TestRegimeGate_Idempotent(t *testing.T) {
	down := CleanSeries(makeBars("AAPL", ramp(210, 400, -1), testStart), 0)
	gate := NewRegimeGate(true)

	once := gate.Apply(payloadWith(entity.ActionBuy), down)
	twice := gate.Apply(once, down)

	assert.Equal(t, once, twice)
}

func TestRegimeGate_Disabled(t *testing.T) {
	down := CleanSeries(makeBars("AAPL", ramp(210, 400, -1), testStart), 0)
	in := payloadWith(entity.ActionBuy)

	assert.Same(t, in, NewRegimeGate(false).Apply(in, down))
	assert.Nil(t, NewRegimeGate(true).Apply(nil, down))
}
