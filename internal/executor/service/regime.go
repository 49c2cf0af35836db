package service

import (
	"golang-stock-signal/internal/entity"
	"golang-stock-signal/internal/executor/dto"
	"golang-stock-signal/internal/executor/indicator"
)

const (
	regimeFastWindow = 50
	regimeSlowWindow = 200
	regimeBlockedTag = " [blocked: regime]"
)

// RegimeGate downgrades BUY signals outside an uptrend and SELL signals outside
// a downtrend, judged by the 50 vs 200 bar simple moving averages.
type RegimeGate struct {
	enabled bool
}

func NewRegimeGate(enabled bool) *RegimeGate {
	return &RegimeGate{enabled: enabled}
}

// Apply returns the payload to persist. Blocked signals are rewritten to
// NEUTRAL with low strength; they are never dropped.
func (g *RegimeGate) Apply(payload *dto.Payload, series indicator.Series) *dto.Payload {
	if !g.enabled || payload == nil || !payload.Action.IsDirectional() {
		return payload
	}
	if len(series) < regimeSlowWindow {
		return payload
	}

	closes := series.Closes()
	fast := indicator.LastValue(indicator.SMA(closes, regimeFastWindow))
	slow := indicator.LastValue(indicator.SMA(closes, regimeSlowWindow))
	if !indicator.Defined(fast) || !indicator.Defined(slow) {
		return payload
	}

	permitted := (payload.Action == entity.ActionBuy && fast > slow) ||
		(payload.Action == entity.ActionSell && fast < slow)
	if permitted {
		return payload
	}

	gated := *payload
	gated.Action = entity.ActionNeutral
	gated.Strength = entity.StrengthLow
	gated.Message = payload.Message + regimeBlockedTag
	return &gated
}
