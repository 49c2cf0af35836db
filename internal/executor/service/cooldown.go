package service

import (
	"context"
	"time"

	"golang-stock-signal/internal/entity"
	"golang-stock-signal/internal/executor/repository"
)

type CooldownState string

const (
	CooldownActive   CooldownState = "COOLDOWN_ACTIVE"
	CooldownEligible CooldownState = "ELIGIBLE"
)

// EvaluateCooldown decides the state of a (ticker, signal_type, action) triple
// from the timestamp of its most recent signal. A triple without history is
// eligible; otherwise it is eligible once now - last >= cooldown. A last
// timestamp in the future keeps the triple in cooldown.
func EvaluateCooldown(last *time.Time, now time.Time, cooldown time.Duration) CooldownState {
	if last == nil {
		return CooldownEligible
	}
	elapsed := now.Sub(*last)
	if elapsed < 0 || elapsed < cooldown {
		return CooldownActive
	}
	return CooldownEligible
}

// CooldownPolicy reads the signal log to evaluate alert cooldowns.
type CooldownPolicy struct {
	signalRepo repository.SignalRepository
	cooldown   time.Duration
	now        func() time.Time
}

func NewCooldownPolicy(signalRepo repository.SignalRepository, cooldown time.Duration) *CooldownPolicy {
	return &CooldownPolicy{signalRepo: signalRepo, cooldown: cooldown, now: time.Now}
}

// State must be evaluated before the candidate signal is persisted.
func (p *CooldownPolicy) State(ctx context.Context, ticker string, signalType entity.SignalType, action entity.Action) (CooldownState, error) {
	last, err := p.signalRepo.FindLastTimestamp(ctx, ticker, signalType, action)
	if err != nil {
		return CooldownActive, err
	}
	return EvaluateCooldown(last, p.now(), p.cooldown), nil
}
