package strategy

import (
	"fmt"
	"strconv"
	"strings"

	"golang-stock-signal/internal/entity"
	"golang-stock-signal/internal/executor/config"
	"golang-stock-signal/internal/executor/dto"
	"golang-stock-signal/internal/executor/indicator"
	"golang-stock-signal/pkg/utils"
)

// SignalStrategy reduces an indicator to a discrete action for the latest bar.
// Compute returns a nil payload when there is not enough history.
type SignalStrategy interface {
	GetType() entity.SignalType
	Compute(ticker string, series indicator.Series) (*dto.Payload, error)
}

// DefaultSignalTypes is the active set when no allow-list is configured.
var DefaultSignalTypes = []entity.SignalType{
	entity.SignalTypeThreshold,
	entity.SignalTypeMACD,
	entity.SignalTypeRSI,
	entity.SignalTypeMACross,
	entity.SignalTypeBollinger,
}

// NewRegistry builds the active strategies in registry order. An empty
// allow-list selects DefaultSignalTypes; otherwise any known type may be named.
func NewRegistry(cfg config.Signal) ([]SignalStrategy, error) {
	loc, err := utils.LoadLocation(cfg.MarketTimezone)
	if err != nil {
		return nil, err
	}

	all := []SignalStrategy{
		NewThresholdStrategy(ThresholdParams{Pct: cfg.ThresholdPct, Posture: Posture(cfg.ThresholdPosture), Location: loc}),
		NewMACDStrategy(DefaultMACDParams()),
		NewRSIStrategy(DefaultRSIParams()),
		NewMACrossStrategy(DefaultMACrossParams()),
		NewBollingerStrategy(DefaultBollingerParams()),
		NewBreakoutStrategy(DefaultBreakoutParams()),
		NewSMAZStrategy(DefaultSMAZParams()),
	}

	allowed := DefaultSignalTypes
	if len(cfg.IncludedSignalTypes) > 0 {
		allowed = make([]entity.SignalType, 0, len(cfg.IncludedSignalTypes))
		for _, t := range cfg.IncludedSignalTypes {
			t = entity.SignalType(strings.ToUpper(strings.TrimSpace(string(t))))
			if !t.IsValid() {
				return nil, fmt.Errorf("unknown signal type %q in included_signal_types", t)
			}
			allowed = append(allowed, t)
		}
	}

	return Filter(all, allowed), nil
}

// Filter keeps the strategies whose type is in allowed, preserving order.
func Filter(strategies []SignalStrategy, allowed []entity.SignalType) []SignalStrategy {
	set := make(map[entity.SignalType]struct{}, len(allowed))
	for _, t := range allowed {
		set[t] = struct{}{}
	}
	out := make([]SignalStrategy, 0, len(strategies))
	for _, s := range strategies {
		if _, ok := set[s.GetType()]; ok {
			out = append(out, s)
		}
	}
	return out
}

// formatFloat renders a parameter the way it appears in strategy ids: 2 -> "2.0", 2.5 -> "2.5".
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// value converts an indicator reading into a nullable payload value.
func value(v float64) *float64 {
	if !indicator.Defined(v) {
		return nil
	}
	return utils.ToPointer(v)
}

func newPayload(ticker string, signalType entity.SignalType, strategy string, action entity.Action, strength entity.Strength) *dto.Payload {
	return &dto.Payload{
		Ticker:     ticker,
		SignalType: signalType,
		Strategy:   strategy,
		Action:     action,
		Strength:   strength,
	}
}
