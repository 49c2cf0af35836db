package entity

import (
	"time"

	"gorm.io/datatypes"
)

type SignalType string

const (
	SignalTypeThreshold SignalType = "THRESHOLD"
	SignalTypeMACD      SignalType = "MACD"
	SignalTypeRSI       SignalType = "RSI"
	SignalTypeMACross   SignalType = "MA_CROSS"
	SignalTypeBollinger SignalType = "BOLLINGER"
	SignalTypeBreakout  SignalType = "BREAKOUT"
	SignalTypeSMAZ      SignalType = "SMA_Z"
)

// SignalTypes lists every known signal type in registry order.
var SignalTypes = []SignalType{
	SignalTypeThreshold,
	SignalTypeMACD,
	SignalTypeRSI,
	SignalTypeMACross,
	SignalTypeBollinger,
	SignalTypeBreakout,
	SignalTypeSMAZ,
}

// IsValid reports whether t is one of the known signal types.
func (t SignalType) IsValid() bool {
	for _, known := range SignalTypes {
		if t == known {
			return true
		}
	}
	return false
}

type Action string

const (
	ActionBuy     Action = "BUY"
	ActionSell    Action = "SELL"
	ActionNeutral Action = "NEUTRAL"
)

// IsDirectional is true for BUY and SELL.
func (a Action) IsDirectional() bool {
	return a == ActionBuy || a == ActionSell
}

type Strength string

const (
	StrengthHigh   Strength = "high"
	StrengthMedium Strength = "medium"
	StrengthLow    Strength = "low"
)

type TriggeredBy string

const (
	TriggeredByAuto   TriggeredBy = "auto"
	TriggeredByManual TriggeredBy = "manual"
)

// Signal is a persisted BUY/SELL/NEUTRAL assessment for one bar.
// (Ticker, SignalType, Strategy, BarTS) identifies a row; rewrites of the same
// key overwrite the assessment fields only.
type Signal struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Ticker      string         `gorm:"type:varchar(32);not null;uniqueIndex:idx_signals_identity,priority:1" json:"ticker"`
	SignalType  SignalType     `gorm:"type:varchar(32);not null;uniqueIndex:idx_signals_identity,priority:2" json:"signal_type"`
	Strategy    string         `gorm:"type:varchar(64);not null;default:'';uniqueIndex:idx_signals_identity,priority:3" json:"strategy"`
	Action      Action         `gorm:"type:varchar(10);not null" json:"action"`
	SignalValue *float64       `json:"signal_value"`
	Confidence  *float64       `json:"confidence"`
	Strength    Strength       `gorm:"type:varchar(10)" json:"strength"`
	Params      datatypes.JSON `gorm:"type:jsonb" json:"params" swaggertype:"object"`
	TriggeredBy TriggeredBy    `gorm:"type:varchar(10);not null" json:"triggered_by"`
	Message     string         `gorm:"type:text" json:"message"`
	Timestamp   time.Time      `gorm:"not null;index" json:"timestamp"`
	BarTS       time.Time      `gorm:"column:bar_ts;not null;uniqueIndex:idx_signals_identity,priority:4" json:"bar_ts"`
}

// TableName specifies the table name for the Signal model.
func (Signal) TableName() string {
	return "signals"
}
