package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceBar is one timestamped price observation for a ticker.
type PriceBar struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Ticker    string          `gorm:"type:varchar(32);not null;uniqueIndex:idx_prices_ticker_timestamp,priority:1" json:"ticker"`
	Price     decimal.Decimal `gorm:"type:numeric;not null" json:"price"`
	Volume    *int64          `json:"volume,omitempty"`
	Timestamp time.Time       `gorm:"not null;uniqueIndex:idx_prices_ticker_timestamp,priority:2" json:"timestamp"`
}

// TableName specifies the table name for the PriceBar model.
func (PriceBar) TableName() string {
	return "prices"
}
