package entity

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// SignalRun records the summary of one run_for_ticker invocation.
type SignalRun struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	RunID       string         `gorm:"type:uuid;not null;index" json:"run_id"`
	Ticker      string         `gorm:"type:varchar(32);not null;index" json:"ticker"`
	TriggeredBy TriggeredBy    `gorm:"type:varchar(10);not null" json:"triggered_by"`
	Emitted     int            `gorm:"not null" json:"emitted"`
	LastActions datatypes.JSON `gorm:"type:jsonb" json:"last_actions" swaggertype:"object"`
	Errors      pq.StringArray `gorm:"type:text[]" json:"errors" swaggertype:"array,string"`
	StartedAt   time.Time      `gorm:"not null" json:"started_at"`
	CompletedAt time.Time      `gorm:"not null" json:"completed_at"`
}

// TableName specifies the table name for the SignalRun model.
func (SignalRun) TableName() string {
	return "signal_runs"
}
