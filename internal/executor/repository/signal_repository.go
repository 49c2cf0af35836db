package repository

import (
	"context"
	"time"

	"golang-stock-signal/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SignalRepository defines the write side of the signal log.
type SignalRepository interface {
	// Upsert inserts the signal or, when (ticker, signal_type, strategy, bar_ts)
	// already exists, overwrites its assessment fields.
	Upsert(ctx context.Context, signal *entity.Signal) error
	// FindLastTimestamp returns the timestamp of the most recent signal with the
	// given (ticker, signal_type, action), or nil when there is none.
	FindLastTimestamp(ctx context.Context, ticker string, signalType entity.SignalType, action entity.Action) (*time.Time, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// NewSignalRepository creates a new instance of SignalRepository.
func NewSignalRepository(db *gorm.DB) SignalRepository {
	return &signalRepository{db: db}
}

type signalRepository struct {
	db *gorm.DB
}

func (r *signalRepository) Upsert(ctx context.Context, signal *entity.Signal) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "ticker"},
			{Name: "signal_type"},
			{Name: "strategy"},
			{Name: "bar_ts"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"action",
			"signal_value",
			"confidence",
			"strength",
			"params",
			"triggered_by",
			"message",
			"timestamp",
		}),
	}).Create(signal).Error
}

func (r *signalRepository) FindLastTimestamp(ctx context.Context, ticker string, signalType entity.SignalType, action entity.Action) (*time.Time, error) {
	var signals []entity.Signal
	err := r.db.WithContext(ctx).
		Select("timestamp").
		Where("ticker = ? AND signal_type = ? AND action = ?", ticker, signalType, action).
		Order("timestamp DESC").
		Limit(1).
		Find(&signals).Error
	if err != nil {
		return nil, err
	}
	if len(signals) == 0 {
		return nil, nil
	}
	return &signals[0].Timestamp, nil
}

func (r *signalRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tx := r.db.WithContext(ctx).Where("timestamp < ?", cutoff).Delete(&entity.Signal{})
	return tx.RowsAffected, tx.Error
}
