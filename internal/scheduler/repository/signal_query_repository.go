package repository

import (
	"context"

	"golang-stock-signal/internal/entity"

	"gorm.io/gorm"
)

// SignalTypeCount is one row of the per type signal summary.
type SignalTypeCount struct {
	SignalType entity.SignalType
	Count      int64
}

// SignalQueryRepository serves the read side of the signal log.
type SignalQueryRepository interface {
	FindRecent(ctx context.Context, limit int) ([]entity.Signal, error)
	FindByTicker(ctx context.Context, ticker string, limit int) ([]entity.Signal, error)
	CountByType(ctx context.Context) ([]SignalTypeCount, error)
}

func NewSignalQueryRepository(db *gorm.DB) SignalQueryRepository {
	return &signalQueryRepository{db: db}
}

type signalQueryRepository struct {
	db *gorm.DB
}

func (r *signalQueryRepository) FindRecent(ctx context.Context, limit int) ([]entity.Signal, error) {
	var signals []entity.Signal
	if err := r.db.WithContext(ctx).Order("timestamp desc").Order("id desc").Limit(limit).Find(&signals).Error; err != nil {
		return nil, err
	}
	return signals, nil
}

func (r *signalQueryRepository) FindByTicker(ctx context.Context, ticker string, limit int) ([]entity.Signal, error) {
	var signals []entity.Signal
	err := r.db.WithContext(ctx).
		Where("ticker = ?", ticker).
		Order("timestamp desc").
		Order("id desc").
		Limit(limit).
		Find(&signals).Error
	if err != nil {
		return nil, err
	}
	return signals, nil
}

func (r *signalQueryRepository) CountByType(ctx context.Context) ([]SignalTypeCount, error) {
	var counts []SignalTypeCount
	err := r.db.WithContext(ctx).
		Model(&entity.Signal{}).
		Select("signal_type, COUNT(*) AS count").
		Group("signal_type").
		Order("signal_type").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}
