package repository

import (
	"context"
	"time"

	"golang-stock-signal/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PriceRepository defines the interface for interacting with price bars.
type PriceRepository interface {
	// LoadHistory returns the most recent limit bars of ticker in ascending
	// order. A limit of zero loads the full history.
	LoadHistory(ctx context.Context, ticker string, limit int) ([]entity.PriceBar, error)
	UpsertBars(ctx context.Context, bars []entity.PriceBar) (int64, error)
	DeleteOlderThan(ctx context.Context, ticker string, cutoff time.Time) (int64, error)
}

// NewPriceRepository creates a new instance of PriceRepository.
func NewPriceRepository(db *gorm.DB) PriceRepository {
	return &priceRepository{db: db}
}

type priceRepository struct {
	db *gorm.DB
}

func (r *priceRepository) LoadHistory(ctx context.Context, ticker string, limit int) ([]entity.PriceBar, error) {
	var bars []entity.PriceBar
	q := r.db.WithContext(ctx).Where("ticker = ?", ticker).Order("timestamp DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&bars).Error; err != nil {
		return nil, err
	}
	for i, j := 0, len(bars)-1; i < j; i, j = i+1, j-1 {
		bars[i], bars[j] = bars[j], bars[i]
	}
	return bars, nil
}

// UpsertBars writes bars, overwriting price and volume of an existing (ticker, timestamp).
func (r *priceRepository) UpsertBars(ctx context.Context, bars []entity.PriceBar) (int64, error) {
	if len(bars) == 0 {
		return 0, nil
	}
	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "ticker"}, {Name: "timestamp"}},
		DoUpdates: clause.AssignmentColumns([]string{"price", "volume"}),
	}).CreateInBatches(&bars, 500)
	return tx.RowsAffected, tx.Error
}

func (r *priceRepository) DeleteOlderThan(ctx context.Context, ticker string, cutoff time.Time) (int64, error) {
	tx := r.db.WithContext(ctx).Where("ticker = ? AND timestamp < ?", ticker, cutoff).Delete(&entity.PriceBar{})
	return tx.RowsAffected, tx.Error
}
