package repository

import (
	"context"

	"golang-stock-signal/internal/entity"

	"gorm.io/gorm"
)

// SignalRunRepository reads the orchestrator run history.
type SignalRunRepository interface {
	FindRecent(ctx context.Context, ticker string, limit int) ([]entity.SignalRun, error)
	FindByRunID(ctx context.Context, runID string) (*entity.SignalRun, error)
}

// NewSignalRunRepository creates a new GORM-based signal run repository.
func NewSignalRunRepository(db *gorm.DB) SignalRunRepository {
	return &signalRunRepository{db: db}
}

type signalRunRepository struct {
	db *gorm.DB
}

// FindRecent returns the latest runs, newest first. An empty ticker matches all.
func (r *signalRunRepository) FindRecent(ctx context.Context, ticker string, limit int) ([]entity.SignalRun, error) {
	var runs []entity.SignalRun
	query := r.db.WithContext(ctx).Order("started_at desc").Order("id desc")
	if ticker != "" {
		query = query.Where("ticker = ?", ticker)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

func (r *signalRunRepository) FindByRunID(ctx context.Context, runID string) (*entity.SignalRun, error) {
	var run entity.SignalRun
	if err := r.db.WithContext(ctx).Where("run_id = ?", runID).First(&run).Error; err != nil {
		return nil, err
	}
	return &run, nil
}
