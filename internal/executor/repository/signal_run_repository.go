package repository

import (
	"context"

	"golang-stock-signal/internal/entity"

	"gorm.io/gorm"
)

// SignalRunRepository records orchestrator run summaries.
type SignalRunRepository interface {
	Create(ctx context.Context, run *entity.SignalRun) error
}

func NewSignalRunRepository(db *gorm.DB) SignalRunRepository {
	return &signalRunRepository{db: db}
}

type signalRunRepository struct {
	db *gorm.DB
}

func (r *signalRunRepository) Create(ctx context.Context, run *entity.SignalRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}
