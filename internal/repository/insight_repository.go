package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/habitflow/coach-api/internal/domain"
	"gorm.io/gorm"
)

type InsightRepository interface {
	Create(ctx context.Context, insight *domain.Insight) error
	// ListActive returns unexpired insights, newest first.
	ListActive(ctx context.Context, userID uuid.UUID, now time.Time) ([]domain.Insight, error)
}

type insightRepository struct {
	db *gorm.DB
}

func NewInsightRepository(db *gorm.DB) InsightRepository {
	return &insightRepository{db: db}
}

func (r *insightRepository) Create(ctx context.Context, insight *domain.Insight) error {
	return r.db.WithContext(ctx).Create(insight).Error
}

func (r *insightRepository) ListActive(ctx context.Context, userID uuid.UUID, now time.Time) ([]domain.Insight, error) {
	var insights []domain.Insight
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND expires_at > ?", userID, now).
		Order("created_at DESC").
		Find(&insights).Error
	return insights, err
}
