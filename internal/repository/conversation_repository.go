package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/habitflow/coach-api/internal/domain"
	"gorm.io/gorm"
)

type ConversationRepository interface {
	Create(ctx context.Context, turn *domain.ConversationTurn) error
	// ListRecent returns up to limit turns, most recent first.
	ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]domain.ConversationTurn, error)
}

type conversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) Create(ctx context.Context, turn *domain.ConversationTurn) error {
	return r.db.WithContext(ctx).Create(turn).Error
}

func (r *conversationRepository) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]domain.ConversationTurn, error) {
	var turns []domain.ConversationTurn
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&turns).Error
	return turns, err
}
