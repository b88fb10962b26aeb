package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/habitflow/coach-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SemanticRepository interface {
	// Upsert writes an entry keyed by its caller-assigned ID.
	Upsert(ctx context.Context, entry *domain.SemanticEntry) error
	// ListByKind returns all entries of a kind; userID narrows to one
	// user's entries when non-nil.
	ListByKind(ctx context.Context, kind domain.SemanticKind, userID *uuid.UUID) ([]domain.SemanticEntry, error)
}

type semanticRepository struct {
	db *gorm.DB
}

func NewSemanticRepository(db *gorm.DB) SemanticRepository {
	return &semanticRepository{db: db}
}

func (r *semanticRepository) Upsert(ctx context.Context, entry *domain.SemanticEntry) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(entry).Error
}

func (r *semanticRepository) ListByKind(ctx context.Context, kind domain.SemanticKind, userID *uuid.UUID) ([]domain.SemanticEntry, error) {
	query := r.db.WithContext(ctx).Where("kind = ?", kind)
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}

	var entries []domain.SemanticEntry
	err := query.Find(&entries).Error
	return entries, err
}
