package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/habitflow/coach-api/internal/domain"
	"github.com/habitflow/coach-api/pkg/pagination"
	"gorm.io/gorm"
)

type CheckInRepository interface {
	Create(ctx context.Context, checkIn *domain.CheckIn) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CheckIn, error)
	List(ctx context.Context, userID uuid.UUID, filter domain.CheckInFilter) ([]domain.CheckIn, error)
	// ListRecent returns up to limit check-ins, most recent first.
	ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]domain.CheckIn, error)
	CountSince(ctx context.Context, userID uuid.UUID, since time.Time) (int64, error)
	GetByClientRequestID(ctx context.Context, userID uuid.UUID, clientRequestID string) (*domain.CheckIn, error)
}

type checkInRepository struct {
	db *gorm.DB
}

func NewCheckInRepository(db *gorm.DB) CheckInRepository {
	return &checkInRepository{db: db}
}

func (r *checkInRepository) Create(ctx context.Context, checkIn *domain.CheckIn) error {
	return r.db.WithContext(ctx).Create(checkIn).Error
}

func (r *checkInRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CheckIn, error) {
	var checkIn domain.CheckIn
	err := r.db.WithContext(ctx).First(&checkIn, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &checkIn, nil
}

func (r *checkInRepository) List(ctx context.Context, userID uuid.UUID, filter domain.CheckInFilter) ([]domain.CheckIn, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")

	if filter.From != nil {
		query = query.Where("created_at >= ?", filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at <= ?", filter.To)
	}

	if filter.Cursor != "" {
		cursor, err := pagination.DecodeCursor(filter.Cursor)
		if err == nil && cursor != nil {
			// DESC order: records strictly older than the cursor position
			query = query.Where(
				"(created_at < ?) OR (created_at = ? AND id < ?)",
				cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
			)
		}
	}

	// Fetch one extra to determine if there are more results
	limit := pagination.NormalizeLimit(filter.Limit)
	query = query.Limit(limit + 1)

	var checkIns []domain.CheckIn
	if err := query.Find(&checkIns).Error; err != nil {
		return nil, err
	}

	return checkIns, nil
}

func (r *checkInRepository) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]domain.CheckIn, error) {
	var checkIns []domain.CheckIn
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&checkIns).Error
	return checkIns, err
}

func (r *checkInRepository) CountSince(ctx context.Context, userID uuid.UUID, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.CheckIn{}).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Count(&count).Error
	return count, err
}

func (r *checkInRepository) GetByClientRequestID(ctx context.Context, userID uuid.UUID, clientRequestID string) (*domain.CheckIn, error) {
	var checkIn domain.CheckIn
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND client_request_id = ?", userID, clientRequestID).
		First(&checkIn).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil // absence is not an error for idempotency checks
		}
		return nil, err
	}
	return &checkIn, nil
}
