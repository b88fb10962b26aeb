package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/habitflow/coach-api/internal/domain"
	"github.com/habitflow/coach-api/internal/repository"
	"github.com/habitflow/coach-api/pkg/pagination"
)

type CheckInService interface {
	Create(ctx context.Context, userID uuid.UUID, req *domain.CreateCheckInRequest) (*domain.CheckIn, bool, error)
	List(ctx context.Context, userID uuid.UUID, filter domain.CheckInFilter) (*domain.CheckInListResponse, error)
}

type checkInService struct {
	repo     repository.CheckInRepository
	userRepo repository.UserRepository
}

func NewCheckInService(repo repository.CheckInRepository, userRepo repository.UserRepository) CheckInService {
	return &checkInService{
		repo:     repo,
		userRepo: userRepo,
	}
}

// Create records a new check-in.
// Returns (checkIn, isExisting, error) - isExisting is true if returning an
// existing check-in due to idempotency
func (s *checkInService) Create(ctx context.Context, userID uuid.UUID, req *domain.CreateCheckInRequest) (*domain.CheckIn, bool, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	if !exists {
		return nil, false, domain.ErrNotFound
	}

	// Check for idempotency (duplicate client_request_id)
	if req.ClientRequestID != nil && *req.ClientRequestID != "" {
		existing, err := s.repo.GetByClientRequestID(ctx, userID, *req.ClientRequestID)
		if err != nil {
			return nil, false, err
		}
		if existing != nil {
			return existing, true, nil
		}
	}

	checkIn := &domain.CheckIn{
		UserID:          userID,
		Mood:            req.Mood,
		Energy:          req.Energy,
		Stress:          req.Stress,
		Wins:            req.Wins,
		Challenges:      req.Challenges,
		Priorities:      req.Priorities,
		ClientRequestID: req.ClientRequestID,
	}

	if err := s.repo.Create(ctx, checkIn); err != nil {
		return nil, false, err
	}

	return checkIn, false, nil
}

func (s *checkInService) List(ctx context.Context, userID uuid.UUID, filter domain.CheckInFilter) (*domain.CheckInListResponse, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	checkIns, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	limit := pagination.NormalizeLimit(filter.Limit)
	hasMore := len(checkIns) > limit

	// Trim to actual limit
	if hasMore {
		checkIns = checkIns[:limit]
	}

	response := &domain.CheckInListResponse{
		Data: make([]domain.CheckInResponse, len(checkIns)),
		Pagination: domain.PaginationResponse{
			HasMore: hasMore,
		},
	}

	for i, checkIn := range checkIns {
		response.Data[i] = checkIn.ToResponse()
	}

	// Set next cursor if there are more results
	if hasMore && len(checkIns) > 0 {
		last := checkIns[len(checkIns)-1]
		cursor := &pagination.Cursor{
			ID:        last.ID,
			CreatedAt: last.CreatedAt,
		}
		response.Pagination.NextCursor = cursor.Encode()
	}

	return response, nil
}
