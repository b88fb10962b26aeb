package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/habitflow/coach-api/internal/domain"
	"github.com/habitflow/coach-api/internal/repository"
)

type ConversationService interface {
	Create(ctx context.Context, userID uuid.UUID, req *domain.CreateConversationTurnRequest) (*domain.ConversationTurn, error)
	ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]domain.ConversationTurn, error)
}

type conversationService struct {
	repo     repository.ConversationRepository
	userRepo repository.UserRepository
}

func NewConversationService(repo repository.ConversationRepository, userRepo repository.UserRepository) ConversationService {
	return &conversationService{
		repo:     repo,
		userRepo: userRepo,
	}
}

func (s *conversationService) Create(ctx context.Context, userID uuid.UUID, req *domain.CreateConversationTurnRequest) (*domain.ConversationTurn, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	turn := &domain.ConversationTurn{
		UserID:    userID,
		Message:   req.Message,
		Sender:    req.Sender,
		Sentiment: req.Sentiment,
		CoachID:   req.CoachID,
	}

	if err := s.repo.Create(ctx, turn); err != nil {
		return nil, err
	}

	return turn, nil
}

func (s *conversationService) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]domain.ConversationTurn, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	if limit <= 0 {
		limit = DefaultConversationLimit
	}
	return s.repo.ListRecent(ctx, userID, limit)
}
