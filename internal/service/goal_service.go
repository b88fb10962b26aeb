package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/habitflow/coach-api/internal/domain"
	"github.com/habitflow/coach-api/internal/repository"
)

type GoalService interface {
	Create(ctx context.Context, userID uuid.UUID, req *domain.CreateGoalRequest) (*domain.Goal, error)
	List(ctx context.Context, userID uuid.UUID) ([]domain.Goal, error)
	UpdateProgress(ctx context.Context, userID uuid.UUID, goalID uuid.UUID, req *domain.UpdateGoalProgressRequest) (*domain.Goal, error)
}

type goalService struct {
	repo       repository.GoalRepository
	userRepo   repository.UserRepository
	similarity SimilarityService
}

func NewGoalService(repo repository.GoalRepository, userRepo repository.UserRepository, similarity SimilarityService) GoalService {
	return &goalService{
		repo:       repo,
		userRepo:   userRepo,
		similarity: similarity,
	}
}

func (s *goalService) Create(ctx context.Context, userID uuid.UUID, req *domain.CreateGoalRequest) (*domain.Goal, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	category := req.Category
	if category == "" {
		category = domain.DefaultGoalCategory
	}

	goal := &domain.Goal{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Category:    category,
		Progress:    0,
		Status:      domain.GoalStatusActive,
	}

	if err := s.repo.Create(ctx, goal); err != nil {
		return nil, err
	}

	// Indexing feeds the similar-goal lookup used by success predictions.
	// A failed index never fails the create.
	if err := s.indexBehavior(ctx, goal); err != nil {
		log.Printf("goal behavior indexing failed: %v", err)
	}

	return goal, nil
}

func (s *goalService) List(ctx context.Context, userID uuid.UUID) ([]domain.Goal, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	return s.repo.ListByUser(ctx, userID)
}

func (s *goalService) UpdateProgress(ctx context.Context, userID uuid.UUID, goalID uuid.UUID, req *domain.UpdateGoalProgressRequest) (*domain.Goal, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	goal, err := s.repo.GetByID(ctx, goalID)
	if err != nil {
		return nil, err
	}

	// Verify ownership
	if goal.UserID != userID {
		return nil, domain.ErrNotFound
	}

	goal.Progress = req.Progress
	if goal.Progress >= 100 {
		goal.Status = domain.GoalStatusCompleted
	}

	if err := s.repo.Update(ctx, goal); err != nil {
		return nil, err
	}

	if err := s.indexBehavior(ctx, goal); err != nil {
		log.Printf("goal behavior indexing failed: %v", err)
	}

	return goal, nil
}

// indexBehavior upserts the goal into the semantic behavior index so
// future predictions can find similar past goals.
func (s *goalService) indexBehavior(ctx context.Context, goal *domain.Goal) error {
	text := goal.Title
	if goal.Description != "" {
		text += ". " + goal.Description
	}
	entry := &domain.SemanticEntry{
		ID:     "goal-" + goal.ID.String(),
		Kind:   domain.SemanticBehavior,
		UserID: &goal.UserID,
		Text:   text,
		Metadata: domain.JSONMap{
			"category":  goal.Category,
			"completed": goal.Completed(),
			"progress":  goal.Progress,
		},
	}
	if err := s.similarity.Store(ctx, entry); err != nil {
		return fmt.Errorf("index goal %s: %w", goal.ID, err)
	}
	return nil
}
