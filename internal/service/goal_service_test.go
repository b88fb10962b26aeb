package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/habitflow/coach-api/internal/domain"
	"github.com/habitflow/coach-api/internal/embedding"
)

func newTestGoalService(goalRepo *MockGoalRepository, userRepo *MockUserRepository, semanticRepo *MockSemanticRepository) GoalService {
	similarity := NewSimilarityService(semanticRepo, embedding.New("", ""))
	return NewGoalService(goalRepo, userRepo, similarity)
}

func TestGoalService_Create(t *testing.T) {
	userID := uuid.New()
	userRepo := NewMockUserRepository()
	userRepo.users[userID] = &domain.User{ID: userID, DisplayName: "Jo", Timezone: "UTC"}

	goalRepo := NewMockGoalRepository()
	semanticRepo := NewMockSemanticRepository()
	svc := newTestGoalService(goalRepo, userRepo, semanticRepo)

	goal, err := svc.Create(context.Background(), userID, &domain.CreateGoalRequest{
		Title:       "Meditate daily",
		Description: "Ten minutes after waking up",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if goal.Category != domain.DefaultGoalCategory {
		t.Errorf("Category = %q, want default %q", goal.Category, domain.DefaultGoalCategory)
	}
	if goal.Status != domain.GoalStatusActive {
		t.Errorf("Status = %v, want active", goal.Status)
	}
	if goal.Progress != 0 {
		t.Errorf("Progress = %v, want 0", goal.Progress)
	}

	// Creation indexes the goal for similar-goal lookups
	entry, ok := semanticRepo.entries["goal-"+goal.ID.String()]
	if !ok {
		t.Fatal("goal not indexed in the behavior namespace")
	}
	if entry.Kind != domain.SemanticBehavior {
		t.Errorf("entry kind = %v, want behavior", entry.Kind)
	}
	if done, _ := entry.Metadata["completed"].(bool); done {
		t.Error("new goal indexed as completed")
	}
}

func TestGoalService_CreateUnknownUser(t *testing.T) {
	svc := newTestGoalService(NewMockGoalRepository(), NewMockUserRepository(), NewMockSemanticRepository())

	_, err := svc.Create(context.Background(), uuid.New(), &domain.CreateGoalRequest{Title: "X"})
	if err != domain.ErrNotFound {
		t.Errorf("Create() error = %v, want ErrNotFound", err)
	}
}

func TestGoalService_CreateSurvivesIndexFailure(t *testing.T) {
	userID := uuid.New()
	userRepo := NewMockUserRepository()
	userRepo.users[userID] = &domain.User{ID: userID, DisplayName: "Jo", Timezone: "UTC"}

	semanticRepo := NewMockSemanticRepository()
	semanticRepo.SetError(context.DeadlineExceeded)
	svc := newTestGoalService(NewMockGoalRepository(), userRepo, semanticRepo)

	goal, err := svc.Create(context.Background(), userID, &domain.CreateGoalRequest{Title: "Read"})
	if err != nil {
		t.Fatalf("Create() error = %v, index failures must not fail creation", err)
	}
	if goal == nil {
		t.Fatal("Create() returned nil goal")
	}
}

func TestGoalService_UpdateProgress(t *testing.T) {
	userID := uuid.New()
	otherUser := uuid.New()

	userRepo := NewMockUserRepository()
	userRepo.users[userID] = &domain.User{ID: userID, DisplayName: "Jo", Timezone: "UTC"}
	userRepo.users[otherUser] = &domain.User{ID: otherUser, DisplayName: "Sam", Timezone: "UTC"}

	goalRepo := NewMockGoalRepository()
	semanticRepo := NewMockSemanticRepository()
	svc := newTestGoalService(goalRepo, userRepo, semanticRepo)

	goal := &domain.Goal{
		ID:       uuid.New(),
		UserID:   userID,
		Title:    "Run 5k",
		Category: domain.DefaultGoalCategory,
		Progress: 40,
		Status:   domain.GoalStatusActive,
	}
	goalRepo.goals[goal.ID] = goal

	// Partial update stays active
	updated, err := svc.UpdateProgress(context.Background(), userID, goal.ID, &domain.UpdateGoalProgressRequest{Progress: 60})
	if err != nil {
		t.Fatalf("UpdateProgress() error = %v", err)
	}
	if updated.Progress != 60 {
		t.Errorf("Progress = %v, want 60", updated.Progress)
	}
	if updated.Status != domain.GoalStatusActive {
		t.Errorf("Status = %v, want active", updated.Status)
	}

	// Full progress completes the goal and re-indexes the outcome
	updated, err = svc.UpdateProgress(context.Background(), userID, goal.ID, &domain.UpdateGoalProgressRequest{Progress: 100})
	if err != nil {
		t.Fatalf("UpdateProgress() error = %v", err)
	}
	if updated.Status != domain.GoalStatusCompleted {
		t.Errorf("Status = %v, want completed", updated.Status)
	}
	entry, ok := semanticRepo.entries["goal-"+goal.ID.String()]
	if !ok {
		t.Fatal("completed goal not indexed")
	}
	if done, _ := entry.Metadata["completed"].(bool); !done {
		t.Error("completed goal indexed as incomplete")
	}

	// Another user cannot touch the goal
	_, err = svc.UpdateProgress(context.Background(), otherUser, goal.ID, &domain.UpdateGoalProgressRequest{Progress: 10})
	if err != domain.ErrNotFound {
		t.Errorf("UpdateProgress() by non-owner error = %v, want ErrNotFound", err)
	}
}

func TestGoalService_List(t *testing.T) {
	userID := uuid.New()
	userRepo := NewMockUserRepository()
	userRepo.users[userID] = &domain.User{ID: userID, DisplayName: "Jo", Timezone: "UTC"}

	goalRepo := NewMockGoalRepository()
	for i := 0; i < 3; i++ {
		g := &domain.Goal{ID: uuid.New(), UserID: userID, Title: "g", Status: domain.GoalStatusActive}
		goalRepo.goals[g.ID] = g
	}
	// Another user's goal is invisible
	foreign := &domain.Goal{ID: uuid.New(), UserID: uuid.New(), Title: "other", Status: domain.GoalStatusActive}
	goalRepo.goals[foreign.ID] = foreign

	svc := newTestGoalService(goalRepo, userRepo, NewMockSemanticRepository())

	goals, err := svc.List(context.Background(), userID)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(goals) != 3 {
		t.Errorf("List() returned %d goals, want 3", len(goals))
	}
}
