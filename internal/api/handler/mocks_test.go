package handler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/habitflow/coach-api/internal/domain"
)

// MockCheckInService is a mock implementation of CheckInService
type MockCheckInService struct {
	createFunc func(ctx context.Context, userID uuid.UUID, req *domain.CreateCheckInRequest) (*domain.CheckIn, bool, error)
	listFunc   func(ctx context.Context, userID uuid.UUID, filter domain.CheckInFilter) (*domain.CheckInListResponse, error)
}

func (m *MockCheckInService) Create(ctx context.Context, userID uuid.UUID, req *domain.CreateCheckInRequest) (*domain.CheckIn, bool, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, userID, req)
	}
	return &domain.CheckIn{
		ID:        uuid.New(),
		UserID:    userID,
		Mood:      req.Mood,
		Energy:    req.Energy,
		Stress:    req.Stress,
		CreatedAt: time.Now(),
	}, false, nil
}

func (m *MockCheckInService) List(ctx context.Context, userID uuid.UUID, filter domain.CheckInFilter) (*domain.CheckInListResponse, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, userID, filter)
	}
	return &domain.CheckInListResponse{
		Data:       []domain.CheckInResponse{},
		Pagination: domain.PaginationResponse{HasMore: false},
	}, nil
}

// MockGoalService is a mock implementation of GoalService
type MockGoalService struct {
	createFunc         func(ctx context.Context, userID uuid.UUID, req *domain.CreateGoalRequest) (*domain.Goal, error)
	listFunc           func(ctx context.Context, userID uuid.UUID) ([]domain.Goal, error)
	updateProgressFunc func(ctx context.Context, userID uuid.UUID, goalID uuid.UUID, req *domain.UpdateGoalProgressRequest) (*domain.Goal, error)
}

func (m *MockGoalService) Create(ctx context.Context, userID uuid.UUID, req *domain.CreateGoalRequest) (*domain.Goal, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, userID, req)
	}
	return &domain.Goal{
		ID:       uuid.New(),
		UserID:   userID,
		Title:    req.Title,
		Category: domain.DefaultGoalCategory,
		Status:   domain.GoalStatusActive,
	}, nil
}

func (m *MockGoalService) List(ctx context.Context, userID uuid.UUID) ([]domain.Goal, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, userID)
	}
	return []domain.Goal{}, nil
}

func (m *MockGoalService) UpdateProgress(ctx context.Context, userID uuid.UUID, goalID uuid.UUID, req *domain.UpdateGoalProgressRequest) (*domain.Goal, error) {
	if m.updateProgressFunc != nil {
		return m.updateProgressFunc(ctx, userID, goalID, req)
	}
	return &domain.Goal{
		ID:       goalID,
		UserID:   userID,
		Title:    "goal",
		Category: domain.DefaultGoalCategory,
		Progress: req.Progress,
		Status:   domain.GoalStatusActive,
	}, nil
}

// MockConversationService is a mock implementation of ConversationService
type MockConversationService struct {
	createFunc     func(ctx context.Context, userID uuid.UUID, req *domain.CreateConversationTurnRequest) (*domain.ConversationTurn, error)
	listRecentFunc func(ctx context.Context, userID uuid.UUID, limit int) ([]domain.ConversationTurn, error)
}

func (m *MockConversationService) Create(ctx context.Context, userID uuid.UUID, req *domain.CreateConversationTurnRequest) (*domain.ConversationTurn, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, userID, req)
	}
	return &domain.ConversationTurn{
		ID:        uuid.New(),
		UserID:    userID,
		Message:   req.Message,
		Sender:    req.Sender,
		Sentiment: req.Sentiment,
		CreatedAt: time.Now(),
	}, nil
}

func (m *MockConversationService) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]domain.ConversationTurn, error) {
	if m.listRecentFunc != nil {
		return m.listRecentFunc(ctx, userID, limit)
	}
	return []domain.ConversationTurn{}, nil
}

// MockAnalysisService is a mock implementation of AnalysisService
type MockAnalysisService struct {
	analyzeFunc  func(ctx context.Context, userID uuid.UUID) (*domain.AnalysisResult, error)
	coachingFunc func(ctx context.Context, userID uuid.UUID) (*domain.CoachingInsights, error)
}

func (m *MockAnalysisService) AnalyzeHabitPatterns(ctx context.Context, userID uuid.UUID) (*domain.AnalysisResult, error) {
	if m.analyzeFunc != nil {
		return m.analyzeFunc(ctx, userID)
	}
	return &domain.AnalysisResult{
		Insights:     []domain.InsightResponse{},
		Confidence:   0.3,
		LastAnalyzed: time.Now(),
	}, nil
}

func (m *MockAnalysisService) GenerateCoachingInsights(ctx context.Context, userID uuid.UUID) (*domain.CoachingInsights, error) {
	if m.coachingFunc != nil {
		return m.coachingFunc(ctx, userID)
	}
	return &domain.CoachingInsights{
		Strengths:             []string{},
		Opportunities:         []string{},
		PersonalizedTips:      []string{},
		MotivationalFactors:   []string{},
		BehaviorOptimizations: []string{},
	}, nil
}

// MockPredictionService is a mock implementation of PredictionService
type MockPredictionService struct {
	interventionFunc func(ctx context.Context, userID uuid.UUID) (*domain.InterventionPrediction, error)
	goalSuccessFunc  func(ctx context.Context, userID uuid.UUID, req *domain.GoalPredictionRequest) (*domain.GoalPrediction, error)
}

func (m *MockPredictionService) PredictIntervention(ctx context.Context, userID uuid.UUID) (*domain.InterventionPrediction, error) {
	if m.interventionFunc != nil {
		return m.interventionFunc(ctx, userID)
	}
	return &domain.InterventionPrediction{
		RiskScore:        0.1,
		Urgency:          domain.UrgencyLow,
		InterventionType: domain.InterventionMotivation,
		Signals:          []string{},
		Recommendations:  []string{},
	}, nil
}

func (m *MockPredictionService) PredictGoalSuccess(ctx context.Context, userID uuid.UUID, req *domain.GoalPredictionRequest) (*domain.GoalPrediction, error) {
	if m.goalSuccessFunc != nil {
		return m.goalSuccessFunc(ctx, userID, req)
	}
	return &domain.GoalPrediction{
		SuccessProbability: 0.7,
		RiskFactors:        []string{},
		Recommendations:    []string{},
		ConfidenceScore:    0.4,
		TimeEstimateDays:   30,
		DifficultyScore:    0.5,
	}, nil
}

// MockInsightService is a mock implementation of InsightService
type MockInsightService struct {
	generateFunc   func(ctx context.Context, userID uuid.UUID, profile domain.PatternProfile, records []domain.ActivityRecord) ([]domain.Insight, error)
	listActiveFunc func(ctx context.Context, userID uuid.UUID) ([]domain.Insight, error)
}

func (m *MockInsightService) Generate(ctx context.Context, userID uuid.UUID, profile domain.PatternProfile, records []domain.ActivityRecord) ([]domain.Insight, error) {
	if m.generateFunc != nil {
		return m.generateFunc(ctx, userID, profile, records)
	}
	return []domain.Insight{}, nil
}

func (m *MockInsightService) ListActive(ctx context.Context, userID uuid.UUID) ([]domain.Insight, error) {
	if m.listActiveFunc != nil {
		return m.listActiveFunc(ctx, userID)
	}
	return []domain.Insight{}, nil
}

// MockSimilarityService is a mock implementation of SimilarityService
type MockSimilarityService struct {
	storeFunc  func(ctx context.Context, entry *domain.SemanticEntry) error
	searchFunc func(ctx context.Context, kind domain.SemanticKind, userID *uuid.UUID, query string, threshold float64, limit int) ([]domain.SemanticMatch, error)
}

func (m *MockSimilarityService) Store(ctx context.Context, entry *domain.SemanticEntry) error {
	if m.storeFunc != nil {
		return m.storeFunc(ctx, entry)
	}
	return nil
}

func (m *MockSimilarityService) Search(ctx context.Context, kind domain.SemanticKind, userID *uuid.UUID, query string, threshold float64, limit int) ([]domain.SemanticMatch, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, kind, userID, query, threshold, limit)
	}
	return []domain.SemanticMatch{}, nil
}
