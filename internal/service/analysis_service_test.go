package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/habitflow/coach-api/internal/domain"
	"github.com/habitflow/coach-api/internal/embedding"
)

type analysisFixture struct {
	userRepo         *MockUserRepository
	checkInRepo      *MockCheckInRepository
	goalRepo         *MockGoalRepository
	conversationRepo *MockConversationRepository
	insightRepo      *MockInsightRepository
	notifier         *MockNotifier
	svc              *analysisService
}

func newAnalysisFixture() *analysisFixture {
	f := &analysisFixture{
		userRepo:         NewMockUserRepository(),
		checkInRepo:      NewMockCheckInRepository(),
		goalRepo:         NewMockGoalRepository(),
		conversationRepo: NewMockConversationRepository(),
		insightRepo:      NewMockInsightRepository(),
		notifier:         NewMockNotifier(),
	}

	similarity := NewSimilarityService(NewMockSemanticRepository(), embedding.New("", ""))
	predictions := &predictionService{
		checkInRepo:      f.checkInRepo,
		goalRepo:         f.goalRepo,
		conversationRepo: f.conversationRepo,
		userRepo:         f.userRepo,
		similarity:       similarity,
		notifier:         f.notifier,
		weights:          DefaultWeights(),
		now:              fixedNow,
	}
	insights := &insightService{
		insightRepo: f.insightRepo,
		userRepo:    f.userRepo,
		similarity:  similarity,
		now:         fixedNow,
	}

	f.svc = &analysisService{
		userRepo:         f.userRepo,
		checkInRepo:      f.checkInRepo,
		goalRepo:         f.goalRepo,
		conversationRepo: f.conversationRepo,
		patterns:         &patternService{now: fixedNow},
		predictions:      predictions,
		insights:         insights,
		now:              fixedNow,
	}
	return f
}

func (f *analysisFixture) addUser() uuid.UUID {
	userID := uuid.New()
	f.userRepo.users[userID] = &domain.User{ID: userID, DisplayName: "Jo", Timezone: "UTC"}
	return userID
}

func TestAnalyzeHabitPatterns_EmptyUser(t *testing.T) {
	f := newAnalysisFixture()
	userID := f.addUser()

	result, err := f.svc.AnalyzeHabitPatterns(context.Background(), userID)
	if err != nil {
		t.Fatalf("AnalyzeHabitPatterns() error = %v", err)
	}

	if result.Confidence != BaseAnalysisConfidence {
		t.Errorf("Confidence = %v, want %v with no data", result.Confidence, BaseAnalysisConfidence)
	}
	if len(result.Insights) != 0 {
		t.Errorf("Insights = %v, want empty", result.Insights)
	}
	if result.Patterns.RecordCount != 0 {
		t.Errorf("RecordCount = %d, want 0", result.Patterns.RecordCount)
	}
	// Risk assessment still runs; a user with no check-ins is at risk
	if result.Predictions.Intervention.RiskScore == 0 {
		t.Error("intervention risk should be nonzero for a user with no activity")
	}
	if result.LastAnalyzed != fixedNow().UTC() {
		t.Errorf("LastAnalyzed = %v, want fixed clock", result.LastAnalyzed)
	}
}

func TestAnalyzeHabitPatterns_UnknownUser(t *testing.T) {
	f := newAnalysisFixture()

	_, err := f.svc.AnalyzeHabitPatterns(context.Background(), uuid.New())
	if err != domain.ErrNotFound {
		t.Errorf("AnalyzeHabitPatterns() error = %v, want ErrNotFound", err)
	}
}

func TestAnalyzeHabitPatterns_ConfidenceScalesWithData(t *testing.T) {
	f := newAnalysisFixture()
	userID := f.addUser()
	now := fixedNow()

	for i := 0; i < 20; i++ {
		c := checkInAt(userID, now.Add(-time.Duration(i)*time.Hour), 3)
		f.checkInRepo.checkIns[c.ID] = &c
	}

	result, err := f.svc.AnalyzeHabitPatterns(context.Background(), userID)
	if err != nil {
		t.Fatalf("AnalyzeHabitPatterns() error = %v", err)
	}

	if result.Confidence <= BaseAnalysisConfidence {
		t.Errorf("Confidence = %v, want above base with 20 records", result.Confidence)
	}
	if result.Confidence > MaxAnalysisConfidence {
		t.Errorf("Confidence = %v, want at most %v", result.Confidence, MaxAnalysisConfidence)
	}
	if result.Patterns.RecordCount != 20 {
		t.Errorf("RecordCount = %d, want 20", result.Patterns.RecordCount)
	}
}

func TestAnalyzeHabitPatterns_RepoFailureDegrades(t *testing.T) {
	f := newAnalysisFixture()
	userID := f.addUser()
	f.conversationRepo.SetError(context.DeadlineExceeded)

	result, err := f.svc.AnalyzeHabitPatterns(context.Background(), userID)
	if err != nil {
		t.Fatalf("AnalyzeHabitPatterns() error = %v, fetch failures must degrade", err)
	}
	if result == nil {
		t.Fatal("AnalyzeHabitPatterns() returned nil result")
	}
}

func TestAnalysisConfidence(t *testing.T) {
	tests := []struct {
		records int
		want    float64
	}{
		{0, 0.3},
		{100, 0.9},
		{500, 0.9},
	}
	for _, tt := range tests {
		if got := analysisConfidence(tt.records); got != tt.want {
			t.Errorf("analysisConfidence(%d) = %v, want %v", tt.records, got, tt.want)
		}
	}
}

func TestGenerateCoachingInsights_ActiveUser(t *testing.T) {
	f := newAnalysisFixture()
	userID := f.addUser()
	now := fixedNow()

	for i := 0; i < 5; i++ {
		c := checkInAt(userID, now.AddDate(0, 0, -i), 4)
		f.checkInRepo.checkIns[c.ID] = &c
	}
	stalled := &domain.Goal{ID: uuid.New(), UserID: userID, Title: "Learn piano", Progress: 5, CreatedAt: now.AddDate(0, 0, -20)}
	f.goalRepo.goals[stalled.ID] = stalled

	result, err := f.svc.GenerateCoachingInsights(context.Background(), userID)
	if err != nil {
		t.Fatalf("GenerateCoachingInsights() error = %v", err)
	}

	// Five consecutive active days
	foundStreak := false
	for _, s := range result.Strengths {
		if strings.Contains(s, "5-day streak") {
			foundStreak = true
		}
	}
	if !foundStreak {
		t.Errorf("Strengths = %v, want the streak called out", result.Strengths)
	}

	foundStalled := false
	for _, o := range result.Opportunities {
		if strings.Contains(o, "Learn piano") {
			foundStalled = true
		}
	}
	if !foundStalled {
		t.Errorf("Opportunities = %v, want the stalled goal called out", result.Opportunities)
	}

	if len(result.PersonalizedTips) == 0 {
		t.Error("PersonalizedTips empty for an active user")
	}
}

func TestGenerateCoachingInsights_EmptyUser(t *testing.T) {
	f := newAnalysisFixture()
	userID := f.addUser()

	result, err := f.svc.GenerateCoachingInsights(context.Background(), userID)
	if err != nil {
		t.Fatalf("GenerateCoachingInsights() error = %v", err)
	}

	// All five lists present and empty rather than nil
	if result.Strengths == nil || result.Opportunities == nil || result.PersonalizedTips == nil ||
		result.MotivationalFactors == nil || result.BehaviorOptimizations == nil {
		t.Error("coaching insight lists should be empty, not nil")
	}
	if len(result.PersonalizedTips) != 0 {
		t.Errorf("PersonalizedTips = %v, want empty with no activity", result.PersonalizedTips)
	}
}
