package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/habitflow/coach-api/internal/domain"
	"github.com/habitflow/coach-api/internal/repository"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	// BaseAnalysisConfidence is the documented default with no data.
	BaseAnalysisConfidence = 0.3
	// MaxAnalysisConfidence caps the overall analysis confidence.
	MaxAnalysisConfidence = 0.9
	// FullConfidenceRecordCount is the batch size at which confidence
	// reaches its cap.
	FullConfidenceRecordCount = 100
)

// AnalysisService runs the full behavioral analysis pipeline over a
// request-scoped activity snapshot.
type AnalysisService interface {
	// AnalyzeHabitPatterns fetches the user's recent activity, derives
	// patterns and predictions, and generates insights. The result is
	// always structurally valid; missing data lowers confidence instead
	// of producing errors.
	AnalyzeHabitPatterns(ctx context.Context, userID uuid.UUID) (*domain.AnalysisResult, error)
	// GenerateCoachingInsights produces the qualitative coaching summary.
	GenerateCoachingInsights(ctx context.Context, userID uuid.UUID) (*domain.CoachingInsights, error)
}

type analysisService struct {
	userRepo         repository.UserRepository
	checkInRepo      repository.CheckInRepository
	goalRepo         repository.GoalRepository
	conversationRepo repository.ConversationRepository
	patterns         PatternService
	predictions      PredictionService
	insights         InsightService
	now              func() time.Time
}

// NewAnalysisService creates a new AnalysisService.
func NewAnalysisService(
	userRepo repository.UserRepository,
	checkInRepo repository.CheckInRepository,
	goalRepo repository.GoalRepository,
	conversationRepo repository.ConversationRepository,
	patterns PatternService,
	predictions PredictionService,
	insights InsightService,
) AnalysisService {
	return &analysisService{
		userRepo:         userRepo,
		checkInRepo:      checkInRepo,
		goalRepo:         goalRepo,
		conversationRepo: conversationRepo,
		patterns:         patterns,
		predictions:      predictions,
		insights:         insights,
		now:              time.Now,
	}
}

func (s *analysisService) AnalyzeHabitPatterns(ctx context.Context, userID uuid.UUID) (*domain.AnalysisResult, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	tracer := otel.Tracer("habit-coach-api/analysis")
	ctx, span := tracer.Start(ctx, "AnalysisService.AnalyzeHabitPatterns",
		trace.WithAttributes(attribute.String("user.id", userID.String())),
	)
	defer span.End()

	checkIns, goals, turns := s.fetchSnapshot(ctx, userID)
	records := domain.JoinActivity(checkIns, goals, turns)
	span.SetAttributes(attribute.Int("activity.record_count", len(records)))

	profile := s.patterns.Extract(records)

	intervention, err := s.predictions.PredictIntervention(ctx, userID)
	if err != nil {
		return nil, err
	}

	generated, err := s.insights.Generate(ctx, userID, profile, records)
	if err != nil {
		return nil, err
	}
	insightResponses := make([]domain.InsightResponse, 0, len(generated))
	for i := range generated {
		insightResponses = append(insightResponses, generated[i].ToResponse())
	}

	result := &domain.AnalysisResult{
		Patterns:     profile,
		Predictions:  domain.AnalysisPredictions{Intervention: *intervention},
		Insights:     insightResponses,
		Confidence:   analysisConfidence(len(records)),
		LastAnalyzed: s.now().UTC(),
	}
	span.SetAttributes(attribute.Float64("analysis.confidence", result.Confidence))

	return result, nil
}

// fetchSnapshot issues the three activity fetches concurrently and
// joins them. A failed fetch degrades to an empty slice; the analysis
// proceeds on whatever is reachable.
func (s *analysisService) fetchSnapshot(ctx context.Context, userID uuid.UUID) ([]domain.CheckIn, []domain.Goal, []domain.ConversationTurn) {
	var (
		wg       sync.WaitGroup
		checkIns []domain.CheckIn
		goals    []domain.Goal
		turns    []domain.ConversationTurn
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		var err error
		if checkIns, err = s.checkInRepo.ListRecent(ctx, userID, DefaultCheckInLimit); err != nil {
			log.Printf("analysis: check-in fetch failed, proceeding without: %v", err)
			checkIns = nil
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if goals, err = s.goalRepo.ListByUser(ctx, userID); err != nil {
			log.Printf("analysis: goal fetch failed, proceeding without: %v", err)
			goals = nil
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if turns, err = s.conversationRepo.ListRecent(ctx, userID, DefaultConversationLimit); err != nil {
			log.Printf("analysis: conversation fetch failed, proceeding without: %v", err)
			turns = nil
		}
	}()
	wg.Wait()

	return checkIns, goals, turns
}

// analysisConfidence scales with how much activity backed the analysis.
func analysisConfidence(recordCount int) float64 {
	if recordCount == 0 {
		return BaseAnalysisConfidence
	}
	confidence := BaseAnalysisConfidence +
		(MaxAnalysisConfidence-BaseAnalysisConfidence)*float64(recordCount)/FullConfidenceRecordCount
	if confidence > MaxAnalysisConfidence {
		confidence = MaxAnalysisConfidence
	}
	return confidence
}

func (s *analysisService) GenerateCoachingInsights(ctx context.Context, userID uuid.UUID) (*domain.CoachingInsights, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	checkIns, goals, turns := s.fetchSnapshot(ctx, userID)
	profile := s.patterns.Extract(domain.JoinActivity(checkIns, goals, turns))

	result := buildCoachingInsights(profile)
	return &result, nil
}

// buildCoachingInsights translates a pattern profile into coaching
// language.
func buildCoachingInsights(p domain.PatternProfile) domain.CoachingInsights {
	result := domain.CoachingInsights{
		Strengths:             []string{},
		Opportunities:         []string{},
		PersonalizedTips:      []string{},
		MotivationalFactors:   []string{},
		BehaviorOptimizations: []string{},
	}

	if p.Consistency.CurrentStreak >= 3 {
		result.Strengths = append(result.Strengths,
			fmt.Sprintf("You are on a %d-day streak", p.Consistency.CurrentStreak))
	}
	if p.Consistency.ConsistencyRate >= 0.7 {
		result.Strengths = append(result.Strengths,
			"You check in on most days, a strong base to build on")
	}
	if p.GoalProgress.CompletionRate >= 0.5 && len(p.GoalProgress.FastTrackGoals) == 0 {
		result.Strengths = append(result.Strengths,
			"You finish more than half of the goals you start")
	}
	for _, g := range p.GoalProgress.FastTrackGoals {
		result.Strengths = append(result.Strengths,
			fmt.Sprintf("\"%s\" is moving fast at %.0f%% already", g.Title, g.Progress))
	}

	for _, g := range p.GoalProgress.StagnantGoals {
		result.Opportunities = append(result.Opportunities,
			fmt.Sprintf("\"%s\" has stalled below 10%%; a smaller first step could restart it", g.Title))
	}
	if p.Motivation.PositiveRatio > 0 && p.Motivation.PositiveRatio < 0.3 {
		result.Opportunities = append(result.Opportunities,
			"Recent conversations lean negative; a quick-win goal could shift momentum")
	}
	if p.Consistency.CurrentStreak == 0 && p.Consistency.ActiveDays > 0 {
		result.Opportunities = append(result.Opportunities,
			"Your streak has lapsed; one check-in today restarts it")
	}

	if p.RecordCount > 0 {
		result.PersonalizedTips = append(result.PersonalizedTips,
			fmt.Sprintf("Your activity peaks around %02d:00; plan demanding habits there", p.Time.PeakHour))
		result.PersonalizedTips = append(result.PersonalizedTips,
			fmt.Sprintf("%s tends to be your most active day", time.Weekday(p.Time.PeakWeekday)))
	}

	for _, trigger := range p.Motivation.MotivationTriggers {
		result.MotivationalFactors = append(result.MotivationalFactors,
			fmt.Sprintf("Talking about %q energizes you", trigger))
	}

	if p.Time.Consistency < 0.5 && p.RecordCount > 0 {
		result.BehaviorOptimizations = append(result.BehaviorOptimizations,
			"Your activity times vary a lot; anchoring check-ins to a fixed hour would help")
	}
	if p.Consistency.AverageStreak > 0 && p.Consistency.AverageStreak < 3 {
		result.BehaviorOptimizations = append(result.BehaviorOptimizations,
			"Your streaks tend to break early; plan for day three before it arrives")
	}

	return result
}
