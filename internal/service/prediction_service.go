package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/habitflow/coach-api/internal/domain"
	"github.com/habitflow/coach-api/internal/notify"
	"github.com/habitflow/coach-api/internal/repository"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	// DefaultTimeframeDays is assumed when a goal has no timeframe.
	DefaultTimeframeDays = 30
	// SpecificDescriptionLength is the description length above which a
	// goal counts as fully specific.
	SpecificDescriptionLength = 50
	// NeutralSimilarSuccess is used when no similar goals are found.
	NeutralSimilarSuccess = 0.5
	// SimilarGoalLimit caps how many similar goals feed the estimate.
	SimilarGoalLimit = 5
)

// PredictionService scores disengagement risk and goal-success
// likelihood for a user.
type PredictionService interface {
	// PredictIntervention assesses disengagement risk from recent
	// activity. High urgency schedules an intervention as a side effect.
	PredictIntervention(ctx context.Context, userID uuid.UUID) (*domain.InterventionPrediction, error)
	// PredictGoalSuccess estimates the completion likelihood of a goal.
	PredictGoalSuccess(ctx context.Context, userID uuid.UUID, req *domain.GoalPredictionRequest) (*domain.GoalPrediction, error)
}

type predictionService struct {
	checkInRepo      repository.CheckInRepository
	goalRepo         repository.GoalRepository
	conversationRepo repository.ConversationRepository
	userRepo         repository.UserRepository
	similarity       SimilarityService
	notifier         notify.Notifier
	weights          Weights
	now              func() time.Time
}

// NewPredictionService creates a new PredictionService.
func NewPredictionService(
	checkInRepo repository.CheckInRepository,
	goalRepo repository.GoalRepository,
	conversationRepo repository.ConversationRepository,
	userRepo repository.UserRepository,
	similarity SimilarityService,
	notifier notify.Notifier,
) PredictionService {
	return &predictionService{
		checkInRepo:      checkInRepo,
		goalRepo:         goalRepo,
		conversationRepo: conversationRepo,
		userRepo:         userRepo,
		similarity:       similarity,
		notifier:         notifier,
		weights:          DefaultWeights(),
		now:              time.Now,
	}
}

func (s *predictionService) PredictIntervention(ctx context.Context, userID uuid.UUID) (*domain.InterventionPrediction, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	tracer := otel.Tracer("habit-coach-api/prediction")
	ctx, span := tracer.Start(ctx, "PredictionService.PredictIntervention",
		trace.WithAttributes(attribute.String("user.id", userID.String())),
	)
	defer span.End()

	now := s.now().UTC()

	// Store failures degrade to empty slices; the score is computed
	// from whatever data is reachable.
	checkIns, err := s.checkInRepo.ListRecent(ctx, userID, DefaultCheckInLimit)
	if err != nil {
		log.Printf("intervention: check-in fetch failed, proceeding without: %v", err)
		checkIns = nil
	}
	goals, err := s.goalRepo.ListByUser(ctx, userID)
	if err != nil {
		log.Printf("intervention: goal fetch failed, proceeding without: %v", err)
		goals = nil
	}
	turns, err := s.conversationRepo.ListRecent(ctx, userID, DefaultConversationLimit)
	if err != nil {
		log.Printf("intervention: conversation fetch failed, proceeding without: %v", err)
		turns = nil
	}

	prediction := scoreInterventionRisk(s.weights, checkIns, goals, turns, now)
	span.SetAttributes(
		attribute.Float64("risk.score", prediction.RiskScore),
		attribute.String("risk.urgency", string(prediction.Urgency)),
	)

	if prediction.Urgency == domain.UrgencyHigh {
		in := notify.Intervention{
			UserID:           userID,
			RiskScore:        prediction.RiskScore,
			Urgency:          prediction.Urgency,
			InterventionType: prediction.InterventionType,
			Recommendations:  prediction.Recommendations,
			ScheduledAt:      now,
		}
		if err := s.notifier.ScheduleIntervention(ctx, in); err != nil {
			log.Printf("intervention scheduling failed: %v", err)
		}
	}

	return &prediction, nil
}

// scoreInterventionRisk combines independent behavioral signals into a
// capped additive risk score.
func scoreInterventionRisk(w Weights, checkIns []domain.CheckIn, goals []domain.Goal, turns []domain.ConversationTurn, now time.Time) domain.InterventionPrediction {
	risk := 0.0
	signals := []string{}

	recentCutoff := now.AddDate(0, 0, -w.RecentWindowDays)

	// Activity decline: fewer recent check-ins than half the baseline
	recentCount := 0
	for _, c := range checkIns {
		if c.CreatedAt.After(recentCutoff) {
			recentCount++
		}
	}
	expected := float64(w.RecentWindowDays) * w.ActivityBaselinePerDay
	if float64(recentCount) < w.ActivityDeclineRatio*expected {
		risk += w.ActivityDecline
		signals = append(signals, "activity_decline")
	}

	// Sentiment decline: only evaluated when sentiment data exists
	var sentiments []float64
	for _, t := range turns {
		if t.Sentiment != nil && t.CreatedAt.After(recentCutoff) {
			sentiments = append(sentiments, *t.Sentiment)
		}
	}
	if len(sentiments) > 0 && mean(sentiments) < w.SentimentDeclineCutoff {
		risk += w.SentimentDecline
		signals = append(signals, "sentiment_decline")
	}

	// Goal stagnation: more than half of goals below the low-progress cutoff
	if len(goals) > 0 {
		low := 0
		for _, g := range goals {
			if g.Progress < w.LowProgressCutoff {
				low++
			}
		}
		if low*2 > len(goals) {
			risk += w.GoalStagnation
			signals = append(signals, "goal_stagnation")
		}
	}

	// Inactivity gap: days since the last check-in
	if len(checkIns) == 0 {
		risk += w.InactivityGap
		signals = append(signals, "inactivity_gap")
	} else {
		latest := checkIns[0].CreatedAt
		for _, c := range checkIns {
			if c.CreatedAt.After(latest) {
				latest = c.CreatedAt
			}
		}
		if now.Sub(latest) > time.Duration(w.InactivityGapDays)*24*time.Hour {
			risk += w.InactivityGap
			signals = append(signals, "inactivity_gap")
		}
	}

	if risk > 1 {
		risk = 1
	}

	urgency := domain.UrgencyLow
	switch {
	case risk > w.HighUrgencyThreshold:
		urgency = domain.UrgencyHigh
	case risk > w.MediumUrgencyThreshold:
		urgency = domain.UrgencyMedium
	}

	interventionType := selectInterventionType(w, checkIns, goals, now)

	return domain.InterventionPrediction{
		RiskScore:        risk,
		Urgency:          urgency,
		InterventionType: interventionType,
		Signals:          signals,
		Recommendations:  interventionRecommendations(interventionType),
	}
}

// selectInterventionType picks the channel for the nudge: re-engage
// check-ins first, then stalled goals, then general motivation.
func selectInterventionType(w Weights, checkIns []domain.CheckIn, goals []domain.Goal, now time.Time) domain.InterventionType {
	typeCutoff := now.AddDate(0, 0, -w.CheckInTypeWindowDays)
	hasRecentCheckIn := false
	for _, c := range checkIns {
		if c.CreatedAt.After(typeCutoff) {
			hasRecentCheckIn = true
			break
		}
	}
	if !hasRecentCheckIn {
		return domain.InterventionCheckIn
	}

	for _, g := range goals {
		if g.Progress < w.LowProgressCutoff {
			return domain.InterventionGoalProgress
		}
	}

	return domain.InterventionMotivation
}

func interventionRecommendations(t domain.InterventionType) []string {
	switch t {
	case domain.InterventionCheckIn:
		return []string{
			"Send a gentle check-in reminder",
			"Ask about the biggest blocker this week",
		}
	case domain.InterventionGoalProgress:
		return []string{
			"Suggest breaking a stalled goal into a smaller next step",
			"Revisit whether the goal timeframe is still realistic",
		}
	default:
		return []string{
			"Share a recent win back to the user",
			"Highlight the current streak to reinforce momentum",
		}
	}
}

func (s *predictionService) PredictGoalSuccess(ctx context.Context, userID uuid.UUID, req *domain.GoalPredictionRequest) (*domain.GoalPrediction, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	tracer := otel.Tracer("habit-coach-api/prediction")
	ctx, span := tracer.Start(ctx, "PredictionService.PredictGoalSuccess",
		trace.WithAttributes(
			attribute.String("user.id", userID.String()),
			attribute.String("goal.title", req.Title),
		),
	)
	defer span.End()

	now := s.now().UTC()

	history, err := s.goalRepo.ListByUser(ctx, userID)
	if err != nil {
		log.Printf("goal success: history fetch failed, proceeding without: %v", err)
		history = nil
	}
	checkIns, err := s.checkInRepo.ListRecent(ctx, userID, DefaultCheckInLimit)
	if err != nil {
		log.Printf("goal success: check-in fetch failed, proceeding without: %v", err)
		checkIns = nil
	}

	similarSuccess := s.similarGoalSuccessRate(ctx, userID, req.Title)

	prediction := scoreGoalSuccess(s.weights, req, history, checkIns, similarSuccess, now)
	span.SetAttributes(attribute.Float64("goal.success_probability", prediction.SuccessProbability))

	return &prediction, nil
}

// similarGoalSuccessRate searches historically indexed goal outcomes
// and returns the fraction that completed. With no matches the
// estimate stays neutral.
func (s *predictionService) similarGoalSuccessRate(ctx context.Context, userID uuid.UUID, title string) float64 {
	matches, err := s.similarity.Search(ctx, domain.SemanticBehavior, &userID, title, BehaviorSearchThreshold, SimilarGoalLimit)
	if err != nil {
		log.Printf("goal success: similarity search failed, using neutral rate: %v", err)
		return NeutralSimilarSuccess
	}
	if len(matches) == 0 {
		return NeutralSimilarSuccess
	}

	completed := 0
	for _, m := range matches {
		if done, ok := m.Entry.Metadata["completed"].(bool); ok && done {
			completed++
		}
	}
	return float64(completed) / float64(len(matches))
}

// scoreGoalSuccess is the pure feature-weighting core of goal-success
// prediction.
func scoreGoalSuccess(w Weights, req *domain.GoalPredictionRequest, history []domain.Goal, checkIns []domain.CheckIn, similarSuccess float64, now time.Time) domain.GoalPrediction {
	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = domain.GoalDifficultyMedium
	}
	timeframe := req.TimeframeDays
	if timeframe <= 0 {
		timeframe = DefaultTimeframeDays
	}

	// User experience: historical completion rate
	experience := 0.0
	if len(history) > 0 {
		completed := 0
		for _, g := range history {
			if g.Completed() {
				completed++
			}
		}
		experience = float64(completed) / float64(len(history))
	}

	streak := computeConsistencyPatterns(checkIns, now).CurrentStreak

	specificity := 0.0
	switch {
	case len(req.Description) > SpecificDescriptionLength:
		specificity = 1.0
	case len(req.Description) > 0:
		specificity = 0.5
	}

	streakTerm := w.StreakPerDay * float64(streak)
	if streakTerm > w.StreakCap {
		streakTerm = w.StreakCap
	}

	probability := w.DifficultyBase[difficulty] +
		w.UserExperience*experience +
		streakTerm +
		w.Specificity*specificity +
		w.SimilarGoals*similarSuccess
	if probability > 1 {
		probability = 1
	}
	if probability < 0 {
		probability = 0
	}

	riskFactors := []string{}
	if difficulty == domain.GoalDifficultyHard && experience < 0.5 {
		riskFactors = append(riskFactors, "goal_too_ambitious")
	}
	if specificity < 0.5 {
		riskFactors = append(riskFactors, "goal_not_specific")
	}

	confidence := 0.4 + 0.05*float64(len(history))
	if confidence > 0.9 {
		confidence = 0.9
	}

	return domain.GoalPrediction{
		SuccessProbability: probability,
		RiskFactors:        riskFactors,
		Recommendations:    goalRecommendations(riskFactors, difficulty),
		ConfidenceScore:    confidence,
		TimeEstimateDays:   float64(timeframe) * w.TimeMultiplier[difficulty],
		DifficultyScore:    w.DifficultyScore[difficulty],
	}
}

func goalRecommendations(riskFactors []string, difficulty domain.GoalDifficulty) []string {
	recs := []string{}
	for _, rf := range riskFactors {
		switch rf {
		case "goal_too_ambitious":
			recs = append(recs, "Split the goal into milestones you can finish within two weeks")
		case "goal_not_specific":
			recs = append(recs, "Add a concrete description of what done looks like")
		}
	}
	if difficulty == domain.GoalDifficultyEasy {
		recs = append(recs, "Consider raising the bar slightly to keep the goal engaging")
	}
	if len(recs) == 0 {
		recs = append(recs, fmt.Sprintf("Schedule regular progress updates over the next %d days", DefaultTimeframeDays))
	}
	return recs
}
