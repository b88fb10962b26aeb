package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/habitflow/coach-api/internal/domain"
	"github.com/habitflow/coach-api/internal/repository"
)

const (
	// MinSuccessfulBehaviors gates the peak-performance rule.
	MinSuccessfulBehaviors = 5
	// MinStruggleTurns gates the struggle-point rule.
	MinStruggleTurns = 3
	// MinPositiveTurns gates the motivation-trigger rule.
	MinPositiveTurns = 3

	// Confidence caps per rule
	PeakConfidenceCap       = 0.95
	StruggleConfidenceCap   = 0.9
	MotivationConfidenceCap = 0.85

	// PeakConfidenceFloor suppresses weak peak-performance insights.
	PeakConfidenceFloor = 0.3

	// SuccessMoodMin marks a check-in as a successful behavior.
	SuccessMoodMin = 4
)

// InsightService turns a pattern profile into persisted, ranked
// coaching insights.
type InsightService interface {
	// Generate evaluates every insight rule against the profile and
	// batch, persists the insights that fire together with their
	// embeddings, and returns them. Rules that lack data simply do not
	// fire; persistence failures are logged, never returned.
	Generate(ctx context.Context, userID uuid.UUID, profile domain.PatternProfile, records []domain.ActivityRecord) ([]domain.Insight, error)
	// ListActive returns the user's stored unexpired insights.
	ListActive(ctx context.Context, userID uuid.UUID) ([]domain.Insight, error)
}

type insightService struct {
	insightRepo repository.InsightRepository
	userRepo    repository.UserRepository
	similarity  SimilarityService
	now         func() time.Time
}

// NewInsightService creates a new InsightService.
func NewInsightService(insightRepo repository.InsightRepository, userRepo repository.UserRepository, similarity SimilarityService) InsightService {
	return &insightService{
		insightRepo: insightRepo,
		userRepo:    userRepo,
		similarity:  similarity,
		now:         time.Now,
	}
}

func (s *insightService) ListActive(ctx context.Context, userID uuid.UUID) ([]domain.Insight, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}
	return s.insightRepo.ListActive(ctx, userID, s.now().UTC())
}

func (s *insightService) Generate(ctx context.Context, userID uuid.UUID, profile domain.PatternProfile, records []domain.ActivityRecord) ([]domain.Insight, error) {
	var successes []domain.CheckIn
	var turns []domain.ConversationTurn
	for _, r := range records {
		switch r.Kind {
		case domain.ActivityCheckIn:
			if r.CheckIn.Mood >= SuccessMoodMin {
				successes = append(successes, *r.CheckIn)
			}
		case domain.ActivityConversation:
			turns = append(turns, *r.Conversation)
		}
	}

	total := len(records)

	var candidates []*domain.Insight
	if insight := buildPeakPerformanceInsight(successes); insight != nil {
		candidates = append(candidates, insight)
	}
	if insight := buildStruggleInsight(profile, turns, total); insight != nil {
		candidates = append(candidates, insight)
	}
	if insight := buildMotivationInsight(profile, turns, total); insight != nil {
		candidates = append(candidates, insight)
	}

	now := s.now().UTC()
	insights := []domain.Insight{}
	for _, insight := range candidates {
		insight.ID = uuid.New()
		insight.UserID = userID
		insight.CreatedAt = now
		insight.ExpiresAt = now.Add(domain.InsightTTL)

		if err := s.persist(ctx, insight); err != nil {
			// Persistence degrades to a logged no-op; the insight is
			// still returned to the caller.
			log.Printf("insight persistence failed: %v", err)
		}

		insights = append(insights, *insight)
	}

	return insights, nil
}

// persist writes the insight row and indexes its embedding for later
// semantic retrieval.
func (s *insightService) persist(ctx context.Context, insight *domain.Insight) error {
	entry := &domain.SemanticEntry{
		ID:       "insight-" + insight.ID.String(),
		Kind:     domain.SemanticInsight,
		UserID:   &insight.UserID,
		Text:     insight.Title + ". " + insight.Description,
		Metadata: domain.JSONMap{"pattern_type": string(insight.PatternType), "confidence": insight.Confidence},
	}
	if err := s.similarity.Store(ctx, entry); err != nil {
		return fmt.Errorf("index insight embedding: %w", err)
	}
	insight.Embedding = entry.Embedding

	if err := s.insightRepo.Create(ctx, insight); err != nil {
		return fmt.Errorf("store insight: %w", err)
	}
	return nil
}

// buildPeakPerformanceInsight fires when enough successful behaviors
// cluster around one hour of the day.
func buildPeakPerformanceInsight(successes []domain.CheckIn) *domain.Insight {
	if len(successes) < MinSuccessfulBehaviors {
		return nil
	}

	var hourCounts [24]int
	for _, c := range successes {
		hourCounts[c.CreatedAt.Hour()]++
	}
	peakHour := argMax(hourCounts[:])
	peakCount := hourCounts[peakHour]

	confidence := float64(peakCount) / float64(len(successes))
	if confidence > PeakConfidenceCap {
		confidence = PeakConfidenceCap
	}
	if confidence < PeakConfidenceFloor {
		return nil
	}

	hourLabel := fmt.Sprintf("%02d:00", peakHour)
	return &domain.Insight{
		PatternType: domain.PatternPeakPerformance,
		Title:       fmt.Sprintf("You perform best around %s", hourLabel),
		Description: fmt.Sprintf(
			"%d of your %d strongest check-ins happened in the %s hour. Your energy and mood peak in this window.",
			peakCount, len(successes), hourLabel),
		Confidence: confidence,
		SupportingData: domain.JSONMap{
			"peak_hour":     peakHour,
			"peak_count":    peakCount,
			"success_count": len(successes),
		},
		Actionable: true,
		SuggestedActions: domain.StringList{
			fmt.Sprintf("Schedule your hardest habit work near %s", hourLabel),
			"Protect this window from meetings and interruptions",
			fmt.Sprintf("Set a daily reminder shortly before %s", hourLabel),
		},
	}
}

// buildStruggleInsight fires when struggle language keeps recurring in
// the coaching dialogue.
func buildStruggleInsight(profile domain.PatternProfile, turns []domain.ConversationTurn, totalBehaviors int) *domain.Insight {
	struggleCount := 0
	for _, t := range turns {
		if containsAnyMarker(t.Message, struggleMarkers) {
			struggleCount++
		}
	}
	if struggleCount < MinStruggleTurns || totalBehaviors == 0 {
		return nil
	}

	confidence := float64(struggleCount) / float64(totalBehaviors) * 2
	if confidence > StruggleConfidenceCap {
		confidence = StruggleConfidenceCap
	}

	description := fmt.Sprintf("%d recent conversations mention feeling stuck or overwhelmed.", struggleCount)
	if len(profile.Motivation.DemotivationTriggers) > 0 {
		description += " Recurring themes: " + strings.Join(profile.Motivation.DemotivationTriggers, ", ") + "."
	}

	return &domain.Insight{
		PatternType: domain.PatternStrugglePoints,
		Title:       "A recurring struggle point is holding you back",
		Description: description,
		Confidence:  confidence,
		SupportingData: domain.JSONMap{
			"struggle_count":  struggleCount,
			"total_behaviors": totalBehaviors,
			"triggers":        profile.Motivation.DemotivationTriggers,
		},
		Actionable: true,
		SuggestedActions: domain.StringList{
			"Name the single biggest blocker and tackle only that this week",
			"Shrink the habit until it feels almost too easy",
		},
	}
}

// buildMotivationInsight fires when positive language keeps recurring.
func buildMotivationInsight(profile domain.PatternProfile, turns []domain.ConversationTurn, totalBehaviors int) *domain.Insight {
	positiveCount := 0
	for _, t := range turns {
		if containsAnyMarker(t.Message, positiveMarkers) {
			positiveCount++
		}
	}
	if positiveCount < MinPositiveTurns || totalBehaviors == 0 {
		return nil
	}

	confidence := float64(positiveCount) / float64(totalBehaviors) * 2
	if confidence > MotivationConfidenceCap {
		confidence = MotivationConfidenceCap
	}

	description := fmt.Sprintf("%d recent conversations show what energizes you.", positiveCount)
	if len(profile.Motivation.MotivationTriggers) > 0 {
		description += " Your motivation triggers: " + strings.Join(profile.Motivation.MotivationTriggers, ", ") + "."
	}

	return &domain.Insight{
		PatternType: domain.PatternMotivationTriggers,
		Title:       "Clear motivation triggers are emerging",
		Description: description,
		Confidence:  confidence,
		SupportingData: domain.JSONMap{
			"positive_count":  positiveCount,
			"total_behaviors": totalBehaviors,
			"triggers":        profile.Motivation.MotivationTriggers,
		},
		Actionable: true,
		SuggestedActions: domain.StringList{
			"Pair a struggling habit with something that energizes you",
			"Start sessions by revisiting a recent win",
		},
	}
}
