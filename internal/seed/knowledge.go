package seed

import (
	"context"
	"fmt"
	"log"

	"github.com/habitflow/coach-api/internal/domain"
	"github.com/habitflow/coach-api/internal/service"
)

// knowledgeEntry is one curated coaching fact for the semantic index.
type knowledgeEntry struct {
	text     string
	topic    string
	category string
}

var knowledgeBase = []knowledgeEntry{
	{"Habit stacking ties a new habit to an existing one, like meditating right after brushing your teeth", "habit_stacking", "habit_formation"},
	{"Starting with a two-minute version of a habit lowers the activation energy enough to build consistency first and intensity later", "tiny_habits", "habit_formation"},
	{"Missing a habit once is an accident, missing twice is the start of a new habit. Never miss twice in a row", "never_miss_twice", "consistency"},
	{"Implementation intentions, stating when and where you will act, roughly double follow-through compared to vague intentions", "implementation_intentions", "goal_setting"},
	{"Tracking a streak creates loss aversion that keeps people going, but a broken streak should reset expectations, not motivation", "streak_psychology", "consistency"},
	{"Morning routines succeed more often than evening ones because willpower is highest early in the day", "morning_advantage", "timing"},
	{"Pairing an unpleasant task with something enjoyable, called temptation bundling, makes hard habits stick", "temptation_bundling", "motivation"},
	{"Goals framed around identity, being a runner rather than running a race, survive setbacks better than outcome goals", "identity_goals", "goal_setting"},
	{"Breaking a large goal into weekly milestones gives frequent wins that sustain motivation over months", "milestones", "goal_setting"},
	{"Environmental design beats willpower. Removing friction, like laying out workout clothes the night before, raises completion rates", "environment_design", "habit_formation"},
	{"High stress narrows attention and makes habit lapses more likely, so stressful weeks call for smaller commitments, not bigger pushes", "stress_response", "wellbeing"},
	{"Social accountability, telling someone your goal or working alongside them, meaningfully raises the odds of sticking with it", "accountability", "motivation"},
	{"A slump in energy ratings for several days running usually precedes disengagement and is the best moment for a light check-in", "early_warning", "coaching"},
	{"Celebrating small wins immediately after the behavior reinforces the habit loop more than delayed rewards", "immediate_reward", "motivation"},
	{"Plateaus are normal. Progress on long goals is logarithmic, fast at first and slow later, so flat weeks are not failure", "plateau", "coaching"},
}

// EnsureKnowledgeBase upserts the curated coaching knowledge into the
// semantic index. IDs are deterministic so reruns overwrite in place.
func EnsureKnowledgeBase(ctx context.Context, similarity service.SimilarityService) error {
	for i, entry := range knowledgeBase {
		semantic := &domain.SemanticEntry{
			ID:   fmt.Sprintf("kb-%03d", i+1),
			Kind: domain.SemanticKnowledge,
			Text: entry.text,
			Metadata: domain.JSONMap{
				"topic":    entry.topic,
				"category": entry.category,
			},
		}
		if err := similarity.Store(ctx, semantic); err != nil {
			return fmt.Errorf("failed to index knowledge entry %s: %w", semantic.ID, err)
		}
	}

	log.Printf("Coaching knowledge base ready (%d entries)", len(knowledgeBase))
	return nil
}
