package service

import "github.com/habitflow/coach-api/internal/domain"

// Weights holds every scoring constant used by the risk and prediction
// engine so tests can assert against named values and tuning never
// touches control flow.
type Weights struct {
	// Intervention risk terms, each independently capped
	ActivityDecline  float64
	SentimentDecline float64
	GoalStagnation   float64
	InactivityGap    float64

	// Urgency thresholds on the total risk score
	HighUrgencyThreshold   float64
	MediumUrgencyThreshold float64

	// Risk term trigger conditions
	RecentWindowDays       int
	ActivityBaselinePerDay float64
	ActivityDeclineRatio   float64
	SentimentDeclineCutoff float64
	LowProgressCutoff      float64
	InactivityGapDays      int
	CheckInTypeWindowDays  int

	// Goal success probability terms
	UserExperience  float64
	StreakPerDay    float64
	StreakCap       float64
	Specificity     float64
	SimilarGoals    float64
	DifficultyBase  map[domain.GoalDifficulty]float64
	TimeMultiplier  map[domain.GoalDifficulty]float64
	DifficultyScore map[domain.GoalDifficulty]float64
}

// DefaultWeights is the production weighting policy.
func DefaultWeights() Weights {
	return Weights{
		ActivityDecline:  0.3,
		SentimentDecline: 0.2,
		GoalStagnation:   0.25,
		InactivityGap:    0.25,

		HighUrgencyThreshold:   0.7,
		MediumUrgencyThreshold: 0.4,

		RecentWindowDays:       14,
		ActivityBaselinePerDay: 1.0,
		ActivityDeclineRatio:   0.5,
		SentimentDeclineCutoff: -0.1,
		LowProgressCutoff:      20,
		InactivityGapDays:      3,
		CheckInTypeWindowDays:  7,

		UserExperience: 0.3,
		StreakPerDay:   0.1,
		StreakCap:      0.2,
		Specificity:    0.1,
		SimilarGoals:   0.2,
		DifficultyBase: map[domain.GoalDifficulty]float64{
			domain.GoalDifficultyEasy:   0.8,
			domain.GoalDifficultyMedium: 0.6,
			domain.GoalDifficultyHard:   0.4,
		},
		TimeMultiplier: map[domain.GoalDifficulty]float64{
			domain.GoalDifficultyEasy:   0.7,
			domain.GoalDifficultyMedium: 1.0,
			domain.GoalDifficultyHard:   1.5,
		},
		DifficultyScore: map[domain.GoalDifficulty]float64{
			domain.GoalDifficultyEasy:   0.2,
			domain.GoalDifficultyMedium: 0.5,
			domain.GoalDifficultyHard:   0.8,
		},
	}
}
