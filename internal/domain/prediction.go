package domain

import "time"

// Urgency buckets a risk score for downstream prioritization.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// InterventionType names the kind of coaching nudge to send.
type InterventionType string

const (
	InterventionCheckIn      InterventionType = "check_in"
	InterventionGoalProgress InterventionType = "goal_progress"
	InterventionMotivation   InterventionType = "motivation"
)

// InterventionPrediction is the disengagement-risk assessment for a user.
type InterventionPrediction struct {
	// Additive risk score, capped at 1.0
	RiskScore float64 `json:"risk_score"`
	Urgency   Urgency `json:"urgency"`
	// Suggested intervention channel
	InterventionType InterventionType `json:"intervention_type"`
	// Names of the risk signals that fired
	Signals         []string `json:"signals"`
	Recommendations []string `json:"recommendations"`
}

// GoalPredictionRequest carries the goal under evaluation. Difficulty
// defaults to medium and timeframe to 30 days when omitted.
type GoalPredictionRequest struct {
	Title       string         `json:"title" validate:"required,max=255"`
	Description string         `json:"description" validate:"max=2000"`
	Category    string         `json:"category" validate:"omitempty,max=64"`
	Difficulty  GoalDifficulty `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	// Planned timeframe in days
	TimeframeDays int `json:"timeframe_days" validate:"omitempty,min=1,max=365"`
}

// GoalPrediction estimates the likelihood of completing a goal.
type GoalPrediction struct {
	SuccessProbability float64  `json:"success_probability"`
	RiskFactors        []string `json:"risk_factors"`
	Recommendations    []string `json:"recommendations"`
	ConfidenceScore    float64  `json:"confidence_score"`
	// Estimated days to completion
	TimeEstimateDays float64 `json:"time_estimate_days"`
	DifficultyScore  float64 `json:"difficulty_score"`
}

// AnalysisPredictions groups the predictions attached to a full analysis.
type AnalysisPredictions struct {
	Intervention InterventionPrediction `json:"intervention"`
}

// AnalysisResult is the response of a full habit-pattern analysis.
type AnalysisResult struct {
	Patterns    PatternProfile      `json:"patterns"`
	Predictions AnalysisPredictions `json:"predictions"`
	Insights    []InsightResponse   `json:"insights"`
	// Overall reliability estimate; 0.3 with no data
	Confidence   float64   `json:"confidence"`
	LastAnalyzed time.Time `json:"last_analyzed"`
}

// CoachingInsights is the qualitative coaching summary derived from a
// pattern profile.
type CoachingInsights struct {
	Strengths             []string `json:"strengths"`
	Opportunities         []string `json:"opportunities"`
	PersonalizedTips      []string `json:"personalized_tips"`
	MotivationalFactors   []string `json:"motivational_factors"`
	BehaviorOptimizations []string `json:"behavior_optimizations"`
}
