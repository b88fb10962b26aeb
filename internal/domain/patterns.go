package domain

import "github.com/google/uuid"

// TimePatterns describes when the user tends to be active.
type TimePatterns struct {
	// Hourly activity histogram (24 buckets, local hour)
	HourCounts [24]int `json:"hour_counts"`
	// Day-of-week activity histogram (7 buckets, Sunday = 0)
	WeekdayCounts [7]int `json:"weekday_counts"`
	// Hour bucket with the most activity
	PeakHour int `json:"peak_hour"`
	// Weekday bucket with the most activity (Sunday = 0)
	PeakWeekday int `json:"peak_weekday"`
	// Regularity score in [0,1]; higher means more regular
	Consistency float64 `json:"consistency"`
}

// ConsistencyPatterns describes streaks and activity density.
type ConsistencyPatterns struct {
	// Consecutive active days ending today
	CurrentStreak int `json:"current_streak"`
	// Longest run of consecutive active days observed
	LongestStreak int `json:"longest_streak"`
	// Mean length of all observed runs
	AverageStreak float64 `json:"average_streak"`
	// Active days divided by the trailing window; deliberately unclamped,
	// values near or above 1 read as "very consistent"
	ConsistencyRate float64 `json:"consistency_rate"`
	// Distinct calendar days with at least one check-in
	ActiveDays int `json:"active_days"`
	// Fixed trailing window the rate is measured against
	WindowDays int `json:"window_days"`
}

// MotivationPatterns describes sentiment and trigger language.
type MotivationPatterns struct {
	// Fraction of scored turns with sentiment above the positive cutoff
	PositiveRatio float64 `json:"positive_ratio"`
	// Mean sentiment across scored turns
	MeanSentiment float64 `json:"mean_sentiment"`
	// 1 minus sentiment variance, floored at 0
	EmotionalStability float64 `json:"emotional_stability"`
	// Most frequent words in motivated-sounding turns
	MotivationTriggers []string `json:"motivation_triggers"`
	// Most frequent words in struggle-sounding turns
	DemotivationTriggers []string `json:"demotivation_triggers"`
}

// GoalSummary is a lightweight reference to a goal inside a pattern.
type GoalSummary struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Progress float64   `json:"progress"`
}

// GoalProgressPatterns describes how goals are advancing.
type GoalProgressPatterns struct {
	MeanProgress   float64       `json:"mean_progress"`
	CompletionRate float64       `json:"completion_rate"`
	StagnantGoals  []GoalSummary `json:"stagnant_goals"`
	FastTrackGoals []GoalSummary `json:"fast_track_goals"`
}

// PatternProfile is the full set of behavioral statistics derived from
// one activity batch. It is recomputed on every analysis call and
// never persisted as a whole.
type PatternProfile struct {
	Time         TimePatterns         `json:"time"`
	Consistency  ConsistencyPatterns  `json:"consistency"`
	Motivation   MotivationPatterns   `json:"motivation"`
	GoalProgress GoalProgressPatterns `json:"goal_progress"`
	// Total records the profile was derived from
	RecordCount int `json:"record_count"`
}
