package service

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/habitflow/coach-api/internal/domain"
)

const (
	// DefaultCheckInLimit is how many recent check-ins an analysis uses.
	DefaultCheckInLimit = 100
	// DefaultConversationLimit is how many recent turns an analysis uses.
	DefaultConversationLimit = 50

	// ConsistencyWindowDays is the fixed trailing window the consistency
	// rate is measured against. The rate is deliberately not clamped, so
	// batches spanning more days can exceed 1.
	ConsistencyWindowDays = 30

	// DefaultConsistency is the neutral regularity score for empty input.
	DefaultConsistency = 0.5

	// PositiveSentimentCutoff separates positive turns from the rest.
	PositiveSentimentCutoff = 0.1

	// Trigger-word extraction bounds
	TriggerWordMinCount  = 2
	TriggerWordMinLength = 4
	TriggerWordTopN      = 5

	// Goal progress classification
	StagnantProgressMax  = 10.0
	StagnantAgeDays      = 7.0
	FastTrackProgressMin = 50.0
	FastTrackAgeMaxDays  = 14.0
)

// PatternService derives a behavioral pattern profile from a batch of
// activity records.
type PatternService interface {
	// Extract is a pure function of its input batch; empty input yields
	// neutral defaults, never an error.
	Extract(records []domain.ActivityRecord) domain.PatternProfile
}

type patternService struct {
	now func() time.Time
}

// NewPatternService creates a new PatternService.
func NewPatternService() PatternService {
	return &patternService{now: time.Now}
}

func (s *patternService) Extract(records []domain.ActivityRecord) domain.PatternProfile {
	now := s.now().UTC()

	var checkIns []domain.CheckIn
	var goals []domain.Goal
	var turns []domain.ConversationTurn
	for _, r := range records {
		switch r.Kind {
		case domain.ActivityCheckIn:
			checkIns = append(checkIns, *r.CheckIn)
		case domain.ActivityGoal:
			goals = append(goals, *r.Goal)
		case domain.ActivityConversation:
			turns = append(turns, *r.Conversation)
		}
	}

	return domain.PatternProfile{
		Time:         computeTimePatterns(records),
		Consistency:  computeConsistencyPatterns(checkIns, now),
		Motivation:   computeMotivationPatterns(turns),
		GoalProgress: computeGoalProgressPatterns(goals, now),
		RecordCount:  len(records),
	}
}

// computeTimePatterns buckets every record's hour and weekday into two
// histograms and scores regularity from their variance.
func computeTimePatterns(records []domain.ActivityRecord) domain.TimePatterns {
	result := domain.TimePatterns{Consistency: DefaultConsistency}

	if len(records) == 0 {
		return result
	}

	for _, r := range records {
		ts := r.Timestamp()
		result.HourCounts[ts.Hour()]++
		result.WeekdayCounts[int(ts.Weekday())]++
	}

	result.PeakHour = argMax(result.HourCounts[:])
	result.PeakWeekday = argMax(result.WeekdayCounts[:])

	hourVar := variance(toFloats(result.HourCounts[:]))
	weekdayVar := variance(toFloats(result.WeekdayCounts[:]))
	result.Consistency = 1 / (1 + hourVar + weekdayVar)

	return result
}

// computeConsistencyPatterns collapses check-in timestamps to unique
// calendar dates and derives streaks and activity density.
func computeConsistencyPatterns(checkIns []domain.CheckIn, now time.Time) domain.ConsistencyPatterns {
	result := domain.ConsistencyPatterns{WindowDays: ConsistencyWindowDays}

	if len(checkIns) == 0 {
		return result
	}

	active := make(map[string]bool)
	for _, c := range checkIns {
		active[c.CreatedAt.UTC().Format("2006-01-02")] = true
	}

	// Current streak: walk backward from today counting an unbroken
	// consecutive-day run. A run that ended yesterday still counts.
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	day := today
	if !active[day.Format("2006-01-02")] {
		day = day.AddDate(0, 0, -1)
	}
	for active[day.Format("2006-01-02")] {
		result.CurrentStreak++
		day = day.AddDate(0, 0, -1)
	}

	result.LongestStreak, result.AverageStreak = streakRuns(active)
	result.ActiveDays = len(active)
	result.ConsistencyRate = float64(len(active)) / ConsistencyWindowDays

	return result
}

// streakRuns finds all consecutive-day runs among the active dates and
// returns the longest run and the mean run length.
func streakRuns(active map[string]bool) (longest int, average float64) {
	dates := make([]string, 0, len(active))
	for d := range active {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	var runs []int
	run := 0
	var prev time.Time
	for _, d := range dates {
		t, err := time.Parse("2006-01-02", d)
		if err != nil {
			continue
		}
		if run > 0 && t.Sub(prev) == 24*time.Hour {
			run++
		} else {
			if run > 0 {
				runs = append(runs, run)
			}
			run = 1
		}
		prev = t
	}
	if run > 0 {
		runs = append(runs, run)
	}

	total := 0
	for _, r := range runs {
		if r > longest {
			longest = r
		}
		total += r
	}
	if len(runs) > 0 {
		average = float64(total) / float64(len(runs))
	}
	return longest, average
}

// computeMotivationPatterns scores sentiment and extracts trigger
// language from the conversation turns.
func computeMotivationPatterns(turns []domain.ConversationTurn) domain.MotivationPatterns {
	result := domain.MotivationPatterns{
		MotivationTriggers:   []string{},
		DemotivationTriggers: []string{},
	}

	var sentiments []float64
	positive := 0
	for _, t := range turns {
		if t.Sentiment == nil {
			continue
		}
		sentiments = append(sentiments, *t.Sentiment)
		if *t.Sentiment > PositiveSentimentCutoff {
			positive++
		}
	}

	if len(sentiments) > 0 {
		result.PositiveRatio = float64(positive) / float64(len(sentiments))
		result.MeanSentiment = mean(sentiments)
		stability := 1 - variance(sentiments)
		if stability < 0 {
			stability = 0
		}
		result.EmotionalStability = stability
	}

	result.MotivationTriggers = extractTriggerWords(turns, positiveMarkers)
	result.DemotivationTriggers = extractTriggerWords(turns, struggleMarkers)

	return result
}

// computeGoalProgressPatterns summarizes how the supplied goals are
// advancing.
func computeGoalProgressPatterns(goals []domain.Goal, now time.Time) domain.GoalProgressPatterns {
	result := domain.GoalProgressPatterns{
		StagnantGoals:  []domain.GoalSummary{},
		FastTrackGoals: []domain.GoalSummary{},
	}

	if len(goals) == 0 {
		return result
	}

	sum := 0.0
	completed := 0
	for _, g := range goals {
		sum += g.Progress
		if g.Progress >= 100 {
			completed++
		}

		summary := domain.GoalSummary{ID: g.ID, Title: g.Title, Progress: g.Progress}
		age := g.AgeDays(now)
		if g.Progress < StagnantProgressMax && age > StagnantAgeDays {
			result.StagnantGoals = append(result.StagnantGoals, summary)
		}
		if g.Progress > FastTrackProgressMin && age < FastTrackAgeMaxDays {
			result.FastTrackGoals = append(result.FastTrackGoals, summary)
		}
	}

	result.MeanProgress = sum / float64(len(goals))
	result.CompletionRate = float64(completed) / float64(len(goals))

	return result
}

// Trigger-word extraction

var nonWordPattern = regexp.MustCompile(`[^a-z0-9\s]+`)

// stopWords are dropped before counting trigger candidates.
var stopWords = map[string]struct{}{
	"this": {}, "that": {}, "with": {}, "have": {}, "will": {},
	"from": {}, "they": {}, "been": {}, "were": {}, "when": {},
	"what": {}, "just": {}, "like": {}, "about": {}, "really": {},
	"because": {}, "today": {}, "going": {}, "want": {}, "need": {},
	"feel": {}, "feeling": {}, "more": {}, "much": {},
	"very": {}, "some": {}, "there": {}, "their": {}, "your": {},
}

// struggleMarkers flag turns that sound like the user is stuck.
var struggleMarkers = []string{
	"frustrated", "stuck", "overwhelmed", "struggling", "difficult",
	"hard", "tired", "exhausted", "give up", "can't", "cant",
}

// positiveMarkers flag turns that sound motivated.
var positiveMarkers = []string{
	"motivated", "excited", "accomplished", "proud", "great",
	"progress", "energized", "confident", "momentum",
}

// containsAnyMarker reports whether the message mentions any marker.
func containsAnyMarker(message string, markers []string) bool {
	lower := strings.ToLower(message)
	for _, m := range markers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// extractTriggerWords counts the remaining words across the topical
// subset of turns and returns the most frequent ones.
func extractTriggerWords(turns []domain.ConversationTurn, markers []string) []string {
	counts := make(map[string]int)
	for _, t := range turns {
		if !containsAnyMarker(t.Message, markers) {
			continue
		}
		cleaned := nonWordPattern.ReplaceAllString(strings.ToLower(t.Message), " ")
		for _, word := range strings.Fields(cleaned) {
			if len(word) < TriggerWordMinLength {
				continue
			}
			if _, skip := stopWords[word]; skip {
				continue
			}
			counts[word]++
		}
	}

	type wordCount struct {
		word  string
		count int
	}
	var candidates []wordCount
	for w, c := range counts {
		if c >= TriggerWordMinCount {
			candidates = append(candidates, wordCount{w, c})
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].count != candidates[j].count {
			return candidates[i].count > candidates[j].count
		}
		return candidates[i].word < candidates[j].word
	})

	words := []string{}
	for i, c := range candidates {
		if i >= TriggerWordTopN {
			break
		}
		words = append(words, c.word)
	}
	return words
}

// Shared numeric helpers

func argMax(counts []int) int {
	best := 0
	for i, c := range counts {
		if c > counts[best] {
			best = i
		}
	}
	return best
}

func toFloats(counts []int) []float64 {
	out := make([]float64, len(counts))
	for i, c := range counts {
		out[i] = float64(c)
	}
	return out
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// variance is the population variance.
func variance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	sum := 0.0
	for _, v := range values {
		diff := v - m
		sum += diff * diff
	}
	return sum / float64(len(values))
}
