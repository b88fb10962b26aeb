package domain

import "time"

// ActivityKind discriminates the variants of an ActivityRecord.
type ActivityKind string

const (
	ActivityCheckIn      ActivityKind = "check_in"
	ActivityGoal         ActivityKind = "goal"
	ActivityConversation ActivityKind = "conversation"
)

// ActivityRecord is a tagged union over the three record types the
// pattern extractor consumes. Exactly one variant is populated,
// matching Kind.
type ActivityRecord struct {
	Kind         ActivityKind
	CheckIn      *CheckIn
	Goal         *Goal
	Conversation *ConversationTurn
}

// CheckInRecord wraps a check-in as an activity record.
func CheckInRecord(c CheckIn) ActivityRecord {
	return ActivityRecord{Kind: ActivityCheckIn, CheckIn: &c}
}

// GoalRecord wraps a goal snapshot as an activity record.
func GoalRecord(g Goal) ActivityRecord {
	return ActivityRecord{Kind: ActivityGoal, Goal: &g}
}

// ConversationRecord wraps a conversation turn as an activity record.
func ConversationRecord(t ConversationTurn) ActivityRecord {
	return ActivityRecord{Kind: ActivityConversation, Conversation: &t}
}

// Timestamp returns the record's single immutable timestamp used for
// all temporal bucketing.
func (r ActivityRecord) Timestamp() time.Time {
	switch r.Kind {
	case ActivityCheckIn:
		return r.CheckIn.CreatedAt
	case ActivityGoal:
		return r.Goal.CreatedAt
	case ActivityConversation:
		return r.Conversation.CreatedAt
	}
	return time.Time{}
}

// JoinActivity flattens the three fetched slices into one batch of
// activity records.
func JoinActivity(checkIns []CheckIn, goals []Goal, turns []ConversationTurn) []ActivityRecord {
	records := make([]ActivityRecord, 0, len(checkIns)+len(goals)+len(turns))
	for _, c := range checkIns {
		records = append(records, CheckInRecord(c))
	}
	for _, g := range goals {
		records = append(records, GoalRecord(g))
	}
	for _, t := range turns {
		records = append(records, ConversationRecord(t))
	}
	return records
}
