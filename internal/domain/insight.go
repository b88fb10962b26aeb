package domain

import (
	"time"

	"github.com/google/uuid"
)

// PatternType classifies a generated insight.
type PatternType string

const (
	PatternPeakPerformance    PatternType = "peak_performance"
	PatternStrugglePoints     PatternType = "struggle_points"
	PatternMotivationTriggers PatternType = "motivation_triggers"
)

// InsightTTL is how long an insight stays relevant after creation.
const InsightTTL = 30 * 24 * time.Hour

// Insight is a persisted, confidence-scored statement about a detected
// behavioral pattern. Insights are immutable after creation and
// logically expire after 30 days; readers filter on ExpiresAt.
type Insight struct {
	ID               uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID           uuid.UUID   `gorm:"type:uuid;not null;index" json:"user_id"`
	PatternType      PatternType `gorm:"type:varchar(32);not null" json:"pattern_type"`
	Title            string      `gorm:"type:varchar(255);not null" json:"title"`
	Description      string      `gorm:"type:text;not null" json:"description"`
	Confidence       float64     `gorm:"not null" json:"confidence"`
	SupportingData   JSONMap     `gorm:"type:jsonb" json:"supporting_data"`
	Actionable       bool        `gorm:"not null" json:"actionable"`
	SuggestedActions StringList  `gorm:"type:jsonb" json:"suggested_actions"`
	Embedding        Vector      `gorm:"type:jsonb" json:"-"`
	CreatedAt        time.Time   `gorm:"autoCreateTime" json:"created_at"`
	ExpiresAt        time.Time   `gorm:"not null;index" json:"expires_at"`

	// Associations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Insight) TableName() string {
	return "insights"
}

// Expired reports whether the insight has passed its expiry.
func (i *Insight) Expired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

// InsightResponse is the response body for insight endpoints. The
// embedding vector is internal and never exposed.
type InsightResponse struct {
	ID               uuid.UUID   `json:"id"`
	UserID           uuid.UUID   `json:"user_id"`
	PatternType      PatternType `json:"pattern_type"`
	Title            string      `json:"title"`
	Description      string      `json:"description"`
	Confidence       float64     `json:"confidence"`
	SupportingData   JSONMap     `json:"supporting_data,omitempty"`
	Actionable       bool        `json:"actionable"`
	SuggestedActions []string    `json:"suggested_actions"`
	CreatedAt        time.Time   `json:"created_at"`
	ExpiresAt        time.Time   `json:"expires_at"`
}

func (i *Insight) ToResponse() InsightResponse {
	return InsightResponse{
		ID:               i.ID,
		UserID:           i.UserID,
		PatternType:      i.PatternType,
		Title:            i.Title,
		Description:      i.Description,
		Confidence:       i.Confidence,
		SupportingData:   i.SupportingData,
		Actionable:       i.Actionable,
		SuggestedActions: i.SuggestedActions,
		CreatedAt:        i.CreatedAt,
		ExpiresAt:        i.ExpiresAt,
	}
}
