package domain

import (
	"time"

	"github.com/google/uuid"
)

// CheckIn is a daily self-report: mood, energy, and stress on a 1-5
// scale plus free-text reflections.
type CheckIn struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index:idx_check_ins_user_created" json:"user_id"`
	Mood            int       `gorm:"type:smallint;not null" json:"mood"`
	Energy          int       `gorm:"type:smallint;not null" json:"energy"`
	Stress          int       `gorm:"type:smallint;not null" json:"stress"`
	Wins            string    `gorm:"type:text" json:"wins"`
	Challenges      string    `gorm:"type:text" json:"challenges"`
	Priorities      string    `gorm:"type:text" json:"priorities"`
	ClientRequestID *string   `gorm:"type:varchar(255);uniqueIndex:idx_check_in_client_request,where:client_request_id IS NOT NULL" json:"client_request_id,omitempty"`
	CreatedAt       time.Time `gorm:"autoCreateTime;index:idx_check_ins_user_created,sort:desc" json:"created_at"`

	// Associations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (CheckIn) TableName() string {
	return "check_ins"
}

// CreateCheckInRequest is the request body for recording a check-in.
type CreateCheckInRequest struct {
	// Mood rating from 1 (low) to 5 (high)
	Mood int `json:"mood" validate:"required,min=1,max=5" example:"4"`
	// Energy rating from 1 (drained) to 5 (energized)
	Energy int `json:"energy" validate:"required,min=1,max=5" example:"3"`
	// Stress rating from 1 (calm) to 5 (overwhelmed)
	Stress int `json:"stress" validate:"required,min=1,max=5" example:"2"`
	// What went well since the last check-in
	Wins string `json:"wins" validate:"max=2000"`
	// What felt hard since the last check-in
	Challenges string `json:"challenges" validate:"max=2000"`
	// Intentions for the coming day
	Priorities string `json:"priorities" validate:"max=2000"`
	// Optional client-generated ID for idempotent requests
	ClientRequestID *string `json:"client_request_id,omitempty" validate:"omitempty,max=255"`
}

// CheckInResponse is the response body for check-in endpoints.
type CheckInResponse struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	Mood            int       `json:"mood"`
	Energy          int       `json:"energy"`
	Stress          int       `json:"stress"`
	Wins            string    `json:"wins"`
	Challenges      string    `json:"challenges"`
	Priorities      string    `json:"priorities"`
	ClientRequestID *string   `json:"client_request_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func (c *CheckIn) ToResponse() CheckInResponse {
	return CheckInResponse{
		ID:              c.ID,
		UserID:          c.UserID,
		Mood:            c.Mood,
		Energy:          c.Energy,
		Stress:          c.Stress,
		Wins:            c.Wins,
		Challenges:      c.Challenges,
		Priorities:      c.Priorities,
		ClientRequestID: c.ClientRequestID,
		CreatedAt:       c.CreatedAt,
	}
}

// CheckInListResponse is the response body for listing check-ins.
type CheckInListResponse struct {
	Data       []CheckInResponse  `json:"data"`
	Pagination PaginationResponse `json:"pagination"`
}

// PaginationResponse contains cursor pagination metadata.
type PaginationResponse struct {
	NextCursor string `json:"next_cursor,omitempty"`
	HasMore    bool   `json:"has_more"`
}

// CheckInFilter contains filter parameters for listing check-ins.
type CheckInFilter struct {
	From   *time.Time
	To     *time.Time
	Limit  int
	Cursor string
}
