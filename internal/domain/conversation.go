package domain

import (
	"time"

	"github.com/google/uuid"
)

// Sender identifies which side of the coaching dialogue wrote a turn.
type Sender string

const (
	SenderUser  Sender = "user"
	SenderCoach Sender = "coach"
)

// ConversationTurn is a single message in the coaching dialogue.
// Sentiment is optional; turns without it are skipped by the
// motivation extractor.
type ConversationTurn struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_conversation_turns_user_created" json:"user_id"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Sender    Sender    `gorm:"type:varchar(8);not null" json:"sender"`
	Sentiment *float64  `gorm:"type:double precision" json:"sentiment,omitempty"`
	CoachID   string    `gorm:"type:varchar(64)" json:"coach_id,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_conversation_turns_user_created,sort:desc" json:"created_at"`

	// Associations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ConversationTurn) TableName() string {
	return "conversation_turns"
}

// CreateConversationTurnRequest is the request body for recording a turn.
type CreateConversationTurnRequest struct {
	Message string `json:"message" validate:"required,max=4000"`
	Sender  Sender `json:"sender" validate:"required,oneof=user coach"`
	// Optional sentiment score between -1 and 1
	Sentiment *float64 `json:"sentiment,omitempty" validate:"omitempty,min=-1,max=1"`
	CoachID   string   `json:"coach_id,omitempty" validate:"omitempty,max=64"`
}

// ConversationTurnResponse is the response body for conversation endpoints.
type ConversationTurnResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Message   string    `json:"message"`
	Sender    Sender    `json:"sender"`
	Sentiment *float64  `json:"sentiment,omitempty"`
	CoachID   string    `json:"coach_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (t *ConversationTurn) ToResponse() ConversationTurnResponse {
	return ConversationTurnResponse{
		ID:        t.ID,
		UserID:    t.UserID,
		Message:   t.Message,
		Sender:    t.Sender,
		Sentiment: t.Sentiment,
		CoachID:   t.CoachID,
		CreatedAt: t.CreatedAt,
	}
}
