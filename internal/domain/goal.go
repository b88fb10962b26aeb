package domain

import (
	"time"

	"github.com/google/uuid"
)

// GoalStatus represents the lifecycle state of a goal.
type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusCompleted GoalStatus = "completed"
)

// GoalDifficulty is the self-assessed difficulty of a goal.
type GoalDifficulty string

const (
	GoalDifficultyEasy   GoalDifficulty = "easy"
	GoalDifficultyMedium GoalDifficulty = "medium"
	GoalDifficultyHard   GoalDifficulty = "hard"
)

// DefaultGoalCategory is applied when a goal has no category.
const DefaultGoalCategory = "general"

type Goal struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Category    string     `gorm:"type:varchar(64);not null;default:'general'" json:"category"`
	Progress    float64    `gorm:"not null;default:0" json:"progress"`
	Status      GoalStatus `gorm:"type:varchar(16);not null;default:'active'" json:"status"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Associations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Goal) TableName() string {
	return "goals"
}

// Completed reports whether the goal has reached full progress.
func (g *Goal) Completed() bool {
	return g.Progress >= 100 || g.Status == GoalStatusCompleted
}

// AgeDays returns how many days ago the goal was created.
func (g *Goal) AgeDays(now time.Time) float64 {
	return now.Sub(g.CreatedAt).Hours() / 24
}

// CreateGoalRequest is the request body for creating a goal.
type CreateGoalRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"max=2000"`
	// Category defaults to "general" when omitted
	Category string `json:"category" validate:"omitempty,max=64"`
}

// UpdateGoalProgressRequest is the request body for a progress update.
type UpdateGoalProgressRequest struct {
	Progress float64 `json:"progress" validate:"min=0,max=100"`
}

// GoalResponse is the response body for goal endpoints.
type GoalResponse struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Progress    float64    `json:"progress"`
	Status      GoalStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (g *Goal) ToResponse() GoalResponse {
	return GoalResponse{
		ID:          g.ID,
		UserID:      g.UserID,
		Title:       g.Title,
		Description: g.Description,
		Category:    g.Category,
		Progress:    g.Progress,
		Status:      g.Status,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}
