// Package notify dispatches intervention-scheduling events to the
// external notification pipeline. Dispatch is fire-and-forget: a
// failed send is logged, never surfaced to the analysis path.
package notify

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/habitflow/coach-api/internal/domain"
)

// Intervention is the event emitted when a high-urgency risk
// prediction asks for a coaching nudge.
type Intervention struct {
	UserID           uuid.UUID               `json:"user_id"`
	RiskScore        float64                 `json:"risk_score"`
	Urgency          domain.Urgency          `json:"urgency"`
	InterventionType domain.InterventionType `json:"intervention_type"`
	Recommendations  []string                `json:"recommendations"`
	ScheduledAt      time.Time               `json:"scheduled_at"`
}

// Notifier schedules an intervention with the external notifier.
type Notifier interface {
	ScheduleIntervention(ctx context.Context, in Intervention) error
}

// logNotifier is the default sink when no transport is configured.
type logNotifier struct{}

// NewLogNotifier returns a notifier that only logs scheduled
// interventions.
func NewLogNotifier() Notifier {
	return logNotifier{}
}

func (logNotifier) ScheduleIntervention(_ context.Context, in Intervention) error {
	log.Printf("[notify] intervention scheduled: user=%s type=%s urgency=%s risk=%.2f",
		in.UserID, in.InterventionType, in.Urgency, in.RiskScore)
	return nil
}
