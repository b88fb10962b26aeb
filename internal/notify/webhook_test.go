package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/habitflow/coach-api/internal/domain"
)

func TestWebhookNotifier_Delivers(t *testing.T) {
	received := make(chan webhookEvent, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("Authorization = %q", got)
		}
		var event webhookEvent
		if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
			t.Errorf("decode body: %v", err)
		}
		received <- event
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	n := NewWebhookNotifier(srv.URL, "secret")
	in := Intervention{
		UserID:           uuid.New(),
		RiskScore:        0.8,
		Urgency:          domain.UrgencyHigh,
		InterventionType: domain.InterventionGoalProgress,
		ScheduledAt:      time.Now().UTC(),
	}

	if err := n.ScheduleIntervention(context.Background(), in); err != nil {
		t.Fatalf("ScheduleIntervention() error = %v", err)
	}

	select {
	case event := <-received:
		if event.Type != "intervention-scheduled" {
			t.Errorf("event type = %q", event.Type)
		}
		if event.Body.UserID != in.UserID {
			t.Errorf("user = %v, want %v", event.Body.UserID, in.UserID)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("webhook was never called")
	}
}

func TestLogNotifier_NoError(t *testing.T) {
	n := NewLogNotifier()
	err := n.ScheduleIntervention(context.Background(), Intervention{
		UserID:  uuid.New(),
		Urgency: domain.UrgencyHigh,
	})
	if err != nil {
		t.Errorf("ScheduleIntervention() error = %v", err)
	}
}
