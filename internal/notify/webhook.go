package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// asyncTimeout is the maximum time to wait for an async webhook call.
const asyncTimeout = 5 * time.Second

// webhookNotifier posts intervention events to a push-notification
// gateway. Sends are asynchronous so the analysis path never blocks on
// the gateway.
type webhookNotifier struct {
	url        string
	authToken  string
	httpClient *http.Client
}

// NewWebhookNotifier returns a notifier that delivers events to the
// given webhook URL. The token, when set, is sent as a bearer token.
func NewWebhookNotifier(url, authToken string) Notifier {
	return &webhookNotifier{
		url:       url,
		authToken: authToken,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (n *webhookNotifier) ScheduleIntervention(_ context.Context, in Intervention) error {
	event := webhookEvent{
		ID:        uuid.New().String(),
		Type:      "intervention-scheduled",
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Body:      in,
	}

	// Fire async to keep the analysis path non-blocking
	go n.sendAsync(event)

	return nil
}

// sendAsync delivers an event with its own timeout. Errors are logged
// but not returned since delivery is fire-and-forget.
func (n *webhookNotifier) sendAsync(event webhookEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), asyncTimeout)
	defer cancel()

	if err := n.send(ctx, event); err != nil {
		log.Printf("[notify] async webhook send failed: %v", err)
	}
}

func (n *webhookNotifier) send(ctx context.Context, event webhookEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if n.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+n.authToken)
	}

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}

type webhookEvent struct {
	ID        string       `json:"id"`
	Type      string       `json:"type"`
	Timestamp string       `json:"timestamp"`
	Body      Intervention `json:"body"`
}
