package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/nats-io/nats.go"
)

// SubjectInterventionScheduled is the NATS subject intervention events
// are published on.
const SubjectInterventionScheduled = "coach.intervention.scheduled"

type natsNotifier struct {
	conn *nats.Conn
}

// NewNATSNotifier connects to NATS and returns a notifier that
// publishes intervention events.
func NewNATSNotifier(url, token string) (Notifier, error) {
	opts := []nats.Option{
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(60),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Printf("[notify] nats disconnected: %v", err)
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			log.Println("[notify] nats reconnected")
		}),
	}
	if token != "" {
		opts = append(opts, nats.Token(token))
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	return &natsNotifier{conn: nc}, nil
}

func (n *natsNotifier) ScheduleIntervention(_ context.Context, in Intervention) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal intervention: %w", err)
	}
	return n.conn.Publish(SubjectInterventionScheduled, payload)
}
