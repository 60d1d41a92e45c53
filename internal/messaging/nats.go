package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/teamup/backend/internal/models"
	"github.com/teamup/backend/pkg/logger"
)

// NATSNotifier publishes notification events to a NATS subject. Consumers
// (mobile push, websocket gateways) subscribe out of process; the backend
// never waits for them.
type NATSNotifier struct {
	conn    *nats.Conn
	subject string
}

func NewNATSNotifier(url, subject string) (*NATSNotifier, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("nats connect %s: %w", url, err)
	}
	return &NATSNotifier{conn: conn, subject: subject}, nil
}

type notificationEvent struct {
	Recipient string `json:"recipient"`
	Type      string `json:"type"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

func (n *NATSNotifier) Notify(ctx context.Context, notification models.Notification) error {
	event := notificationEvent{
		Recipient: notification.Recipient,
		Type:      string(notification.Type),
		Content:   notification.Content,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	raw, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return n.conn.Publish(n.subject, raw)
}

func (n *NATSNotifier) Close() {
	n.conn.Close()
}

// LogNotifier stands in when no NATS server is configured (local dev).
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, notification models.Notification) error {
	logger.Info("notification", map[string]interface{}{
		"recipient": notification.Recipient,
		"type":      string(notification.Type),
		"content":   notification.Content,
	})
	return nil
}
