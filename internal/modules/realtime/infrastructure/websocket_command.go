package infrastructure

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"skyflyBff/internal/modules/realtime/domain"
)

// Command is a message sent by a websocket client, e.g. {"action":"status"}.
type Command struct {
	Action string `json:"action"`
	Topic  string `json:"topic,omitempty"`
}

// SnapshotFunc looks up the current status of a transaction on behalf of the
// token holder. It returns nil when no status is available.
type SnapshotFunc func(ctx context.Context, transactionID, token string) *domain.Message

const statusLookupTimeout = 10 * time.Second

const (
	commandPing        = "ping"
	commandStatus      = "status"
	commandUnsubscribe = "unsubscribe"
)

func (c *Client) processCommand(cmd Command) {
	switch action := strings.ToLower(strings.TrimSpace(cmd.Action)); action {
	case "":
	case commandPing:
		c.SendDomainMessage(systemMessage(domain.TopicSystemPong, domain.ActionPong, nil))
	case commandStatus:
		go c.refreshStatus()
	case commandUnsubscribe:
		// Clients are only ever subscribed to their own transaction.
		topic := strings.TrimSpace(cmd.Topic)
		if topic == "" {
			topic = domain.TransactionTopic(c.transactionID)
		}
		c.hub.unsubscribe(c, topic)
	default:
		slog.Debug("ws command ignored", slog.String("sessionId", c.sessionID), slog.String("action", action))
	}
}

// refreshStatus sends a fresh snapshot, or a system error when the lookup
// yields nothing.
func (c *Client) refreshStatus() {
	var msg *domain.Message
	if c.snapshot != nil {
		ctx, cancel := context.WithTimeout(context.Background(), statusLookupTimeout)
		msg = c.snapshot(ctx, c.transactionID, c.token)
		cancel()
	}
	if msg == nil {
		msg = systemMessage(domain.TopicSystemError, domain.ActionError, map[string]string{
			"transactionId": c.transactionID,
			"reason":        "status unavailable",
		})
	}
	c.SendDomainMessage(msg)
}

func systemMessage(topic, action string, metadata map[string]string) *domain.Message {
	return &domain.Message{
		Topic:     topic,
		Entity:    domain.SystemEntity,
		Action:    action,
		Metadata:  metadata,
		Timestamp: time.Now().UTC(),
	}
}
