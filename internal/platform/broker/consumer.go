package broker

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"skyflyBff/internal/modules/realtime/domain"
)

type KafkaConsumer struct {
	reader *kafka.Reader
}

func NewKafkaConsumer(brokers []string, groupID string, topic string) *KafkaConsumer {
	return &KafkaConsumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: brokers,
			GroupID: groupID,
			Topic:   topic,
		}),
	}
}

// Consume reads until ctx is done, handing every decoded message to handler
// together with its source topic.
func (c *KafkaConsumer) Consume(ctx context.Context, handler func(topic string, msg *domain.Message) error) error {
	defer c.reader.Close()
	for {
		m, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			slog.Warn("kafka read error", slog.Any("error", err))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(time.Second):
			}
			continue
		}
		msg := decodeMessage(m)
		slog.Info("kafka message consumed",
			slog.String("topic", m.Topic),
			slog.Int("partition", m.Partition),
			slog.Int64("offset", m.Offset),
			slog.String("resourceId", msg.ResourceID),
		)
		if err := handler(m.Topic, msg); err != nil {
			slog.Warn("kafka handler error", slog.String("topic", m.Topic), slog.Any("error", err))
		}
	}
}

// statusEvent is the payload published on the transaction status topic.
type statusEvent struct {
	TransactionID string          `json:"transactionId"`
	Status        string          `json:"status"`
	Message       string          `json:"message"`
	Data          json.RawMessage `json:"data"`
}

func decodeMessage(m kafka.Message) *domain.Message {
	msg := &domain.Message{
		Topic:     m.Topic,
		Entity:    domain.TransactionEntity,
		Action:    domain.ActionStatus,
		Timestamp: m.Time.UTC(),
	}
	if m.Time.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}

	var event statusEvent
	if err := json.Unmarshal(m.Value, &event); err != nil {
		msg.ResourceID = strings.TrimSpace(string(m.Key))
		msg.Data = string(m.Value)
		return msg
	}

	update := domain.StatusUpdate{
		TransactionID: strings.TrimSpace(event.TransactionID),
		Status:        strings.TrimSpace(event.Status),
		Message:       event.Message,
	}
	if len(event.Data) > 0 && string(event.Data) != "null" {
		update.Data = event.Data
	}
	if update.TransactionID == "" {
		update.TransactionID = strings.TrimSpace(string(m.Key))
	}
	msg.ResourceID = update.TransactionID
	msg.Metadata = map[string]string{"status": update.Status}
	msg.Data = update
	return msg
}
