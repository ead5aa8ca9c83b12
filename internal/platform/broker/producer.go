package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"skyflyBff/internal/modules/payments/application/port"
	"skyflyBff/internal/modules/payments/domain"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaEventPublisher publishes payment events keyed by flight id, so all
// events of one flight land on the same partition.
type KafkaEventPublisher struct {
	writer messageWriter
}

func NewKafkaEventPublisher(brokers []string, topic string) *KafkaEventPublisher {
	return &KafkaEventPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 50 * time.Millisecond,
		},
	}
}

func (p *KafkaEventPublisher) Publish(ctx context.Context, event domain.PaymentEvent) error {
	msg, err := encodeEvent(event)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish payment event %s: %w", event.ID, err)
	}
	return nil
}

func (p *KafkaEventPublisher) Close() error {
	return p.writer.Close()
}

func encodeEvent(event domain.PaymentEvent) (kafka.Message, error) {
	value, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("encode payment event: %w", err)
	}
	return kafka.Message{
		Key:   []byte(event.FlightID),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "eventId", Value: []byte(event.ID)},
			{Key: "method", Value: []byte(event.Method)},
		},
	}, nil
}

var _ port.EventPublisher = (*KafkaEventPublisher)(nil)
