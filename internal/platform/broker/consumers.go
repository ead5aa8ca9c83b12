package broker

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"skyflyBff/internal/modules/realtime/domain"
	"skyflyBff/internal/modules/realtime/infrastructure"
)

// RunKafkaConsumers runs one consumer per registered topic and blocks until
// ctx is done. It returns immediately without brokers.
func RunKafkaConsumers(ctx context.Context, registry *infrastructure.HandlerRegistry, brokers []string, groupID string) error {
	if len(brokers) == 0 {
		slog.Info("kafka consumers disabled: no brokers configured")
		return nil
	}
	g, ctx := errgroup.WithContext(ctx)
	for _, topic := range registry.Topics() {
		topic := topic
		g.Go(func() error {
			consumer := NewKafkaConsumer(brokers, groupID, topic)
			slog.Info("kafka consumer started", slog.String("topic", topic), slog.String("groupId", groupID))
			defer slog.Info("kafka consumer stopped", slog.String("topic", topic))
			return consumer.Consume(ctx, func(source string, msg *domain.Message) error {
				return registry.Dispatch(ctx, source, msg)
			})
		})
	}
	return g.Wait()
}
