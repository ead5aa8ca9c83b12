package infrastructure

import (
	"context"
	"log/slog"

	"skyflyBff/internal/modules/realtime/application/port"
	"skyflyBff/internal/modules/realtime/domain"
)

// HandlerRegistry routes consumed broker messages to the handler of their
// source topic.
type HandlerRegistry struct {
	handlers map[string]port.TopicHandler
}

func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{handlers: make(map[string]port.TopicHandler)}
}

func (r *HandlerRegistry) Register(h port.TopicHandler) {
	r.handlers[h.Topic()] = h
}

func (r *HandlerRegistry) Topics() []string {
	topics := make([]string, 0, len(r.handlers))
	for topic := range r.handlers {
		topics = append(topics, topic)
	}
	return topics
}

func (r *HandlerRegistry) Dispatch(ctx context.Context, sourceTopic string, msg *domain.Message) error {
	handler, ok := r.handlers[sourceTopic]
	if !ok {
		slog.Debug("no handler for topic", slog.String("topic", sourceTopic))
		return nil
	}
	return handler.Handle(ctx, msg)
}
