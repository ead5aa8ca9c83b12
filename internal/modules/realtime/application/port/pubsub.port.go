package port

import (
	"context"

	"skyflyBff/internal/modules/realtime/domain"
)

// Broadcaster sends messages to the websocket clients of a topic.
type Broadcaster interface {
	Broadcast(ctx context.Context, msg *domain.Message)
}

// TopicHandler handles every message consumed from one broker topic.
type TopicHandler interface {
	Topic() string
	Handle(ctx context.Context, msg *domain.Message) error
}
