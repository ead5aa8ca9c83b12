package usecase

import (
	"context"
	"log/slog"
	"time"

	"skyflyBff/internal/modules/realtime/application/port"
	"skyflyBff/internal/modules/realtime/domain"
)

type BroadcastUseCase struct {
	broadcaster port.Broadcaster
	now         func() time.Time
}

func NewBroadcastUseCase(b port.Broadcaster) *BroadcastUseCase {
	return &BroadcastUseCase{broadcaster: b, now: time.Now}
}

// PublishStatus broadcasts update on its transaction topic.
func (uc *BroadcastUseCase) PublishStatus(ctx context.Context, update domain.StatusUpdate) (*domain.Message, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}
	msg := domain.BuildStatusMessage(update, uc.now())
	slog.Info("transaction status broadcast", slog.String("transactionId", msg.ResourceID), slog.String("status", update.Status))
	uc.broadcaster.Broadcast(ctx, msg)
	return msg, nil
}
