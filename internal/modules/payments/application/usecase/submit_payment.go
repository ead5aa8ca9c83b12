package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"skyflyBff/internal/modules/payments/application/port"
	"skyflyBff/internal/modules/payments/domain"
	"skyflyBff/internal/platform/rest"
	"skyflyBff/internal/shared/logging"
)

// defaultPublishTimeout bounds how long an event publish may hold up the
// payment response.
const defaultPublishTimeout = 2 * time.Second

type SubmitPaymentUseCase struct {
	gateway        port.TransactionsGateway
	publisher      port.EventPublisher
	publishTimeout time.Duration
	now            func() time.Time
	newID          func() string
}

// NewSubmitPaymentUseCase wires the gateway and an optional publisher.
func NewSubmitPaymentUseCase(gateway port.TransactionsGateway, publisher port.EventPublisher) *SubmitPaymentUseCase {
	return &SubmitPaymentUseCase{
		gateway:        gateway,
		publisher:      publisher,
		publishTimeout: defaultPublishTimeout,
		now:            time.Now,
		newID:          uuid.NewString,
	}
}

// Execute forwards the payment and returns the remote outcome untouched.
// Publishing the outcome is best-effort.
func (uc *SubmitPaymentUseCase) Execute(ctx context.Context, method domain.Method, req domain.PaymentRequest) rest.Result {
	slog.Info("payment submit start", slog.String("method", string(method)), slog.String("flightId", req.FlightID), slog.Int("passengers", len(req.Passengers)), logging.TokenAttr(req.Token))

	result := uc.gateway.Pay(ctx, method, req)
	if result.IsOk() {
		slog.Info("payment submit accepted", slog.String("method", string(method)), slog.String("flightId", req.FlightID))
	} else {
		slog.Warn("payment submit failed", slog.String("method", string(method)), slog.String("flightId", req.FlightID), slog.String("message", result.Message()))
	}

	uc.publish(ctx, domain.PaymentEvent{
		ID:         uc.newID(),
		Method:     method,
		FlightID:   req.FlightID,
		OK:         result.IsOk(),
		Message:    result.Message(),
		OccurredAt: uc.now().UTC(),
	})
	return result
}

func (uc *SubmitPaymentUseCase) publish(ctx context.Context, event domain.PaymentEvent) {
	if uc.publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.publishTimeout)
	defer cancel()
	if err := uc.publisher.Publish(ctx, event); err != nil {
		slog.Error("payment event publish failed", slog.String("eventId", event.ID), slog.String("method", string(event.Method)), slog.Any("error", err))
	}
}
