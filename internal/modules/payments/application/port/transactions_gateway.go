package port

import (
	"context"
	"errors"

	"skyflyBff/internal/modules/payments/domain"
	"skyflyBff/internal/platform/rest"
)

var ErrMissingTransaction = errors.New("missing transaction id")

// TransactionsGateway forwards payment calls to the remote transactions API.
type TransactionsGateway interface {
	// Pay never fails with an error: every failure is folded into the Result.
	Pay(ctx context.Context, method domain.Method, req domain.PaymentRequest) rest.Result
	// Status returns the raw remote body.
	Status(ctx context.Context, query domain.TransactionStatusQuery) ([]byte, error)
}

// EventPublisher announces payment outcomes to other services.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.PaymentEvent) error
}
