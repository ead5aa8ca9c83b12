package port

import (
	"context"

	paymentsdomain "skyflyBff/internal/modules/payments/domain"
	"skyflyBff/internal/platform/rest"
)

// StatusFetcher returns the current status body of a transaction, or false
// when none could be obtained.
type StatusFetcher interface {
	Execute(ctx context.Context, query paymentsdomain.TransactionStatusQuery) (rest.Result, bool)
}
