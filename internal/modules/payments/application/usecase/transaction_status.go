package usecase

import (
	"context"
	"log/slog"

	"skyflyBff/internal/modules/payments/application/port"
	"skyflyBff/internal/modules/payments/domain"
	"skyflyBff/internal/platform/rest"
)

type TransactionStatusUseCase struct {
	gateway port.TransactionsGateway
}

func NewTransactionStatusUseCase(gateway port.TransactionsGateway) *TransactionStatusUseCase {
	return &TransactionStatusUseCase{gateway: gateway}
}

// Execute returns the remote status body. Unlike payment submission, a failed
// lookup yields no value at all: the cause is only logged.
func (uc *TransactionStatusUseCase) Execute(ctx context.Context, query domain.TransactionStatusQuery) (rest.Result, bool) {
	body, err := uc.gateway.Status(ctx, query)
	if err != nil {
		slog.Error("transaction status failed", slog.String("transactionId", query.TransactionID), slog.Any("error", err))
		return rest.Result{}, false
	}
	return rest.Ok(body), true
}
