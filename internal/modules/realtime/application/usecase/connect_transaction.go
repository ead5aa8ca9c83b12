package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	paymentsdomain "skyflyBff/internal/modules/payments/domain"
	"skyflyBff/internal/modules/realtime/application/port"
	"skyflyBff/internal/modules/realtime/domain"
	"skyflyBff/internal/shared/auth"
	"skyflyBff/internal/shared/logging"
)

type ConnectTransactionInput struct {
	Token         string
	TransactionID string
}

type ConnectTransactionOutput struct {
	Topics []string
	// Snapshot is nil when the current status could not be fetched.
	Snapshot *domain.Message
}

// ConnectTransactionUseCase admits a websocket watcher of one transaction.
type ConnectTransactionUseCase struct {
	checker auth.CredentialChecker
	status  port.StatusFetcher
	cache   *snapshotCache
	now     func() time.Time
}

func NewConnectTransactionUseCase(checker auth.CredentialChecker, status port.StatusFetcher) *ConnectTransactionUseCase {
	return &ConnectTransactionUseCase{
		checker: checker,
		status:  status,
		cache:   newSnapshotCache(),
		now:     time.Now,
	}
}

func (uc *ConnectTransactionUseCase) Execute(ctx context.Context, input ConnectTransactionInput) (*ConnectTransactionOutput, error) {
	transactionID := strings.TrimSpace(input.TransactionID)
	if transactionID == "" {
		return nil, domain.ErrMissingTransaction
	}
	if err := uc.checker.Check(input.Token); err != nil {
		slog.Warn("connect-transaction credentials rejected", slog.String("transactionId", transactionID), logging.TokenAttr(input.Token), slog.Any("error", err))
		return nil, err
	}

	return &ConnectTransactionOutput{
		Topics:   []string{domain.TransactionTopic(transactionID)},
		Snapshot: uc.snapshot(ctx, transactionID, input.Token),
	}, nil
}

// Remember records the latest message seen for a transaction. It only
// updates callers the backend has already admitted, so a later lookup failure
// never hands the status to someone who could not fetch it.
func (uc *ConnectTransactionUseCase) Remember(msg *domain.Message) {
	if msg == nil {
		return
	}
	uc.cache.refresh(msg.ResourceID, msg)
}

// Refresh re-checks the caller and returns a fresh snapshot, or nil when none
// is available.
func (uc *ConnectTransactionUseCase) Refresh(ctx context.Context, transactionID, token string) *domain.Message {
	transactionID = strings.TrimSpace(transactionID)
	if transactionID == "" || uc.checker.Check(token) != nil {
		return nil
	}
	return uc.snapshot(ctx, transactionID, token)
}

func (uc *ConnectTransactionUseCase) snapshot(ctx context.Context, transactionID, token string) *domain.Message {
	if uc.status != nil {
		result, ok := uc.status.Execute(ctx, paymentsdomain.TransactionStatusQuery{TransactionID: transactionID, Token: token})
		if ok {
			msg := domain.BuildSnapshotMessage(transactionID, result.Body(), uc.now())
			uc.cache.set(transactionID, token, msg)
			return msg
		}
	}
	if cached, ok := uc.cache.get(transactionID, token); ok {
		slog.Info("connect-transaction serving cached status", slog.String("transactionId", transactionID), slog.Time("fetchedAt", cached.fetchedAt))
		return cached.msg
	}
	return nil
}
