package handler

import (
	"context"
	"encoding/json"
	"log/slog"

	"skyflyBff/internal/modules/realtime/application/port"
	"skyflyBff/internal/modules/realtime/application/usecase"
	"skyflyBff/internal/modules/realtime/domain"
)

// TransactionStatusHandler forwards status updates consumed from the broker
// to the websocket watchers of each transaction.
type TransactionStatusHandler struct {
	topic       string
	broadcastUC *usecase.BroadcastUseCase
	connectUC   *usecase.ConnectTransactionUseCase
}

func NewTransactionStatusHandler(topic string, broadcastUC *usecase.BroadcastUseCase, connectUC *usecase.ConnectTransactionUseCase) *TransactionStatusHandler {
	return &TransactionStatusHandler{topic: topic, broadcastUC: broadcastUC, connectUC: connectUC}
}

func (h *TransactionStatusHandler) Topic() string { return h.topic }

func (h *TransactionStatusHandler) Handle(ctx context.Context, msg *domain.Message) error {
	update, err := statusUpdateFrom(msg)
	if err != nil {
		return err
	}
	out, err := h.broadcastUC.PublishStatus(ctx, update)
	if err != nil {
		slog.Warn("transaction status event dropped", slog.String("topic", h.topic), slog.Any("error", err))
		return err
	}
	if h.connectUC != nil {
		h.connectUC.Remember(out)
	}
	return nil
}

// statusUpdateFrom reads the update from the decoded message data, falling
// back to the resource id for the transaction.
func statusUpdateFrom(msg *domain.Message) (domain.StatusUpdate, error) {
	var update domain.StatusUpdate
	if msg.Data != nil {
		raw, err := json.Marshal(msg.Data)
		if err != nil {
			return update, err
		}
		if err := json.Unmarshal(raw, &update); err != nil {
			return update, err
		}
	}
	if update.TransactionID == "" {
		update.TransactionID = msg.ResourceID
	}
	if update.Status == "" && msg.Metadata != nil {
		update.Status = msg.Metadata["status"]
	}
	return update, nil
}

var _ port.TopicHandler = (*TransactionStatusHandler)(nil)
