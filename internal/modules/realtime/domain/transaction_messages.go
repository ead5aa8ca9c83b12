package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

var ErrMissingTransaction = errors.New("missing transaction id")

// StatusUpdate is a transaction status change pushed by the backend, either
// through the status topic or the notify webhook.
type StatusUpdate struct {
	TransactionID string `json:"transactionId"`
	Status        string `json:"status"`
	Message       string `json:"message,omitempty"`
	Data          any    `json:"data,omitempty"`
}

func (u StatusUpdate) Validate() error {
	if strings.TrimSpace(u.TransactionID) == "" {
		return ErrMissingTransaction
	}
	return nil
}

// BuildStatusMessage turns an update into the message sent on the
// transaction's topic.
func BuildStatusMessage(update StatusUpdate, at time.Time) *Message {
	transactionID := strings.TrimSpace(update.TransactionID)
	metadata := map[string]string{"transactionId": transactionID}
	if status := strings.TrimSpace(update.Status); status != "" {
		metadata["status"] = status
	}

	data := map[string]any{"status": strings.TrimSpace(update.Status)}
	if update.Message != "" {
		data["message"] = update.Message
	}
	if update.Data != nil {
		data["data"] = update.Data
	}

	return &Message{
		Topic:      TransactionTopic(transactionID),
		Entity:     TransactionEntity,
		Action:     ActionStatus,
		ResourceID: transactionID,
		Metadata:   metadata,
		Data:       data,
		Timestamp:  at.UTC(),
	}
}

// BuildSnapshotMessage wraps the raw status body returned by the backend.
// Bodies that are not JSON are sent as a string.
func BuildSnapshotMessage(transactionID string, body []byte, at time.Time) *Message {
	transactionID = strings.TrimSpace(transactionID)
	var data any = string(body)
	if json.Valid(body) {
		data = json.RawMessage(body)
	}
	return &Message{
		Topic:      TransactionTopic(transactionID),
		Entity:     TransactionEntity,
		Action:     ActionSnapshot,
		ResourceID: transactionID,
		Metadata:   map[string]string{"transactionId": transactionID},
		Data:       data,
		Timestamp:  at.UTC(),
	}
}
