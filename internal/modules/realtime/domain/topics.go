package domain

import "strings"

const (
	SystemEntity      = "system"
	TransactionEntity = "transactions"

	TopicSystemConnected = SystemEntity + ".connected"
	TopicSystemPong      = SystemEntity + ".pong"
	TopicSystemError     = SystemEntity + ".error"

	ActionConnected = "connected"
	ActionPong      = "pong"
	ActionError     = "error"
	ActionSnapshot  = "snapshot"
	ActionStatus    = "status"
)

// TransactionTopic returns the topic clients watching transactionID subscribe to.
func TransactionTopic(transactionID string) string {
	return CustomTopic(TransactionEntity, transactionID)
}

// CustomTopic returns the canonical topic for the given entity and key.
func CustomTopic(entity, key string) string {
	cleanEntity := strings.TrimSpace(entity)
	cleanKey := strings.TrimSpace(key)
	if cleanEntity == "" || cleanKey == "" {
		return ""
	}
	return cleanEntity + "." + cleanKey
}
