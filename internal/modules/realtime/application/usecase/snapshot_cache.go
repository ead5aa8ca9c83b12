package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"skyflyBff/internal/modules/realtime/domain"
)

const maxCachedTransactions = 1024

// snapshotCache keeps the last status of a transaction per admitted caller.
// A caller only ever reads back entries stored under its own token.
type snapshotCache struct {
	mu      sync.RWMutex
	entries map[string]*transactionSnapshots
}

type transactionSnapshots struct {
	byCaller  map[string]snapshotCacheEntry
	touchedAt time.Time
}

type snapshotCacheEntry struct {
	msg       *domain.Message
	fetchedAt time.Time
}

func newSnapshotCache() *snapshotCache {
	return &snapshotCache{entries: make(map[string]*transactionSnapshots)}
}

func callerKey(token string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(token)))
	return hex.EncodeToString(sum[:])
}

// set stores msg for the caller identified by token.
func (c *snapshotCache) set(transactionID, token string, msg *domain.Message) {
	transactionID = strings.TrimSpace(transactionID)
	if transactionID == "" || msg == nil {
		return
	}
	now := time.Now().UTC()
	c.mu.Lock()
	defer c.mu.Unlock()
	snapshots, exists := c.entries[transactionID]
	if !exists {
		if len(c.entries) >= maxCachedTransactions {
			c.evictOldestLocked()
		}
		snapshots = &transactionSnapshots{byCaller: make(map[string]snapshotCacheEntry)}
		c.entries[transactionID] = snapshots
	}
	snapshots.byCaller[callerKey(token)] = snapshotCacheEntry{msg: msg, fetchedAt: now}
	snapshots.touchedAt = now
}

// refresh replaces msg for every caller already admitted to the transaction.
func (c *snapshotCache) refresh(transactionID string, msg *domain.Message) int {
	if msg == nil {
		return 0
	}
	now := time.Now().UTC()
	c.mu.Lock()
	defer c.mu.Unlock()
	snapshots, ok := c.entries[strings.TrimSpace(transactionID)]
	if !ok {
		return 0
	}
	for key := range snapshots.byCaller {
		snapshots.byCaller[key] = snapshotCacheEntry{msg: msg, fetchedAt: now}
	}
	snapshots.touchedAt = now
	return len(snapshots.byCaller)
}

func (c *snapshotCache) get(transactionID, token string) (snapshotCacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	snapshots, ok := c.entries[strings.TrimSpace(transactionID)]
	if !ok {
		return snapshotCacheEntry{}, false
	}
	entry, ok := snapshots.byCaller[callerKey(token)]
	return entry, ok
}

func (c *snapshotCache) evictOldestLocked() {
	var (
		oldestKey string
		oldestAt  time.Time
	)
	for key, snapshots := range c.entries {
		if oldestKey == "" || snapshots.touchedAt.Before(oldestAt) {
			oldestKey, oldestAt = key, snapshots.touchedAt
		}
	}
	delete(c.entries, oldestKey)
}
