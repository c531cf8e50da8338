// Package cache
package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"
)

type memoryEntry struct {
	data      []byte
	timestamp time.Time
}

// Memory is the in-process cache adapter. Values are JSON round-tripped so
// callers get their own copy, matching the redis adapter's semantics.
type Memory struct {
	ttl    time.Duration
	logger *zap.Logger

	mu      sync.RWMutex
	entries map[string]memoryEntry

	now func() time.Time
}

func NewMemory(ttl time.Duration, logger *zap.Logger) *Memory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Memory{
		ttl:     ttl,
		logger:  logger.With(zap.String("cache", "memory")),
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (c *Memory) Get(ctx context.Context, key string, value interface{}) bool {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return false
	}
	// expired-but-present is the same as absent
	if c.now().Sub(entry.timestamp) >= c.ttl {
		return false
	}
	if err := json.Unmarshal(entry.data, value); err != nil {
		c.logger.Warn("cannot decode cached value", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (c *Memory) Set(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("cannot encode value for cache", zap.String("key", key), zap.Error(err))
		return
	}
	c.mu.Lock()
	c.entries[key] = memoryEntry{data: data, timestamp: c.now()}
	c.mu.Unlock()
}

func (c *Memory) Clear(ctx context.Context) {
	c.mu.Lock()
	c.entries = make(map[string]memoryEntry)
	c.mu.Unlock()
}
