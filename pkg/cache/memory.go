package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

const (
	defaultMemoryMaxSize = 1000
	memoryCleanupEvery   = 5 * time.Minute
	// entries stored with no explicit TTL still expire eventually
	memoryDefaultTTL = 7 * 24 * time.Hour
)

type memoryEntry struct {
	value     interface{}
	expiresAt time.Time
	lastUsed  time.Time
}

// MemoryCache implements Service with an in-process map and LRU eviction.
// Suitable standalone when Redis is disabled, or as the L1 of LayeredCache.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	maxSize int
	ticker  *time.Ticker
}

func NewMemoryCache(opts ...MemoryOption) *MemoryCache {
	cfg := &MemoryConfig{MaxSize: defaultMemoryMaxSize}
	for _, opt := range opts {
		opt(cfg)
	}

	mc := &MemoryCache{
		entries: make(map[string]*memoryEntry),
		maxSize: cfg.MaxSize,
		ticker:  time.NewTicker(memoryCleanupEvery),
	}
	go mc.cleanupLoop()
	return mc
}

func (mc *MemoryCache) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if len(mc.entries) >= mc.maxSize {
		mc.evictOldest()
	}

	if expiration <= 0 {
		expiration = memoryDefaultTTL
	}
	now := time.Now()
	mc.entries[key] = &memoryEntry{
		value:     value,
		expiresAt: now.Add(expiration),
		lastUsed:  now,
	}
	return nil
}

func (mc *MemoryCache) Get(_ context.Context, key string, dest interface{}) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	entry, ok := mc.entries[key]
	if !ok {
		return ErrCacheMiss
	}
	if time.Now().After(entry.expiresAt) {
		delete(mc.entries, key)
		return ErrCacheMiss
	}
	entry.lastUsed = time.Now()

	switch d := dest.(type) {
	case *string:
		if s, ok := entry.value.(string); ok {
			*d = s
			return nil
		}
	case *interface{}:
		*d = entry.value
		return nil
	}

	// Typed destinations go through a JSON round-trip.
	b, err := json.Marshal(entry.value)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dest)
}

func (mc *MemoryCache) Delete(_ context.Context, keys ...string) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	for _, key := range keys {
		delete(mc.entries, key)
	}
	return nil
}

// DeleteByPattern drops everything; the map is small enough that pattern
// matching in process is not worth the bookkeeping.
func (mc *MemoryCache) DeleteByPattern(_ context.Context, _ string) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.entries = make(map[string]*memoryEntry)
	return nil
}

func (mc *MemoryCache) Exists(_ context.Context, keys ...string) (bool, error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	now := time.Now()
	for _, key := range keys {
		if entry, ok := mc.entries[key]; ok && now.Before(entry.expiresAt) {
			return true, nil
		}
	}
	return false, nil
}

// Close stops the background cleanup.
func (mc *MemoryCache) Close() error {
	if mc.ticker != nil {
		mc.ticker.Stop()
	}
	return nil
}

func (mc *MemoryCache) evictOldest() {
	var oldestKey string
	var oldestUsed time.Time

	for key, entry := range mc.entries {
		if oldestKey == "" || entry.lastUsed.Before(oldestUsed) {
			oldestKey = key
			oldestUsed = entry.lastUsed
		}
	}
	if oldestKey != "" {
		delete(mc.entries, oldestKey)
	}
}

func (mc *MemoryCache) cleanupLoop() {
	for range mc.ticker.C {
		mc.mu.Lock()
		now := time.Now()
		for key, entry := range mc.entries {
			if now.After(entry.expiresAt) {
				delete(mc.entries, key)
			}
		}
		mc.mu.Unlock()
	}
}
