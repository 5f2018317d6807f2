package ratelimit

import (
	"sync"
	"time"
)

// Limiter is a keyed token bucket. Each key gets its own bucket sized on
// first use; buckets refill continuously at their configured rate. It guards
// handlers that fan out to upstream APIs with their own request quotas.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time
}

type bucket struct {
	tokens   float64
	capacity float64
	refill   float64 // tokens per second
	updated  time.Time
}

func New() *Limiter {
	return &Limiter{
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

// Allow consumes one token for key if available. The bucket is created with
// capacity tokens on first call and refills at refillPerSec thereafter.
func (l *Limiter) Allow(key string, capacity, refillPerSec float64) bool {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: capacity, capacity: capacity, refill: refillPerSec, updated: now}
		l.buckets[key] = b
	}

	if elapsed := now.Sub(b.updated).Seconds(); elapsed > 0 {
		b.tokens = min(b.capacity, b.tokens+elapsed*b.refill)
		b.updated = now
	}

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}
