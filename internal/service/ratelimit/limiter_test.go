package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllowDrainsAndRefills(t *testing.T) {
	now := time.Now()
	l := New()
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("k", 2, 1))
	assert.True(t, l.Allow("k", 2, 1))
	assert.False(t, l.Allow("k", 2, 1))

	now = now.Add(1500 * time.Millisecond)
	assert.True(t, l.Allow("k", 2, 1))
	assert.False(t, l.Allow("k", 2, 1))
}

func TestAllowCapsAtCapacity(t *testing.T) {
	now := time.Now()
	l := New()
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("k", 1, 1))

	// long idle period must not bank more than capacity tokens
	now = now.Add(time.Hour)
	assert.True(t, l.Allow("k", 1, 1))
	assert.False(t, l.Allow("k", 1, 1))
}

func TestAllowIsolatesKeys(t *testing.T) {
	l := New()
	assert.True(t, l.Allow("a", 1, 0))
	assert.False(t, l.Allow("a", 1, 0))
	assert.True(t, l.Allow("b", 1, 0))
}
