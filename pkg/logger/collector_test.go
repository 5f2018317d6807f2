package logger

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturePublisher struct {
	mu      sync.Mutex
	topics  []string
	batches [][]AggregatedLogEntry
}

func (p *capturePublisher) PublishMessage(_ context.Context, topic string, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	if logs, ok := payload.([]AggregatedLogEntry); ok {
		p.batches = append(p.batches, logs)
	}
	return nil
}

func (p *capturePublisher) snapshot() [][]AggregatedLogEntry {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([][]AggregatedLogEntry, len(p.batches))
	copy(out, p.batches)
	return out
}

func newTestCollector(pub Publisher, threshold int) *LogCollector {
	return NewLogCollector(&CollectionConfig{
		TimeInterval:   time.Hour,
		CountThreshold: threshold,
		Topic:          "macro-logs",
		Publisher:      pub,
	})
}

// Close must deliver the final batch before returning; shutdown closes the
// publisher right after.
func TestCloseDeliversFinalBatch(t *testing.T) {
	pub := &capturePublisher{}
	col := newTestCollector(pub, 100)

	fields := map[string]interface{}{"series": "CPIAUCSL"}
	col.AddLog("error", "fred fetch failed", fields, "client.go:70")
	col.AddLog("error", "fred fetch failed", fields, "client.go:70")
	col.Close()

	batches := pub.snapshot()
	require.Len(t, batches, 1)
	require.Len(t, batches[0], 1)
	assert.Equal(t, 2, batches[0][0].Count)
	assert.Equal(t, "fred fetch failed", batches[0][0].Message)

	pub.mu.Lock()
	defer pub.mu.Unlock()
	assert.Equal(t, []string{"macro-logs"}, pub.topics)
}

func TestCountThresholdForcesEarlyFlush(t *testing.T) {
	pub := &capturePublisher{}
	col := newTestCollector(pub, 2)

	col.AddLog("error", "broker unreachable", nil, "producer.go:60")
	col.AddLog("error", "postgres insert error", nil, "store.go:65")

	require.Eventually(t, func() bool {
		return len(pub.snapshot()) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Len(t, pub.snapshot()[0], 2)

	col.Close()
	assert.Len(t, pub.snapshot(), 1, "close with no new entries publishes nothing")
}
