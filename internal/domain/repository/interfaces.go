package repository

import (
	"context"

	"MacroPulse/internal/domain/models"
)

// MacroSource fetches indicator values from the upstream statistics API.
type MacroSource interface {
	FetchSnapshot(ctx context.Context) (*models.MacroSnapshot, error)
	FetchHistory(ctx context.Context, days int) (models.History, error)
}

// ReadingStore persists macro readings. Append-only, single writer.
type ReadingStore interface {
	Init(ctx context.Context) error // ensure tables
	Insert(ctx context.Context, r *models.MacroReading) error
	GetLatest(ctx context.Context) (*models.MacroReading, error)
	GetHistory(ctx context.Context, limit int) ([]*models.MacroReading, error)
	Health(ctx context.Context) error
	Close() error
}

// Notifier delivers push notifications. One POST, no retry.
type Notifier interface {
	Send(ctx context.Context, title, message, priority string, tags []string) error
	SendSignal(ctx context.Context, sig models.Signal, r *models.MacroReading) error
	SendTest(ctx context.Context, message string) error
}

// EventPublisher emits update events for downstream consumers.
type EventPublisher interface {
	PublishUpdate(ctx context.Context, ev *models.UpdateEvent) error
	Close() error
}

// Summarizer produces an AI commentary for a snapshot.
type Summarizer interface {
	Summarize(ctx context.Context, s *models.MacroSnapshot) (string, error)
}

// Metrics records domain-level observations.
type Metrics interface {
	RecordFetch(series, result string)
	RecordReadingStored()
	RecordNotification(result string)
	RecordError(kind string)
	RecordIndicator(indicator string, value float64)
	RecordSignal(action string)
	RecordLatency(op string, seconds float64)
}
