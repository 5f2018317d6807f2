package usecase

import (
	"context"
	"fmt"
	"time"

	"MacroPulse/internal/domain/models"
	drepo "MacroPulse/internal/domain/repository"
	applogger "MacroPulse/pkg/logger"
)

// Broadcaster pushes completed updates to connected dashboard clients.
type Broadcaster interface {
	BroadcastUpdate(ev *models.UpdateEvent)
}

// UpdateResult is the outcome of one fetch-store-evaluate-notify cycle.
type UpdateResult struct {
	Snapshot    *models.MacroSnapshot `json:"data"`
	Signal      models.Signal         `json:"signal"`
	RegimeScore float64               `json:"regime_score"`
	Notified    bool                  `json:"notified"`
}

// UpdateCycle runs the linear pipeline: fetch, store, evaluate, notify, publish.
type UpdateCycle struct {
	source    drepo.MacroSource
	store     drepo.ReadingStore
	notifier  drepo.Notifier
	publisher drepo.EventPublisher
	metrics   drepo.Metrics
	logger    *applogger.Logger
	hub       Broadcaster
}

// NewUpdateCycle creates the update pipeline. publisher and hub may be nil.
func NewUpdateCycle(
	source drepo.MacroSource,
	store drepo.ReadingStore,
	notifier drepo.Notifier,
	publisher drepo.EventPublisher,
	metrics drepo.Metrics,
	logger *applogger.Logger,
) *UpdateCycle {
	return &UpdateCycle{
		source:    source,
		store:     store,
		notifier:  notifier,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// SetBroadcaster attaches a live-update broadcaster.
func (u *UpdateCycle) SetBroadcaster(b Broadcaster) { u.hub = b }

// Run executes one cycle. Fetch and store failures abort the cycle; notify
// and publish failures are logged and reflected in the result only.
func (u *UpdateCycle) Run(ctx context.Context, notify bool) (*UpdateResult, error) {
	start := time.Now()

	snapshot, err := u.source.FetchSnapshot(ctx)
	if err != nil {
		u.metrics.RecordError("fetch")
		return nil, fmt.Errorf("fetch snapshot: %w", err)
	}

	reading := snapshot.Reading()
	if err := u.store.Insert(ctx, reading); err != nil {
		u.metrics.RecordError("store")
		return nil, fmt.Errorf("store reading: %w", err)
	}
	u.metrics.RecordReadingStored()

	sig := EvaluateSignal(reading)
	u.metrics.RecordSignal(string(sig.Action))

	result := &UpdateResult{
		Snapshot:    snapshot,
		Signal:      sig,
		RegimeScore: RegimeScore(snapshot),
	}

	if notify && sig.Actionable() {
		if err := u.notifier.SendSignal(ctx, sig, reading); err != nil {
			u.metrics.RecordNotification("error")
			u.logger.Error("signal notification failed",
				applogger.String("action", string(sig.Action)),
				applogger.Error(err),
			)
		} else {
			u.metrics.RecordNotification("ok")
			result.Notified = true
		}
	}

	ev := &models.UpdateEvent{Reading: reading, Signal: sig}
	if u.publisher != nil {
		if err := u.publisher.PublishUpdate(ctx, ev); err != nil {
			u.metrics.RecordError("publish")
			u.logger.Warn("update event publish failed", applogger.Error(err))
		}
	}
	if u.hub != nil {
		u.hub.BroadcastUpdate(ev)
	}

	u.metrics.RecordLatency("update_cycle", time.Since(start).Seconds())
	u.logger.Info("update cycle complete",
		applogger.String("action", string(sig.Action)),
		applogger.Bool("notified", result.Notified),
		applogger.Duration("duration_ms", time.Since(start)),
	)
	return result, nil
}
