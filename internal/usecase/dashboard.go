package usecase

import (
	"context"
	"errors"
	"time"

	"MacroPulse/internal/domain/models"
	drepo "MacroPulse/internal/domain/repository"
	pkgcache "MacroPulse/pkg/cache"
	applogger "MacroPulse/pkg/logger"
)

// Cache keys for dashboard reads.
const (
	cacheKeyLatest  = "reading:latest"
	cacheKeySummary = "summary:latest"
	cacheKeyCharts  = "charts"
)

// CurrentData is the latest reading with its evaluated signal.
type CurrentData struct {
	Reading *models.MacroReading `json:"reading"`
	Signal  models.Signal        `json:"signal"`
}

// Dashboard serves the read endpoints, caching hot responses.
type Dashboard struct {
	store      drepo.ReadingStore
	source     drepo.MacroSource
	summarizer drepo.Summarizer
	cache      pkgcache.Service
	logger     *applogger.Logger

	latestTTL  time.Duration
	historyTTL time.Duration
}

// NewDashboard creates the dashboard read usecase. summarizer may be nil.
func NewDashboard(
	store drepo.ReadingStore,
	source drepo.MacroSource,
	summarizer drepo.Summarizer,
	cache pkgcache.Service,
	logger *applogger.Logger,
	latestTTL, historyTTL time.Duration,
) *Dashboard {
	if latestTTL <= 0 {
		latestTTL = time.Minute
	}
	if historyTTL <= 0 {
		historyTTL = 10 * time.Minute
	}
	return &Dashboard{
		store:      store,
		source:     source,
		summarizer: summarizer,
		cache:      cache,
		logger:     logger,
		latestTTL:  latestTTL,
		historyTTL: historyTTL,
	}
}

// Current returns the latest stored reading and its signal.
func (d *Dashboard) Current(ctx context.Context) (*CurrentData, error) {
	if d.cache != nil {
		var cached CurrentData
		if err := d.cache.Get(ctx, cacheKeyLatest, &cached); err == nil && cached.Reading != nil {
			return &cached, nil
		}
	}

	r, err := d.store.GetLatest(ctx)
	if err != nil {
		return nil, err
	}
	out := &CurrentData{Reading: r, Signal: EvaluateSignal(r)}

	if d.cache != nil {
		if err := d.cache.Set(ctx, cacheKeyLatest, out, d.latestTTL); err != nil {
			d.logger.Warn("cache set failed", applogger.String("key", cacheKeyLatest), applogger.Error(err))
		}
	}
	return out, nil
}

// History returns the most recent stored readings, newest first.
func (d *Dashboard) History(ctx context.Context, limit int) ([]*models.MacroReading, error) {
	return d.store.GetHistory(ctx, limit)
}

// ChartSeries returns per-indicator history for the dashboard charts.
func (d *Dashboard) ChartSeries(ctx context.Context, days int) (models.History, error) {
	key := pkgcache.GenerateKeyWithParams(cacheKeyCharts, days)
	if d.cache != nil {
		var cached models.History
		if err := d.cache.Get(ctx, key, &cached); err == nil && len(cached) > 0 {
			return cached, nil
		}
	}

	h, err := d.source.FetchHistory(ctx, days)
	if err != nil {
		return nil, err
	}
	if d.cache != nil {
		if err := d.cache.Set(ctx, key, h, d.historyTTL); err != nil {
			d.logger.Warn("cache set failed", applogger.String("key", key), applogger.Error(err))
		}
	}
	return h, nil
}

// Summary returns AI commentary for the current snapshot.
func (d *Dashboard) Summary(ctx context.Context) (string, error) {
	if d.summarizer == nil {
		return "", errors.New("summarizer not configured")
	}

	if d.cache != nil {
		var cached string
		if err := d.cache.Get(ctx, cacheKeySummary, &cached); err == nil && cached != "" {
			return cached, nil
		}
	}

	snapshot, err := d.source.FetchSnapshot(ctx)
	if err != nil {
		return "", err
	}
	text, err := d.summarizer.Summarize(ctx, snapshot)
	if err != nil {
		return "", err
	}

	if d.cache != nil {
		if err := d.cache.Set(ctx, cacheKeySummary, text, d.historyTTL); err != nil {
			d.logger.Warn("cache set failed", applogger.String("key", cacheKeySummary), applogger.Error(err))
		}
	}
	return text, nil
}

// InvalidateLatest drops the cached latest reading after a write.
func (d *Dashboard) InvalidateLatest(ctx context.Context) {
	if d.cache == nil {
		return
	}
	if err := d.cache.Delete(ctx, cacheKeyLatest); err != nil {
		d.logger.Warn("cache invalidate failed", applogger.Error(err))
	}
}
