package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MacroPulse/internal/domain/models"
	drepo "MacroPulse/internal/domain/repository"
	pkgcache "MacroPulse/pkg/cache"
)

type countingSource struct {
	fakeSource
	historyCalls int
}

func (c *countingSource) FetchHistory(ctx context.Context, days int) (models.History, error) {
	c.historyCalls++
	return models.History{
		"gdp_growth": {{Date: "2026-01-01", Value: 2.5}},
	}, nil
}

func newDashboard(store drepo.ReadingStore, source drepo.MacroSource, t *testing.T) *Dashboard {
	cache := pkgcache.NewMemoryCache()
	return NewDashboard(store, source, nil, cache, testLogger(t), time.Minute, time.Minute)
}

func TestCurrentEvaluatesLatestReading(t *testing.T) {
	store := &fakeStore{}
	require.NoError(t, store.Insert(context.Background(), &models.MacroReading{
		GDPGrowth: -1, Inflation: 2, RealRate: 0.5, CreatedAt: time.Now(),
	}))

	d := newDashboard(store, &fakeSource{}, t)

	data, err := d.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.ActionSell, data.Signal.Action)
	assert.Equal(t, -1.0, data.Reading.GDPGrowth)
}

func TestCurrentNoData(t *testing.T) {
	d := newDashboard(&fakeStore{}, &fakeSource{}, t)

	_, err := d.Current(context.Background())
	assert.ErrorIs(t, err, drepo.ErrNoData)
}

func TestCurrentServedFromCacheAfterFirstRead(t *testing.T) {
	store := &fakeStore{}
	require.NoError(t, store.Insert(context.Background(), &models.MacroReading{
		GDPGrowth: 3, Inflation: 2, RealRate: 0.5, CreatedAt: time.Now(),
	}))

	d := newDashboard(store, &fakeSource{}, t)

	first, err := d.Current(context.Background())
	require.NoError(t, err)

	// a newer write is invisible until invalidation
	require.NoError(t, store.Insert(context.Background(), &models.MacroReading{
		GDPGrowth: -5, Inflation: 2, RealRate: 0.5, CreatedAt: time.Now(),
	}))

	cached, err := d.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first.Signal.Action, cached.Signal.Action)

	d.InvalidateLatest(context.Background())

	fresh, err := d.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.ActionSell, fresh.Signal.Action)
}

func TestChartSeriesCachesByDays(t *testing.T) {
	source := &countingSource{}
	d := newDashboard(&fakeStore{}, source, t)

	_, err := d.ChartSeries(context.Background(), 365)
	require.NoError(t, err)
	_, err = d.ChartSeries(context.Background(), 365)
	require.NoError(t, err)
	assert.Equal(t, 1, source.historyCalls)

	// different range misses the cache
	_, err = d.ChartSeries(context.Background(), 90)
	require.NoError(t, err)
	assert.Equal(t, 2, source.historyCalls)
}

func TestSummaryWithoutSummarizer(t *testing.T) {
	d := NewDashboard(&fakeStore{}, &fakeSource{}, nil, nil, testLogger(t), time.Minute, time.Minute)
	_, err := d.Summary(context.Background())
	assert.Error(t, err)
}

func TestHistoryNewestFirst(t *testing.T) {
	store := &fakeStore{}
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Insert(context.Background(), &models.MacroReading{
			GDPGrowth: float64(i), CreatedAt: time.Now(),
		}))
	}

	d := newDashboard(store, &fakeSource{}, t)

	rows, err := d.History(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, 4.0, rows[0].GDPGrowth)
	assert.Equal(t, 2.0, rows[2].GDPGrowth)
}
