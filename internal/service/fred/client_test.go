package fred

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	drepo "MacroPulse/internal/domain/repository"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New("test-key", srv.URL, 5*time.Second, nil, nil)
}

func writeObservations(w http.ResponseWriter, obs []observation) {
	_ = json.NewEncoder(w).Encode(observationsResponse{Observations: obs})
}

func TestFetchLatestSkipsMissingValues(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "desc", r.URL.Query().Get("sort_order"))
		writeObservations(w, []observation{
			{Date: "2026-07-01", Value: "."},
			{Date: "2026-06-01", Value: "2.8"},
			{Date: "2026-05-01", Value: "2.4"},
		})
	})

	v, err := c.FetchLatest(context.Background(), SeriesGDPGrowth)
	require.NoError(t, err)
	assert.Equal(t, 2.8, v)
}

func TestFetchLatestAllMissing(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeObservations(w, []observation{{Date: "2026-07-01", Value: "."}})
	})

	_, err := c.FetchLatest(context.Background(), SeriesRealRate)
	assert.ErrorIs(t, err, drepo.ErrDataUnavailable)
}

func TestFetchInflationYoY(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, SeriesCPI, r.URL.Query().Get("series_id"))
		assert.Equal(t, "13", r.URL.Query().Get("limit"))

		// 13 monthly values, newest first: 310 now vs 300 a year ago
		obs := make([]observation, 13)
		for i := range obs {
			obs[i] = observation{
				Date:  fmt.Sprintf("2026-%02d-01", 13-i),
				Value: fmt.Sprintf("%.1f", 310-float64(i)*10/12),
			}
		}
		obs[0].Value = "310.0"
		obs[12].Value = "300.0"
		writeObservations(w, obs)
	})

	v, err := c.FetchInflationYoY(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 3.333, v, 0.001)
}

func TestFetchInflationYoYTooFewObservations(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeObservations(w, []observation{{Date: "2026-07-01", Value: "310.0"}})
	})

	_, err := c.FetchInflationYoY(context.Background())
	assert.ErrorIs(t, err, drepo.ErrDataUnavailable)
}

func TestFetchLatestUpstreamError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad api key", http.StatusForbidden)
	})

	_, err := c.FetchLatest(context.Background(), SeriesGDPGrowth)
	assert.ErrorIs(t, err, drepo.ErrDataUnavailable)
}

func TestFetchSnapshotDerivesFedStance(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		series := r.URL.Query().Get("series_id")
		if series == SeriesCPI {
			obs := make([]observation, 13)
			for i := range obs {
				obs[i] = observation{Date: "2026-01-01", Value: "300.0"}
			}
			obs[0].Value = "306.0"
			writeObservations(w, obs)
			return
		}
		values := map[string]string{
			SeriesGDPGrowth:    "2.5",
			SeriesRealRate:     "1.8",
			SeriesUnemployment: "4.1",
			SeriesPMI:          "12800",
			SeriesYieldSpread:  "0.35",
			SeriesFedFunds:     "4.5",
		}
		writeObservations(w, []observation{{Date: "2026-07-01", Value: values[series]}})
	})

	s, err := c.FetchSnapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2.5, s.GDPGrowth)
	assert.InDelta(t, 2.0, s.Inflation, 0.001)
	assert.Equal(t, 1.8, s.RealRate)
	assert.Equal(t, 2.5, s.NeutralRate)
	assert.InDelta(t, 2.0, s.FedStance, 0.001) // 4.5 fed funds minus 2.5 neutral
	assert.False(t, s.Timestamp.IsZero())
}

func TestParseValue(t *testing.T) {
	if _, ok := parseValue("."); ok {
		t.Fatal("missing marker must not parse")
	}
	if _, ok := parseValue(""); ok {
		t.Fatal("empty value must not parse")
	}
	v, ok := parseValue("-0.5")
	require.True(t, ok)
	assert.Equal(t, -0.5, v)
}

func TestFetchSeriesHistorySkipsMissingValues(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "asc", r.URL.Query().Get("sort_order"))
		assert.NotEmpty(t, r.URL.Query().Get("observation_start"))
		assert.NotEmpty(t, r.URL.Query().Get("observation_end"))
		writeObservations(w, []observation{
			{Date: "2026-05-01", Value: "1.4"},
			{Date: "2026-06-01", Value: "."},
			{Date: "2026-07-01", Value: "1.6"},
		})
	})

	obs, err := c.fetchSeriesHistory(context.Background(), SeriesGDPGrowth, 365)
	require.NoError(t, err)
	require.Len(t, obs, 2)
	assert.Equal(t, 1.4, obs[0].Value)
	assert.Equal(t, "2026-07-01", obs[1].Date)
}

func TestFetchInflationYoYHistoryCapsAtTwoYears(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, SeriesCPI, r.URL.Query().Get("series_id"))
		assert.Equal(t, "asc", r.URL.Query().Get("sort_order"))

		// four years of monthly CPI rising one point a month
		obs := make([]observation, 48)
		for i := range obs {
			obs[i] = observation{
				Date:  fmt.Sprintf("%d-%02d-01", 2022+i/12, i%12+1),
				Value: fmt.Sprintf("%d.0", 100+i),
			}
		}
		writeObservations(w, obs)
	})

	obs, err := c.fetchInflationYoYHistory(context.Background(), 1095)
	require.NoError(t, err)
	require.Len(t, obs, 24)

	// first surviving point pairs month 24 with month 12
	assert.Equal(t, "2024-01-01", obs[0].Date)
	assert.InDelta(t, 100*12.0/112.0, obs[0].Value, 0.001)
	assert.Equal(t, "2025-12-01", obs[23].Date)
	assert.InDelta(t, 100*12.0/135.0, obs[23].Value, 0.001)
}

func TestFetchInflationYoYHistorySkipsMissingPairs(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		obs := make([]observation, 26)
		for i := range obs {
			obs[i] = observation{
				Date:  fmt.Sprintf("%d-%02d-01", 2022+i/12, i%12+1),
				Value: fmt.Sprintf("%d.0", 100+i),
			}
		}
		obs[13].Value = "."
		writeObservations(w, obs)
	})

	obs, err := c.fetchInflationYoYHistory(context.Background(), 365)
	require.NoError(t, err)

	// the missing month drops both points it participates in
	require.Len(t, obs, 12)
	assert.Equal(t, "2023-01-01", obs[0].Date)
	for _, o := range obs {
		assert.NotEqual(t, "2023-02-01", o.Date)
		assert.NotEqual(t, "2024-02-01", o.Date)
	}
}

func TestFetchHistoryDerivesFedStance(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("series_id") == SeriesCPI {
			obs := make([]observation, 13)
			for i := range obs {
				obs[i] = observation{
					Date:  fmt.Sprintf("%d-%02d-01", 2025+i/12, i%12+1),
					Value: fmt.Sprintf("%d.0", 300+i),
				}
			}
			writeObservations(w, obs)
			return
		}
		writeObservations(w, []observation{{Date: "2026-07-01", Value: "3.0"}})
	})

	h, err := c.FetchHistory(context.Background(), 365)
	require.NoError(t, err)

	require.Len(t, h["fed_stance"], 1)
	assert.InDelta(t, 0.5, h["fed_stance"][0].Value, 0.001) // 3.0 fed funds minus 2.5 neutral

	require.Len(t, h["inflation"], 1)
	assert.InDelta(t, 4.0, h["inflation"][0].Value, 0.001) // 312 vs 300 a year earlier
}
