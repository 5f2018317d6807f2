package fred

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"MacroPulse/internal/domain/models"
	drepo "MacroPulse/internal/domain/repository"
	xhttp "MacroPulse/pkg/http"
	applogger "MacroPulse/pkg/logger"
)

// Series identifiers tracked by the dashboard.
const (
	SeriesGDPGrowth    = "A191RL1Q225SBEA" // real GDP, % change from preceding period
	SeriesCPI          = "CPIAUCSL"        // consumer price index, level
	SeriesRealRate     = "DFII10"          // 10Y TIPS constant maturity
	SeriesUnemployment = "UNRATE"
	SeriesPMI          = "MANEMP"
	SeriesYieldSpread  = "T10Y2Y"
	SeriesFedFunds     = "FEDFUNDS"
)

// neutralRate is a fixed r* estimate: neutral real rate (~0.5%) plus the 2% target.
const neutralRate = 2.5

// Client implements a MacroSource backed by the FRED observations API.
type Client struct {
	apiKey  string
	baseURL string
	http    *xhttp.Client
	metrics drepo.Metrics
	logger  *applogger.Logger
}

// New creates a new FRED MacroSource.
func New(apiKey, baseURL string, timeout time.Duration, metrics drepo.Metrics, logger *applogger.Logger) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    xhttp.NewClient(xhttp.WithTimeout(timeout)),
		metrics: metrics,
		logger:  logger,
	}
}

type observation struct {
	Date  string `json:"date"`
	Value string `json:"value"`
}

type observationsResponse struct {
	Observations []observation `json:"observations"`
}

// fetchObservations calls the observations endpoint with the given extra params.
func (c *Client) fetchObservations(ctx context.Context, seriesID string, params map[string][]string) ([]observation, error) {
	q := map[string][]string{
		"series_id": {seriesID},
		"api_key":   {c.apiKey},
		"file_type": {"json"},
	}
	for k, v := range params {
		q[k] = v
	}

	var resp observationsResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         c.baseURL,
		QueryParams: q,
	}, &resp)
	if err != nil {
		if c.metrics != nil {
			c.metrics.RecordFetch(seriesID, "error")
		}
		return nil, fmt.Errorf("%w: fetch %s: %v", drepo.ErrDataUnavailable, seriesID, err)
	}
	if c.metrics != nil {
		c.metrics.RecordFetch(seriesID, "ok")
	}
	return resp.Observations, nil
}

// FetchLatest returns the most recent non-missing value of a series.
func (c *Client) FetchLatest(ctx context.Context, seriesID string) (float64, error) {
	obs, err := c.fetchObservations(ctx, seriesID, map[string][]string{
		"sort_order": {"desc"},
		"limit":      {"5"},
	})
	if err != nil {
		return 0, err
	}
	for _, o := range obs {
		if v, ok := parseValue(o.Value); ok {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%w: series %s has no observations", drepo.ErrDataUnavailable, seriesID)
}

// FetchInflationYoY computes year-over-year CPI change from 13 monthly observations.
func (c *Client) FetchInflationYoY(ctx context.Context) (float64, error) {
	obs, err := c.fetchObservations(ctx, SeriesCPI, map[string][]string{
		"sort_order": {"desc"},
		"limit":      {"13"},
	})
	if err != nil {
		return 0, err
	}
	if len(obs) < 13 {
		return 0, fmt.Errorf("%w: need 13 CPI observations, got %d", drepo.ErrDataUnavailable, len(obs))
	}
	current, okCur := parseValue(obs[0].Value)
	yearAgo, okPrev := parseValue(obs[12].Value)
	if !okCur || !okPrev || yearAgo == 0 {
		return 0, fmt.Errorf("%w: CPI observations not numeric", drepo.ErrDataUnavailable)
	}
	return ((current - yearAgo) / yearAgo) * 100, nil
}

// FetchSnapshot fetches all indicators and derives the composite fields.
func (c *Client) FetchSnapshot(ctx context.Context) (*models.MacroSnapshot, error) {
	gdp, err := c.FetchLatest(ctx, SeriesGDPGrowth)
	if err != nil {
		return nil, err
	}
	inflation, err := c.FetchInflationYoY(ctx)
	if err != nil {
		return nil, err
	}
	realRate, err := c.FetchLatest(ctx, SeriesRealRate)
	if err != nil {
		return nil, err
	}
	unemployment, err := c.FetchLatest(ctx, SeriesUnemployment)
	if err != nil {
		return nil, err
	}
	pmi, err := c.FetchLatest(ctx, SeriesPMI)
	if err != nil {
		return nil, err
	}
	spread, err := c.FetchLatest(ctx, SeriesYieldSpread)
	if err != nil {
		return nil, err
	}
	fedFunds, err := c.FetchLatest(ctx, SeriesFedFunds)
	if err != nil {
		return nil, err
	}

	s := &models.MacroSnapshot{
		GDPGrowth:     gdp,
		Inflation:     inflation,
		RealRate:      realRate,
		Unemployment:  unemployment,
		Manufacturing: pmi,
		YieldSpread:   spread,
		FedFunds:      fedFunds,
		NeutralRate:   neutralRate,
		FedStance:     fedFunds - neutralRate,
		Timestamp:     time.Now().UTC(),
	}

	if c.metrics != nil {
		c.metrics.RecordIndicator("gdp_growth", s.GDPGrowth)
		c.metrics.RecordIndicator("inflation", s.Inflation)
		c.metrics.RecordIndicator("real_rate", s.RealRate)
	}
	if c.logger != nil {
		c.logger.Info("fred snapshot fetched",
			applogger.Any("gdp_growth", s.GDPGrowth),
			applogger.Any("inflation", s.Inflation),
			applogger.Any("real_rate", s.RealRate),
		)
	}
	return s, nil
}

// parseValue converts a FRED observation value, skipping the "." missing marker.
func parseValue(s string) (float64, bool) {
	if s == "" || s == "." {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
