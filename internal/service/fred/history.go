package fred

import (
	"context"

	"MacroPulse/internal/domain/models"
	applogger "MacroPulse/pkg/logger"
	"MacroPulse/pkg/util"
)

// fetchSeriesHistory returns ascending observations for the last N days,
// skipping missing values.
func (c *Client) fetchSeriesHistory(ctx context.Context, seriesID string, days int) ([]models.Observation, error) {
	start, end := util.DayRange(days)
	obs, err := c.fetchObservations(ctx, seriesID, map[string][]string{
		"sort_order":        {"asc"},
		"observation_start": {util.FormatDate(start)},
		"observation_end":   {util.FormatDate(end)},
	})
	if err != nil {
		return nil, err
	}
	out := make([]models.Observation, 0, len(obs))
	for _, o := range obs {
		if v, ok := parseValue(o.Value); ok {
			out = append(out, models.Observation{Date: o.Date, Value: v})
		}
	}
	return out, nil
}

// fetchInflationYoYHistory computes monthly YoY CPI change over the range.
// Needs 13+ months of CPI to produce the first point; output capped to 24 points.
func (c *Client) fetchInflationYoYHistory(ctx context.Context, days int) ([]models.Observation, error) {
	start, end := util.DayRange(days + 400)
	obs, err := c.fetchObservations(ctx, SeriesCPI, map[string][]string{
		"sort_order":        {"asc"},
		"observation_start": {util.FormatDate(start)},
		"observation_end":   {util.FormatDate(end)},
	})
	if err != nil {
		return nil, err
	}

	out := make([]models.Observation, 0, len(obs))
	for i := 12; i < len(obs); i++ {
		cur, okCur := parseValue(obs[i].Value)
		prev, okPrev := parseValue(obs[i-12].Value)
		if !okCur || !okPrev || prev == 0 {
			continue
		}
		yoy := ((cur - prev) / prev) * 100
		out = append(out, models.Observation{Date: obs[i].Date, Value: yoy})
	}
	if len(out) > 24 {
		out = out[len(out)-24:]
	}
	return out, nil
}

// FetchHistory returns per-metric history for the dashboard charts.
// A failed series leaves its key empty rather than failing the whole call.
func (c *Client) FetchHistory(ctx context.Context, days int) (models.History, error) {
	type task struct {
		key    string
		series string
	}
	plain := []task{
		{"gdp_growth", SeriesGDPGrowth},
		{"unemployment", SeriesUnemployment},
		{"ism_pmi", SeriesPMI},
		{"real_rate", SeriesRealRate},
		{"yield_spread", SeriesYieldSpread},
		{"fed_funds", SeriesFedFunds},
	}

	h := make(models.History, len(plain)+2)
	for _, t := range plain {
		obs, err := c.fetchSeriesHistory(ctx, t.series, days)
		if err != nil {
			if c.logger != nil {
				c.logger.Warn("fred history fetch failed",
					applogger.String("series", t.series),
					applogger.Error(err),
				)
			}
			h[t.key] = nil
			continue
		}
		h[t.key] = obs
	}

	if obs, err := c.fetchInflationYoYHistory(ctx, days); err == nil {
		h["inflation"] = obs
	} else if c.logger != nil {
		c.logger.Warn("fred inflation history failed", applogger.Error(err))
	}

	// Fed stance derives from fed funds minus the neutral estimate.
	stance := make([]models.Observation, 0, len(h["fed_funds"]))
	for _, o := range h["fed_funds"] {
		stance = append(stance, models.Observation{Date: o.Date, Value: o.Value - neutralRate})
	}
	h["fed_stance"] = stance

	return h, nil
}
