package models

import "time"

// MacroReading is one persisted snapshot of the three tracked indicators.
// Readings are append-only; the application never mutates or deletes them.
type MacroReading struct {
	ID        int64     `json:"id,omitempty"`
	GDPGrowth float64   `json:"gdp_growth"`
	Inflation float64   `json:"inflation"`
	RealRate  float64   `json:"real_rate"`
	CreatedAt time.Time `json:"created_at"`
}

// MacroSnapshot carries the full indicator set shown on the dashboard.
// Only the three core values are persisted; the rest is display state.
type MacroSnapshot struct {
	GDPGrowth     float64   `json:"gdp_growth"`
	Inflation     float64   `json:"inflation"`
	RealRate      float64   `json:"real_rate"`
	Unemployment  float64   `json:"unemployment"`
	Manufacturing float64   `json:"ism_pmi"`
	YieldSpread   float64   `json:"yield_spread"`
	FedFunds      float64   `json:"fed_funds"`
	NeutralRate   float64   `json:"neutral_rate"`
	FedStance     float64   `json:"fed_stance"`
	Timestamp     time.Time `json:"timestamp"`
}

// Reading extracts the persisted subset of a snapshot.
func (s *MacroSnapshot) Reading() *MacroReading {
	return &MacroReading{
		GDPGrowth: s.GDPGrowth,
		Inflation: s.Inflation,
		RealRate:  s.RealRate,
		CreatedAt: s.Timestamp,
	}
}

// Observation is a single dated series value from FRED.
type Observation struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// History maps a metric key to its observations, ascending by date.
type History map[string][]Observation
