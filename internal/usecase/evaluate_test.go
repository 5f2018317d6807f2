package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"MacroPulse/internal/domain/models"
)

func TestEvaluateSignal(t *testing.T) {
	cases := []struct {
		name      string
		gdp       float64
		inflation float64
		realRate  float64
		want      models.SignalAction
	}{
		{"negative growth sells", -1, 2, 0.5, models.ActionSell},
		{"high inflation sells", 1, 5, 0.5, models.ActionSell},
		{"high inflation sells even with strong growth", 3, 5, 0.5, models.ActionSell},
		{"strong growth low inflation buys", 3, 2, 0.5, models.ActionBuy},
		{"moderate growth holds", 1, 2, 0.5, models.ActionHold},
		{"high real rate blocks buy", 3, 2, 1.5, models.ActionHold},
		{"gdp exactly zero is not a sell", 0, 2, 0.5, models.ActionHold},
		{"inflation exactly four is not a sell", 1, 4, 0.5, models.ActionHold},
		{"gdp exactly two is not a buy", 2, 2, 0.5, models.ActionHold},
		{"inflation exactly three is not a buy", 3, 3, 0.5, models.ActionHold},
		{"real rate exactly one is not a buy", 3, 2, 1, models.ActionHold},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sig := EvaluateSignal(&models.MacroReading{
				GDPGrowth: tc.gdp,
				Inflation: tc.inflation,
				RealRate:  tc.realRate,
			})
			assert.Equal(t, tc.want, sig.Action)
			assert.NotEmpty(t, sig.Reason)
		})
	}
}

func TestEvaluateSignalSellWinsOverBuy(t *testing.T) {
	// negative growth with otherwise buy-friendly numbers
	sig := EvaluateSignal(&models.MacroReading{GDPGrowth: -0.1, Inflation: 1, RealRate: 0})
	assert.Equal(t, models.ActionSell, sig.Action)
}

func TestRegimeScoreBounds(t *testing.T) {
	strong := &models.MacroSnapshot{
		GDPGrowth:     3,
		Inflation:     2,
		RealRate:      0.5,
		Unemployment:  4,
		Manufacturing: 10,
		YieldSpread:   50,
		FedStance:     0,
	}
	weak := &models.MacroSnapshot{
		GDPGrowth:     -2,
		Inflation:     8,
		RealRate:      3,
		Unemployment:  9,
		Manufacturing: -40,
		YieldSpread:   -120,
		FedStance:     3,
	}

	hi := RegimeScore(strong)
	lo := RegimeScore(weak)

	assert.Greater(t, hi, lo)
	assert.GreaterOrEqual(t, hi, 0.0)
	assert.LessOrEqual(t, hi, 100.0)
	assert.GreaterOrEqual(t, lo, 0.0)
	assert.LessOrEqual(t, lo, 100.0)
}

func TestRegimeScoreNeutralInflationScoresHigher(t *testing.T) {
	at2 := &models.MacroSnapshot{GDPGrowth: 2, Inflation: 2, Unemployment: 4}
	at6 := &models.MacroSnapshot{GDPGrowth: 2, Inflation: 6, Unemployment: 4}
	assert.Greater(t, RegimeScore(at2), RegimeScore(at6))
}
