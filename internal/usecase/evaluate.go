package usecase

import "MacroPulse/internal/domain/models"

// Signal thresholds, in percent.
const (
	sellGDPBelow       = 0.0
	sellInflationAbove = 4.0
	buyGDPAbove        = 2.0
	buyInflationBelow  = 3.0
	buyRealRateBelow   = 1.0
)

// EvaluateSignal classifies a reading as BUY, SELL or HOLD.
// SELL conditions are checked before BUY; comparisons are strict, so a value
// exactly at a threshold does not trigger that rule.
func EvaluateSignal(r *models.MacroReading) models.Signal {
	if r.GDPGrowth < sellGDPBelow || r.Inflation > sellInflationAbove {
		return models.Signal{
			Action: models.ActionSell,
			Reason: "Negative growth or high inflation",
		}
	}
	if r.GDPGrowth > buyGDPAbove && r.Inflation < buyInflationBelow && r.RealRate < buyRealRateBelow {
		return models.Signal{
			Action: models.ActionBuy,
			Reason: "Strong growth, low inflation, low real rates",
		}
	}
	return models.Signal{
		Action: models.ActionHold,
		Reason: "No clear regime shift",
	}
}

// RegimeScore computes a weighted 0-100 composite of the macro regime.
func RegimeScore(s *models.MacroSnapshot) float64 {
	growthScore := clamp((s.GDPGrowth/6)*100, 0, 100)

	inflationDistance := abs(s.Inflation - 2.0)
	inflationScore := max(0, 100-inflationDistance*30)

	var employmentScore float64
	switch {
	case s.Unemployment >= 3.5 && s.Unemployment <= 4.5:
		employmentScore = 100
	case s.Unemployment < 3.5:
		employmentScore = 80 // too tight, inflation risk
	default:
		employmentScore = max(0, 100-(s.Unemployment-4.5)*20)
	}

	manufacturingScore := clamp(50+s.Manufacturing*2, 0, 100)
	curveScore := clamp(50+s.YieldSpread*0.5, 0, 100)
	fedScore := max(0, 100-abs(s.FedStance)*40)

	score := growthScore*0.25 +
		inflationScore*0.20 +
		employmentScore*0.15 +
		manufacturingScore*0.15 +
		curveScore*0.15 +
		fedScore*0.10

	return round1(score)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func round1(v float64) float64 {
	if v < 0 {
		return float64(int(v*10-0.5)) / 10
	}
	return float64(int(v*10+0.5)) / 10
}
