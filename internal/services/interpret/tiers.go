package interpret

import "math"

// Tier is a qualitative bucket used for display styling and grouping.
type Tier string

const (
	TierPoor      Tier = "poor"
	TierFair      Tier = "fair"
	TierGood      Tier = "good"
	TierExcellent Tier = "excellent"
	TierLoss      Tier = "loss"
	TierNeutral   Tier = "neutral"
	TierProfit    Tier = "profit"
	TierUnknown   Tier = "unknown"
)

// Step starts a tier at Min, inclusive.
type Step struct {
	Min  float64
	Tier Tier
}

// Thresholds is an ascending ladder of steps. Values below the first step get Below.
type Thresholds struct {
	Below Tier
	Steps []Step
}

var (
	WinRateThresholds = Thresholds{Below: TierPoor, Steps: []Step{
		{30, TierFair}, {50, TierGood}, {70, TierExcellent},
	}}
	ProfitFactorThresholds = Thresholds{Below: TierPoor, Steps: []Step{
		{1.0, TierFair}, {1.5, TierGood}, {2.0, TierExcellent},
	}}
	SharpeThresholds = Thresholds{Below: TierPoor, Steps: []Step{
		{0.5, TierFair}, {1.0, TierGood}, {2.0, TierExcellent},
	}}
)

// Classify returns the tier of the highest step whose Min is <= v.
// NaN classifies as Below.
func Classify(v float64, th Thresholds) Tier {
	out := th.Below
	if math.IsNaN(v) {
		return out
	}
	for _, s := range th.Steps {
		if v < s.Min {
			break
		}
		out = s.Tier
	}
	return out
}

// ClassifyWinRate buckets a win/success rate percentage.
func ClassifyWinRate(pct float64) Tier { return Classify(pct, WinRateThresholds) }

// ClassifyProfitFactor buckets a profit factor.
func ClassifyProfitFactor(pf float64) Tier { return Classify(pf, ProfitFactorThresholds) }

// ClassifySharpe buckets a Sharpe-like ratio.
func ClassifySharpe(s float64) Tier { return Classify(s, SharpeThresholds) }

// ClassifyProfit buckets a signed P&L by sign.
func ClassifyProfit(v float64) Tier {
	switch {
	case v < 0:
		return TierLoss
	case v > 0:
		return TierProfit
	default:
		return TierNeutral
	}
}
