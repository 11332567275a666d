package interpret

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"SignalDash/internal/domain/models"
)

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		name string
		got  Tier
		want Tier
	}{
		{"win rate 29.9", ClassifyWinRate(29.9), TierPoor},
		{"win rate 30", ClassifyWinRate(30), TierFair},
		{"win rate 50", ClassifyWinRate(50), TierGood},
		{"win rate 69.9", ClassifyWinRate(69.9), TierGood},
		{"win rate 70", ClassifyWinRate(70), TierExcellent},
		{"win rate 100", ClassifyWinRate(100), TierExcellent},
		{"profit factor 0.99", ClassifyProfitFactor(0.99), TierPoor},
		{"profit factor 1.0", ClassifyProfitFactor(1.0), TierFair},
		{"profit factor 1.5", ClassifyProfitFactor(1.5), TierGood},
		{"profit factor 1.99", ClassifyProfitFactor(1.99), TierGood},
		{"profit factor 2.0", ClassifyProfitFactor(2.0), TierExcellent},
		{"sharpe 0.49", ClassifySharpe(0.49), TierPoor},
		{"sharpe 0.5", ClassifySharpe(0.5), TierFair},
		{"sharpe 1.0", ClassifySharpe(1.0), TierGood},
		{"sharpe 2.0", ClassifySharpe(2.0), TierExcellent},
		{"sharpe negative", ClassifySharpe(-1.2), TierPoor},
		{"sharpe NaN", ClassifySharpe(math.NaN()), TierPoor},
		{"profit negative", ClassifyProfit(-0.01), TierLoss},
		{"profit zero", ClassifyProfit(0), TierNeutral},
		{"profit positive", ClassifyProfit(0.01), TierProfit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestGradeBucket(t *testing.T) {
	tests := map[string]string{
		"A+":  "grade-a-plus",
		"a":   "grade-a",
		" B+": "grade-b-plus",
		"B":   "grade-b",
		"C+":  "grade-c-plus",
		"C":   "grade-c",
		"D":   "grade-d",
		"F":   "grade-f",
		"E":   "unknown",
		"":    "unknown",
	}
	for in, want := range tests {
		assert.Equal(t, want, GradeBucket(in), "grade %q", in)
	}
}

func TestAssessmentTier(t *testing.T) {
	tests := map[string]Tier{
		"Excellent performance": TierExcellent,
		"策略表现优秀":                TierExcellent,
		"GOOD overall":          TierGood,
		"表现良好":                  TierGood,
		"Fair, needs work":      TierFair,
		"表现一般":                  TierFair,
		"中等水平":                  TierFair,
		"poor risk control":     TierPoor,
		"表现较差":                  TierPoor,
		"no keywords here":      TierNeutral,
		"":                      TierNeutral,
	}
	for in, want := range tests {
		assert.Equal(t, want, AssessmentTier(in), "assessment %q", in)
	}
}

func TestSortSuggestionsStableByPriority(t *testing.T) {
	in := []models.OptimizationSuggestion{
		{Suggestion: "a", Priority: "low"},
		{Suggestion: "b", Priority: "high"},
		{Suggestion: "c", Priority: "medium"},
		{Suggestion: "d", Priority: "High"},
		{Suggestion: "e", Priority: "whenever"},
	}
	got := SortSuggestions(in)

	order := make([]string, 0, len(got))
	for _, s := range got {
		order = append(order, s.Suggestion)
	}
	assert.Equal(t, []string{"b", "d", "c", "a", "e"}, order)
	assert.Equal(t, "a", in[0].Suggestion, "input left untouched")
}

func TestInterpret(t *testing.T) {
	got := Interpret(models.BacktestSummary{
		WinRate:      70,
		ProfitFactor: 1.5,
		SharpeRatio:  2.0,
		TotalPnL:     -3.2,
		DetailedAnalysis: models.DetailedAnalysis{
			PerformanceGrade:  "B+",
			OverallAssessment: "Good risk-adjusted returns",
			SymbolBreakdown:   []models.SymbolPerformance{{Symbol: "BTCUSDT", WinRate: 45, TotalPnL: 2}},
		},
	})

	assert.Equal(t, TierExcellent, got.WinRate)
	assert.Equal(t, TierGood, got.ProfitFactor)
	assert.Equal(t, TierExcellent, got.Sharpe)
	assert.Equal(t, TierLoss, got.TotalPnL)
	assert.Equal(t, TierNeutral, got.AveragePnL)
	assert.Equal(t, "grade-b-plus", got.Grade)
	assert.Equal(t, TierGood, got.Assessment)
	assert.Equal(t, []SymbolTiers{{Symbol: "BTCUSDT", WinRate: TierFair, TotalPnL: TierProfit}}, got.Symbols)
}

func TestInterpretQuickStats(t *testing.T) {
	got := InterpretQuickStats(models.QuickStats{WinRate: 69.9, ProfitFactor: 0.8, TotalPnL: 1, PerformanceGrade: "Unknown"})

	assert.Equal(t, TierGood, got.WinRate)
	assert.Equal(t, TierPoor, got.ProfitFactor)
	assert.Equal(t, TierProfit, got.TotalPnL)
	assert.Equal(t, "unknown", got.Grade)
}
