package interpret

import "SignalDash/internal/domain/models"

// BacktestInterpretation holds the tiers rendered next to a detailed backtest result.
type BacktestInterpretation struct {
	WinRate      Tier                            `json:"win_rate"`
	ProfitFactor Tier                            `json:"profit_factor"`
	Sharpe       Tier                            `json:"sharpe_ratio"`
	TotalPnL     Tier                            `json:"total_pnl"`
	AveragePnL   Tier                            `json:"average_pnl"`
	Grade        string                          `json:"grade"`
	Assessment   Tier                            `json:"assessment"`
	Symbols      []SymbolTiers                   `json:"symbols"`
	Suggestions  []models.OptimizationSuggestion `json:"suggestions"`
}

// SymbolTiers are the tiers of one row of a per-symbol breakdown.
type SymbolTiers struct {
	Symbol   string `json:"symbol"`
	WinRate  Tier   `json:"win_rate"`
	TotalPnL Tier   `json:"total_pnl"`
}

// QuickStatsInterpretation holds the tiers rendered next to quick stats.
type QuickStatsInterpretation struct {
	WinRate      Tier   `json:"win_rate"`
	ProfitFactor Tier   `json:"profit_factor"`
	TotalPnL     Tier   `json:"total_pnl"`
	Grade        string `json:"grade"`
}

// Interpret classifies every metric of a detailed backtest result independently.
func Interpret(s models.BacktestSummary) BacktestInterpretation {
	symbols := make([]SymbolTiers, 0, len(s.DetailedAnalysis.SymbolBreakdown))
	for _, p := range s.DetailedAnalysis.SymbolBreakdown {
		symbols = append(symbols, SymbolTiers{
			Symbol:   p.Symbol,
			WinRate:  ClassifyWinRate(p.WinRate),
			TotalPnL: ClassifyProfit(p.TotalPnL),
		})
	}

	return BacktestInterpretation{
		WinRate:      ClassifyWinRate(s.WinRate),
		ProfitFactor: ClassifyProfitFactor(s.ProfitFactor),
		Sharpe:       ClassifySharpe(s.SharpeRatio),
		TotalPnL:     ClassifyProfit(s.TotalPnL),
		AveragePnL:   ClassifyProfit(s.AveragePnL),
		Grade:        GradeBucket(s.DetailedAnalysis.PerformanceGrade),
		Assessment:   AssessmentTier(s.DetailedAnalysis.OverallAssessment),
		Symbols:      symbols,
		Suggestions:  SortSuggestions(s.OptimizationSuggestions),
	}
}

// InterpretQuickStats classifies the quick stats payload.
func InterpretQuickStats(q models.QuickStats) QuickStatsInterpretation {
	return QuickStatsInterpretation{
		WinRate:      ClassifyWinRate(q.WinRate),
		ProfitFactor: ClassifyProfitFactor(q.ProfitFactor),
		TotalPnL:     ClassifyProfit(q.TotalPnL),
		Grade:        GradeBucket(q.PerformanceGrade),
	}
}

// StatisticTiers classifies a history per-symbol row.
func StatisticTiers(s models.SymbolStatistic) SymbolTiers {
	return SymbolTiers{
		Symbol:   s.Symbol,
		WinRate:  ClassifyWinRate(s.SuccessRate),
		TotalPnL: ClassifyProfit(s.TotalProfit),
	}
}
