package models

// BacktestSummary is the detailed backtest result for a period.
type BacktestSummary struct {
	Period                  string                   `json:"period"`
	TotalSignals            int                      `json:"total_signals"`
	WinningSignals          int                      `json:"winning_signals"`
	LosingSignals           int                      `json:"losing_signals"`
	WinRate                 float64                  `json:"win_rate"`
	TotalPnL                float64                  `json:"total_pnl"`
	AveragePnL              float64                  `json:"average_pnl"`
	MaxProfit               float64                  `json:"max_profit"`
	MaxLoss                 float64                  `json:"max_loss"`
	ProfitFactor            float64                  `json:"profit_factor"`
	SharpeRatio             float64                  `json:"sharpe_ratio"`
	MaxDrawdown             float64                  `json:"max_drawdown"`
	AverageHoldTime         float64                  `json:"average_hold_time"`
	DetailedAnalysis        DetailedAnalysis         `json:"detailed_analysis"`
	OptimizationSuggestions []OptimizationSuggestion `json:"optimization_suggestions"`
}

// DetailedAnalysis is the qualitative part of a backtest run.
type DetailedAnalysis struct {
	PerformanceGrade  string              `json:"performance_grade" default:"Unknown"`
	OverallAssessment string              `json:"overall_assessment" default:"N/A"`
	RiskLevel         string              `json:"risk_level" default:"Unknown"`
	Strengths         []string            `json:"strengths"`
	Weaknesses        []string            `json:"weaknesses"`
	SymbolBreakdown   []SymbolPerformance `json:"symbol_breakdown"`
}

// SymbolPerformance is one symbol's row in the backtest breakdown.
type SymbolPerformance struct {
	Symbol       string  `json:"symbol"`
	TotalSignals int     `json:"total_signals"`
	WinRate      float64 `json:"win_rate"`
	TotalPnL     float64 `json:"total_pnl"`
}

// OptimizationSuggestion is a parameter tweak proposed by the backtest engine.
type OptimizationSuggestion struct {
	Category            string `json:"category" default:"general"`
	Suggestion          string `json:"suggestion"`
	Priority            string `json:"priority" default:"low"`
	ExpectedImprovement string `json:"expected_improvement" default:"N/A"`
}

// QuickStats is the compact summary shown before the detailed run finishes.
type QuickStats struct {
	Period               string  `json:"period"`
	TotalSignals         int     `json:"total_signals"`
	WinRate              float64 `json:"win_rate"`
	TotalPnL             float64 `json:"total_pnl"`
	ProfitFactor         float64 `json:"profit_factor"`
	BestPerformingSymbol string  `json:"best_performing_symbol" default:"N/A"`
	PerformanceGrade     string  `json:"performance_grade" default:"Unknown"`
}
