package service

import (
	"context"

	"SignalDash/internal/domain/models"
)

// HistoryQuery selects one symbol's signal history.
type HistoryQuery struct {
	Symbol    string
	Limit     int
	Skip      int
	Hours     int
	Precision string
}

// HistorySource fetches per-symbol signal history from the strategy engine.
type HistorySource interface {
	FetchHistory(ctx context.Context, q HistoryQuery) (models.SymbolHistory, error)
}

// BacktestSource runs backtests on the strategy engine.
type BacktestSource interface {
	QuickStats(ctx context.Context, period string) (models.QuickStats, error)
	RunBacktest(ctx context.Context, period string, includeOptimization bool) (models.BacktestSummary, error)
}
