package models

import "time"

// SignalStatus is the lifecycle state of a signal.
type SignalStatus string

const (
	StatusPending  SignalStatus = "pending"
	StatusExecuted SignalStatus = "executed"
	StatusExpired  SignalStatus = "expired"
)

// SignalResult is the outcome of an executed signal.
type SignalResult string

const (
	ResultProfit SignalResult = "profit"
	ResultLoss   SignalResult = "loss"
	ResultNone   SignalResult = "none"
)

// SignalRecord is one historical signal as emitted by the strategy engine.
// Result and PnLPercentage are only meaningful when Status is executed.
type SignalRecord struct {
	SignalID      string       `json:"signal_id"`
	Symbol        string       `json:"symbol"`
	StrategyName  string       `json:"strategy_name"`
	SignalType    string       `json:"signal_type"`
	EntryPrice    float64      `json:"entry_price"`
	Confidence    float64      `json:"confidence"`
	Status        SignalStatus `json:"status"`
	Result        SignalResult `json:"result"`
	PnLPercentage float64      `json:"pnl_percentage"`
	CreatedAt     time.Time    `json:"created_at"`
}

// Executed reports whether the record counts toward profitability statistics.
func (s SignalRecord) Executed() bool { return s.Status == StatusExecuted }

// Profitable reports an executed signal closed in profit.
func (s SignalRecord) Profitable() bool { return s.Executed() && s.Result == ResultProfit }

// UpstreamSymbolStats is the per-symbol statistics block computed by the upstream service.
// SuccessRate is a percentage (0-100).
type UpstreamSymbolStats struct {
	TotalSignals    int     `json:"total_signals"`
	SuccessRate     float64 `json:"success_rate"`
	AveragePnL      float64 `json:"average_pnl"`
	ExecutedSignals int     `json:"executed_signals"`
}

// SymbolHistory is one symbol's normalized history response.
type SymbolHistory struct {
	Symbol     string              `json:"symbol"`
	Signals    []SignalRecord      `json:"signals"`
	Statistics UpstreamSymbolStats `json:"statistics"`
}

// SymbolStatistic is the derived per-symbol breakdown.
type SymbolStatistic struct {
	Symbol       string  `json:"symbol"`
	TotalSignals int     `json:"total_signals"`
	SuccessRate  float64 `json:"success_rate"`
	TotalProfit  float64 `json:"total_profit"`
	AvgProfit    float64 `json:"avg_profit"`
}

// OverallStatistic is the derived cross-symbol summary.
type OverallStatistic struct {
	TotalSignals       int     `json:"total_signals"`
	SuccessRate        float64 `json:"success_rate"`
	TotalProfitPercent float64 `json:"total_profit_percent"`
	AvgProfitPercent   float64 `json:"avg_profit_percent"`
}

// HistoryAggregate is one refresh cycle's result. It replaces the previous one wholesale.
type HistoryAggregate struct {
	All           []SignalRecord
	PerSymbol     []SymbolStatistic
	Overall       OverallStatistic
	FailedSymbols []string
	FetchedAt     time.Time
	Hours         int
	Precision     string
}

// Empty reports an aggregate built from no successful symbol.
func (a HistoryAggregate) Empty() bool {
	return len(a.PerSymbol) == 0
}
