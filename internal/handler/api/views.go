package api

import (
	"time"

	"SignalDash/internal/domain/models"
	"SignalDash/internal/services/interpret"
	"SignalDash/internal/usecase"
	"SignalDash/pkg/util"
)

// SignalView is a signal record as rendered to the dashboard.
type SignalView struct {
	SignalID      string  `json:"signal_id"`
	Symbol        string  `json:"symbol"`
	StrategyName  string  `json:"strategy_name"`
	SignalType    string  `json:"signal_type"`
	EntryPrice    float64 `json:"entry_price"`
	Confidence    float64 `json:"confidence"`
	Status        string  `json:"status"`
	Result        string  `json:"result"`
	PnLPercentage float64 `json:"pnl_percentage"`
	PnLTier       string  `json:"pnl_tier"`
	CreatedAt     string  `json:"created_at"`
}

// SymbolStatView is one per-symbol row with its display tiers.
type SymbolStatView struct {
	models.SymbolStatistic
	SuccessTier string `json:"success_tier"`
	ProfitTier  string `json:"profit_tier"`
}

// HistoryStatsView is the statistics panel of the history tab.
type HistoryStatsView struct {
	Empty         bool                    `json:"empty"`
	Stale         bool                    `json:"stale"`
	Overall       models.OverallStatistic `json:"overall"`
	OverallTier   string                  `json:"overall_tier"`
	PerSymbol     []SymbolStatView        `json:"per_symbol"`
	FailedSymbols []string                `json:"failed_symbols"`
	Hours         int                     `json:"hours,omitempty"`
	Precision     string                  `json:"precision,omitempty"`
	FetchedAt     string                  `json:"fetched_at"`
}

// BacktestView is the backtest tab: quick stats, detailed result and their tiers.
type BacktestView struct {
	Period              string                              `json:"period,omitempty"`
	IncludeOptimization bool                                `json:"include_optimization"`
	Running             bool                                `json:"running"`
	QuickStats          *models.QuickStats                  `json:"quick_stats,omitempty"`
	QuickStatsTiers     *interpret.QuickStatsInterpretation `json:"quick_stats_tiers,omitempty"`
	Result              *models.BacktestSummary             `json:"result,omitempty"`
	Interpretation      *interpret.BacktestInterpretation   `json:"interpretation,omitempty"`
	Error               string                              `json:"error,omitempty"`
	StartedAt           string                              `json:"started_at"`
	FinishedAt          string                              `json:"finished_at"`
}

// ConfigView lists the dashboard's selectable options.
type ConfigView struct {
	Symbols    []string `json:"symbols"`
	Hours      []int    `json:"hours"`
	Precisions []string `json:"precisions"`
	Periods    []string `json:"periods"`
	Statuses   []string `json:"statuses"`
	PageSize   int      `json:"page_size"`
	Timezone   string   `json:"timezone"`
}

func toSignalViews(recs []models.SignalRecord, loc *time.Location) []SignalView {
	out := make([]SignalView, 0, len(recs))
	for _, r := range recs {
		out = append(out, SignalView{
			SignalID:      r.SignalID,
			Symbol:        r.Symbol,
			StrategyName:  r.StrategyName,
			SignalType:    r.SignalType,
			EntryPrice:    r.EntryPrice,
			Confidence:    r.Confidence,
			Status:        string(r.Status),
			Result:        string(r.Result),
			PnLPercentage: r.PnLPercentage,
			PnLTier:       string(interpret.ClassifyProfit(r.PnLPercentage)),
			CreatedAt:     util.FormatDisplay(r.CreatedAt, loc),
		})
	}
	return out
}

func toHistoryStatsView(agg models.HistoryAggregate, has, stale bool, loc *time.Location) HistoryStatsView {
	v := HistoryStatsView{
		Empty:         !has || agg.Empty(),
		Stale:         stale,
		Overall:       agg.Overall,
		OverallTier:   string(interpret.ClassifyWinRate(agg.Overall.SuccessRate)),
		PerSymbol:     make([]SymbolStatView, 0, len(agg.PerSymbol)),
		FailedSymbols: agg.FailedSymbols,
		Hours:         agg.Hours,
		Precision:     agg.Precision,
		FetchedAt:     util.FormatDisplay(agg.FetchedAt, loc),
	}
	if v.FailedSymbols == nil {
		v.FailedSymbols = []string{}
	}
	for _, s := range agg.PerSymbol {
		t := interpret.StatisticTiers(s)
		v.PerSymbol = append(v.PerSymbol, SymbolStatView{
			SymbolStatistic: s,
			SuccessTier:     string(t.WinRate),
			ProfitTier:      string(t.TotalPnL),
		})
	}
	return v
}

func toBacktestView(b usecase.BacktestSnapshot, loc *time.Location) BacktestView {
	v := BacktestView{
		Period:              b.Period,
		IncludeOptimization: b.IncludeOptimization,
		Running:             b.Running,
		QuickStats:          b.QuickStats,
		Result:              b.Result,
		Error:               b.Error,
		StartedAt:           util.FormatDisplay(b.StartedAt, loc),
		FinishedAt:          util.FormatDisplay(b.FinishedAt, loc),
	}
	if b.QuickStats != nil {
		qi := interpret.InterpretQuickStats(*b.QuickStats)
		v.QuickStatsTiers = &qi
	}
	if b.Result != nil {
		bi := interpret.Interpret(*b.Result)
		v.Interpretation = &bi
	}
	return v
}
