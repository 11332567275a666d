package signalapi

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/spf13/cast"

	"SignalDash/internal/domain/models"
	"SignalDash/pkg/util"
)

// Every payload goes through exactly one normalizer right after decoding.
// Missing or malformed fields turn into zero values or the string defaults
// declared on the models; nothing downstream sees an untyped value.

// NormalizeSignal builds a typed record from one raw signal object.
func NormalizeSignal(raw map[string]interface{}, symbol string) models.SignalRecord {
	rec := models.SignalRecord{
		SignalID:      firstString(raw, "signal_id", "id"),
		Symbol:        util.NormalizeSymbol(firstString(raw, "symbol")),
		StrategyName:  firstString(raw, "strategy_name", "strategy"),
		SignalType:    strings.ToLower(firstString(raw, "signal_type", "type", "side")),
		EntryPrice:    toFloat(raw["entry_price"]),
		Confidence:    clamp01(toFloat(raw["confidence"])),
		Status:        normalizeStatus(firstString(raw, "status")),
		Result:        normalizeResult(firstString(raw, "result")),
		PnLPercentage: toFloat(raw["pnl_percentage"]),
		CreatedAt:     toTime(raw["created_at"]),
	}
	if rec.Symbol == "" {
		rec.Symbol = util.NormalizeSymbol(symbol)
	}
	if rec.StrategyName == "" {
		rec.StrategyName = "Unknown"
	}
	if rec.SignalType == "" {
		rec.SignalType = "N/A"
	}
	if rec.EntryPrice < 0 {
		rec.EntryPrice = 0
	}
	return rec
}

// NormalizeHistory builds one symbol's history from the data object of a history response.
// executed_signals falls back to the number of executed records when absent.
func NormalizeHistory(data map[string]interface{}, symbol string) models.SymbolHistory {
	sym := util.NormalizeSymbol(cast.ToString(data["symbol"]))
	if sym == "" {
		sym = util.NormalizeSymbol(symbol)
	}

	rawSignals := cast.ToSlice(data["signals"])
	signals := make([]models.SignalRecord, 0, len(rawSignals))
	executed := 0
	for _, r := range rawSignals {
		m, err := cast.ToStringMapE(r)
		if err != nil {
			continue
		}
		rec := NormalizeSignal(m, sym)
		if rec.Executed() {
			executed++
		}
		signals = append(signals, rec)
	}

	st := cast.ToStringMap(data["statistics"])
	stats := models.UpstreamSymbolStats{
		TotalSignals:    len(signals),
		SuccessRate:     toFloat(st["success_rate"]),
		AveragePnL:      toFloat(st["average_pnl"]),
		ExecutedSignals: executed,
	}
	if v, ok := st["total_signals"]; ok {
		stats.TotalSignals = cast.ToInt(v)
	}
	if v, ok := st["executed_signals"]; ok {
		stats.ExecutedSignals = cast.ToInt(v)
	}

	return models.SymbolHistory{Symbol: sym, Signals: signals, Statistics: stats}
}

// NormalizeQuickStats builds quick stats from the data object of a quick-stats response.
func NormalizeQuickStats(data map[string]interface{}, period string) models.QuickStats {
	q := models.QuickStats{
		Period:               firstString(data, "period"),
		TotalSignals:         cast.ToInt(data["total_signals"]),
		WinRate:              toFloat(data["win_rate"]),
		TotalPnL:             toFloat(data["total_pnl"]),
		ProfitFactor:         toFloat(data["profit_factor"]),
		BestPerformingSymbol: util.NormalizeSymbol(firstString(data, "best_performing_symbol")),
		PerformanceGrade:     strings.ToUpper(firstString(data, "performance_grade")),
	}
	if q.Period == "" {
		q.Period = period
	}
	mustSetDefaults(&q)
	return q
}

// NormalizeBacktest builds a detailed result from the data object of a run response.
func NormalizeBacktest(data map[string]interface{}, period string) models.BacktestSummary {
	s := models.BacktestSummary{
		Period:                  firstString(data, "period"),
		TotalSignals:            cast.ToInt(data["total_signals"]),
		WinningSignals:          cast.ToInt(data["winning_signals"]),
		LosingSignals:           cast.ToInt(data["losing_signals"]),
		WinRate:                 toFloat(data["win_rate"]),
		TotalPnL:                toFloat(data["total_pnl"]),
		AveragePnL:              toFloat(data["average_pnl"]),
		MaxProfit:               toFloat(data["max_profit"]),
		MaxLoss:                 toFloat(data["max_loss"]),
		ProfitFactor:            toFloat(data["profit_factor"]),
		SharpeRatio:             toFloat(data["sharpe_ratio"]),
		MaxDrawdown:             toFloat(data["max_drawdown"]),
		AverageHoldTime:         toFloat(data["average_hold_time"]),
		DetailedAnalysis:        normalizeAnalysis(cast.ToStringMap(data["detailed_analysis"])),
		OptimizationSuggestions: normalizeSuggestions(cast.ToSlice(data["optimization_suggestions"])),
	}
	if s.Period == "" {
		s.Period = period
	}
	return s
}

func normalizeAnalysis(m map[string]interface{}) models.DetailedAnalysis {
	a := models.DetailedAnalysis{
		PerformanceGrade:  strings.ToUpper(firstString(m, "performance_grade")),
		OverallAssessment: firstString(m, "overall_assessment"),
		RiskLevel:         firstString(m, "risk_level"),
		Strengths:         nonEmpty(cast.ToStringSlice(m["strengths"])),
		Weaknesses:        nonEmpty(cast.ToStringSlice(m["weaknesses"])),
		SymbolBreakdown:   normalizeBreakdown(m["symbol_breakdown"]),
	}
	mustSetDefaults(&a)
	return a
}

// normalizeBreakdown accepts either a list of rows or an object keyed by symbol.
func normalizeBreakdown(v interface{}) []models.SymbolPerformance {
	row := func(sym string, m map[string]interface{}) models.SymbolPerformance {
		if s := firstString(m, "symbol"); s != "" {
			sym = s
		}
		return models.SymbolPerformance{
			Symbol:       util.NormalizeSymbol(sym),
			TotalSignals: cast.ToInt(m["total_signals"]),
			WinRate:      toFloat(m["win_rate"]),
			TotalPnL:     toFloat(m["total_pnl"]),
		}
	}

	if byKey, err := cast.ToStringMapE(v); err == nil && len(byKey) > 0 {
		keys := make([]string, 0, len(byKey))
		for k := range byKey {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]models.SymbolPerformance, 0, len(keys))
		for _, k := range keys {
			out = append(out, row(k, cast.ToStringMap(byKey[k])))
		}
		return out
	}

	list := cast.ToSlice(v)
	out := make([]models.SymbolPerformance, 0, len(list))
	for _, item := range list {
		m, err := cast.ToStringMapE(item)
		if err != nil {
			continue
		}
		out = append(out, row("", m))
	}
	return out
}

func normalizeSuggestions(list []interface{}) []models.OptimizationSuggestion {
	out := make([]models.OptimizationSuggestion, 0, len(list))
	for _, item := range list {
		m, err := cast.ToStringMapE(item)
		if err != nil {
			continue
		}
		s := models.OptimizationSuggestion{
			Category:            firstString(m, "category", "type"),
			Suggestion:          firstString(m, "suggestion", "description"),
			Priority:            strings.ToLower(firstString(m, "priority")),
			ExpectedImprovement: firstString(m, "expected_improvement"),
		}
		if s.Suggestion == "" {
			continue
		}
		mustSetDefaults(&s)
		out = append(out, s)
	}
	return out
}

// mustSetDefaults fills the default tags of a model. The tags are static, so an
// error means a malformed tag on the model type.
func mustSetDefaults(ptr interface{}) {
	if err := defaults.Set(ptr); err != nil {
		panic(fmt.Sprintf("signalapi: defaults for %T: %v", ptr, err))
	}
}

func firstString(m map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			if s := strings.TrimSpace(cast.ToString(v)); s != "" {
				return s
			}
		}
	}
	return ""
}

// toFloat accepts numbers and numeric strings, tolerating a trailing percent sign.
// NaN and infinities read as 0.
func toFloat(v interface{}) float64 {
	if s, ok := v.(string); ok {
		v = strings.TrimSuffix(strings.TrimSpace(s), "%")
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func toTime(v interface{}) time.Time {
	switch t := v.(type) {
	case nil:
		return time.Time{}
	case float64:
		if t > 1e12 {
			return time.UnixMilli(int64(t)).UTC()
		}
		return time.Unix(int64(t), 0).UTC()
	default:
		parsed, _ := util.ParseTime(cast.ToString(t))
		return parsed
	}
}

func clamp01(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}

func normalizeStatus(s string) models.SignalStatus {
	switch st := models.SignalStatus(strings.ToLower(s)); st {
	case models.StatusPending, models.StatusExecuted, models.StatusExpired:
		return st
	default:
		return models.StatusPending
	}
}

func normalizeResult(s string) models.SignalResult {
	switch r := models.SignalResult(strings.ToLower(s)); r {
	case models.ResultProfit, models.ResultLoss:
		return r
	default:
		return models.ResultNone
	}
}

func nonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
