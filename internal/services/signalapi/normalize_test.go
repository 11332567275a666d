package signalapi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SignalDash/internal/domain/models"
)

func TestNormalizeSignalDefaults(t *testing.T) {
	got := NormalizeSignal(map[string]interface{}{
		"id":         42,
		"confidence": 1.7,
		"status":     "EXECUTED",
		"result":     "win",
	}, "ethusdt")

	assert.Equal(t, models.SignalRecord{
		SignalID:     "42",
		Symbol:       "ETHUSDT",
		StrategyName: "Unknown",
		SignalType:   "N/A",
		Confidence:   1,
		Status:       models.StatusExecuted,
		Result:       models.ResultNone,
	}, got)
}

func TestNormalizeSignalUnknownStatusIsPending(t *testing.T) {
	got := NormalizeSignal(map[string]interface{}{"status": "cancelled", "pnl_percentage": "-1.5%"}, "BTCUSDT")

	assert.Equal(t, models.StatusPending, got.Status)
	assert.Equal(t, -1.5, got.PnLPercentage)
	assert.False(t, got.Executed())
}

func TestNormalizeSignalTimestamps(t *testing.T) {
	want := time.Date(2024, 10, 10, 16, 30, 0, 0, time.UTC)
	for _, v := range []interface{}{
		"2024-10-10T16:30:00Z",
		"2024-10-11T00:30:00+08:00",
		"2024-10-10 16:30:00",
		float64(want.Unix()),
		float64(want.UnixMilli()),
	} {
		got := NormalizeSignal(map[string]interface{}{"created_at": v}, "BTCUSDT")
		assert.True(t, want.Equal(got.CreatedAt), "created_at %v gave %v", v, got.CreatedAt)
	}

	assert.True(t, NormalizeSignal(map[string]interface{}{"created_at": "yesterday"}, "BTCUSDT").CreatedAt.IsZero())
}

func TestNormalizeHistoryMissingStatistics(t *testing.T) {
	got := NormalizeHistory(map[string]interface{}{
		"signals": []interface{}{
			map[string]interface{}{"status": "executed", "result": "loss"},
			map[string]interface{}{"status": "pending"},
			"garbage",
		},
	}, "solusdt")

	assert.Equal(t, "SOLUSDT", got.Symbol)
	assert.Len(t, got.Signals, 2)
	assert.Equal(t, models.UpstreamSymbolStats{TotalSignals: 2, ExecutedSignals: 1}, got.Statistics)
}

func TestNormalizeHistoryNilData(t *testing.T) {
	got := NormalizeHistory(nil, "BTCUSDT")

	assert.Equal(t, "BTCUSDT", got.Symbol)
	assert.Empty(t, got.Signals)
}

func TestNormalizeBacktestEmpty(t *testing.T) {
	got := NormalizeBacktest(nil, "all")

	assert.Equal(t, "all", got.Period)
	assert.Equal(t, "Unknown", got.DetailedAnalysis.PerformanceGrade)
	assert.Equal(t, "N/A", got.DetailedAnalysis.OverallAssessment)
	assert.Empty(t, got.OptimizationSuggestions)
}

func TestNormalizeBreakdownList(t *testing.T) {
	got := normalizeBreakdown([]interface{}{
		map[string]interface{}{"symbol": "bnbusdt", "total_signals": "4", "win_rate": 25},
	})

	assert.Equal(t, []models.SymbolPerformance{{Symbol: "BNBUSDT", TotalSignals: 4, WinRate: 25}}, got)
}

func TestNormalizeNonFiniteNumbersReadAsZero(t *testing.T) {
	for _, v := range []interface{}{"NaN", "Infinity", "-Inf", "+Inf%"} {
		h := NormalizeHistory(map[string]interface{}{
			"signals": []interface{}{
				map[string]interface{}{"status": "executed", "result": "profit", "pnl_percentage": v, "entry_price": v},
			},
			"statistics": map[string]interface{}{"success_rate": v, "average_pnl": v},
		}, "BTCUSDT")

		require.Len(t, h.Signals, 1)
		assert.Zero(t, h.Signals[0].PnLPercentage, "pnl_percentage %v", v)
		assert.Zero(t, h.Signals[0].EntryPrice, "entry_price %v", v)
		assert.Zero(t, h.Statistics.SuccessRate, "success_rate %v", v)
		assert.Zero(t, h.Statistics.AveragePnL, "average_pnl %v", v)

		q := NormalizeQuickStats(map[string]interface{}{"win_rate": v, "total_pnl": v}, "all")
		assert.Zero(t, q.WinRate)
		assert.Zero(t, q.TotalPnL)
	}
}

func TestModelDefaultTagsAreValid(t *testing.T) {
	for _, ptr := range []interface{}{
		&models.QuickStats{},
		&models.DetailedAnalysis{},
		&models.OptimizationSuggestion{},
	} {
		assert.NotPanics(t, func() { mustSetDefaults(ptr) }, "%T", ptr)
	}

	q := NormalizeQuickStats(nil, "30d")
	assert.Equal(t, "30d", q.Period)
	assert.NotEmpty(t, q.PerformanceGrade)
}
