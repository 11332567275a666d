package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SignalDash/internal/domain/models"
	"SignalDash/internal/services/signalapi"
)

func rec(id, sym string, status models.SignalStatus, result models.SignalResult, pnl float64) models.SignalRecord {
	return models.SignalRecord{
		SignalID:      id,
		Symbol:        sym,
		Status:        status,
		Result:        result,
		PnLPercentage: pnl,
		CreatedAt:     time.Date(2024, 10, 10, 10, 0, 0, 0, time.UTC),
	}
}

func historyFixture() map[string]models.SymbolHistory {
	return map[string]models.SymbolHistory{
		"BTCUSDT": {
			Symbol: "BTCUSDT",
			Signals: []models.SignalRecord{
				rec("1", "BTCUSDT", models.StatusExecuted, models.ResultProfit, 2),
				rec("2", "BTCUSDT", models.StatusExecuted, models.ResultLoss, -1),
			},
			Statistics: models.UpstreamSymbolStats{TotalSignals: 2, SuccessRate: 50, AveragePnL: 0.5, ExecutedSignals: 2},
		},
		"ETHUSDT": {
			Symbol: "ETHUSDT",
			Signals: []models.SignalRecord{
				rec("3", "ETHUSDT", models.StatusExecuted, models.ResultProfit, 3),
			},
			Statistics: models.UpstreamSymbolStats{TotalSignals: 1, SuccessRate: 100, AveragePnL: 3, ExecutedSignals: 1},
		},
	}
}

func TestRefreshReplacesSnapshot(t *testing.T) {
	src := &fakeHistory{data: historyFixture()}
	sink := &recordingSink{}
	r := NewHistoryRefresher(src, []string{"BTCUSDT", "ETHUSDT"}, 100, sink, nil, nil)
	sess := newSession("s1", 20, time.Now())

	res := r.Refresh(context.Background(), sess, RefreshParams{Hours: 72, Precision: "high"})
	require.NoError(t, res.Err)
	assert.False(t, res.Stale)
	assert.Empty(t, res.Failed)

	agg, ok := sess.History()
	require.True(t, ok)
	assert.Len(t, agg.All, 3)
	assert.Equal(t, 72, agg.Hours)
	assert.Equal(t, "high", agg.Precision)
	require.Len(t, agg.PerSymbol, 2)
	assert.Equal(t, "ETHUSDT", agg.PerSymbol[0].Symbol)
	assert.Equal(t, 3, agg.Overall.TotalSignals)
	assert.Equal(t, []string{models.EventHistoryRefreshed}, sink.types())

	require.Len(t, src.queries, 2)
	for _, q := range src.queries {
		assert.Equal(t, 100, q.Limit)
		assert.Equal(t, 72, q.Hours)
		assert.Equal(t, "high", q.Precision)
	}
}

func TestRefreshPartialFailureKeepsSuccessfulSymbols(t *testing.T) {
	src := &fakeHistory{data: historyFixture(), fail: map[string]bool{"ETHUSDT": true}}
	r := NewHistoryRefresher(src, []string{"BTCUSDT", "ETHUSDT", "SOLUSDT"}, 100, nil, nil, nil)
	src.fail["SOLUSDT"] = true
	sess := newSession("s1", 20, time.Now())

	res := r.Refresh(context.Background(), sess, RefreshParams{Hours: 24, Precision: "all"})
	require.Error(t, res.Err)
	assert.False(t, res.Stale)
	assert.Equal(t, []string{"ETHUSDT", "SOLUSDT"}, res.Failed)

	agg, ok := sess.History()
	require.True(t, ok)
	assert.Len(t, agg.All, 2)
	require.Len(t, agg.PerSymbol, 1)
	assert.Equal(t, "BTCUSDT", agg.PerSymbol[0].Symbol)
	assert.Equal(t, []string{"ETHUSDT", "SOLUSDT"}, agg.FailedSymbols)
}

func TestRefreshTotalFailureKeepsPreviousSnapshot(t *testing.T) {
	src := &fakeHistory{data: historyFixture()}
	sink := &recordingSink{}
	r := NewHistoryRefresher(src, []string{"BTCUSDT", "ETHUSDT"}, 100, sink, nil, nil)
	sess := newSession("s1", 20, time.Now())

	first := r.Refresh(context.Background(), sess, RefreshParams{Hours: 24, Precision: "all"})
	require.NoError(t, first.Err)

	src.fail = map[string]bool{"BTCUSDT": true, "ETHUSDT": true}
	res := r.Refresh(context.Background(), sess, RefreshParams{Hours: 168, Precision: "all"})
	require.Error(t, res.Err)
	assert.True(t, res.Stale)
	assert.True(t, res.HasSnapshot)
	assert.Equal(t, 24, res.Snapshot.Hours)

	agg, _ := sess.History()
	assert.Len(t, agg.All, 3)
	assert.Equal(t, 24, agg.Hours)
	assert.Len(t, sink.types(), 1)
}

func TestRefreshTotalFailureWithoutSnapshot(t *testing.T) {
	src := &fakeHistory{fail: map[string]bool{"BTCUSDT": true}}
	r := NewHistoryRefresher(src, []string{"BTCUSDT"}, 100, nil, nil, nil)
	sess := newSession("s1", 20, time.Now())

	res := r.Refresh(context.Background(), sess, RefreshParams{Hours: 24, Precision: "all"})
	assert.True(t, res.Stale)
	assert.False(t, res.HasSnapshot)
	_, ok := sess.History()
	assert.False(t, ok)
}

func TestRefreshSurvivesNonFiniteUpstreamNumbers(t *testing.T) {
	h := signalapi.NormalizeHistory(map[string]interface{}{
		"signals": []interface{}{
			map[string]interface{}{"signal_id": "1", "status": "executed", "result": "profit", "pnl_percentage": "NaN"},
			map[string]interface{}{"signal_id": "2", "status": "executed", "result": "loss", "pnl_percentage": "-2"},
		},
		"statistics": map[string]interface{}{"success_rate": "Infinity", "average_pnl": "NaN"},
	}, "BTCUSDT")
	src := &fakeHistory{data: map[string]models.SymbolHistory{"BTCUSDT": h}}
	r := NewHistoryRefresher(src, []string{"BTCUSDT"}, 100, nil, nil, nil)
	sess := newSession("s1", 20, time.Now())

	var res RefreshResult
	require.NotPanics(t, func() {
		res = r.Refresh(context.Background(), sess, RefreshParams{Hours: 24, Precision: "medium"})
	})
	require.NoError(t, res.Err)

	agg, ok := sess.History()
	require.True(t, ok)
	assert.Equal(t, 50.0, agg.Overall.SuccessRate)
	assert.Equal(t, -2.0, agg.Overall.TotalProfitPercent)
	assert.Zero(t, agg.PerSymbol[0].SuccessRate)
}
