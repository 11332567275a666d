package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SignalDash/internal/domain/models"
)

func TestBacktestQuickStatsSurviveDetailedFailure(t *testing.T) {
	src := &fakeBacktest{
		quick:  models.QuickStats{Period: "30d", TotalSignals: 12, WinRate: 58, BestPerformingSymbol: "BTCUSDT", PerformanceGrade: "B"},
		runErr: upstream500,
	}
	sink := &recordingSink{}
	r := NewBacktestRunner(src, sink, nil, nil)
	sess := newSession("s1", 20, time.Now())

	snap, err := r.Run(context.Background(), sess, "30d", true)
	require.Error(t, err)

	var be *BacktestError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, "engine crashed", be.Message)
	assert.Equal(t, 500, be.StatusCode)

	require.NotNil(t, snap.QuickStats)
	assert.Equal(t, 12, snap.QuickStats.TotalSignals)
	assert.Equal(t, 58.0, snap.QuickStats.WinRate)
	assert.Nil(t, snap.Result)
	assert.Equal(t, "engine crashed", snap.Error)
	assert.False(t, snap.Running)

	assert.Equal(t, []string{"quick:30d", "run:30d"}, src.calls)
	assert.True(t, src.runOpt)
	assert.Equal(t, []string{
		models.EventBacktestStarted,
		models.EventBacktestQuickStats,
		models.EventBacktestFailed,
	}, sink.types())
}

func TestBacktestGenericMessageWithoutReason(t *testing.T) {
	src := &fakeBacktest{runErr: errors.New("dial tcp: connection refused")}
	r := NewBacktestRunner(src, nil, nil, nil)
	sess := newSession("s1", 20, time.Now())

	snap, err := r.Run(context.Background(), sess, "7d", false)
	require.Error(t, err)
	assert.Equal(t, GenericBacktestFailure, err.Error())
	assert.Equal(t, GenericBacktestFailure, snap.Error)
}

func TestBacktestDetailedRunAttemptedWhenQuickStatsFail(t *testing.T) {
	src := &fakeBacktest{
		quickErr: errors.New("timeout"),
		result:   models.BacktestSummary{Period: "90d", TotalSignals: 40},
	}
	r := NewBacktestRunner(src, nil, nil, nil)
	sess := newSession("s1", 20, time.Now())

	snap, err := r.Run(context.Background(), sess, "90d", false)
	require.NoError(t, err)
	assert.Nil(t, snap.QuickStats)
	require.NotNil(t, snap.Result)
	assert.Equal(t, 40, snap.Result.TotalSignals)
	assert.Empty(t, snap.Error)
}

func TestBacktestClearsPreviousResultsBeforeRequests(t *testing.T) {
	sess := newSession("s1", 20, time.Now())
	src := &fakeBacktest{
		quick:  models.QuickStats{Period: "30d", TotalSignals: 5},
		result: models.BacktestSummary{Period: "30d", TotalSignals: 5},
	}
	r := NewBacktestRunner(src, nil, nil, nil)
	_, err := r.Run(context.Background(), sess, "30d", false)
	require.NoError(t, err)
	require.NotNil(t, sess.Backtest().Result)

	src.onQuick = func() {
		b := sess.Backtest()
		assert.Nil(t, b.QuickStats)
		assert.Nil(t, b.Result)
		assert.True(t, b.Running)
		assert.Equal(t, "7d", b.Period)
	}
	src.onRun = func() {
		assert.Nil(t, sess.Backtest().Result)
	}
	src.result = models.BacktestSummary{Period: "7d", TotalSignals: 2}
	snap, err := r.Run(context.Background(), sess, "7d", false)
	require.NoError(t, err)
	assert.Equal(t, 2, snap.Result.TotalSignals)
}

func TestBacktestStaleGenerationDropped(t *testing.T) {
	sess := newSession("s1", 20, time.Now())
	old := sess.BeginBacktest("30d", false, time.Now())
	sess.BeginBacktest("7d", false, time.Now())

	assert.False(t, sess.SetQuickStats(old, models.QuickStats{TotalSignals: 1}))
	assert.False(t, sess.CompleteBacktest(old, models.BacktestSummary{}, time.Now()))
	b := sess.Backtest()
	assert.Nil(t, b.QuickStats)
	assert.True(t, b.Running)
	assert.Equal(t, "7d", b.Period)
}
