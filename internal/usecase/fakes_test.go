package usecase

import (
	"context"
	"errors"
	"sync"

	"SignalDash/internal/domain/models"
	domsvc "SignalDash/internal/domain/service"
	"SignalDash/internal/services/signalapi"
)

type fakeHistory struct {
	mu      sync.Mutex
	data    map[string]models.SymbolHistory
	fail    map[string]bool
	queries []domsvc.HistoryQuery
}

func (f *fakeHistory) FetchHistory(_ context.Context, q domsvc.HistoryQuery) (models.SymbolHistory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	if f.fail[q.Symbol] {
		return models.SymbolHistory{}, errors.New("connection refused")
	}
	return f.data[q.Symbol], nil
}

type fakeBacktest struct {
	quick     models.QuickStats
	quickErr  error
	result    models.BacktestSummary
	runErr    error
	onQuick   func()
	onRun     func()
	calls     []string
	runPeriod string
	runOpt    bool
}

func (f *fakeBacktest) QuickStats(_ context.Context, period string) (models.QuickStats, error) {
	f.calls = append(f.calls, "quick:"+period)
	if f.onQuick != nil {
		f.onQuick()
	}
	return f.quick, f.quickErr
}

func (f *fakeBacktest) RunBacktest(_ context.Context, period string, includeOptimization bool) (models.BacktestSummary, error) {
	f.calls = append(f.calls, "run:"+period)
	f.runPeriod, f.runOpt = period, includeOptimization
	if f.onRun != nil {
		f.onRun()
	}
	return f.result, f.runErr
}

type recordingSink struct {
	mu     sync.Mutex
	events []models.DashboardEvent
}

func (r *recordingSink) Emit(_ context.Context, ev models.DashboardEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recordingSink) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Type)
	}
	return out
}

var upstream500 = &signalapi.UpstreamError{Op: "run_backtest", StatusCode: 500, Message: "engine crashed"}
