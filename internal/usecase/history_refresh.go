package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/multierr"

	"SignalDash/internal/domain/models"
	"SignalDash/internal/domain/repository"
	domsvc "SignalDash/internal/domain/service"
	"SignalDash/internal/services/stats"
	applogger "SignalDash/pkg/logger"
)

// RefreshParams selects the history window requested by the viewer.
type RefreshParams struct {
	Hours     int
	Precision string
}

// RefreshResult describes one refresh cycle.
// Snapshot is what the session holds afterwards; Stale is set when the cycle
// produced nothing and an older snapshot (possibly none) was kept.
type RefreshResult struct {
	Snapshot    models.HistoryAggregate
	HasSnapshot bool
	Stale       bool
	Failed      []string
	Err         error
}

// HistoryRefresher runs a refresh cycle: one request per tracked symbol, all settled before aggregating.
type HistoryRefresher struct {
	source  domsvc.HistorySource
	symbols []string
	limit   int
	events  EventSink
	metrics repository.Metrics
	log     *applogger.Logger
	now     func() time.Time
}

func NewHistoryRefresher(source domsvc.HistorySource, symbols []string, limit int, events EventSink, metrics repository.Metrics, l *applogger.Logger) *HistoryRefresher {
	if events == nil {
		events = nopSink{}
	}
	if metrics == nil {
		metrics = repository.NopMetrics{}
	}
	if l == nil {
		l = applogger.NewNop()
	}
	return &HistoryRefresher{
		source:  source,
		symbols: symbols,
		limit:   limit,
		events:  events,
		metrics: metrics,
		log:     l,
		now:     time.Now,
	}
}

// Symbols returns the tracked symbol list.
func (r *HistoryRefresher) Symbols() []string { return r.symbols }

// Refresh fetches every tracked symbol concurrently and replaces the session snapshot
// when at least one symbol succeeded. A fully failed cycle leaves the old snapshot in place.
func (r *HistoryRefresher) Refresh(ctx context.Context, sess *Session, p RefreshParams) RefreshResult {
	start := r.now()

	type item struct {
		symbol string
		hist   models.SymbolHistory
		err    error
	}
	ch := make(chan item, len(r.symbols))
	var wg sync.WaitGroup

	for _, sym := range r.symbols {
		wg.Add(1)
		go func(sym string) {
			defer wg.Done()
			h, err := r.source.FetchHistory(ctx, domsvc.HistoryQuery{
				Symbol:    sym,
				Limit:     r.limit,
				Hours:     p.Hours,
				Precision: p.Precision,
			})
			ch <- item{symbol: sym, hist: h, err: err}
		}(sym)
	}

	go func() { wg.Wait(); close(ch) }()

	got := make(map[string]models.SymbolHistory, len(r.symbols))
	var errs error
	for it := range ch {
		if it.err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", it.symbol, it.err))
			continue
		}
		got[it.symbol] = it.hist
	}

	// Aggregate in tracked-symbol order so equal success rates keep config order.
	ok := make([]models.SymbolHistory, 0, len(got))
	failed := make([]string, 0, len(r.symbols)-len(got))
	for _, sym := range r.symbols {
		if h, found := got[sym]; found {
			ok = append(ok, h)
		} else {
			failed = append(failed, sym)
		}
	}

	r.metrics.RecordLatency("history_refresh", r.now().Sub(start).Seconds())

	if len(ok) == 0 {
		r.metrics.RecordError("history_refresh_total_failure")
		r.log.Error("history refresh failed for every symbol",
			applogger.String("session", sess.ID),
			applogger.Strings("symbols", r.symbols),
			applogger.Error(errs),
		)
		prev, has := sess.History()
		return RefreshResult{Snapshot: prev, HasSnapshot: has, Stale: true, Failed: failed, Err: errs}
	}

	if errs != nil {
		r.log.Warn("history refresh partially failed",
			applogger.String("session", sess.ID),
			applogger.Strings("failed", failed),
			applogger.Error(errs),
		)
	}

	agg := stats.Aggregate(ok)
	agg.FailedSymbols = failed
	agg.FetchedAt = r.now().UTC()
	agg.Hours = p.Hours
	agg.Precision = p.Precision
	sess.ReplaceHistory(agg)
	r.metrics.RecordSnapshot("history_signals", len(agg.All))

	r.events.Emit(ctx, NewEvent(sess.ID, models.EventHistoryRefreshed, map[string]interface{}{
		"overall":        agg.Overall,
		"failed_symbols": failed,
		"hours":          p.Hours,
		"precision":      p.Precision,
	}))

	return RefreshResult{Snapshot: agg, HasSnapshot: true, Failed: failed, Err: errs}
}
