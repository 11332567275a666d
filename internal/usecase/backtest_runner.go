package usecase

import (
	"context"
	"errors"
	"time"

	"SignalDash/internal/domain/models"
	"SignalDash/internal/domain/repository"
	domsvc "SignalDash/internal/domain/service"
	applogger "SignalDash/pkg/logger"
)

// GenericBacktestFailure is shown when the engine gives no reason.
const GenericBacktestFailure = "Backtest failed, please try again later"

// BacktestError is the user-visible failure of the detailed backtest step.
type BacktestError struct {
	Message    string
	StatusCode int
	Err        error
}

func (e *BacktestError) Error() string { return e.Message }

func (e *BacktestError) Unwrap() error { return e.Err }

// newBacktestError keeps the most specific message available.
func newBacktestError(err error) *BacktestError {
	be := &BacktestError{Message: GenericBacktestFailure, Err: err}
	var withMsg interface{ UserMessage() string }
	if errors.As(err, &withMsg) && withMsg.UserMessage() != "" {
		be.Message = withMsg.UserMessage()
	}
	var withStatus interface{ HTTPStatus() int }
	if errors.As(err, &withStatus) {
		be.StatusCode = withStatus.HTTPStatus()
	}
	return be
}

// BacktestRunner runs the two-step backtest: quick stats first, then the detailed run.
type BacktestRunner struct {
	source  domsvc.BacktestSource
	events  EventSink
	metrics repository.Metrics
	log     *applogger.Logger
	now     func() time.Time
}

func NewBacktestRunner(source domsvc.BacktestSource, events EventSink, metrics repository.Metrics, l *applogger.Logger) *BacktestRunner {
	if events == nil {
		events = nopSink{}
	}
	if metrics == nil {
		metrics = repository.NopMetrics{}
	}
	if l == nil {
		l = applogger.NewNop()
	}
	return &BacktestRunner{source: source, events: events, metrics: metrics, log: l, now: time.Now}
}

// Run clears the session's previous backtest, then issues both requests in order.
// Quick stats become visible as soon as they arrive; the detailed run is attempted
// regardless. A failed detailed run returns a *BacktestError and leaves no result.
func (r *BacktestRunner) Run(ctx context.Context, sess *Session, period string, includeOptimization bool) (BacktestSnapshot, error) {
	start := r.now()
	gen := sess.BeginBacktest(period, includeOptimization, start)
	r.events.Emit(ctx, NewEvent(sess.ID, models.EventBacktestStarted, map[string]interface{}{
		"period":               period,
		"include_optimization": includeOptimization,
	}))

	q, err := r.source.QuickStats(ctx, period)
	if err != nil {
		r.log.Warn("backtest quick stats failed",
			applogger.String("session", sess.ID),
			applogger.String("period", period),
			applogger.Error(err),
		)
	} else if sess.SetQuickStats(gen, q) {
		r.events.Emit(ctx, NewEvent(sess.ID, models.EventBacktestQuickStats, q))
	}

	res, err := r.source.RunBacktest(ctx, period, includeOptimization)
	r.metrics.RecordLatency("backtest_run", r.now().Sub(start).Seconds())
	if err != nil {
		be := newBacktestError(err)
		r.metrics.RecordError("backtest_failed")
		r.log.Error("backtest run failed",
			applogger.String("session", sess.ID),
			applogger.String("period", period),
			applogger.Int("upstream_status", be.StatusCode),
			applogger.Error(err),
		)
		if sess.FailBacktest(gen, be.Message, r.now()) {
			r.events.Emit(ctx, NewEvent(sess.ID, models.EventBacktestFailed, map[string]interface{}{
				"period":  period,
				"message": be.Message,
			}))
		}
		return sess.Backtest(), be
	}

	if sess.CompleteBacktest(gen, res, r.now()) {
		r.events.Emit(ctx, NewEvent(sess.ID, models.EventBacktestCompleted, map[string]interface{}{
			"period":            period,
			"performance_grade": res.DetailedAnalysis.PerformanceGrade,
		}))
	}
	return sess.Backtest(), nil
}
