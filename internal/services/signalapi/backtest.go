package signalapi

import (
	"context"
	"errors"
	"net/url"
	"time"

	"SignalDash/internal/domain/models"
)

var errNotSuccess = errors.New("status is not success")

type runRequest struct {
	Period              string `json:"period"`
	IncludeOptimization bool   `json:"include_optimization"`
}

// QuickStats fetches the compact summary for period.
func (c *Client) QuickStats(ctx context.Context, period string) (models.QuickStats, error) {
	start := time.Now()
	q, err := c.quickStats(ctx, period)
	c.observe("quick_stats", "", start, err)
	return q, err
}

func (c *Client) quickStats(ctx context.Context, period string) (models.QuickStats, error) {
	var env envelope
	if err := c.base.GetJSON(ctx, quickStatsPath, url.Values{"period": {period}}, &env); err != nil {
		return models.QuickStats{}, wrapError("quick stats", err)
	}
	if !env.ok() {
		return models.QuickStats{}, &UpstreamError{Op: "quick stats", Message: env.Message, Err: errNotSuccess}
	}
	return NormalizeQuickStats(env.Data, period), nil
}

// RunBacktest runs the detailed backtest. It is never retried or cached.
func (c *Client) RunBacktest(ctx context.Context, period string, includeOptimization bool) (models.BacktestSummary, error) {
	start := time.Now()
	s, err := c.runBacktest(ctx, period, includeOptimization)
	c.observe("backtest", "", start, err)
	return s, err
}

func (c *Client) runBacktest(ctx context.Context, period string, includeOptimization bool) (models.BacktestSummary, error) {
	var env envelope
	body := runRequest{Period: period, IncludeOptimization: includeOptimization}
	if err := c.base.PostJSON(ctx, runPath, body, &env); err != nil {
		return models.BacktestSummary{}, wrapError("backtest", err)
	}
	if !env.ok() {
		return models.BacktestSummary{}, &UpstreamError{Op: "backtest", Message: env.Message, Err: errNotSuccess}
	}
	return NormalizeBacktest(env.Data, period), nil
}
