package signalapi

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"SignalDash/internal/domain/models"
	domsvc "SignalDash/internal/domain/service"
	"SignalDash/pkg/cache"
	applogger "SignalDash/pkg/logger"
)

// FetchHistory returns one symbol's normalized history.
// A non-success status marker is reported as an UpstreamError.
func (c *Client) FetchHistory(ctx context.Context, q domsvc.HistoryQuery) (models.SymbolHistory, error) {
	start := time.Now()
	key := cache.GenerateKeyWithParams("history", q.Symbol, q.Limit, q.Skip, q.Hours, q.Precision)

	h, hit, err := cache.GetOrLoad(ctx, c.cache, key, c.cacheTTL, func(ctx context.Context) (models.SymbolHistory, error) {
		return c.fetchHistory(ctx, q)
	})
	if hit {
		c.metrics.RecordFetch("history_cache", q.Symbol, "hit")
		return h, nil
	}
	c.observe("history", q.Symbol, start, err)
	if err != nil {
		c.log.Warn("history fetch failed",
			applogger.String("symbol", q.Symbol),
			applogger.Error(err),
		)
		return models.SymbolHistory{}, err
	}
	return h, nil
}

func (c *Client) fetchHistory(ctx context.Context, q domsvc.HistoryQuery) (models.SymbolHistory, error) {
	query := url.Values{}
	query.Set("symbol", q.Symbol)
	if q.Limit > 0 {
		query.Set("limit", strconv.Itoa(q.Limit))
	}
	query.Set("skip", strconv.Itoa(q.Skip))
	if q.Hours > 0 {
		query.Set("hours", strconv.Itoa(q.Hours))
	}
	if q.Precision != "" {
		query.Set("precision", q.Precision)
	}

	var env envelope
	if err := c.base.GetJSONWithRetry(ctx, historyPath, query, &env, c.attempts); err != nil {
		return models.SymbolHistory{}, wrapError("history", err)
	}
	if !env.ok() {
		return models.SymbolHistory{}, &UpstreamError{Op: "history", Message: env.Message, Err: errNotSuccess}
	}
	return NormalizeHistory(env.Data, q.Symbol), nil
}
