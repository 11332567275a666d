package signalapi

import (
	"strings"
	"time"

	"SignalDash/internal/domain/repository"
	domsvc "SignalDash/internal/domain/service"
	"SignalDash/pkg/cache"
	applogger "SignalDash/pkg/logger"
)

const (
	historyPath    = "/api/signals/history"
	quickStatsPath = "/api/backtest/quick-stats"
	runPath        = "/api/backtest/run"

	statusSuccess = "success"
)

// envelope is the common response shape of the strategy engine.
type envelope struct {
	Status  interface{}            `json:"status"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
}

func (e envelope) ok() bool {
	s, _ := e.Status.(string)
	return strings.EqualFold(s, statusSuccess)
}

// Option configures Client.
type Option func(*Client)

// Client talks to the strategy engine. History responses may be cached; backtests never are.
type Client struct {
	base     *HTTPServiceBase
	cache    cache.Service
	cacheTTL time.Duration
	metrics  repository.Metrics
	log      *applogger.Logger
	attempts int
}

// NewClient builds a client for the engine at baseURL.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		base:     NewHTTPServiceBase(baseURL, timeout),
		metrics:  repository.NopMetrics{},
		log:      applogger.NewNop(),
		attempts: 2,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithCache caches history responses in svc for ttl.
func WithCache(svc cache.Service, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = svc
		c.cacheTTL = ttl
	}
}

// WithMetrics records fetch results and latency.
func WithMetrics(m repository.Metrics) Option {
	return func(c *Client) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(l *applogger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithAttempts sets how many times a history GET is tried.
func WithAttempts(n int) Option {
	return func(c *Client) {
		c.attempts = n
	}
}

func (c *Client) observe(op, symbol string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
		c.metrics.RecordError("signalapi_" + op)
	}
	c.metrics.RecordFetch(op, symbol, result)
	c.metrics.RecordLatency("signalapi_"+op, time.Since(start).Seconds())
}

var (
	_ domsvc.HistorySource  = (*Client)(nil)
	_ domsvc.BacktestSource = (*Client)(nil)
)
