package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	models "SignalDash/internal/domain/models"
	domrepo "SignalDash/internal/domain/repository"
	"SignalDash/internal/service/metrics"
	"SignalDash/internal/service/ratelimit"
	"SignalDash/internal/usecase"
	xhttp "SignalDash/pkg/http"
	xlogger "SignalDash/pkg/logger"
)

// SessionCookie carries the session id for browsers that do not send the header.
const SessionCookie = "sd_session"

// RateLimits are token bucket settings per remote address.
type RateLimits struct {
	RefreshCapacity  float64
	RefreshPerSec    float64
	BacktestCapacity float64
	BacktestPerSec   float64
}

// DashboardOptions configures the dashboard handler.
type DashboardOptions struct {
	Location   *time.Location
	Timezone   string
	PageSize   int
	SessionTTL time.Duration
	Limits     RateLimits
}

// DashboardEchoHandler serves the history and backtest tabs.
type DashboardEchoHandler struct {
	logger    *xlogger.Logger
	sessions  *usecase.SessionStore
	refresher *usecase.HistoryRefresher
	backtests *usecase.BacktestRunner
	limiter   *ratelimit.Limiter
	opts      DashboardOptions
}

func NewDashboardEchoHandler(
	logger *xlogger.Logger,
	sessions *usecase.SessionStore,
	refresher *usecase.HistoryRefresher,
	backtests *usecase.BacktestRunner,
	limiter *ratelimit.Limiter,
	opts DashboardOptions,
) *DashboardEchoHandler {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &DashboardEchoHandler{
		logger:    logger,
		sessions:  sessions,
		refresher: refresher,
		backtests: backtests,
		limiter:   limiter,
		opts:      opts,
	}
}

func (h *DashboardEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	g := e.Group("/api")
	g.GET("/config", h.Config)
	g.POST("/history/refresh", h.RefreshHistory)
	g.GET("/history/stats", h.HistoryStats)
	g.GET("/history/signals", h.Signals)
	g.POST("/backtest/run", h.RunBacktest)
	g.GET("/backtest", h.Backtest)
}

func (h *DashboardEchoHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"status":   "ok",
		"sessions": h.sessions.Len(),
	})
}

func (h *DashboardEchoHandler) Config(c echo.Context) error {
	precisions := make([]string, 0, 3)
	for _, p := range domrepo.Precisions() {
		precisions = append(precisions, string(p))
	}
	periods := make([]string, 0, 6)
	for _, p := range domrepo.Periods() {
		periods = append(periods, string(p))
	}
	return xhttp.SuccessResponse(c, ConfigView{
		Symbols:    h.refresher.Symbols(),
		Hours:      domrepo.HistoryHours(),
		Precisions: precisions,
		Periods:    periods,
		Statuses:   []string{string(models.StatusPending), string(models.StatusExecuted), string(models.StatusExpired)},
		PageSize:   h.opts.PageSize,
		Timezone:   h.opts.Timezone,
	})
}

func (h *DashboardEchoHandler) RefreshHistory(c echo.Context) error {
	const endpoint = "history_refresh"
	start := time.Now()
	defer observe(endpoint, start)

	req := &models.RefreshHistoryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if ok, err := h.allow(c, "refresh", h.opts.Limits.RefreshCapacity, h.opts.Limits.RefreshPerSec); !ok {
		return err
	}

	sess := h.session(c)
	res := h.refresher.Refresh(c.Request().Context(), sess, usecase.RefreshParams{
		Hours:     domrepo.NormalizeHours(req.Hours),
		Precision: string(domrepo.NormalizePrecision(req.Precision)),
	})
	if res.Stale {
		metrics.DashboardErrors.WithLabelValues(endpoint).Inc()
	}
	return xhttp.SuccessResponse(c, toHistoryStatsView(res.Snapshot, res.HasSnapshot, res.Stale, h.opts.Location))
}

func (h *DashboardEchoHandler) HistoryStats(c echo.Context) error {
	defer observe("history_stats", time.Now())

	agg, has := h.session(c).History()
	return xhttp.SuccessResponse(c, toHistoryStatsView(agg, has, false, h.opts.Location))
}

func (h *DashboardEchoHandler) Signals(c echo.Context) error {
	defer observe("history_signals", time.Now())

	req := &models.SignalsPageRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	p := h.session(c).SignalsPage(req.Symbol, req.Status, req.Page)
	return xhttp.PageResponse(c, toSignalViews(p.Records, h.opts.Location), p.Total, p.Page, p.PageSize, p.TotalPages)
}

func (h *DashboardEchoHandler) RunBacktest(c echo.Context) error {
	const endpoint = "backtest_run"
	defer observe(endpoint, time.Now())

	req := &models.RunBacktestRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if ok, err := h.allow(c, "backtest", h.opts.Limits.BacktestCapacity, h.opts.Limits.BacktestPerSec); !ok {
		return err
	}

	sess := h.session(c)
	snap, err := h.backtests.Run(c.Request().Context(), sess, string(domrepo.NormalizePeriod(req.Period)), req.IncludeOptimization)
	if err != nil {
		metrics.DashboardErrors.WithLabelValues(endpoint).Inc()
		return xhttp.BadGatewayResponse(c, toBacktestView(snap, h.opts.Location))
	}
	return xhttp.SuccessResponse(c, toBacktestView(snap, h.opts.Location))
}

func (h *DashboardEchoHandler) Backtest(c echo.Context) error {
	defer observe("backtest", time.Now())
	return xhttp.SuccessResponse(c, toBacktestView(h.session(c).Backtest(), h.opts.Location))
}

// session resolves the caller's session from the header or cookie and echoes the id back.
func (h *DashboardEchoHandler) session(c echo.Context) *usecase.Session {
	id := SessionID(c)
	sess, created := h.sessions.GetOrCreate(id)
	if created {
		metrics.ActiveSessions.Set(float64(h.sessions.Len()))
		h.logger.Debug("session created", xlogger.String("session", sess.ID))
	}
	c.Response().Header().Set(xhttp.HeaderSessionID, sess.ID)
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    sess.ID,
		Path:     "/",
		MaxAge:   int(h.opts.SessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}

func (h *DashboardEchoHandler) allow(c echo.Context, action string, capacity, perSec float64) (bool, error) {
	if h.limiter == nil || capacity <= 0 {
		return true, nil
	}
	ok, wait := h.limiter.Reserve(action+":"+c.RealIP(), capacity, perSec)
	if ok {
		return true, nil
	}
	if wait > 0 {
		c.Response().Header().Set("Retry-After", strconv.Itoa(int(wait.Seconds())))
	}
	h.logger.Warn("rate limited", xlogger.String("action", action), xlogger.String("remote", c.RealIP()))
	return false, xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("too many "+action+" requests, slow down"))
}

// SessionID reads the session id sent by the client, header first.
func SessionID(c echo.Context) string {
	if id := c.Request().Header.Get(xhttp.HeaderSessionID); id != "" {
		return id
	}
	if ck, err := c.Cookie(SessionCookie); err == nil {
		return ck.Value
	}
	return c.QueryParam("session_id")
}

func observe(endpoint string, start time.Time) {
	metrics.DashboardLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}
