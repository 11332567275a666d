package server

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/multierr"

	"SignalDash/internal/handler/ws"
	"SignalDash/internal/service/metrics"
	"SignalDash/pkg/cache"
	"SignalDash/pkg/config"
	xhttp "SignalDash/pkg/http"
	pkgkafka "SignalDash/pkg/kafka"
	applogger "SignalDash/pkg/logger"
)

// Deps are the long-lived components the app starts and closes.
type Deps struct {
	Dashboard xhttp.Handler
	Hub       *ws.Hub
	Producer  *pkgkafka.Producer
	Events    io.Closer
	Cache     cache.Service
}

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	log        *applogger.Logger
	deps       Deps
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(cfg *config.Config, l *applogger.Logger, deps Deps) *App {
	if l == nil {
		l = applogger.NewNop()
	}
	return &App{cfg: cfg, log: l, deps: deps}
}

// Handler returns every route the app serves.
func (a *App) Handler() xhttp.Handler {
	hs := xhttp.Handlers{a.deps.Dashboard}
	if a.deps.Hub != nil {
		hs = append(hs, a.deps.Hub)
	}
	return hs
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Error logs are aggregated and shipped to Kafka when a log topic is set.
	if a.deps.Producer != nil && a.cfg.Kafka.LogTopic != "" {
		a.log.AddCollector(&applogger.CollectionConfig{
			Topic:       a.cfg.Kafka.LogTopic,
			Publisher:   a.deps.Producer,
			Service:     "signaldash",
			Environment: a.cfg.Environment,
		})
		a.log.Info("log collector enabled", applogger.String("topic", a.cfg.Kafka.LogTopic))
	}

	metricsPath := ""
	if a.cfg.Metrics.Enabled {
		metrics.Register()
		metricsPath = a.cfg.Metrics.Path
	}

	a.httpServer = xhttp.NewServer(a.Handler(),
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithAllowOrigins(a.cfg.Server.AllowedOrigins),
		xhttp.WithMetrics(metricsPath, a.cfg.Server.SlowThreshold),
		xhttp.WithLogger(a.log),
	)

	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}
	a.log.Info("dashboard started",
		applogger.String("env", a.cfg.Environment),
		applogger.String("upstream", a.cfg.SignalAPI.BaseURL),
		applogger.Strings("symbols", a.cfg.SignalAPI.Symbols),
		applogger.Bool("kafka", a.deps.Producer != nil),
		applogger.Bool("cache", a.deps.Cache != nil),
	)

	<-ctx.Done()
	a.log.Info("shutdown signal received")
	return a.shutdown()
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout+5*time.Second)
	defer cancel()

	var errs error
	if a.httpServer != nil {
		if err := a.httpServer.Stop(ctx); err != nil {
			a.log.Error("http shutdown error", applogger.Error(err))
			errs = multierr.Append(errs, err)
		}
	}
	if a.deps.Hub != nil {
		a.deps.Hub.Close()
	}

	// Flush the collector before the producer it publishes through goes away.
	a.log.RemoveCollector()

	if a.deps.Events != nil {
		if err := a.deps.Events.Close(); err != nil {
			a.log.Warn("event publisher close error", applogger.Error(err))
			errs = multierr.Append(errs, err)
		}
	} else if a.deps.Producer != nil {
		if err := a.deps.Producer.Close(); err != nil {
			a.log.Warn("kafka producer close error", applogger.Error(err))
			errs = multierr.Append(errs, err)
		}
	}
	if a.deps.Cache != nil {
		if err := a.deps.Cache.Close(); err != nil {
			a.log.Warn("cache close error", applogger.Error(err))
			errs = multierr.Append(errs, err)
		}
	}

	a.log.Info("shutdown complete")
	return errs
}
