package di

import (
	"fmt"

	"SignalDash/internal/domain/repository"
	"SignalDash/internal/handler/api"
	"SignalDash/internal/handler/ws"
	internalrepo "SignalDash/internal/repository"
	"SignalDash/internal/service/ratelimit"
	"SignalDash/internal/services/signalapi"
	"SignalDash/internal/usecase"
	"SignalDash/pkg/cache"
	"SignalDash/pkg/config"
	pkgkafka "SignalDash/pkg/kafka"
	applogger "SignalDash/pkg/logger"
	"SignalDash/pkg/metrics"
	"SignalDash/pkg/server"
	"SignalDash/pkg/util"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		Output:     cfg.Logger.Output,
		MaxSizeMB:  cfg.Logger.MaxSizeMB,
		MaxBackups: cfg.Logger.MaxBackups,
		MaxAgeDays: cfg.Logger.MaxAgeDays,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideKafkaProducer creates a Kafka producer, or nil when Kafka is disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithAutoCreateTopics(true),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}

	return producer, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideEventPublisher creates the Kafka event publisher, or nil without a producer.
func ProvideEventPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.EventPublisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaEventPublisher(producer, cfg.Kafka.Topic)
}

// ProvideCache creates the upstream response cache: memory only, or memory over Redis.
// It returns nil when caching is disabled.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}
	if !cfg.Cache.Redis.Enabled {
		return cache.NewMemoryCache(cache.WithMemoryMaxSize(cfg.Cache.MemorySize)), nil
	}
	rc, err := cache.NewRedisCache(
		cache.WithRedisHost(cfg.Cache.Redis.Host),
		cache.WithRedisPort(cfg.Cache.Redis.Port),
		cache.WithRedisPassword(cfg.Cache.Redis.Password),
		cache.WithRedisDB(cfg.Cache.Redis.DB),
		cache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return cache.NewLayeredCache(rc,
		cache.WithLayeredMemorySize(cfg.Cache.MemorySize),
		cache.WithLayeredMemoryTTL(cfg.Cache.HistoryTTL),
	), nil
}

// ProvideSignalClient creates the upstream strategy engine client.
func ProvideSignalClient(cfg *config.Config, c cache.Service, m repository.Metrics, l *applogger.Logger) *signalapi.Client {
	return signalapi.NewClient(cfg.SignalAPI.BaseURL, cfg.SignalAPI.Timeout,
		signalapi.WithCache(c, cfg.Cache.HistoryTTL),
		signalapi.WithMetrics(m),
		signalapi.WithLogger(l),
	)
}

// ProvideSessionStore creates the in-memory session store.
func ProvideSessionStore(cfg *config.Config) *usecase.SessionStore {
	return usecase.NewSessionStore(cfg.Session.TTL, cfg.Session.MaxSessions, cfg.Display.PageSize)
}

// ProvideHub creates the websocket hub.
func ProvideHub(cfg *config.Config, l *applogger.Logger, store *usecase.SessionStore) *ws.Hub {
	return ws.NewHub(l, store, cfg.Server.AllowedOrigins)
}

// ProvidePublisherSink queues session events for Kafka, or returns nil without a publisher.
func ProvidePublisherSink(cfg *config.Config, pub repository.EventPublisher, m repository.Metrics, l *applogger.Logger) *usecase.PublisherSink {
	if pub == nil {
		return nil
	}
	return usecase.NewPublisherSink(pub, cfg.Kafka.EventQueue, m, l)
}

// ProvideEventSink fans session events out to websocket subscribers and, when enabled, Kafka.
func ProvideEventSink(hub *ws.Hub, ps *usecase.PublisherSink) usecase.EventSink {
	sinks := usecase.Events{hub}
	if ps != nil {
		sinks = append(sinks, ps)
	}
	return sinks
}

// ProvideHistoryRefresher creates the history refresh use case.
func ProvideHistoryRefresher(cfg *config.Config, client *signalapi.Client, sink usecase.EventSink, m repository.Metrics, l *applogger.Logger) *usecase.HistoryRefresher {
	return usecase.NewHistoryRefresher(client, cfg.SignalAPI.Symbols, cfg.SignalAPI.HistoryLimit, sink, m, l)
}

// ProvideBacktestRunner creates the two-step backtest use case.
func ProvideBacktestRunner(client *signalapi.Client, sink usecase.EventSink, m repository.Metrics, l *applogger.Logger) *usecase.BacktestRunner {
	return usecase.NewBacktestRunner(client, sink, m, l)
}

// ProvideDashboardHandler creates the dashboard API handler.
func ProvideDashboardHandler(
	cfg *config.Config,
	l *applogger.Logger,
	store *usecase.SessionStore,
	refresher *usecase.HistoryRefresher,
	runner *usecase.BacktestRunner,
) (*api.DashboardEchoHandler, error) {
	loc, err := util.LoadDisplayLocation(cfg.Display.Timezone)
	if err != nil {
		return nil, fmt.Errorf("display timezone: %w", err)
	}
	return api.NewDashboardEchoHandler(l, store, refresher, runner, ratelimit.New(), api.DashboardOptions{
		Location:   loc,
		Timezone:   cfg.Display.Timezone,
		PageSize:   cfg.Display.PageSize,
		SessionTTL: cfg.Session.TTL,
		Limits: api.RateLimits{
			RefreshCapacity:  cfg.RateLimit.RefreshCapacity,
			RefreshPerSec:    cfg.RateLimit.RefreshPerSec,
			BacktestCapacity: cfg.RateLimit.BacktestCapacity,
			BacktestPerSec:   cfg.RateLimit.BacktestPerSec,
		},
	}), nil
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	dashboard *api.DashboardEchoHandler,
	hub *ws.Hub,
	producer *pkgkafka.Producer,
	ps *usecase.PublisherSink,
	c cache.Service,
) *server.App {
	deps := server.Deps{
		Dashboard: dashboard,
		Hub:       hub,
		Producer:  producer,
		Cache:     c,
	}
	if ps != nil {
		deps.Events = ps
	}
	return server.New(cfg, l, deps)
}
