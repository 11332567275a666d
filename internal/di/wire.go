//go:build wireinject
// +build wireinject

package di

import (
	"SignalDash/pkg/config"
	"SignalDash/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideKafkaProducer,
		ProvideCache,
		ProvideSignalClient,

		// Repositories
		ProvideEventPublisher,

		// Session state and delivery
		ProvideSessionStore,
		ProvideHub,
		ProvidePublisherSink,
		ProvideEventSink,

		// Use cases
		ProvideHistoryRefresher,
		ProvideBacktestRunner,

		// Handlers and application server
		ProvideDashboardHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
