//go:build wireinject
// +build wireinject

package di

import (
	"MacroPulse/pkg/config"
	"MacroPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvidePostgresClient,
		ProvideEventPublisher,
		ProvideCache,

		// Repositories and external services
		ProvideReadingStore,
		ProvideMacroSource,
		ProvideNotifier,
		ProvideSummarizer,

		// Use cases
		ProvideUpdateCycle,
		ProvideDashboard,

		// HTTP surface
		ProvideHub,
		ProvideLimiter,
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
