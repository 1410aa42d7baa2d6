//go:build wireinject
// +build wireinject

package di

import (
	"BaseScan/pkg/config"
	"BaseScan/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,

		// Repositories
		ProvideBarStore,
		ProvideBasePublisher,
		ProvideBarProvider,

		// Detection engine and use case
		ProvideDetector,
		ProvideBaseScanner,

		// HTTP surface
		ProvideBytesCache,
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
