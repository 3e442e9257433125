//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"github.com/Shivam007kumar/customer-churn/pkg/config"
	"github.com/Shivam007kumar/customer-churn/pkg/server"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, func(), error) {
	wire.Build(
		// Infrastructure clients
		ProvideKafkaProducer,
		ProvideLogger,
		ProvideMetrics,

		// Repositories
		ProvideUpstream,
		ProvideOutcomeSink,

		// Use cases
		ProvideRelay,

		// Transport
		ProvidePredictHandler,
		ProvideHTTPServer,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil, nil
}
