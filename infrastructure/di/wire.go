//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"github.com/SemperAdmin/naval-letter-formatter-sub000/infrastructure/config"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideFormatConfig,
	ProvideDraftRepository,
	ProvideEventStore,
	ProvideRenderCache,
	ProvideBundleCodec,
	ProvideMetrics,
	ProvideTracerProvider,
	ProvideLetterService,
	ProvideCommandBus,
	ProvideQueryBus,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
