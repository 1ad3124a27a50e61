package di

import (
	"context"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"

	"github.com/SemperAdmin/naval-letter-formatter-sub000/application/commands/bus"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/application/ports"
	querybus "github.com/SemperAdmin/naval-letter-formatter-sub000/application/queries/bus"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/application/services"
	domainconfig "github.com/SemperAdmin/naval-letter-formatter-sub000/domain/config"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/infrastructure/config"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/pkg/observability"
)

// Container holds all application dependencies
type Container struct {
	Config     *config.Config
	Logger     *zap.Logger
	Format     *domainconfig.FormatConfig
	Drafts     ports.DraftRepository
	EventStore ports.EventStore
	Cache      ports.RenderCache
	Bundles    ports.BundleCodec
	Metrics    *observability.Collector
	Tracing    *sdktrace.TracerProvider
	Letters    *services.LetterService
	CommandBus *bus.CommandBus
	QueryBus   *querybus.QueryBus
}

// Shutdown stops the tracer provider and flushes the logger
func (c *Container) Shutdown() {
	if c.Tracing != nil {
		if err := c.Tracing.Shutdown(context.Background()); err != nil && c.Logger != nil {
			c.Logger.Warn("Failed to shut down tracer provider", zap.Error(err))
		}
	}
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}
}
