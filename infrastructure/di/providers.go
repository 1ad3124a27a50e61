package di

import (
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"

	"github.com/SemperAdmin/naval-letter-formatter-sub000/application/commands/bus"
	commandhandlers "github.com/SemperAdmin/naval-letter-formatter-sub000/application/commands/handlers"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/application/ports"
	querybus "github.com/SemperAdmin/naval-letter-formatter-sub000/application/queries/bus"
	queryhandlers "github.com/SemperAdmin/naval-letter-formatter-sub000/application/queries/handlers"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/application/services"
	domainconfig "github.com/SemperAdmin/naval-letter-formatter-sub000/domain/config"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/infrastructure/config"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/infrastructure/persistence/bundle"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/infrastructure/persistence/memory"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/pkg/observability"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Environment == "test" {
		return zap.NewNop(), nil
	}

	var zcfg zap.Config
	if cfg.IsProduction() {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(cfg.ZapLevel())

	return zcfg.Build()
}

// ProvideFormatConfig derives the layout rules from the application config
func ProvideFormatConfig(cfg *config.Config) (*domainconfig.FormatConfig, error) {
	return cfg.ToFormatConfig()
}

// ProvideDraftRepository creates the draft repository
func ProvideDraftRepository() ports.DraftRepository {
	return memory.NewDraftRepository()
}

// ProvideEventStore creates the event store
func ProvideEventStore() ports.EventStore {
	return memory.NewEventStore()
}

// ProvideRenderCache creates the render cache
func ProvideRenderCache(cfg *config.Config) ports.RenderCache {
	return memory.NewRenderCache(cfg.RenderCacheSize)
}

// ProvideBundleCodec creates the bundle codec
func ProvideBundleCodec() ports.BundleCodec {
	return bundle.NewCodec()
}

// ProvideMetrics creates the metrics collector
func ProvideMetrics(cfg *config.Config) *observability.Collector {
	return observability.NewCollector(cfg.MetricsNamespace)
}

// ProvideTracerProvider creates the OpenTelemetry tracer provider
func ProvideTracerProvider(cfg *config.Config) *sdktrace.TracerProvider {
	return observability.NewTracerProvider(observability.TracingConfig{
		ServiceName: "letterfmt",
		Environment: cfg.Environment,
		SampleRate:  cfg.TraceSampleRate,
	})
}

// ProvideLetterService creates the letter service
func ProvideLetterService(
	drafts ports.DraftRepository,
	eventStore ports.EventStore,
	cache ports.RenderCache,
	bundles ports.BundleCodec,
	format *domainconfig.FormatConfig,
	metrics *observability.Collector,
	tracing *sdktrace.TracerProvider,
	logger *zap.Logger,
) *services.LetterService {
	return services.NewLetterService(drafts, eventStore, cache, bundles, format, metrics, tracing, logger)
}

// ProvideCommandBus creates the command bus with every letter command registered
func ProvideCommandBus(service *services.LetterService, logger *zap.Logger) (*bus.CommandBus, error) {
	commandBus := bus.NewCommandBus(bus.LoggingMiddleware(logger))

	err := commandhandlers.Register(commandBus,
		commandhandlers.NewDraftHandlers(service, logger),
		commandhandlers.NewOutlineHandlers(service, logger),
	)
	if err != nil {
		return nil, err
	}

	return commandBus, nil
}

// ProvideQueryBus creates the query bus with every letter query registered
func ProvideQueryBus(
	service *services.LetterService,
	metrics *observability.Collector,
	logger *zap.Logger,
) (*querybus.QueryBus, error) {
	queryBus := querybus.NewQueryBus(querybus.MetricsMiddleware(metrics.Queries))

	if err := queryhandlers.NewLetterQueryHandlers(service, logger).Register(queryBus); err != nil {
		return nil, err
	}

	return queryBus, nil
}
