package observability

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// TracingConfig holds tracing configuration
type TracingConfig struct {
	ServiceName string
	Environment string
	SampleRate  float64
}

// NewTracerProvider creates an OpenTelemetry tracer provider. No exporter is
// attached; spans reach whatever processors are passed in.
func NewTracerProvider(config TracingConfig, processors ...sdktrace.SpanProcessor) *sdktrace.TracerProvider {
	if config.ServiceName == "" {
		config.ServiceName = "letterfmt"
	}

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", config.ServiceName),
			attribute.String("deployment.environment", config.Environment),
		)),
		sdktrace.WithSampler(samplerFor(config.SampleRate)),
	}
	for _, p := range processors {
		opts = append(opts, sdktrace.WithSpanProcessor(p))
	}
	return sdktrace.NewTracerProvider(opts...)
}

func samplerFor(rate float64) sdktrace.Sampler {
	switch {
	case rate <= 0:
		return sdktrace.NeverSample()
	case rate >= 1:
		return sdktrace.AlwaysSample()
	default:
		return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(rate))
	}
}
