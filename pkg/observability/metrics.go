package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector holds all Prometheus metrics for the formatter. Each collector
// owns its registry, so tests can create as many as they like.
type Collector struct {
	registry *prometheus.Registry

	// Rendering metrics
	DocumentsRendered    *prometheus.CounterVec
	RenderDuration       *prometheus.HistogramVec
	PreconditionFailures prometheus.Counter
	StructuralWarnings   prometheus.Counter

	// Editing metrics
	OutlineEdits *prometheus.CounterVec

	// Bundle metrics
	BundleOperations *prometheus.CounterVec

	// Query metrics
	Queries *prometheus.CounterVec

	// Cache metrics
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter
}

// NewCollector creates a new metrics collector with the given namespace
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	documentsRendered := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_rendered_total",
			Help:      "Total number of letters serialized",
		},
		[]string{"regime"},
	)

	renderDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Letter serialization duration in seconds",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1},
		},
		[]string{"regime"},
	)

	preconditionFailures := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "precondition_failures_total",
			Help:      "Total number of serializations refused for missing endorsement fields",
		},
	)

	structuralWarnings := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "structural_warnings_total",
			Help:      "Total number of sibling-completeness warnings reported",
		},
	)

	outlineEdits := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outline_edits_total",
			Help:      "Total number of outline edits",
		},
		[]string{"operation"},
	)

	bundleOperations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bundle_operations_total",
			Help:      "Total number of bundle exports and imports",
		},
		[]string{"operation", "status"},
	)

	queries := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_total",
			Help:      "Total number of queries answered",
		},
		[]string{"query", "status"},
	)

	cacheHits := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "render_cache_hits_total",
			Help:      "Total number of render cache hits",
		},
	)

	cacheMisses := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "render_cache_misses_total",
			Help:      "Total number of render cache misses",
		},
	)

	registry.MustRegister(
		documentsRendered,
		renderDuration,
		preconditionFailures,
		structuralWarnings,
		outlineEdits,
		bundleOperations,
		queries,
		cacheHits,
		cacheMisses,
	)

	return &Collector{
		registry:             registry,
		DocumentsRendered:    documentsRendered,
		RenderDuration:       renderDuration,
		PreconditionFailures: preconditionFailures,
		StructuralWarnings:   structuralWarnings,
		OutlineEdits:         outlineEdits,
		BundleOperations:     bundleOperations,
		Queries:              queries,
		CacheHits:            cacheHits,
		CacheMisses:          cacheMisses,
	}
}

// ObserveRender records one successful serialization
func (c *Collector) ObserveRender(regime string, duration time.Duration) {
	c.DocumentsRendered.WithLabelValues(regime).Inc()
	c.RenderDuration.WithLabelValues(regime).Observe(duration.Seconds())
}

// IncrementEdit counts one outline edit
func (c *Collector) IncrementEdit(operation string) {
	c.OutlineEdits.WithLabelValues(operation).Inc()
}

// IncrementBundle counts one bundle operation
func (c *Collector) IncrementBundle(operation string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	c.BundleOperations.WithLabelValues(operation, status).Inc()
}

// AddWarnings counts reported structural warnings
func (c *Collector) AddWarnings(n int) {
	if n > 0 {
		c.StructuralWarnings.Add(float64(n))
	}
}

// GetRegistry returns the Prometheus registry for this collector
func (c *Collector) GetRegistry() *prometheus.Registry {
	return c.registry
}
