// Package metrics exposes Prometheus metrics for validation traffic.
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/usestring/safeparse-mcp/pkg/issue"
	"github.com/usestring/safeparse-mcp/pkg/safeparse"
	"github.com/usestring/safeparse-mcp/pkg/types"
)

const namespace = "safeparse"

// Collector records validation metrics.
//
// Metrics:
//   - safeparse_outcomes_total: outcomes by policy and status
//   - safeparse_issues_total: engine issues by code
//   - safeparse_validation_duration_seconds: time spent validating, by schema format
//   - safeparse_schema_cache_lookups_total: compiled schema lookups by result
//   - safeparse_registry_schemas: schemas currently loaded from SCHEMA_DIR
type Collector struct {
	registry *prometheus.Registry

	outcomes     *prometheus.CounterVec
	issues       *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	cacheLookups *prometheus.CounterVec
	schemas      prometheus.Gauge
}

// NewCollector creates a collector with its own registry. Go runtime and
// process collectors are registered alongside.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		outcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "outcomes_total",
				Help:      "Validation outcomes by formatting policy and status.",
			},
			[]string{"policy", "status"},
		),
		issues: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "issues_total",
				Help:      "Validation issues reported by schema engines, by issue code.",
			},
			[]string{"code"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "validation_duration_seconds",
				Help:      "Time spent validating a document or batch.",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
			[]string{"format"},
		),
		cacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "schema_cache_lookups_total",
				Help:      "Compiled schema cache lookups by result.",
			},
			[]string{"result"},
		),
		schemas: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "registry_schemas",
			Help:      "Number of schemas loaded from the schema directory.",
		}),
	}

	// Pre-create one series per issue code so rates start at zero.
	for _, code := range issue.Codes() {
		c.issues.WithLabelValues(string(code))
	}

	c.registry.MustRegister(
		c.outcomes,
		c.issues,
		c.duration,
		c.cacheLookups,
		c.schemas,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Observe wraps schema so every issue it reports is counted by code.
func Observe[M any](c *Collector, schema safeparse.Schema[M]) safeparse.Schema[M] {
	if c == nil {
		return schema
	}
	return safeparse.SchemaFunc[M](func(content any) safeparse.ParseResult[M] {
		res := schema.SafeParse(content)
		for _, is := range res.Issues {
			c.issues.WithLabelValues(string(is.Code())).Inc()
		}
		return res
	})
}

// RecordOutcome counts one outcome.
func (c *Collector) RecordOutcome(policy types.FormattingPolicy, status string) {
	if c == nil {
		return
	}
	c.outcomes.WithLabelValues(string(policy), status).Inc()
}

// ObserveDuration records the time spent validating against a schema of
// the given format.
func (c *Collector) ObserveDuration(format types.SchemaFormat, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.duration.WithLabelValues(string(format)).Observe(elapsed.Seconds())
}

// RecordCacheLookup counts a compiled schema lookup.
func (c *Collector) RecordCacheLookup(hit bool) {
	if c == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	c.cacheLookups.WithLabelValues(result).Inc()
}

// SetRegistrySchemas sets the number of loaded registry schemas.
func (c *Collector) SetRegistrySchemas(n int) {
	if c == nil {
		return
	}
	c.schemas.Set(float64(n))
}

// Handler returns the /metrics HTTP handler.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}

// Serve exposes the metrics endpoint on addr until ctx is done.
func (c *Collector) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("metrics listener started", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
