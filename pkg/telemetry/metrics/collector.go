package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Config contains configuration for the metrics collector.
type Config struct {
	// Enabled turns metric recording on. When false, Record* calls are no-ops.
	Enabled bool

	// Namespace is the prefix for all metric names.
	Namespace string

	// BuildDurationBuckets are the histogram buckets for build durations,
	// in seconds.
	BuildDurationBuckets []float64
}

// DefaultConfig returns the collector configuration used by the commands.
func DefaultConfig() Config {
	return Config{
		Enabled:   true,
		Namespace: "cookbook",
	}
}

// Collector owns the Prometheus registry and the metric families for the
// cookbook tools. It records site builds and, when the preview server is
// running, HTTP request metrics.
type Collector struct {
	config   Config
	registry *prometheus.Registry

	// Build metrics
	buildMetrics *BuildMetrics

	// HTTP request metrics (preview server)
	requestMetrics *RequestMetrics
}

// NewCollector creates a new metrics collector with the specified
// configuration and Prometheus registry. If registry is nil, a private
// registry is created, keeping the process-global default registry clean.
func NewCollector(cfg Config, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = "cookbook"
	}
	if len(cfg.BuildDurationBuckets) == 0 {
		// Builds of small books finish in milliseconds; large trees with
		// image copies can take seconds.
		cfg.BuildDurationBuckets = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0}
	}

	c := &Collector{
		config:   cfg,
		registry: registry,
	}

	c.buildMetrics = NewBuildMetrics(cfg, registry)
	c.requestMetrics = NewRequestMetrics(cfg, registry)

	return c
}

// RecordBuild records metrics for a completed (or failed) site build.
//
// Parameters:
//   - renderer: backend name (e.g. "markdown", "html")
//   - status: build outcome ("success", "error")
//   - duration: total build duration
//   - recipes: number of recipes loaded
//   - groups: number of non-empty groups
func (c *Collector) RecordBuild(renderer, status string, duration time.Duration, recipes, groups int) {
	if !c.config.Enabled {
		return
	}

	c.buildMetrics.RecordBuild(renderer, status, duration, recipes, groups)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
