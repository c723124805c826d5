package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// BuildMetrics tracks site build outcomes.
//
// Metrics:
//   - cookbook_builds_total: build count by renderer and status
//   - cookbook_build_duration_seconds: build duration histogram by renderer
//   - cookbook_recipes_loaded: recipe count from the most recent build
//   - cookbook_groups_loaded: non-empty group count from the most recent build
type BuildMetrics struct {
	// Total build count
	buildsTotal *prometheus.CounterVec

	// Build duration histogram
	buildDuration *prometheus.HistogramVec

	// Collection size gauges, set from the last completed build
	recipesLoaded prometheus.Gauge
	groupsLoaded  prometheus.Gauge
}

// NewBuildMetrics creates and registers build metrics with the provided registry.
func NewBuildMetrics(cfg Config, registry *prometheus.Registry) *BuildMetrics {
	bm := &BuildMetrics{
		buildsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "builds_total",
				Help:      "Total number of site builds",
			},
			[]string{"renderer", "status"},
		),

		buildDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "build_duration_seconds",
				Help:      "Duration of site builds in seconds",
				Buckets:   cfg.BuildDurationBuckets,
			},
			[]string{"renderer"},
		),

		recipesLoaded: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Name:      "recipes_loaded",
				Help:      "Number of recipes in the most recent build",
			},
		),

		groupsLoaded: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Name:      "groups_loaded",
				Help:      "Number of non-empty groups in the most recent build",
			},
		),
	}

	registry.MustRegister(
		bm.buildsTotal,
		bm.buildDuration,
		bm.recipesLoaded,
		bm.groupsLoaded,
	)

	return bm
}

// RecordBuild records metrics for a completed build.
//
// The size gauges are only updated on success so that a failed rebuild does
// not zero out the counts from the last good build.
func (bm *BuildMetrics) RecordBuild(renderer, status string, duration time.Duration, recipes, groups int) {
	bm.buildsTotal.WithLabelValues(renderer, status).Inc()
	bm.buildDuration.WithLabelValues(renderer).Observe(duration.Seconds())

	if status == "success" {
		bm.recipesLoaded.Set(float64(recipes))
		bm.groupsLoaded.Set(float64(groups))
	}
}
