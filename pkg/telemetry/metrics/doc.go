// Package metrics provides Prometheus metrics for the cookbook tools.
//
// # Overview
//
// The package covers the two things worth watching: site builds (count,
// duration, collection size) and the preview server's HTTP traffic. All
// metric families are registered on a private registry so that importing
// this package never pollutes the process-global default registry.
//
// # Metrics
//
//   - cookbook_builds_total{renderer,status}: build count
//   - cookbook_build_duration_seconds{renderer}: build duration histogram
//   - cookbook_recipes_loaded: recipes in the most recent successful build
//   - cookbook_groups_loaded: non-empty groups in that build
//   - cookbook_http_requests_total{code,method}: preview server requests
//   - cookbook_http_request_duration_seconds{method}: request latency
//
// # Usage
//
//	collector := metrics.NewCollector(metrics.DefaultConfig(), nil)
//
//	collector.RecordBuild("markdown", "success", 120*time.Millisecond, 12, 3)
//
//	mux.Handle("/metrics", collector.Handler())
//	handler := collector.Middleware(mux)
package metrics
