// Package telemetry provides observability for the cookbook tools.
//
// # Components
//
//   - logging: structured logging on top of log/slog
//   - metrics: Prometheus metrics for builds and the preview server
//
// # Usage
//
//	logger := logging.Setup(verbose)
//
//	collector := metrics.NewCollector(metrics.DefaultConfig(), nil)
//	collector.RecordBuild("markdown", "success", duration, recipes, groups)
//
// The preview server mounts collector.Handler() at /metrics and wraps its
// mux with collector.Middleware.
package telemetry
