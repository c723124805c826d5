// Package logging configures structured logging for the cookbook tools.
//
// # Overview
//
// The package is a thin layer over Go's standard log/slog:
//   - Text and JSON output formats
//   - Configurable log levels (debug, info, warn, error)
//   - A single Setup call that installs the process-wide default logger
//
// # Usage
//
//	// Explicit configuration:
//	logger, err := logging.New(logging.Config{
//	    Level:  "debug",
//	    Format: "json",
//	})
//
//	// Or, from a command:
//	logger := logging.Setup(verbose)
//	logger.Info("build finished", "recipes", 12, "duration_ms", 84)
//
// Logs are written to stderr so command output on stdout stays
// machine-readable.
package logging
