package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Format represents the output format for logs.
type Format string

const (
	// FormatText outputs logs as human-readable key=value lines.
	FormatText Format = "text"
	// FormatJSON outputs logs as one JSON object per line.
	FormatJSON Format = "json"
)

// Config contains configuration for the logger.
type Config struct {
	// Level is the minimum log level ("debug", "info", "warn", "error")
	Level string

	// Format is the output format ("text", "json")
	Format string

	// Writer is the output writer (defaults to os.Stderr)
	Writer io.Writer
}

// DefaultConfig returns the logging configuration used when no overrides
// are given: info-level text output on stderr.
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: "text",
	}
}

// New creates a slog.Logger with the given configuration.
func New(cfg Config) (*slog.Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	format, err := parseFormat(cfg.Format)
	if err != nil {
		return nil, fmt.Errorf("invalid log format: %w", err)
	}

	writer := cfg.Writer
	if writer == nil {
		writer = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch format {
	case FormatJSON:
		handler = slog.NewJSONHandler(writer, opts)
	default:
		handler = slog.NewTextHandler(writer, opts)
	}

	return slog.New(handler), nil
}

// Setup installs the process-wide default logger for command-line use.
// Verbose lowers the level to debug. Logs go to stderr so that command
// output on stdout stays clean.
func Setup(verbose bool) *slog.Logger {
	cfg := DefaultConfig()
	if verbose {
		cfg.Level = "debug"
	}

	logger, err := New(cfg)
	if err != nil {
		// DefaultConfig carries a valid level and format.
		panic(err)
	}

	slog.SetDefault(logger)
	return logger
}

// parseLevel parses a log level string into slog.Level.
func parseLevel(levelStr string) (slog.Level, error) {
	switch levelStr {
	case "debug", "DEBUG":
		return slog.LevelDebug, nil
	case "info", "INFO", "":
		return slog.LevelInfo, nil
	case "warn", "WARN", "warning", "WARNING":
		return slog.LevelWarn, nil
	case "error", "ERROR":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %s", levelStr)
	}
}

// parseFormat parses a log format string into Format.
func parseFormat(formatStr string) (Format, error) {
	switch formatStr {
	case "text", "TEXT", "":
		return FormatText, nil
	case "json", "JSON":
		return FormatJSON, nil
	default:
		return FormatText, fmt.Errorf("unknown log format: %s", formatStr)
	}
}
