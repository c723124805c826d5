// Package build orchestrates the load, render and index pipeline behind
// the build and serve commands. A build loads the configured inputs into a
// validated collection, optionally renders the site through a registered
// backend, and optionally rebuilds the recipe index. The first invalid
// document aborts the whole build; a failed build never leaves a partially
// replaced index behind.
package build

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"hearthside/cookbook/pkg/cookbook/loader"
	"hearthside/cookbook/pkg/cookbook/recipe"
	"hearthside/cookbook/pkg/index"
	"hearthside/cookbook/pkg/renderer"
	"hearthside/cookbook/pkg/telemetry/metrics"
)

// Config contains configuration for site builds.
type Config struct {
	// Inputs are the recipe files and directories to load
	Inputs []string

	// OutputDir is the root of the rendered site. Empty disables rendering.
	OutputDir string

	// Renderer overrides the backend declared by the book manifest
	Renderer string

	// Clean removes OutputDir before rendering
	Clean bool

	// StrictGroups rejects recipes that reference undeclared groups
	StrictGroups bool

	// IndexPath is the SQLite index file rebuilt after a successful load.
	// Empty disables indexing unless Store is set.
	IndexPath string

	// Store, when set, receives the rebuilt catalog instead of a store
	// opened at IndexPath. The preview server passes its live store here.
	Store index.Store

	// RebuildSchedule is a cron expression for scheduled rebuilds,
	// used by the Scheduler. Empty disables scheduling.
	RebuildSchedule string
}

// Result describes a completed build.
type Result struct {
	// Collection is the validated recipe collection
	Collection *recipe.Collection

	// Renderer is the resolved backend name, empty when rendering was skipped
	Renderer string

	// Indexed is the number of catalog entries written
	Indexed int

	// Duration is the total build time
	Duration time.Duration
}

// Builder runs the build pipeline.
type Builder struct {
	config  Config
	metrics *metrics.Collector
	logger  *slog.Logger

	// mu serializes builds; watch and cron triggers may fire together
	mu sync.Mutex
}

// New creates a builder. The collector may be nil when metrics are not
// wanted; a nil logger falls back to slog.Default().
func New(config Config, collector *metrics.Collector, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		config:  config,
		metrics: collector,
		logger:  logger.With("component", "build"),
	}
}

// Build loads the configured inputs and, depending on configuration,
// renders the site and rebuilds the recipe index.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	start := time.Now()

	backend := b.config.Renderer
	if backend == "" {
		backend = "none"
	}

	fail := func(err error) (*Result, error) {
		b.recordBuild(backend, "error", time.Since(start), nil)
		return nil, err
	}

	ld := loader.New(loader.Config{StrictGroups: b.config.StrictGroups}, b.logger)
	collection, err := ld.Load(ctx, b.config.Inputs)
	if err != nil {
		return fail(err)
	}

	result := &Result{Collection: collection}

	if b.config.OutputDir != "" {
		name, err := b.resolveBackend(collection)
		if err != nil {
			return fail(err)
		}
		backend = name

		if b.config.Clean {
			if err := os.RemoveAll(b.config.OutputDir); err != nil {
				return fail(fmt.Errorf("failed to clean output directory: %w", err))
			}
		}

		r, err := renderer.New(name)
		if err != nil {
			return fail(err)
		}

		if err := r.Render(ctx, collection, renderer.Options{OutputDir: b.config.OutputDir}); err != nil {
			return fail(err)
		}
		result.Renderer = name
	}

	indexed, err := b.rebuildIndex(ctx, collection)
	if err != nil {
		return fail(err)
	}
	result.Indexed = indexed

	result.Duration = time.Since(start)
	b.recordBuild(backend, "success", result.Duration, collection)

	b.logger.Info("build completed",
		"recipes", len(collection.Recipes),
		"renderer", result.Renderer,
		"indexed", result.Indexed,
		"duration_ms", result.Duration.Milliseconds(),
	)

	return result, nil
}

// resolveBackend picks the renderer backend. Rendering is always driven by
// a book; the explicit override only selects a different backend for it.
func (b *Builder) resolveBackend(c *recipe.Collection) (string, error) {
	if c.Book == nil {
		return "", fmt.Errorf("rendering requires a book manifest")
	}
	if b.config.Renderer != "" {
		return b.config.Renderer, nil
	}
	return c.Book.Renderer, nil
}

// rebuildIndex writes the catalog to the configured store, if any.
func (b *Builder) rebuildIndex(ctx context.Context, c *recipe.Collection) (int, error) {
	store := b.config.Store
	if store == nil {
		if b.config.IndexPath == "" {
			return 0, nil
		}

		cfg := index.DefaultSQLiteConfig()
		cfg.Path = b.config.IndexPath

		s, err := index.NewSQLiteStore(cfg)
		if err != nil {
			return 0, err
		}
		defer s.Close()
		store = s
	}

	entries := index.FromCollection(c)
	if err := store.Rebuild(ctx, entries); err != nil {
		return 0, err
	}
	return len(entries), nil
}

func (b *Builder) recordBuild(backend, status string, duration time.Duration, c *recipe.Collection) {
	if b.metrics == nil {
		return
	}

	recipes, groups := 0, 0
	if c != nil {
		recipes = len(c.Recipes)
		groups = len(renderer.NonEmptyGroups(c))
	}

	b.metrics.RecordBuild(backend, status, duration, recipes, groups)
}
