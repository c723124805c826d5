package main

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"hearthside/cookbook/pkg/build"
	"hearthside/cookbook/pkg/cli"
	"hearthside/cookbook/pkg/cookbook/errors"
	"hearthside/cookbook/pkg/index"
	"hearthside/cookbook/pkg/server"
	"hearthside/cookbook/pkg/telemetry/logging"
	"hearthside/cookbook/pkg/telemetry/metrics"
	"hearthside/cookbook/pkg/watch"
)

var serveFlags struct {
	listen          string
	output          string
	renderer        string
	indexPath       string
	strictGroups    bool
	rebuildSchedule string
}

var serveCmd = &cobra.Command{
	Use:   "serve [inputs...]",
	Short: "Serve a live preview of the rendered site",
	Long: `Build the site and serve it over HTTP, rebuilding when inputs change.

The inputs are watched for changes; every change triggers a debounced
rebuild, and the pages served at / always reflect the last successful
build. A failed rebuild keeps the previous site in place.

Endpoints:
  /            the rendered site
  /healthz     readiness (503 until the first successful build)
  /api/search  recipe search over the live index
  /metrics     Prometheus metrics

Examples:
  # Serve a recipe tree on the default address
  cookbook serve recipes/

  # Keep the rendered site and the index on disk
  cookbook serve --output site/ --index recipes.db recipes/

  # Rebuild every 15 minutes regardless of filesystem events
  cookbook serve --rebuild-schedule "*/15 * * * *" recipes/`,
	Args: cobra.MinimumNArgs(1),
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveFlags.listen, "listen", "l", "", "listen address (default 127.0.0.1:8080)")
	serveCmd.Flags().StringVarP(&serveFlags.output, "output", "o", "", "output directory (default: a temporary directory)")
	serveCmd.Flags().StringVarP(&serveFlags.renderer, "renderer", "r", "", "renderer backend (overrides the book manifest)")
	serveCmd.Flags().StringVar(&serveFlags.indexPath, "index", "", "back the search index with this SQLite file (default: in-memory)")
	serveCmd.Flags().BoolVar(&serveFlags.strictGroups, "strict-groups", false, "fail on recipes referencing undeclared groups")
	serveCmd.Flags().StringVar(&serveFlags.rebuildSchedule, "rebuild-schedule", "", "cron expression for periodic full rebuilds")
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := logging.Setup(verbose)

	outputDir := serveFlags.output
	if outputDir == "" {
		dir, err := os.MkdirTemp("", "cookbook-site-")
		if err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		defer os.RemoveAll(dir)
		outputDir = dir
	}

	var store index.Store
	if serveFlags.indexPath != "" {
		cfg := index.DefaultSQLiteConfig()
		cfg.Path = serveFlags.indexPath
		sqliteStore, err := index.NewSQLiteStore(cfg)
		if err != nil {
			return fmt.Errorf("failed to open index: %w", err)
		}
		store = sqliteStore
	} else {
		store = index.NewMemoryStore()
	}
	defer store.Close()

	collector := metrics.NewCollector(metrics.DefaultConfig(), nil)

	builder := build.New(build.Config{
		Inputs:          args,
		OutputDir:       outputDir,
		Renderer:        serveFlags.renderer,
		Clean:           true,
		StrictGroups:    serveFlags.strictGroups,
		Store:           store,
		RebuildSchedule: serveFlags.rebuildSchedule,
	}, collector, logger)

	serverConfig := server.DefaultConfig()
	serverConfig.SiteDir = outputDir
	if serveFlags.listen != "" {
		serverConfig.ListenAddress = serveFlags.listen
	}
	srv := server.New(serverConfig, store, collector, logger)

	ctx := cli.SetupSignalHandler()

	// Initial build. A broken recipe file does not prevent startup: the
	// watcher is about to run, so fixing the file heals the preview.
	// Anything else (unknown renderer, unwritable output) fails now.
	if result, err := builder.Build(ctx); err != nil {
		var srcErr *errors.SourceError
		if !stderrors.As(err, &srcErr) {
			return err
		}
		logger.Error("initial build failed, pages appear after the next good build", "error", err)
	} else {
		srv.SetReady(true)
		fmt.Printf("✓ Built %d recipes\n", len(result.Collection.Recipes))
	}

	rebuild := func() error {
		if _, err := builder.Build(ctx); err != nil {
			return err
		}
		srv.SetReady(true)
		return nil
	}

	watchConfig := watch.DefaultConfig()
	watchConfig.Paths = args
	watcher, err := watch.New(watchConfig, logger)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Stop()

	go func() {
		if err := watcher.Watch(ctx, rebuild); err != nil {
			logger.Error("watcher stopped", "error", err)
		}
	}()

	scheduler := build.NewScheduler(builder)
	if err := scheduler.Start(ctx); err != nil {
		return err
	}
	defer scheduler.Stop()

	fmt.Printf("✓ Serving on http://%s\n", serverConfig.ListenAddress)
	fmt.Printf("✓ Health endpoint: http://%s/healthz\n", serverConfig.ListenAddress)
	fmt.Printf("✓ Metrics endpoint: http://%s/metrics\n", serverConfig.ListenAddress)
	fmt.Println("\nPress Ctrl+C to stop")

	if err := srv.Start(ctx); err != nil {
		return err
	}

	fmt.Println("✓ Server stopped")
	return nil
}
