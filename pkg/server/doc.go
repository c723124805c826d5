// Package server provides the preview HTTP server for rendered cookbook sites.
//
// The serve command builds the site into a working directory and points this
// server at it. The server itself knows nothing about recipes: it serves a
// file tree and a few side endpoints, and the command flips the ready bit
// after each successful build.
//
// # Basic Usage
//
//	cfg := server.DefaultConfig()
//	cfg.SiteDir = "/tmp/cookbook-site"
//
//	srv := server.New(cfg, store, collector, nil)
//
//	// After the first successful build:
//	srv.SetReady(true)
//
//	if err := srv.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Start blocks until the context is cancelled, Stop is called, or the
// listener fails. Shutdown stops accepting connections and waits for
// in-flight requests up to the configured timeout.
//
// # Routes
//
//   - GET /            - the rendered site tree
//   - GET /healthz     - readiness: 200 after the first build, 503 before
//   - GET /api/search  - recipe search over the live index (when a store is set)
//   - GET /metrics     - Prometheus exposition (when a collector is set)
package server
