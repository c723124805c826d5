// Package watch provides a debounced filesystem watcher for recipe sources.
//
// The preview server uses it to rebuild the site when recipe files or their
// companion images change. Rapid event bursts (editors often write a file
// several times per save) are collapsed into a single callback after a quiet
// period.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches recipe inputs for changes and triggers rebuilds.
// It implements debouncing to prevent rebuild storms.
type Watcher struct {
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	config   Config
	debounce *Debouncer

	// State
	mu      sync.RWMutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// Config contains configuration for the watcher.
type Config struct {
	// Paths are the files or directories to watch
	Paths []string

	// DebounceInterval is the time to wait before triggering a rebuild
	// after detecting file changes (default: 500ms)
	DebounceInterval time.Duration

	// Extensions is the list of file extensions that trigger a rebuild
	Extensions []string

	// SkipHidden controls whether to skip hidden files
	SkipHidden bool
}

// DefaultConfig returns the default watcher configuration. The extension
// list covers recipe documents, the book manifest and companion images.
func DefaultConfig() Config {
	return Config{
		DebounceInterval: 500 * time.Millisecond,
		Extensions:       []string{".yaml", ".png", ".jpeg"},
		SkipHidden:       true,
	}
}

// New creates a new watcher for the configured paths.
func New(config Config, logger *slog.Logger) (*Watcher, error) {
	if config.DebounceInterval <= 0 {
		config.DebounceInterval = DefaultConfig().DebounceInterval
	}
	if len(config.Extensions) == 0 {
		config.Extensions = DefaultConfig().Extensions
	}

	if logger == nil {
		logger = slog.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		watcher:  watcher,
		logger:   logger.With("component", "watch"),
		config:   config,
		debounce: NewDebouncer(config.DebounceInterval),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}

	return w, nil
}

// Watch starts watching for file changes and invokes onChange after each
// debounced burst of events. This is a blocking operation that runs until
// the context is cancelled or Stop is called.
func (w *Watcher) Watch(ctx context.Context, onChange func() error) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		close(w.doneCh)
	}()

	for _, path := range w.config.Paths {
		if err := w.addPath(path); err != nil {
			return fmt.Errorf("failed to watch path: %w", err)
		}
	}

	w.logger.Info("File watcher started",
		"paths", w.config.Paths,
		"debounce_ms", w.config.DebounceInterval.Milliseconds(),
	)

	// Event processing loop
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("File watcher stopped (context cancelled)")
			return nil

		case <-w.stopCh:
			w.logger.Info("File watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if !w.shouldProcessEvent(event) {
				continue
			}

			w.logger.Debug("File event detected",
				"path", event.Name,
				"op", event.Op.String(),
			)

			// Debounce and trigger rebuild
			w.debounce.Trigger(func() {
				w.logger.Info("Triggering rebuild",
					"path", event.Name,
					"op", event.Op.String(),
				)

				if err := onChange(); err != nil {
					w.logger.Error("Rebuild failed",
						"error", err,
					)
				}
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}

			w.logger.Error("File watcher error", "error", err)
			// Continue watching despite errors
		}
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.mu.Unlock()

	// Signal stop
	close(w.stopCh)

	// Wait for the event loop to exit
	<-w.doneCh

	// Stop debouncer
	w.debounce.Stop()

	// Close fsnotify watcher
	if err := w.watcher.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}

	return nil
}

// addPath adds a file or directory to the watcher.
func (w *Watcher) addPath(path string) error {
	isDir, err := isDirectory(path)
	if err != nil {
		return err
	}

	if isDir {
		// Watch directory and all subdirectories
		return w.addDirectory(path)
	}

	// Watch single file
	return w.watcher.Add(path)
}

// addDirectory adds a directory and all subdirectories to the watcher.
func (w *Watcher) addDirectory(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		// Skip hidden files/directories if configured
		if w.config.SkipHidden && strings.HasPrefix(filepath.Base(path), ".") && path != dir {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		// Only watch directories
		if info.IsDir() {
			if err := w.watcher.Add(path); err != nil {
				return fmt.Errorf("failed to watch directory %q: %w", path, err)
			}
			w.logger.Debug("Watching directory", "path", path)
		}

		return nil
	})
}

// shouldProcessEvent determines if an event should trigger a rebuild.
func (w *Watcher) shouldProcessEvent(event fsnotify.Event) bool {
	// Skip events we don't care about
	if event.Op&fsnotify.Chmod == fsnotify.Chmod {
		return false
	}

	// Check file extension
	ext := strings.ToLower(filepath.Ext(event.Name))
	if !w.hasValidExtension(ext) {
		return false
	}

	// Skip hidden files if configured
	if w.config.SkipHidden && strings.HasPrefix(filepath.Base(event.Name), ".") {
		return false
	}

	return true
}

// hasValidExtension checks if a file extension should trigger a rebuild.
func (w *Watcher) hasValidExtension(ext string) bool {
	for _, validExt := range w.config.Extensions {
		if ext == strings.ToLower(validExt) {
			return true
		}
	}
	return false
}

// Debouncer collapses rapid events and triggers the callback only after a
// quiet period.
type Debouncer struct {
	interval time.Duration
	timer    *time.Timer
	mu       sync.Mutex
	callback func()
	stopCh   chan struct{}
}

// NewDebouncer creates a new debouncer.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Trigger triggers the debouncer with a new event.
// The callback will be called after the debounce interval if no new events occur.
func (d *Debouncer) Trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.callback = callback

	// Reset or create timer
	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.interval, func() {
		select {
		case <-d.stopCh:
			return
		default:
			d.mu.Lock()
			cb := d.callback
			d.mu.Unlock()

			if cb != nil {
				cb()
			}
		}
	})
}

// Stop stops the debouncer and cancels any pending callbacks.
func (d *Debouncer) Stop() {
	close(d.stopCh)

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.callback = nil
}

// Helper function to check if path is a directory
func isDirectory(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}
