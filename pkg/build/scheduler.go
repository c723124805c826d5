package build

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler triggers builds on a cron schedule. The preview server uses it
// for periodic rebuilds independent of filesystem events, for example to
// pick up changes on network mounts the watcher cannot see.
type Scheduler struct {
	builder *Builder
	cron    *cron.Cron
	mu      sync.Mutex
	logger  *slog.Logger
	running bool
}

// NewScheduler creates a scheduler for the builder's configured
// RebuildSchedule.
func NewScheduler(builder *Builder) *Scheduler {
	return &Scheduler{
		builder: builder,
		cron:    cron.New(),
		logger:  slog.Default().With("component", "build.scheduler"),
	}
}

// Start begins scheduled rebuilds based on the cron expression in the
// builder's configuration.
//
// Common cron expressions:
//   - "0 3 * * *"    - Daily at 3 AM
//   - "0 */6 * * *"  - Every 6 hours
//   - "*/15 * * * *" - Every 15 minutes
//
// If RebuildSchedule is empty, the scheduler does nothing.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	schedule := s.builder.config.RebuildSchedule
	if schedule == "" {
		s.logger.Info("rebuild schedule not configured, skipping scheduler")
		return nil
	}

	// Validate cron expression
	if _, err := cron.ParseStandard(schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", schedule, err)
	}

	_, err := s.cron.AddFunc(schedule, func() {
		s.runBuild(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule rebuilds: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info("build scheduler started", "schedule", schedule)

	// Wait for context cancellation in background
	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// runBuild executes one scheduled rebuild.
func (s *Scheduler) runBuild(ctx context.Context) {
	s.logger.Info("starting scheduled rebuild")

	result, err := s.builder.Build(ctx)
	if err != nil {
		s.logger.Error("scheduled rebuild failed",
			"error", err,
		)
		return
	}

	s.logger.Info("scheduled rebuild completed",
		"recipes", len(result.Collection.Recipes),
		"duration_ms", result.Duration.Milliseconds(),
	)
}

// Stop stops the scheduler and waits for any running build to complete.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil && s.running {
		ctx := s.cron.Stop()
		<-ctx.Done() // Wait for running jobs to finish
		s.running = false
		s.logger.Info("build scheduler stopped")
	}
}

// IsRunning returns true if the scheduler is running.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}

// NextRun returns the next scheduled rebuild time.
func (s *Scheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron == nil {
		return nil
	}

	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}

	next := entries[0].Next
	return &next
}
