// Package scheduler runs the portfolio scan on a cron schedule.
package scheduler

import (
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/aestimo/internal/interfaces"
	"github.com/ternarybob/arbor"
)

// Service wraps a cron runner around a single recurring task. Ticks that
// arrive while the previous run is still executing are skipped rather than
// stacked.
type Service struct {
	cron    *cron.Cron
	logger  arbor.ILogger
	mu      sync.Mutex
	running bool
	busy    bool
}

var _ interfaces.SchedulerService = (*Service)(nil)

// NewService creates a new scheduler service
func NewService(logger arbor.ILogger) *Service {
	return &Service{
		cron:   cron.New(),
		logger: logger,
	}
}

// Start registers task under the given cron expression and begins the
// scheduler.
func (s *Service) Start(cronExpr string, task func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler already running")
	}
	if cronExpr == "" {
		return fmt.Errorf("cron expression is required")
	}
	if task == nil {
		return fmt.Errorf("task is required")
	}

	if _, err := s.cron.AddFunc(cronExpr, func() { s.runTask(task) }); err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info().
		Str("cron_expr", cronExpr).
		Msg("Scheduler started")

	return nil
}

// Stop halts the scheduler and waits for an in-flight task to finish.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	<-s.cron.Stop().Done()

	s.logger.Info().Msg("Scheduler stopped")
}

// IsRunning reports whether the scheduler is active.
func (s *Service) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// runTask executes the task with panic recovery and overlap protection.
func (s *Service) runTask(task func()) {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		s.logger.Warn().Msg("Previous scan still running, skipping this cycle")
		return
	}
	s.busy = true
	s.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().
				Str("panic", fmt.Sprintf("%v", r)).
				Msg("PANIC RECOVERED in scheduled scan")
		}
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	task()
}
