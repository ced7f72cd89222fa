package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Checker re-analyses the watchlist. *services.MonitorService satisfies it.
type Checker interface {
	CheckAll(ctx context.Context) error
}

// Scheduler handles scheduled tasks
type Scheduler struct {
	cron    *cron.Cron
	checker Checker
	logger  *slog.Logger
	timeout time.Duration
}

// NewScheduler creates a new scheduler. A run that overlaps the previous one is skipped.
func NewScheduler(checker Checker, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		checker: checker,
		logger:  logger,
		timeout: time.Hour,
	}
}

// Start schedules the watchlist check on a standard five-field cron expression
func (s *Scheduler) Start(checkInterval string) error {
	if _, err := s.cron.AddFunc(checkInterval, s.run); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", slog.String("interval", checkInterval))
	return nil
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	s.logger.Info("starting scheduled watchlist check")
	if err := s.checker.CheckAll(ctx); err != nil {
		s.logger.Error("scheduled check failed", slog.Any("err", err))
		return
	}
	s.logger.Info("scheduled watchlist check completed", slog.Duration("elapsed", time.Since(start)))
}

// Stop stops the scheduler and waits for a running check to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("scheduler stopped")
}
