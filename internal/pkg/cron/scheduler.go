package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler wraps the cron engine and logs each run.
type Scheduler struct {
	engine *cron.Cron
}

func NewScheduler() *Scheduler {
	return &Scheduler{engine: cron.New()}
}

// AddJob registers fn under the given cron spec.
func (s *Scheduler) AddJob(name string, spec string, fn func(ctx context.Context) error) error {
	_, err := s.engine.AddFunc(spec, func() {
		start := time.Now()
		if err := fn(context.Background()); err != nil {
			slog.Error("Cron job failed", "name", name, "error", err, "duration", time.Since(start))
			return
		}
		slog.Debug("Cron job completed", "name", name, "duration", time.Since(start))
	})
	if err != nil {
		return err
	}
	slog.Info("Cron job registered", "name", name, "spec", spec)
	return nil
}

// Start begins running all scheduled jobs in the background.
func (s *Scheduler) Start() {
	s.engine.Start()
	slog.Info("Cron scheduler started")
}

// Stop waits for running jobs to finish before returning.
func (s *Scheduler) Stop() {
	ctx := s.engine.Stop()
	<-ctx.Done()
	slog.Info("Cron scheduler stopped")
}
