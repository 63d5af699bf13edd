package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs periodic catalog exports.
type Scheduler struct {
	cron   *cron.Cron
	engine *Engine
	log    *slog.Logger
}

// NewScheduler creates a Scheduler exporting on the given interval.
func NewScheduler(
	eng *Engine,
	exportInterval time.Duration,
	log *slog.Logger,
) (*Scheduler, error) {
	c := cron.New()

	s := &Scheduler{
		cron:   c,
		engine: eng,
		log:    log,
	}

	if _, err := c.AddFunc(
		"@every "+exportInterval.String(),
		s.runExport,
	); err != nil {
		return nil, err
	}

	return s, nil
}

// Start begins running scheduled exports.
func (s *Scheduler) Start() {
	s.log.Info("scheduler started")
	s.cron.Start()
}

// Stop gracefully stops the scheduler, waiting for a running export to
// finish.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("scheduler stopping")
	return s.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

func (s *Scheduler) runExport() {
	ctx := context.Background()
	s.log.Info("scheduled export starting")

	// A store that stops answering is logged and retried on the next tick;
	// the daemon itself never exits over it.
	if _, err := s.engine.RunExport(ctx); err != nil {
		s.log.Error("scheduled export failed", "error", err)
	}
}
