package scheduler

import (
	"context"
	"log/slog"
	"time"

	"rental-booking/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// Job is one scheduled unit of work. The returned count is only logged.
type Job func(ctx context.Context) (int, error)

type Scheduler struct {
	cron    *cron.Cron
	timeout time.Duration
}

func New(timeout time.Duration) *Scheduler {
	return &Scheduler{
		// SkipIfStillRunning keeps a slow sweep from overlapping the next tick.
		cron: cron.New(cron.WithChain(
			cron.Recover(cron.DefaultLogger),
			cron.SkipIfStillRunning(cron.DefaultLogger),
		)),
		timeout: timeout,
	}
}

func (s *Scheduler) Register(name, spec string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		start := time.Now()
		n, err := job(ctx)
		if err != nil {
			slog.Error("scheduled job failed",
				slog.String("job", name),
				slog.String("error", err.Error()))
			return
		}
		slog.Debug("scheduled job finished",
			slog.String("job", name),
			slog.Int("processed", n),
			slog.Duration("elapsed", time.Since(start)))
	})
	if err != nil {
		return errs.Wrapf(err, "invalid schedule %q for job %s", spec, name)
	}
	return nil
}

func (s *Scheduler) Start() {
	slog.Info("starting scheduler", slog.Int("jobs", len(s.cron.Entries())))
	s.cron.Start()
}

// Stop waits for running jobs or until ctx expires.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		slog.Info("scheduler stopped")
	case <-ctx.Done():
		slog.Warn("scheduler stop timed out")
	}
}
