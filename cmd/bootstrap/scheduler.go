package bootstrap

import (
	"context"
	"time"

	"rental-booking/internal/infra/scheduler"
	"rental-booking/internal/pkg/clock"
	"rental-booking/internal/pkg/config"
	"rental-booking/internal/usecase/commands"
	"rental-booking/internal/usecase/jobs"
	"rental-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

const jobTimeout = 5 * time.Minute

var SchedulerModule = fx.Module("scheduler",
	fx.Provide(
		func(uow shared.UnitOfWork, cmds commands.BookingCommands, clk clock.Clock) *jobs.CompletionSweeper {
			return jobs.NewCompletionSweeper(uow, cmds, clk)
		},
		func(cfg config.Config, uow shared.UnitOfWork, publisher jobs.EventPublisher, clk clock.Clock) *jobs.OutboxRelay {
			return jobs.NewOutboxRelay(uow, publisher, clk, cfg.Scheduler.OutboxBatchSize)
		},
	),
	fx.Invoke(startScheduler),
)

func startScheduler(lc fx.Lifecycle, cfg config.Config, sweeper *jobs.CompletionSweeper, relay *jobs.OutboxRelay) error {
	if !cfg.Scheduler.Enabled {
		return nil
	}

	s := scheduler.New(jobTimeout)
	if err := s.Register("booking-completion", cfg.Scheduler.CompletionSchedule, sweeper.Run); err != nil {
		return err
	}
	if err := s.Register("outbox-relay", cfg.Scheduler.OutboxSchedule, relay.Run); err != nil {
		return err
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			s.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			s.Stop(ctx)
			return nil
		},
	})
	return nil
}
