package bootstrap

import (
	"context"
	"log/slog"

	"rental-booking/internal/infra/messaging"
	"rental-booking/internal/pkg/config"
	"rental-booking/internal/usecase/commands"
	"rental-booking/internal/usecase/jobs"

	"go.uber.org/fx"
)

var MessagingModule = fx.Module("messaging",
	fx.Provide(
		messaging.NewEventPublisher,
		func(cfg config.Config) config.KafkaConfig { return cfg.Kafka },
	),
	fx.Invoke(closePublisherOnStop, startReviewConsumer),
)

// closePublisherOnStop flushes and closes the Kafka writer at shutdown.
// The outbox relay stops first, since scheduler hooks are appended later.
func closePublisherOnStop(lc fx.Lifecycle, publisher jobs.EventPublisher) {
	kp, ok := publisher.(*messaging.KafkaPublisher)
	if !ok {
		return
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return kp.Close()
		},
	})
}

func startReviewConsumer(lc fx.Lifecycle, cfg config.Config, cmds commands.BookingCommands) {
	if !cfg.Kafka.Enabled {
		slog.Info("kafka disabled; review-driven completion is off")
		return
	}

	consumer := messaging.NewReviewEventConsumer(cfg.Kafka, cmds)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				slog.Info("review consumer started", "topic", cfg.Kafka.ReviewTopic)
				if err := consumer.Start(ctx); err != nil {
					slog.Error("review consumer stopped", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return consumer.Close()
		},
	})
}
