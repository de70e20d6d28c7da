package jobs

import (
	"context"
	"log/slog"

	"rental-booking/internal/pkg/clock"
	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// OutboxRelay publishes pending booking events and marks them sent. Delivery is
// at-least-once: a crash between publish and commit republishes the batch.
type OutboxRelay struct {
	uow       shared.UnitOfWork
	publisher EventPublisher
	clock     clock.Clock
	batchSize int
}

func NewOutboxRelay(uow shared.UnitOfWork, publisher EventPublisher, clk clock.Clock, batchSize int) *OutboxRelay {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &OutboxRelay{
		uow:       uow,
		publisher: publisher,
		clock:     clk,
		batchSize: batchSize,
	}
}

func (r *OutboxRelay) Run(ctx context.Context) (int, error) {
	published := 0
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		pending, err := tx.Events().ListPending(ctx, r.batchSize)
		if err != nil {
			return err
		}
		if len(pending) == 0 {
			return nil
		}

		if err := r.publisher.Publish(ctx, pending); err != nil {
			return errs.Wrap(err, "failed to publish booking events")
		}

		ids := make([]uuid.UUID, len(pending))
		for i, evt := range pending {
			ids[i] = evt.ID
		}
		if err := tx.Events().MarkPublished(ctx, ids, r.clock.Now()); err != nil {
			return err
		}
		published = len(pending)
		return nil
	})
	if err != nil {
		return 0, err
	}

	if published > 0 {
		slog.DebugContext(ctx, "relayed booking events", slog.Int("count", published))
	}
	return published, nil
}
