package jobs

import (
	"context"
	"log/slog"

	"rental-booking/internal/pkg/clock"
	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

const defaultSweepBatch = 200

// CompletionSweeper completes confirmed bookings whose guests have checked out.
type CompletionSweeper struct {
	uow       shared.UnitOfWork
	completer BookingCompleter
	clock     clock.Clock
	batchSize int
}

func NewCompletionSweeper(uow shared.UnitOfWork, completer BookingCompleter, clk clock.Clock) *CompletionSweeper {
	return &CompletionSweeper{
		uow:       uow,
		completer: completer,
		clock:     clk,
		batchSize: defaultSweepBatch,
	}
}

// Run returns the number of bookings completed. A booking that cannot be completed
// is logged and skipped; only storage failures abort the sweep.
func (s *CompletionSweeper) Run(ctx context.Context) (int, error) {
	today := clock.Today(s.clock)

	var ids []uuid.UUID
	err := s.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.ReadTx) error {
		var err error
		ids, err = tx.Bookings().ListCompletable(ctx, today, s.batchSize)
		return err
	})
	if err != nil {
		return 0, errs.Wrap(err, "failed to list completable bookings")
	}

	completed := 0
	for _, id := range ids {
		if _, err := s.completer.CompleteBooking(ctx, id); err != nil {
			if _, ok := errs.AsDomainError(err); ok {
				slog.InfoContext(ctx, "skipping booking that is no longer completable",
					slog.String("booking_id", id.String()),
					slog.String("reason", err.Error()))
				continue
			}
			return completed, errs.Wrapf(err, "failed to complete booking %s", id)
		}
		completed++
	}

	if completed > 0 {
		slog.InfoContext(ctx, "completion sweep finished", slog.Int("completed", completed))
	}
	return completed, nil
}
