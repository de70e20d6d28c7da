package shared

import (
	"context"
	"time"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/domain/rental"
	"rental-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrRetriesExhausted marks a unit of work that kept losing serialization
// conflicts until the store gave up.
var ErrRetriesExhausted = errs.New("transaction retries exhausted")

type UnitOfWork interface {
	// Within: serializable read-write transaction, retried on serialization failures
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: consistent snapshot for multi-step reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx ReadTx) error) error
}

type ReadTx interface {
	Rentals() RentalReader
	Bookings() BookingReader
}

type Tx interface {
	ReadTx
	BookingWriter() BookingRepository
	Events() EventOutbox
}

type RentalReader interface {
	RentalByID(ctx context.Context, id uuid.UUID) (*rental.Rental, error)
}

type BookingReader interface {
	booking.ActiveBookingReader
	BookingByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	// ListCompletable returns CONFIRMED bookings whose check-out is on or before the given date.
	ListCompletable(ctx context.Context, checkOutOnOrBefore time.Time, limit int) ([]uuid.UUID, error)
}

type BookingRepository interface {
	Insert(ctx context.Context, b *booking.Booking) error
	// UpdateStatus persists status, cancelledAt and version only if the stored
	// version still equals expectedVersion.
	UpdateStatus(ctx context.Context, b *booking.Booking, expectedVersion int64) error
}

type EventOutbox interface {
	Append(ctx context.Context, evt OutboxEvent) error
	ListPending(ctx context.Context, limit int) ([]OutboxEvent, error)
	MarkPublished(ctx context.Context, ids []uuid.UUID, at time.Time) error
}

type OutboxEvent struct {
	ID          uuid.UUID
	AggregateID uuid.UUID
	Type        string
	Payload     []byte
	OccurredAt  time.Time
	PublishedAt *time.Time
}
