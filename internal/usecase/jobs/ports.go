package jobs

import (
	"context"

	"rental-booking/internal/usecase/queries"
	"rental-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// EventPublisher delivers outbox rows to the message bus.
type EventPublisher interface {
	Publish(ctx context.Context, events []shared.OutboxEvent) error
}

// BookingCompleter is satisfied by commands.BookingCommands.
type BookingCompleter interface {
	CompleteBooking(ctx context.Context, bookingID uuid.UUID) (*queries.BookingView, error)
}
