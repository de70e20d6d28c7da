package uow

import (
	"context"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/domain/rental"
	"rental-booking/internal/infra/readstore"

	"github.com/google/uuid"
)

// Adapters from the readstores' query names to the command-side ports.

type rentalReader struct {
	*readstore.RentalReadStore
}

func (r rentalReader) RentalByID(ctx context.Context, id uuid.UUID) (*rental.Rental, error) {
	return r.FindByID(ctx, id)
}

type bookingReader struct {
	*readstore.BookingReadStore
}

func (r bookingReader) BookingByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return r.FindByID(ctx, id)
}
