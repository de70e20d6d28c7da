package repository

import (
	"context"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/infra"
	"rental-booking/internal/infra/db"
	"rental-booking/internal/pkg/pgconv"
)

const insertBookingSQL = `
INSERT INTO bookings (
	id, rental_id, guest_id, check_in, check_out, guest_count, status,
	price_per_night, nights, subtotal, cleaning_fee, service_fee, total_price,
	guest_message, created_at, updated_at, cancelled_at, version
) VALUES (
	$1, $2, $3, $4, $5, $6, $7,
	$8, $9, $10, $11, $12, $13,
	$14, $15, $16, $17, $18
)`

const updateBookingStatusSQL = `
UPDATE bookings
SET status = $3, cancelled_at = $4, updated_at = $5, version = $6
WHERE id = $1 AND version = $2`

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(db db.DBTX) *BookingRepository {
	return &BookingRepository{db: db}
}

// Insert fails with KindConflict when the stay collides with another blocking booking.
func (r *BookingRepository) Insert(ctx context.Context, b *booking.Booking) error {
	price := b.Price()
	_, err := r.db.Exec(ctx, insertBookingSQL,
		b.ID(),
		b.RentalID(),
		b.GuestID(),
		pgconv.DateToPgtype(b.Stay().CheckIn()),
		pgconv.DateToPgtype(b.Stay().CheckOut()),
		int32(b.GuestCount()), // #nosec G115 -- bounded by rental max guests
		string(b.Status()),
		price.PricePerNight.MinorUnits(),
		int32(price.Nights), // #nosec G115 -- nights of a calendar range
		price.Subtotal.MinorUnits(),
		price.CleaningFee.MinorUnits(),
		price.ServiceFee.MinorUnits(),
		price.Total.MinorUnits(),
		pgconv.StringPtrToPgtype(b.GuestMessage()),
		pgconv.TimeToPgtype(b.CreatedAt()),
		pgconv.TimeToPgtype(b.UpdatedAt()),
		pgconv.TimePtrToPgtype(b.CancelledAt()),
		b.Version(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert booking", err)
	}
	return nil
}

// UpdateStatus writes the booking's new state only if nobody moved it past expectedVersion.
func (r *BookingRepository) UpdateStatus(ctx context.Context, b *booking.Booking, expectedVersion int64) error {
	tag, err := r.db.Exec(ctx, updateBookingStatusSQL,
		b.ID(),
		expectedVersion,
		string(b.Status()),
		pgconv.TimePtrToPgtype(b.CancelledAt()),
		pgconv.TimeToPgtype(b.UpdatedAt()),
		b.Version(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindStaleVersion, "booking version changed concurrently")
	}
	return nil
}
