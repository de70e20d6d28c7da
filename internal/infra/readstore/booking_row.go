package readstore

import (
	"rental-booking/internal/domain/booking"
	"rental-booking/internal/domain/money"
	"rental-booking/internal/pkg/pgconv"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

var bookingColumns = []any{
	goqu.I("b.id"),
	goqu.I("b.rental_id"),
	goqu.I("b.guest_id"),
	goqu.I("r.host_id"),
	goqu.I("r.title"),
	goqu.I("b.check_in"),
	goqu.I("b.check_out"),
	goqu.I("b.guest_count"),
	goqu.I("b.status"),
	goqu.I("b.price_per_night"),
	goqu.I("b.nights"),
	goqu.I("b.subtotal"),
	goqu.I("b.cleaning_fee"),
	goqu.I("b.service_fee"),
	goqu.I("b.total_price"),
	goqu.I("b.guest_message"),
	goqu.I("b.created_at"),
	goqu.I("b.updated_at"),
	goqu.I("b.cancelled_at"),
	goqu.I("b.version"),
}

type bookingRow struct {
	ID            uuid.UUID
	RentalID      uuid.UUID
	GuestID       uuid.UUID
	HostID        uuid.UUID
	RentalTitle   string
	CheckIn       pgtype.Date
	CheckOut      pgtype.Date
	GuestCount    int32
	Status        string
	PricePerNight int64
	Nights        int32
	Subtotal      int64
	CleaningFee   int64
	ServiceFee    int64
	TotalPrice    int64
	GuestMessage  pgtype.Text
	CreatedAt     pgtype.Timestamptz
	UpdatedAt     pgtype.Timestamptz
	CancelledAt   pgtype.Timestamptz
	Version       int64
}

func scanBookingRow(row pgx.Row) (bookingRow, error) {
	var r bookingRow
	err := row.Scan(
		&r.ID,
		&r.RentalID,
		&r.GuestID,
		&r.HostID,
		&r.RentalTitle,
		&r.CheckIn,
		&r.CheckOut,
		&r.GuestCount,
		&r.Status,
		&r.PricePerNight,
		&r.Nights,
		&r.Subtotal,
		&r.CleaningFee,
		&r.ServiceFee,
		&r.TotalPrice,
		&r.GuestMessage,
		&r.CreatedAt,
		&r.UpdatedAt,
		&r.CancelledAt,
		&r.Version,
	)
	return r, err
}

func (r bookingRow) toDomain() (*booking.Booking, error) {
	stay, err := booking.NewStayPeriod(pgconv.DateFromPgtype(r.CheckIn), pgconv.DateFromPgtype(r.CheckOut))
	if err != nil {
		return nil, err
	}
	status, err := booking.ParseStatus(r.Status)
	if err != nil {
		return nil, err
	}

	return booking.Reconstruct(booking.ReconstructParams{
		ID:         r.ID,
		RentalID:   r.RentalID,
		GuestID:    r.GuestID,
		HostID:     r.HostID,
		Stay:       stay,
		GuestCount: int(r.GuestCount),
		Status:     status,
		Price: booking.PriceBreakdown{
			PricePerNight: money.FromMinorUnits(r.PricePerNight),
			Nights:        int(r.Nights),
			Subtotal:      money.FromMinorUnits(r.Subtotal),
			CleaningFee:   money.FromMinorUnits(r.CleaningFee),
			ServiceFee:    money.FromMinorUnits(r.ServiceFee),
			Total:         money.FromMinorUnits(r.TotalPrice),
		},
		GuestMessage: pgconv.StringPtrFromPgtype(r.GuestMessage),
		CreatedAt:    pgconv.TimeFromPgtype(r.CreatedAt),
		UpdatedAt:    pgconv.TimeFromPgtype(r.UpdatedAt),
		CancelledAt:  pgconv.TimePtrFromPgtype(r.CancelledAt),
		Version:      r.Version,
	}), nil
}
