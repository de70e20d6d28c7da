//go:build unit || e2e

package builder

import (
	"time"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/domain/money"
	"rental-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID           uuid.UUID
	RentalID     uuid.UUID
	GuestID      uuid.UUID
	HostID       uuid.UUID
	CheckIn      time.Time
	CheckOut     time.Time
	GuestCount   int
	Status       booking.Status
	GuestMessage *string
	CreatedAt    time.Time
	CancelledAt  *time.Time
	Version      int64
}

func NewBookingBuilder() *BookingBuilder {
	created := time.Date(2030, 5, 1, 12, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		ID:         uuid.New(),
		RentalID:   uuid.New(),
		GuestID:    uuid.New(),
		HostID:     uuid.New(),
		CheckIn:    Date(2030, 6, 10),
		CheckOut:   Date(2030, 6, 15),
		GuestCount: 2,
		Status:     booking.StatusPending,
		CreatedAt:  created,
		Version:    1,
	}
}

func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) WithStatus(s booking.Status) *BookingBuilder {
	b.Status = s
	return b
}

func (b *BookingBuilder) WithStay(checkIn, checkOut time.Time) *BookingBuilder {
	b.CheckIn = checkIn
	b.CheckOut = checkOut
	return b
}

func (b *BookingBuilder) ForRental(rentalID, hostID uuid.UUID) *BookingBuilder {
	b.RentalID = rentalID
	b.HostID = hostID
	return b
}

// BuildDomain panics on an invalid stay; builders only describe valid fixtures.
func (b *BookingBuilder) BuildDomain() *booking.Booking {
	stay, err := booking.NewStayPeriod(b.CheckIn, b.CheckOut)
	if err != nil {
		panic(err)
	}
	rate := money.FromMinorUnits(10000)
	subtotal := rate.Times(int64(stay.Nights()))
	service := subtotal.BasisPoints(booking.DefaultServiceFeeBasisPoints)
	cleaning := money.FromMinorUnits(5000)
	return booking.Reconstruct(booking.ReconstructParams{
		ID:         b.ID,
		RentalID:   b.RentalID,
		GuestID:    b.GuestID,
		HostID:     b.HostID,
		Stay:       stay,
		GuestCount: b.GuestCount,
		Status:     b.Status,
		Price: booking.PriceBreakdown{
			PricePerNight: rate,
			Nights:        stay.Nights(),
			Subtotal:      subtotal,
			CleaningFee:   cleaning,
			ServiceFee:    service,
			Total:         subtotal.Add(cleaning).Add(service),
		},
		GuestMessage: b.GuestMessage,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.CreatedAt,
		CancelledAt:  b.CancelledAt,
		Version:      b.Version,
	})
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	return queries.NewBookingView(b.BuildDomain())
}
