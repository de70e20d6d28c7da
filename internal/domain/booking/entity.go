package booking

import (
	"time"

	"rental-booking/internal/domain/rental"
	"rental-booking/internal/pkg/clock"

	"github.com/google/uuid"
)

type Services struct {
	Clock           clock.Clock
	PriceCalculator PriceCalculator
}

type Booking struct {
	id           uuid.UUID
	rentalID     uuid.UUID
	guestID      uuid.UUID
	hostID       uuid.UUID
	stay         StayPeriod
	guestCount   int
	status       Status
	price        PriceBreakdown
	guestMessage *string
	createdAt    time.Time
	updatedAt    time.Time
	cancelledAt  *time.Time
	version      int64
}

// CheckEligibility applies the rental-level preconditions of a new booking, in order.
func CheckEligibility(r *rental.Rental, guestID uuid.UUID, guestCount int) error {
	if !r.IsBookable() {
		return ErrRentalUnavailable
	}
	if r.IsHostedBy(guestID) {
		return ErrSelfBooking
	}
	if guestCount < 1 {
		return ErrInvalidGuestCount
	}
	if !r.Accommodates(guestCount) {
		return ErrTooManyGuests.Withf("Maximum guests allowed is %d", r.MaxGuests())
	}
	return nil
}

// NewBooking prices the stay against the rental's current rates and returns a
// PENDING booking. Availability must be established by the caller beforehand.
func NewBooking(
	services *Services,
	r *rental.Rental,
	guestID uuid.UUID,
	stay StayPeriod,
	guestCount int,
	guestMessage *string,
) (*Booking, error) {
	if err := CheckEligibility(r, guestID, guestCount); err != nil {
		return nil, err
	}

	price, err := services.PriceCalculator.Calculate(r, stay)
	if err != nil {
		return nil, err
	}

	now := services.Clock.Now()
	return &Booking{
		id:           uuid.New(),
		rentalID:     r.ID(),
		guestID:      guestID,
		hostID:       r.HostID(),
		stay:         stay,
		guestCount:   guestCount,
		status:       StatusPending,
		price:        price,
		guestMessage: guestMessage,
		createdAt:    now,
		updatedAt:    now,
		version:      1,
	}, nil
}

type ReconstructParams struct {
	ID           uuid.UUID
	RentalID     uuid.UUID
	GuestID      uuid.UUID
	HostID       uuid.UUID
	Stay         StayPeriod
	GuestCount   int
	Status       Status
	Price        PriceBreakdown
	GuestMessage *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	CancelledAt  *time.Time
	Version      int64
}

func Reconstruct(p ReconstructParams) *Booking {
	return &Booking{
		id:           p.ID,
		rentalID:     p.RentalID,
		guestID:      p.GuestID,
		hostID:       p.HostID,
		stay:         p.Stay,
		guestCount:   p.GuestCount,
		status:       p.Status,
		price:        p.Price,
		guestMessage: p.GuestMessage,
		createdAt:    p.CreatedAt,
		updatedAt:    p.UpdatedAt,
		cancelledAt:  p.CancelledAt,
		version:      p.Version,
	}
}

// RoleOf resolves the actor against this booking's guest and the rental's host.
func (b *Booking) RoleOf(actorID uuid.UUID) (ActorRole, error) {
	return ResolveRole(actorID, b.guestID, b.hostID)
}

// IsVisibleTo reports whether the user is a party to the booking.
func (b *Booking) IsVisibleTo(userID uuid.UUID) bool {
	_, err := b.RoleOf(userID)
	return err == nil
}

// TransitionTo moves the booking along one edge of the lifecycle and bumps its version.
func (b *Booking) TransitionTo(role ActorRole, to Status, now time.Time) error {
	if !to.IsValid() {
		return ErrInvalidStatus.Withf("Unknown booking status %q", string(to))
	}
	if !CanTransition(b.status, to, role) {
		return ErrInvalidTransition.Withf("Cannot update booking from %s to %s", b.status, to)
	}

	b.status = to
	b.updatedAt = now
	if to == StatusCancelled {
		t := now
		b.cancelledAt = &t
	}
	b.version++
	return nil
}

// Complete is the system transition taken once the guest has checked out.
func (b *Booking) Complete(now time.Time) error {
	if !CanTransition(b.status, StatusCompleted, RoleSystem) {
		return ErrInvalidTransition.Withf("Cannot update booking from %s to %s", b.status, StatusCompleted)
	}
	if now.Before(b.stay.CheckOut()) {
		return ErrNotYetCheckedOut
	}
	return b.TransitionTo(RoleSystem, StatusCompleted, now)
}

func (b *Booking) ID() uuid.UUID           { return b.id }
func (b *Booking) RentalID() uuid.UUID     { return b.rentalID }
func (b *Booking) GuestID() uuid.UUID      { return b.guestID }
func (b *Booking) HostID() uuid.UUID       { return b.hostID }
func (b *Booking) Stay() StayPeriod        { return b.stay }
func (b *Booking) GuestCount() int         { return b.guestCount }
func (b *Booking) Status() Status          { return b.status }
func (b *Booking) Price() PriceBreakdown   { return b.price }
func (b *Booking) GuestMessage() *string   { return b.guestMessage }
func (b *Booking) CreatedAt() time.Time    { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time    { return b.updatedAt }
func (b *Booking) CancelledAt() *time.Time { return b.cancelledAt }
func (b *Booking) Version() int64          { return b.version }
