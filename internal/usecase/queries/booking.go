package queries

import (
	"context"
	"strings"
	"time"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/infra"
	"rental-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

// ListRole selects which side of the bookings a user wants to see.
type ListRole string

const (
	ListAsGuest ListRole = "GUEST"
	ListAsHost  ListRole = "HOST"
)

var ErrInvalidListRole = errs.BadRequest("INVALID_LIST_ROLE", "role must be GUEST or HOST")

// ParseListRole defaults to GUEST when the role is empty.
func ParseListRole(s string) (ListRole, error) {
	switch ListRole(strings.ToUpper(strings.TrimSpace(s))) {
	case "", ListAsGuest:
		return ListAsGuest, nil
	case ListAsHost:
		return ListAsHost, nil
	default:
		return "", ErrInvalidListRole
	}
}

// BookingView is the full read model of a single booking.
type BookingView struct {
	ID            uuid.UUID
	RentalID      uuid.UUID
	GuestID       uuid.UUID
	HostID        uuid.UUID
	CheckIn       time.Time
	CheckOut      time.Time
	Nights        int
	GuestCount    int
	Status        string
	PricePerNight int64
	Subtotal      int64
	CleaningFee   int64
	ServiceFee    int64
	TotalPrice    int64
	GuestMessage  *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	CancelledAt   *time.Time
	Version       int64
}

func NewBookingView(b *booking.Booking) *BookingView {
	price := b.Price()
	return &BookingView{
		ID:            b.ID(),
		RentalID:      b.RentalID(),
		GuestID:       b.GuestID(),
		HostID:        b.HostID(),
		CheckIn:       b.Stay().CheckIn(),
		CheckOut:      b.Stay().CheckOut(),
		Nights:        price.Nights,
		GuestCount:    b.GuestCount(),
		Status:        b.Status().String(),
		PricePerNight: price.PricePerNight.MinorUnits(),
		Subtotal:      price.Subtotal.MinorUnits(),
		CleaningFee:   price.CleaningFee.MinorUnits(),
		ServiceFee:    price.ServiceFee.MinorUnits(),
		TotalPrice:    price.Total.MinorUnits(),
		GuestMessage:  b.GuestMessage(),
		CreatedAt:     b.CreatedAt(),
		UpdatedAt:     b.UpdatedAt(),
		CancelledAt:   b.CancelledAt(),
		Version:       b.Version(),
	}
}

// BookingListItem is a list row enriched with the rental's title.
type BookingListItem struct {
	ID          uuid.UUID
	RentalID    uuid.UUID
	RentalTitle string
	GuestID     uuid.UUID
	HostID      uuid.UUID
	CheckIn     time.Time
	CheckOut    time.Time
	GuestCount  int
	Status      string
	TotalMinor  int64
	CreatedAt   time.Time
}

type BookingQueries interface {
	GetBookingByID(ctx context.Context, id, requesterID uuid.UUID) (*BookingView, error)
	ListBookingsForUser(ctx context.Context, userID uuid.UUID, role ListRole) ([]*BookingListItem, error)
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	ListByGuest(ctx context.Context, guestID uuid.UUID) ([]*BookingListItem, error)
	ListByHost(ctx context.Context, hostID uuid.UUID) ([]*BookingListItem, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
}

func NewBookingQueries(store BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

// GetBookingByID hides bookings from anyone who is neither the guest nor the host.
func (q *bookingQueriesImpl) GetBookingByID(ctx context.Context, id, requesterID uuid.UUID) (*BookingView, error) {
	b, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, booking.ErrBookingNotFound
		}
		return nil, err
	}
	if !b.IsVisibleTo(requesterID) {
		return nil, booking.ErrAccessDenied
	}
	return NewBookingView(b), nil
}

func (q *bookingQueriesImpl) ListBookingsForUser(ctx context.Context, userID uuid.UUID, role ListRole) ([]*BookingListItem, error) {
	switch role {
	case ListAsHost:
		return q.store.ListByHost(ctx, userID)
	case ListAsGuest, "":
		return q.store.ListByGuest(ctx, userID)
	default:
		return nil, ErrInvalidListRole
	}
}
