package events

import (
	"time"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/usecase/shared"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

const (
	TypeBookingCreated       = "booking.created"
	TypeBookingStatusChanged = "booking.status_changed"
	TypeReviewCreated        = "review.created"
)

var ErrMalformedEvent = errs.New("malformed event payload")

type BookingCreated struct {
	BookingID  uuid.UUID `json:"booking_id"`
	RentalID   uuid.UUID `json:"rental_id"`
	GuestID    uuid.UUID `json:"guest_id"`
	HostID     uuid.UUID `json:"host_id"`
	CheckIn    string    `json:"check_in"`
	CheckOut   string    `json:"check_out"`
	GuestCount int       `json:"guest_count"`
	TotalPrice int64     `json:"total_price"`
	OccurredAt time.Time `json:"occurred_at"`
}

type BookingStatusChanged struct {
	BookingID  uuid.UUID `json:"booking_id"`
	RentalID   uuid.UUID `json:"rental_id"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	ActorRole  string    `json:"actor_role"`
	Version    int64     `json:"version"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ReviewCreated is published by the review service once a guest reviews a stay.
type ReviewCreated struct {
	ReviewID  uuid.UUID `json:"review_id"`
	BookingID uuid.UUID `json:"booking_id"`
	AuthorID  uuid.UUID `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
}

func NewBookingCreated(b *booking.Booking, at time.Time) (shared.OutboxEvent, error) {
	return build(b.ID(), TypeBookingCreated, at, BookingCreated{
		BookingID:  b.ID(),
		RentalID:   b.RentalID(),
		GuestID:    b.GuestID(),
		HostID:     b.HostID(),
		CheckIn:    b.Stay().CheckIn().Format(booking.DateLayout),
		CheckOut:   b.Stay().CheckOut().Format(booking.DateLayout),
		GuestCount: b.GuestCount(),
		TotalPrice: b.Price().Total.MinorUnits(),
		OccurredAt: at,
	})
}

func NewBookingStatusChanged(b *booking.Booking, from booking.Status, role booking.ActorRole, at time.Time) (shared.OutboxEvent, error) {
	return build(b.ID(), TypeBookingStatusChanged, at, BookingStatusChanged{
		BookingID:  b.ID(),
		RentalID:   b.RentalID(),
		From:       from.String(),
		To:         b.Status().String(),
		ActorRole:  role.String(),
		Version:    b.Version(),
		OccurredAt: at,
	})
}

func build(aggregateID uuid.UUID, eventType string, at time.Time, payload any) (shared.OutboxEvent, error) {
	data, err := jsoniter.ConfigFastest.Marshal(payload)
	if err != nil {
		return shared.OutboxEvent{}, errs.Wrapf(err, "failed to encode %s", eventType)
	}
	return shared.OutboxEvent{
		ID:          uuid.New(),
		AggregateID: aggregateID,
		Type:        eventType,
		Payload:     data,
		OccurredAt:  at,
	}, nil
}

func DecodeReviewCreated(data []byte) (ReviewCreated, error) {
	var evt ReviewCreated
	if err := jsoniter.ConfigFastest.Unmarshal(data, &evt); err != nil {
		return ReviewCreated{}, errs.Mark(errs.Wrap(err, "failed to decode review event"), ErrMalformedEvent)
	}
	if evt.BookingID == uuid.Nil {
		return ReviewCreated{}, errs.Mark(errs.New("review event without booking_id"), ErrMalformedEvent)
	}
	return evt, nil
}
