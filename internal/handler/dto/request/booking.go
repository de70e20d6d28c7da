package request

import (
	"strings"

	"rental-booking/internal/pkg/ptr"
	"rental-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	RentalID       uuid.UUID `json:"rentalId" binding:"required"`
	CheckInDate    string    `json:"checkInDate" binding:"required" example:"2030-06-10"`
	CheckOutDate   string    `json:"checkOutDate" binding:"required" example:"2030-06-15"`
	NumberOfGuests int       `json:"numberOfGuests" binding:"required"`
	GuestMessage   *string   `json:"guestMessage,omitempty" binding:"omitempty,max=1000"`
}

func (r CreateBookingRequest) ToInput(guestID uuid.UUID) commands.CreateBookingInput {
	return commands.CreateBookingInput{
		GuestID:        guestID,
		RentalID:       r.RentalID,
		CheckInDate:    r.CheckInDate,
		CheckOutDate:   r.CheckOutDate,
		NumberOfGuests: r.NumberOfGuests,
		GuestMessage:   r.trimmedMessage(),
	}
}

func (r CreateBookingRequest) trimmedMessage() *string {
	if r.GuestMessage == nil {
		return nil
	}
	return ptr.NilIfZero(strings.TrimSpace(*r.GuestMessage))
}

// UpdateBookingStatusRequest carries CONFIRMED, DECLINED or CANCELLED; which of them
// the caller may request is decided by the booking lifecycle, not here.
type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required" example:"CONFIRMED"`
}

func (r UpdateBookingStatusRequest) ToInput(bookingID, actorID uuid.UUID) commands.UpdateBookingStatusInput {
	return commands.UpdateBookingStatusInput{
		BookingID: bookingID,
		ActorID:   actorID,
		Status:    strings.ToUpper(strings.TrimSpace(r.Status)),
	}
}
