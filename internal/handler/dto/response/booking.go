package response

import (
	"time"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/domain/money"
	"rental-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// MoneyResponse carries both exact minor units and a display amount.
type MoneyResponse struct {
	Minor  int64  `json:"minor"`
	Amount string `json:"amount" example:"600.00"`
}

func NewMoney(minor int64) MoneyResponse {
	return MoneyResponse{Minor: minor, Amount: money.FromMinorUnits(minor).String()}
}

type PriceResponse struct {
	PricePerNight MoneyResponse `json:"pricePerNight"`
	Nights        int           `json:"nights"`
	Subtotal      MoneyResponse `json:"subtotal"`
	CleaningFee   MoneyResponse `json:"cleaningFee"`
	ServiceFee    MoneyResponse `json:"serviceFee"`
	Total         MoneyResponse `json:"total"`
}

type BookingResponse struct {
	ID             uuid.UUID     `json:"id"`
	RentalID       uuid.UUID     `json:"rentalId"`
	GuestID        uuid.UUID     `json:"guestId"`
	HostID         uuid.UUID     `json:"hostId"`
	CheckInDate    string        `json:"checkInDate"`
	CheckOutDate   string        `json:"checkOutDate"`
	NumberOfGuests int           `json:"numberOfGuests"`
	Status         string        `json:"status"`
	Price          PriceResponse `json:"price"`
	GuestMessage   *string       `json:"guestMessage,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
	CancelledAt    *time.Time    `json:"cancelledAt,omitempty"`
	Version        int64         `json:"version"`
}

type BookingListResponse struct {
	ID             uuid.UUID     `json:"id"`
	RentalID       uuid.UUID     `json:"rentalId"`
	RentalTitle    string        `json:"rentalTitle"`
	GuestID        uuid.UUID     `json:"guestId"`
	HostID         uuid.UUID     `json:"hostId"`
	CheckInDate    string        `json:"checkInDate" copier:"CheckIn"`
	CheckOutDate   string        `json:"checkOutDate" copier:"CheckOut"`
	NumberOfGuests int           `json:"numberOfGuests" copier:"GuestCount"`
	Status         string        `json:"status"`
	TotalPrice     MoneyResponse `json:"totalPrice" copier:"TotalMinor"`
	CreatedAt      time.Time     `json:"createdAt"`
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:             v.ID,
		RentalID:       v.RentalID,
		GuestID:        v.GuestID,
		HostID:         v.HostID,
		CheckInDate:    v.CheckIn.Format(booking.DateLayout),
		CheckOutDate:   v.CheckOut.Format(booking.DateLayout),
		NumberOfGuests: v.GuestCount,
		Status:         v.Status,
		Price: PriceResponse{
			PricePerNight: NewMoney(v.PricePerNight),
			Nights:        v.Nights,
			Subtotal:      NewMoney(v.Subtotal),
			CleaningFee:   NewMoney(v.CleaningFee),
			ServiceFee:    NewMoney(v.ServiceFee),
			Total:         NewMoney(v.TotalPrice),
		},
		GuestMessage: v.GuestMessage,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
		CancelledAt:  v.CancelledAt,
		Version:      v.Version,
	}
}

var listConverters = copier.Option{
	Converters: []copier.TypeConverter{
		{
			SrcType: time.Time{},
			DstType: copier.String,
			Fn: func(src any) (any, error) {
				return src.(time.Time).Format(booking.DateLayout), nil
			},
		},
		{
			SrcType: int64(0),
			DstType: MoneyResponse{},
			Fn: func(src any) (any, error) {
				return NewMoney(src.(int64)), nil
			},
		},
	},
}

func FromBookingListItems(items []*queries.BookingListItem) ([]BookingListResponse, error) {
	out := make([]BookingListResponse, 0, len(items))
	if len(items) == 0 {
		return out, nil
	}
	if err := copier.CopyWithOption(&out, items, listConverters); err != nil {
		return nil, err
	}
	return out, nil
}
