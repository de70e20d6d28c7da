package booking

import (
	"rental-booking/internal/domain/money"
	"rental-booking/internal/domain/rental"
)

// DefaultServiceFeeBasisPoints is 10% of the subtotal.
const DefaultServiceFeeBasisPoints = 1000

// PriceBreakdown is captured once at creation and never recomputed.
type PriceBreakdown struct {
	PricePerNight money.Money
	Nights        int
	Subtotal      money.Money
	CleaningFee   money.Money
	ServiceFee    money.Money
	Total         money.Money
}

type PriceCalculator interface {
	Calculate(r *rental.Rental, stay StayPeriod) (PriceBreakdown, error)
}

type DefaultPriceCalculator struct {
	ServiceFeeBasisPoints int64
}

func NewDefaultPriceCalculator() *DefaultPriceCalculator {
	return &DefaultPriceCalculator{
		ServiceFeeBasisPoints: DefaultServiceFeeBasisPoints,
	}
}

// Calculate is pure. The security deposit is held separately and never enters the total.
func (pc *DefaultPriceCalculator) Calculate(r *rental.Rental, stay StayPeriod) (PriceBreakdown, error) {
	nights := stay.Nights()
	if nights < 1 {
		return PriceBreakdown{}, ErrMinimumStay
	}
	if r.PricePerNight().IsZero() {
		return PriceBreakdown{}, ErrInvalidRentalPrice
	}

	subtotal := r.PricePerNight().Times(int64(nights))
	cleaning := r.CleaningFeeOrZero()
	service := subtotal.BasisPoints(pc.ServiceFeeBasisPoints)

	return PriceBreakdown{
		PricePerNight: r.PricePerNight(),
		Nights:        nights,
		Subtotal:      subtotal,
		CleaningFee:   cleaning,
		ServiceFee:    service,
		Total:         subtotal.Add(cleaning).Add(service),
	}, nil
}
