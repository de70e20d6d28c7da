//go:build unit || e2e

package builder

import (
	"rental-booking/internal/domain/money"
	"rental-booking/internal/domain/rental"

	"github.com/google/uuid"
)

type RentalBuilder struct {
	ID              uuid.UUID
	HostID          uuid.UUID
	Title           string
	PricePerNight   int64
	CleaningFee     *int64
	SecurityDeposit *int64
	MaxGuests       int
	IsActive        bool
	IsApproved      bool
}

func NewRentalBuilder() *RentalBuilder {
	cleaning := int64(5000)
	deposit := int64(20000)
	return &RentalBuilder{
		ID:              uuid.New(),
		HostID:          uuid.New(),
		Title:           "Seaside Cottage",
		PricePerNight:   10000,
		CleaningFee:     &cleaning,
		SecurityDeposit: &deposit,
		MaxGuests:       4,
		IsActive:        true,
		IsApproved:      true,
	}
}

func (r *RentalBuilder) With(mutate func(*RentalBuilder)) *RentalBuilder {
	mutate(r)
	return r
}

func (r *RentalBuilder) WithoutCleaningFee() *RentalBuilder {
	r.CleaningFee = nil
	return r
}

func (r *RentalBuilder) BuildDomain() *rental.Rental {
	return rental.Reconstruct(rental.Params{
		ID:              r.ID,
		HostID:          r.HostID,
		Title:           r.Title,
		PricePerNight:   money.FromMinorUnits(r.PricePerNight),
		CleaningFee:     optionalMoney(r.CleaningFee),
		SecurityDeposit: optionalMoney(r.SecurityDeposit),
		MaxGuests:       r.MaxGuests,
		IsActive:        r.IsActive,
		IsApproved:      r.IsApproved,
	})
}

func optionalMoney(v *int64) *money.Money {
	if v == nil {
		return nil
	}
	m := money.FromMinorUnits(*v)
	return &m
}
