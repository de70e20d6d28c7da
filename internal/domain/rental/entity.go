package rental

import (
	"rental-booking/internal/domain/money"

	"github.com/google/uuid"
)

// Rental is the booking engine's read-only view of a listing. Listings are
// owned by the catalogue service; nothing here mutates them.
type Rental struct {
	id              uuid.UUID
	hostID          uuid.UUID
	title           string
	pricePerNight   money.Money
	cleaningFee     *money.Money
	securityDeposit *money.Money
	maxGuests       int
	isActive        bool
	isApproved      bool
}

type Params struct {
	ID              uuid.UUID
	HostID          uuid.UUID
	Title           string
	PricePerNight   money.Money
	CleaningFee     *money.Money
	SecurityDeposit *money.Money
	MaxGuests       int
	IsActive        bool
	IsApproved      bool
}

func Reconstruct(p Params) *Rental {
	return &Rental{
		id:              p.ID,
		hostID:          p.HostID,
		title:           p.Title,
		pricePerNight:   p.PricePerNight,
		cleaningFee:     p.CleaningFee,
		securityDeposit: p.SecurityDeposit,
		maxGuests:       p.MaxGuests,
		isActive:        p.IsActive,
		isApproved:      p.IsApproved,
	}
}

// IsBookable reports whether the listing may take new bookings.
func (r *Rental) IsBookable() bool {
	return r.isActive && r.isApproved
}

func (r *Rental) IsHostedBy(userID uuid.UUID) bool {
	return r.hostID == userID
}

func (r *Rental) Accommodates(guests int) bool {
	return guests <= r.maxGuests
}

// CleaningFeeOrZero treats an absent fee as zero.
func (r *Rental) CleaningFeeOrZero() money.Money {
	if r.cleaningFee == nil {
		return money.Zero()
	}
	return *r.cleaningFee
}

func (r *Rental) ID() uuid.UUID                 { return r.id }
func (r *Rental) HostID() uuid.UUID             { return r.hostID }
func (r *Rental) Title() string                 { return r.title }
func (r *Rental) PricePerNight() money.Money    { return r.pricePerNight }
func (r *Rental) CleaningFee() *money.Money     { return r.cleaningFee }
func (r *Rental) SecurityDeposit() *money.Money { return r.securityDeposit }
func (r *Rental) MaxGuests() int                { return r.maxGuests }
func (r *Rental) IsActive() bool                { return r.isActive }
func (r *Rental) IsApproved() bool              { return r.isApproved }
