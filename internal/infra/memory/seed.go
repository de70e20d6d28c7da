package memory

import (
	"io"
	"os"

	"rental-booking/internal/domain/money"
	"rental-booking/internal/domain/rental"
	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/pkg/ptr"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

// seedRental is one listing in a seed file. Amounts are decimal strings ("120.00");
// isActive and isApproved default to true.
type seedRental struct {
	ID              uuid.UUID `json:"id"`
	HostID          uuid.UUID `json:"hostId"`
	Title           string    `json:"title"`
	PricePerNight   string    `json:"pricePerNight"`
	CleaningFee     *string   `json:"cleaningFee"`
	SecurityDeposit *string   `json:"securityDeposit"`
	MaxGuests       int       `json:"maxGuests"`
	IsActive        *bool     `json:"isActive"`
	IsApproved      *bool     `json:"isApproved"`
}

// DecodeRentals reads a JSON array of listings.
func DecodeRentals(r io.Reader) ([]*rental.Rental, error) {
	var raw []seedRental
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.NewDecoder(r).Decode(&raw); err != nil {
		return nil, errs.Wrap(err, "failed to decode rental seed")
	}

	out := make([]*rental.Rental, 0, len(raw))
	for i, s := range raw {
		if s.ID == uuid.Nil || s.HostID == uuid.Nil {
			return nil, errs.Newf("rental seed #%d: id and hostId are required", i)
		}
		if s.MaxGuests < 1 {
			return nil, errs.Newf("rental seed %s: maxGuests must be at least 1", s.ID)
		}
		price, err := money.Parse(s.PricePerNight)
		if err != nil {
			return nil, errs.Wrapf(err, "rental seed %s: pricePerNight", s.ID)
		}
		cleaning, err := optionalAmount(s.CleaningFee)
		if err != nil {
			return nil, errs.Wrapf(err, "rental seed %s: cleaningFee", s.ID)
		}
		deposit, err := optionalAmount(s.SecurityDeposit)
		if err != nil {
			return nil, errs.Wrapf(err, "rental seed %s: securityDeposit", s.ID)
		}

		out = append(out, rental.Reconstruct(rental.Params{
			ID:              s.ID,
			HostID:          s.HostID,
			Title:           s.Title,
			PricePerNight:   price,
			CleaningFee:     cleaning,
			SecurityDeposit: deposit,
			MaxGuests:       s.MaxGuests,
			IsActive:        ptr.Deref(s.IsActive, true),
			IsApproved:      ptr.Deref(s.IsApproved, true),
		}))
	}
	return out, nil
}

// SeedFromFile loads listings from path into the store and returns how many were loaded.
func (s *Store) SeedFromFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, errs.Wrapf(err, "failed to open rental seed %s", path)
	}
	defer f.Close()

	rentals, err := DecodeRentals(f)
	if err != nil {
		return 0, err
	}
	for _, r := range rentals {
		s.PutRental(r)
	}
	return len(rentals), nil
}

func optionalAmount(s *string) (*money.Money, error) {
	if s == nil {
		return nil, nil
	}
	m, err := money.Parse(*s)
	if err != nil {
		return nil, err
	}
	return ptr.Of(m), nil
}
