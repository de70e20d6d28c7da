package booking

import (
	"context"

	"github.com/google/uuid"
)

// ActiveBookingReader returns the calendar-blocking bookings of a rental whose
// stay may intersect the window. Implementations may over-fetch; the checker
// re-applies the overlap test.
type ActiveBookingReader interface {
	ListBlockingInRange(ctx context.Context, rentalID uuid.UUID, window StayPeriod) ([]*Booking, error)
}

type AvailabilityChecker struct {
	reader ActiveBookingReader
}

func NewAvailabilityChecker(reader ActiveBookingReader) *AvailabilityChecker {
	return &AvailabilityChecker{reader: reader}
}

func (c *AvailabilityChecker) IsAvailable(ctx context.Context, rentalID uuid.UUID, stay StayPeriod) (bool, error) {
	existing, err := c.reader.ListBlockingInRange(ctx, rentalID, stay)
	if err != nil {
		return false, err
	}
	return len(FindConflicts(existing, stay)) == 0, nil
}

// FindConflicts returns the bookings that hold any night of the candidate stay.
func FindConflicts(existing []*Booking, candidate StayPeriod) []*Booking {
	var conflicts []*Booking
	for _, b := range existing {
		if b.Status().BlocksCalendar() && b.Stay().Overlaps(candidate) {
			conflicts = append(conflicts, b)
		}
	}
	return conflicts
}
