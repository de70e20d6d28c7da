package booking

import (
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout    = "2006-01-02"
	secondsPerDay = 24 * 60 * 60
)

// StayPeriod is the half-open range [checkIn, checkOut) of UTC calendar dates.
type StayPeriod struct {
	checkIn  time.Time
	checkOut time.Time
}

func NewStayPeriod(checkIn, checkOut time.Time) (StayPeriod, error) {
	in, out := truncateToDate(checkIn), truncateToDate(checkOut)
	if !out.After(in) {
		return StayPeriod{}, ErrMinimumStay
	}
	return StayPeriod{checkIn: in, checkOut: out}, nil
}

// ParseStayPeriod accepts YYYY-MM-DD or RFC3339; the time of day is discarded.
func ParseStayPeriod(checkIn, checkOut string) (StayPeriod, error) {
	in, err := ParseDate(checkIn)
	if err != nil {
		return StayPeriod{}, err
	}
	out, err := ParseDate(checkOut)
	if err != nil {
		return StayPeriod{}, err
	}
	return NewStayPeriod(in, out)
}

func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return truncateToDate(t), nil
	}
	return time.Time{}, ErrInvalidDate.Withf("Invalid date %q, expected YYYY-MM-DD", s)
}

func (p StayPeriod) CheckIn() time.Time  { return p.checkIn }
func (p StayPeriod) CheckOut() time.Time { return p.checkOut }

// Overlaps is the single half-open test: [a,b) and [c,d) overlap iff a < d and c < b.
// Back-to-back stays, where one check-out equals the other's check-in, do not overlap.
func (p StayPeriod) Overlaps(other StayPeriod) bool {
	return p.checkIn.Before(other.checkOut) && other.checkIn.Before(p.checkOut)
}

// Nights counts calendar days. Both ends sit on UTC midnight, so the division is exact.
// time.Duration saturates at about 292 years and cannot be used here.
func (p StayPeriod) Nights() int {
	return int((p.checkOut.Unix() - p.checkIn.Unix()) / secondsPerDay)
}

func (p StayPeriod) IsZero() bool {
	return p.checkIn.IsZero() && p.checkOut.IsZero()
}

// String renders the Postgres daterange literal.
func (p StayPeriod) String() string {
	return fmt.Sprintf("[%s,%s)", p.checkIn.Format(DateLayout), p.checkOut.Format(DateLayout))
}

func truncateToDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
