package money

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrNegativeAmount = errors.New("amount cannot be negative")
	ErrInvalidAmount  = errors.New("invalid amount")
)

const minorPerMajor = 100

// Money is a non-negative amount in minor units (cents) of the platform currency.
type Money struct {
	minor int64
}

func New(minor int64) (Money, error) {
	if minor < 0 {
		return Money{}, ErrNegativeAmount
	}
	return Money{minor: minor}, nil
}

// FromMinorUnits trusts its input; use it only for values already validated on write.
func FromMinorUnits(minor int64) Money {
	return Money{minor: minor}
}

func Zero() Money {
	return Money{}
}

// Parse reads a decimal string with at most two fractional digits, e.g. "120", "99.5", "99.50".
func Parse(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		return Money{}, ErrInvalidAmount
	}

	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" || (hasFrac && (frac == "" || len(frac) > 2)) {
		return Money{}, ErrInvalidAmount
	}

	major, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}

	var minor int64
	if hasFrac {
		if len(frac) == 1 {
			frac += "0"
		}
		minor, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return Money{}, ErrInvalidAmount
		}
	}

	return New(major*minorPerMajor + minor)
}

func (m Money) MinorUnits() int64 {
	return m.minor
}

func (m Money) IsZero() bool {
	return m.minor == 0
}

func (m Money) Add(other Money) Money {
	return Money{minor: m.minor + other.minor}
}

func (m Money) Times(n int64) Money {
	return Money{minor: m.minor * n}
}

// BasisPoints returns m * bp / 10000, rounded half-up to the minor unit.
func (m Money) BasisPoints(bp int64) Money {
	const denom = 10000
	return Money{minor: (m.minor*bp + denom/2) / denom}
}

func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.minor/minorPerMajor, m.minor%minorPerMajor)
}
