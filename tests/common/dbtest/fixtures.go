//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"rental-booking/internal/domain/money"
	"rental-booking/internal/domain/rental"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// InsertRental mirrors a listing into the rentals table.
func InsertRental(t *testing.T, db DBLike, r *rental.Rental) uuid.UUID {
	t.Helper()

	_, err := db.Exec(context.Background(), `
		INSERT INTO rentals (id, host_id, title, price_per_night, cleaning_fee, security_deposit, max_guests, is_active, is_approved)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		r.ID(), r.HostID(), r.Title(), r.PricePerNight().MinorUnits(),
		minorOrNil(r.CleaningFee()), minorOrNil(r.SecurityDeposit()),
		r.MaxGuests(), r.IsActive(), r.IsApproved(),
	)
	require.NoError(t, err)
	return r.ID()
}

// UpdateRentalPrice simulates the catalogue repricing a listing.
func UpdateRentalPrice(t *testing.T, db DBLike, rentalID uuid.UUID, pricePerNight int64) {
	t.Helper()

	tag, err := db.Exec(context.Background(),
		"UPDATE rentals SET price_per_night = $2, updated_at = now() WHERE id = $1", rentalID, pricePerNight)
	require.NoError(t, err)
	require.EqualValues(t, 1, tag.RowsAffected())
}

func CountBookings(t *testing.T, db DBLike, rentalID uuid.UUID) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), "SELECT count(*) FROM bookings WHERE rental_id = $1", rentalID).Scan(&n)
	require.NoError(t, err)
	return n
}

func CountEvents(t *testing.T, db DBLike, bookingID uuid.UUID, eventType string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM booking_events WHERE aggregate_id = $1 AND event_type = $2", bookingID, eventType).Scan(&n)
	require.NoError(t, err)
	return n
}

func minorOrNil(m *money.Money) any {
	if m == nil {
		return nil
	}
	return m.MinorUnits()
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
