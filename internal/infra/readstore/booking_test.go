//go:build unit

package readstore

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }

// mockDBTX captures the rendered statement and fails every call with err.
type mockDBTX struct {
	err      error
	lastSQL  string
	lastArgs []any
}

func (m *mockDBTX) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, m.err
}

func (m *mockDBTX) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	m.lastSQL, m.lastArgs = sql, args
	return nil, m.err
}

func (m *mockDBTX) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	m.lastSQL, m.lastArgs = sql, args
	return errRow{err: m.err}
}

func TestBookingReadStore_FindByID(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("missing row is NotFound", func(t *testing.T) {
		db := &mockDBTX{err: pgx.ErrNoRows}
		_, err := NewBookingReadStore(db).FindByID(ctx, id)
		assert.True(t, infra.IsKind(err, infra.KindNotFound), "got %v", err)
		assert.Contains(t, db.lastSQL, `"b"."id" = $1`)
		assert.Contains(t, db.lastSQL, `INNER JOIN "rentals" AS "r"`)
		require.Len(t, db.lastArgs, 1)
		assert.Equal(t, id.String(), fmt.Sprint(db.lastArgs[0]))
	})

	t.Run("other failures are DB failures", func(t *testing.T) {
		db := &mockDBTX{err: errors.New("timeout")}
		_, err := NewBookingReadStore(db).FindByID(ctx, id)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure), "got %v", err)
	})
}

func TestBookingReadStore_RenderedQueries(t *testing.T) {
	ctx := context.Background()
	rentalID, userID := uuid.New(), uuid.New()
	window, err := booking.NewStayPeriod(time.Date(2030, 6, 10, 0, 0, 0, 0, time.UTC), time.Date(2030, 6, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	boom := errors.New("boom")

	t.Run("blocking bookings use the half-open range overlap", func(t *testing.T) {
		db := &mockDBTX{err: boom}
		_, err := NewBookingReadStore(db).ListBlockingInRange(ctx, rentalID, window)
		require.Error(t, err)

		assert.Contains(t, db.lastSQL, `"b"."rental_id" = $1`)
		assert.Contains(t, db.lastSQL, `"b"."status" IN ($2, $3)`)
		assert.Contains(t, db.lastSQL, `b.stay && daterange($4::date, $5::date, '[)')`)
		require.Len(t, db.lastArgs, 5)
		assert.Equal(t, rentalID.String(), fmt.Sprint(db.lastArgs[0]))
		assert.Equal(t, []any{"PENDING", "CONFIRMED", window.CheckIn(), window.CheckOut()}, db.lastArgs[1:])
	})

	t.Run("completable bookings are confirmed and checked out", func(t *testing.T) {
		db := &mockDBTX{err: boom}
		today := time.Date(2030, 6, 15, 0, 0, 0, 0, time.UTC)
		_, err := NewBookingReadStore(db).ListCompletable(ctx, today, 50)
		require.Error(t, err)

		assert.Contains(t, db.lastSQL, `"status" = $1`)
		assert.Contains(t, db.lastSQL, `check_out <= $2::date`)
		assert.Contains(t, db.lastSQL, `LIMIT $3`)
		assert.Equal(t, "CONFIRMED", db.lastArgs[0])
	})

	t.Run("guest list is newest first", func(t *testing.T) {
		db := &mockDBTX{err: boom}
		_, err := NewBookingReadStore(db).ListByGuest(ctx, userID)
		require.Error(t, err)
		assert.Contains(t, db.lastSQL, `"b"."guest_id" = $1`)
		assert.Contains(t, db.lastSQL, `ORDER BY "b"."created_at" DESC, "b"."id" DESC`)
	})

	t.Run("host list filters on the rental's host", func(t *testing.T) {
		db := &mockDBTX{err: boom}
		_, err := NewBookingReadStore(db).ListByHost(ctx, userID)
		require.Error(t, err)
		assert.Contains(t, db.lastSQL, `"r"."host_id" = $1`)
	})
}

func TestBookingRow_ToDomain(t *testing.T) {
	created := time.Date(2030, 1, 1, 9, 0, 0, 0, time.UTC)
	cancelled := created.Add(time.Hour)
	row := bookingRow{
		ID:            uuid.New(),
		RentalID:      uuid.New(),
		GuestID:       uuid.New(),
		HostID:        uuid.New(),
		RentalTitle:   "Seaside Cottage",
		CheckIn:       pgtype.Date{Time: time.Date(2030, 6, 10, 0, 0, 0, 0, time.UTC), Valid: true},
		CheckOut:      pgtype.Date{Time: time.Date(2030, 6, 12, 0, 0, 0, 0, time.UTC), Valid: true},
		GuestCount:    3,
		Status:        "CANCELLED",
		PricePerNight: 12345,
		Nights:        2,
		Subtotal:      24690,
		CleaningFee:   0,
		ServiceFee:    2469,
		TotalPrice:    27159,
		CreatedAt:     pgtype.Timestamptz{Time: created, Valid: true},
		UpdatedAt:     pgtype.Timestamptz{Time: cancelled, Valid: true},
		CancelledAt:   pgtype.Timestamptz{Time: cancelled, Valid: true},
		Version:       3,
	}

	b, err := row.toDomain()
	require.NoError(t, err)
	assert.Equal(t, booking.StatusCancelled, b.Status())
	assert.Equal(t, 2, b.Stay().Nights())
	assert.Equal(t, int64(27159), b.Price().Total.MinorUnits())
	assert.Nil(t, b.GuestMessage())
	require.NotNil(t, b.CancelledAt())
	assert.Equal(t, cancelled, *b.CancelledAt())
	assert.Equal(t, int64(3), b.Version())

	item := rowToListItem(row)
	assert.Equal(t, "Seaside Cottage", item.RentalTitle)
	assert.Equal(t, 3, item.GuestCount)

	row.Status = "ARCHIVED"
	_, err = row.toDomain()
	assert.Error(t, err)
}
