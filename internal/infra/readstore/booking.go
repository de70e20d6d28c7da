package readstore

import (
	"context"
	"time"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/infra"
	"rental-booking/internal/infra/db"
	"rental-booking/internal/pkg/pgconv"
	"rental-booking/internal/usecase/queries"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(db db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: db}
}

func selectBookings() *goqu.SelectDataset {
	return dialect.From(goqu.T(tblBookings).As("b")).
		Join(goqu.T(tblRentals).As("r"), goqu.On(goqu.I("r.id").Eq(goqu.I("b.rental_id")))).
		Select(bookingColumns...)
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	query, args, err := toSQL(selectBookings().Where(goqu.I("b.id").Eq(id)))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking query", err)
	}

	row, err := scanBookingRow(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	b, err := row.toDomain()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode booking", err)
	}
	return b, nil
}

// ListBlockingInRange relies on the stay column's GiST index; the window is half-open like the stay itself.
func (r *BookingReadStore) ListBlockingInRange(ctx context.Context, rentalID uuid.UUID, window booking.StayPeriod) ([]*booking.Booking, error) {
	ds := selectBookings().
		Where(
			goqu.I("b.rental_id").Eq(rentalID),
			goqu.I("b.status").In(blockingStatuses()...),
			goqu.L("b.stay && daterange(?::date, ?::date, '[)')", window.CheckIn(), window.CheckOut()),
		).
		Order(goqu.I("b.check_in").Asc())

	return r.queryBookings(ctx, ds, "failed to list blocking bookings")
}

func (r *BookingReadStore) ListCompletable(ctx context.Context, checkOutOnOrBefore time.Time, limit int) ([]uuid.UUID, error) {
	ds := dialect.From(goqu.T(tblBookings)).
		Select(goqu.C("id")).
		Where(
			goqu.C("status").Eq(string(booking.StatusConfirmed)),
			goqu.L("check_out <= ?::date", checkOutOnOrBefore),
		).
		Order(goqu.C("check_out").Asc()).
		Limit(uint(limit))

	query, args, err := toSQL(ds)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build completable query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list completable bookings", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan completable booking", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate completable bookings", err)
	}
	return ids, nil
}

func (r *BookingReadStore) ListByGuest(ctx context.Context, guestID uuid.UUID) ([]*queries.BookingListItem, error) {
	ds := selectBookings().
		Where(goqu.I("b.guest_id").Eq(guestID)).
		Order(goqu.I("b.created_at").Desc(), goqu.I("b.id").Desc())
	return r.queryListItems(ctx, ds, "failed to list bookings by guest")
}

func (r *BookingReadStore) ListByHost(ctx context.Context, hostID uuid.UUID) ([]*queries.BookingListItem, error) {
	ds := selectBookings().
		Where(goqu.I("r.host_id").Eq(hostID)).
		Order(goqu.I("b.created_at").Desc(), goqu.I("b.id").Desc())
	return r.queryListItems(ctx, ds, "failed to list bookings by host")
}

func (r *BookingReadStore) queryBookings(ctx context.Context, ds *goqu.SelectDataset, msg string) ([]*booking.Booking, error) {
	rows, err := r.queryRows(ctx, ds, msg)
	if err != nil {
		return nil, err
	}

	result := make([]*booking.Booking, 0, len(rows))
	for _, row := range rows {
		b, err := row.toDomain()
		if err != nil {
			return nil, infra.WrapRepoErr("failed to decode booking", err)
		}
		result = append(result, b)
	}
	return result, nil
}

func (r *BookingReadStore) queryListItems(ctx context.Context, ds *goqu.SelectDataset, msg string) ([]*queries.BookingListItem, error) {
	rows, err := r.queryRows(ctx, ds, msg)
	if err != nil {
		return nil, err
	}

	result := make([]*queries.BookingListItem, len(rows))
	for i, row := range rows {
		result[i] = rowToListItem(row)
	}
	return result, nil
}

func (r *BookingReadStore) queryRows(ctx context.Context, ds *goqu.SelectDataset, msg string) ([]bookingRow, error) {
	query, args, err := toSQL(ds)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(msg, err)
	}
	defer rows.Close()

	var result []bookingRow
	for rows.Next() {
		row, err := scanBookingRow(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(msg, err)
	}
	return result, nil
}

func rowToListItem(row bookingRow) *queries.BookingListItem {
	return &queries.BookingListItem{
		ID:          row.ID,
		RentalID:    row.RentalID,
		RentalTitle: row.RentalTitle,
		GuestID:     row.GuestID,
		HostID:      row.HostID,
		CheckIn:     pgconv.DateFromPgtype(row.CheckIn),
		CheckOut:    pgconv.DateFromPgtype(row.CheckOut),
		GuestCount:  int(row.GuestCount),
		Status:      row.Status,
		TotalMinor:  row.TotalPrice,
		CreatedAt:   pgconv.TimeFromPgtype(row.CreatedAt),
	}
}

func blockingStatuses() []any {
	var out []any
	for _, s := range booking.AllStatuses() {
		if s.BlocksCalendar() {
			out = append(out, string(s))
		}
	}
	return out
}
