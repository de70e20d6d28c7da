// Package memory is a process-local storage driver with the same guarantees as the
// Postgres one: overlapping blocking stays are rejected at insert and status writes
// are compare-and-swap on the booking version.
package memory

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/domain/rental"
	"rental-booking/internal/infra"
	"rental-booking/internal/usecase/queries"
	"rental-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type Store struct {
	mu       sync.RWMutex
	rentals  map[uuid.UUID]*rental.Rental
	bookings map[uuid.UUID]*booking.Booking
	events   []shared.OutboxEvent
}

func NewStore() *Store {
	return &Store{
		rentals:  make(map[uuid.UUID]*rental.Rental),
		bookings: make(map[uuid.UUID]*booking.Booking),
	}
}

// PutRental inserts or replaces a listing.
func (s *Store) PutRental(r *rental.Rental) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rentals[r.ID()] = r
}

// Within stages writes and publishes them only when fn succeeds. Units of work run one at a time.
func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memTx{
		store:    s,
		bookings: maps.Clone(s.bookings),
		events:   slices.Clone(s.events),
	}
	if err := fn(ctx, tx); err != nil {
		return err
	}

	s.bookings = tx.bookings
	s.events = tx.events
	return nil
}

func (s *Store) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.ReadTx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(ctx, &memTx{store: s, bookings: s.bookings})
}

func (s *Store) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	var b *booking.Booking
	err := s.WithinReadOnly(ctx, func(ctx context.Context, tx shared.ReadTx) error {
		var err error
		b, err = tx.Bookings().BookingByID(ctx, id)
		return err
	})
	return b, err
}

func (s *Store) ListByGuest(ctx context.Context, guestID uuid.UUID) ([]*queries.BookingListItem, error) {
	return s.listItems(ctx, func(b *booking.Booking) bool { return b.GuestID() == guestID })
}

func (s *Store) ListByHost(ctx context.Context, hostID uuid.UUID) ([]*queries.BookingListItem, error) {
	return s.listItems(ctx, func(b *booking.Booking) bool { return b.HostID() == hostID })
}

// PublishedEvents returns the outbox rows already relayed, oldest first.
func (s *Store) PublishedEvents() []shared.OutboxEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []shared.OutboxEvent
	for _, evt := range s.events {
		if evt.PublishedAt != nil {
			out = append(out, evt)
		}
	}
	return out
}

func (s *Store) listItems(ctx context.Context, match func(b *booking.Booking) bool) ([]*queries.BookingListItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*booking.Booking
	for _, b := range s.bookings {
		if match(b) {
			matched = append(matched, b)
		}
	}
	slices.SortFunc(matched, func(a, b *booking.Booking) int {
		if c := b.CreatedAt().Compare(a.CreatedAt()); c != 0 {
			return c
		}
		return cmp.Compare(b.ID().String(), a.ID().String())
	})

	items := make([]*queries.BookingListItem, len(matched))
	for i, b := range matched {
		var title string
		if r, ok := s.rentals[b.RentalID()]; ok {
			title = r.Title()
		}
		items[i] = &queries.BookingListItem{
			ID:          b.ID(),
			RentalID:    b.RentalID(),
			RentalTitle: title,
			GuestID:     b.GuestID(),
			HostID:      b.HostID(),
			CheckIn:     b.Stay().CheckIn(),
			CheckOut:    b.Stay().CheckOut(),
			GuestCount:  b.GuestCount(),
			Status:      b.Status().String(),
			TotalMinor:  b.Price().Total.MinorUnits(),
			CreatedAt:   b.CreatedAt(),
		}
	}
	return items, nil
}

type memTx struct {
	store    *Store
	bookings map[uuid.UUID]*booking.Booking
	events   []shared.OutboxEvent
}

func (t *memTx) Rentals() shared.RentalReader            { return rentalReader{t} }
func (t *memTx) Bookings() shared.BookingReader          { return bookingReader{t} }
func (t *memTx) BookingWriter() shared.BookingRepository { return bookingWriter{t} }
func (t *memTx) Events() shared.EventOutbox              { return outbox{t} }

type rentalReader struct{ tx *memTx }

func (r rentalReader) RentalByID(_ context.Context, id uuid.UUID) (*rental.Rental, error) {
	rent, ok := r.tx.store.rentals[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "rental not found")
	}
	return rent, nil
}

type bookingReader struct{ tx *memTx }

func (r bookingReader) BookingByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	b, ok := r.tx.bookings[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "booking not found")
	}
	return clone(b), nil
}

func (r bookingReader) ListBlockingInRange(_ context.Context, rentalID uuid.UUID, window booking.StayPeriod) ([]*booking.Booking, error) {
	var out []*booking.Booking
	for _, b := range r.tx.bookings {
		if b.RentalID() == rentalID && b.Status().BlocksCalendar() && b.Stay().Overlaps(window) {
			out = append(out, clone(b))
		}
	}
	return out, nil
}

func (r bookingReader) ListCompletable(_ context.Context, checkOutOnOrBefore time.Time, limit int) ([]uuid.UUID, error) {
	var due []*booking.Booking
	for _, b := range r.tx.bookings {
		if b.Status() == booking.StatusConfirmed && !b.Stay().CheckOut().After(checkOutOnOrBefore) {
			due = append(due, b)
		}
	}
	slices.SortFunc(due, func(a, b *booking.Booking) int {
		return a.Stay().CheckOut().Compare(b.Stay().CheckOut())
	})
	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}

	ids := make([]uuid.UUID, len(due))
	for i, b := range due {
		ids[i] = b.ID()
	}
	return ids, nil
}

type bookingWriter struct{ tx *memTx }

// Insert mirrors the exclusion constraint on (rental, stay) for blocking statuses.
func (w bookingWriter) Insert(_ context.Context, b *booking.Booking) error {
	if _, ok := w.tx.store.rentals[b.RentalID()]; !ok {
		return infra.NewRepoErr(infra.KindForeignKeyViolated, "rental does not exist")
	}
	if _, ok := w.tx.bookings[b.ID()]; ok {
		return infra.NewRepoErr(infra.KindDuplicateKey, "booking already exists")
	}
	if b.Status().BlocksCalendar() {
		for _, other := range w.tx.bookings {
			if other.RentalID() == b.RentalID() && other.Status().BlocksCalendar() && other.Stay().Overlaps(b.Stay()) {
				return infra.NewRepoErr(infra.KindConflict, "stay overlaps an existing booking")
			}
		}
	}
	w.tx.bookings[b.ID()] = clone(b)
	return nil
}

func (w bookingWriter) UpdateStatus(_ context.Context, b *booking.Booking, expectedVersion int64) error {
	current, ok := w.tx.bookings[b.ID()]
	if !ok || current.Version() != expectedVersion {
		return infra.NewRepoErr(infra.KindStaleVersion, "booking version changed concurrently")
	}
	w.tx.bookings[b.ID()] = clone(b)
	return nil
}

type outbox struct{ tx *memTx }

func (o outbox) Append(_ context.Context, evt shared.OutboxEvent) error {
	o.tx.events = append(o.tx.events, evt)
	return nil
}

func (o outbox) ListPending(_ context.Context, limit int) ([]shared.OutboxEvent, error) {
	var pending []shared.OutboxEvent
	for _, evt := range o.tx.events {
		if evt.PublishedAt == nil {
			pending = append(pending, evt)
		}
	}
	slices.SortStableFunc(pending, func(a, b shared.OutboxEvent) int {
		return a.OccurredAt.Compare(b.OccurredAt)
	})
	if limit > 0 && len(pending) > limit {
		pending = pending[:limit]
	}
	return pending, nil
}

func (o outbox) MarkPublished(_ context.Context, ids []uuid.UUID, at time.Time) error {
	for i := range o.tx.events {
		if slices.Contains(ids, o.tx.events[i].ID) {
			t := at
			o.tx.events[i].PublishedAt = &t
		}
	}
	return nil
}

// clone keeps stored bookings isolated from callers that mutate what they loaded.
func clone(b *booking.Booking) *booking.Booking {
	return booking.Reconstruct(booking.ReconstructParams{
		ID:           b.ID(),
		RentalID:     b.RentalID(),
		GuestID:      b.GuestID(),
		HostID:       b.HostID(),
		Stay:         b.Stay(),
		GuestCount:   b.GuestCount(),
		Status:       b.Status(),
		Price:        b.Price(),
		GuestMessage: b.GuestMessage(),
		CreatedAt:    b.CreatedAt(),
		UpdatedAt:    b.UpdatedAt(),
		CancelledAt:  b.CancelledAt(),
		Version:      b.Version(),
	})
}
