package commands

import (
	"context"
	"log/slog"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/domain/rental"
	"rental-booking/internal/infra"
	"rental-booking/internal/pkg/clock"
	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/usecase/events"
	"rental-booking/internal/usecase/queries"
	"rental-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// maxStaleRetries bounds how often a status update reloads after losing a version race.
const maxStaleRetries = 3

type CreateBookingInput struct {
	GuestID        uuid.UUID
	RentalID       uuid.UUID
	CheckInDate    string
	CheckOutDate   string
	NumberOfGuests int
	GuestMessage   *string
}

type UpdateBookingStatusInput struct {
	BookingID uuid.UUID
	ActorID   uuid.UUID
	Status    string
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, in CreateBookingInput) (*queries.BookingView, error)
	UpdateBookingStatus(ctx context.Context, in UpdateBookingStatusInput) (*queries.BookingView, error)
	// CompleteBooking is the system-only CONFIRMED -> COMPLETED transition.
	CompleteBooking(ctx context.Context, bookingID uuid.UUID) (*queries.BookingView, error)
}

type bookingUseCaseImpl struct {
	uow      shared.UnitOfWork
	services *booking.Services
	clock    clock.Clock
}

func NewBookingUseCase(uow shared.UnitOfWork, calculator booking.PriceCalculator, clk clock.Clock) BookingCommands {
	return &bookingUseCaseImpl{
		uow: uow,
		services: &booking.Services{
			Clock:           clk,
			PriceCalculator: calculator,
		},
		clock: clk,
	}
}

func (uc *bookingUseCaseImpl) CreateBooking(ctx context.Context, in CreateBookingInput) (*queries.BookingView, error) {
	// Input shape is settled before the store is touched.
	stay, err := booking.ParseStayPeriod(in.CheckInDate, in.CheckOutDate)
	if err != nil {
		return nil, err
	}
	if in.NumberOfGuests < 1 {
		return nil, booking.ErrInvalidGuestCount
	}

	var view *queries.BookingView
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, derr := loadRental(ctx, tx, in.RentalID)
		if derr != nil {
			return derr
		}
		if derr = booking.CheckEligibility(r, in.GuestID, in.NumberOfGuests); derr != nil {
			return derr
		}

		available, derr := booking.NewAvailabilityChecker(tx.Bookings()).IsAvailable(ctx, r.ID(), stay)
		if derr != nil {
			return derr
		}
		if !available {
			return booking.ErrDatesUnavailable
		}

		b, derr := booking.NewBooking(uc.services, r, in.GuestID, stay, in.NumberOfGuests, in.GuestMessage)
		if derr != nil {
			return derr
		}
		if derr = tx.BookingWriter().Insert(ctx, b); derr != nil {
			return translateWriteErr(derr)
		}

		evt, derr := events.NewBookingCreated(b, b.CreatedAt())
		if derr != nil {
			return derr
		}
		if derr = tx.Events().Append(ctx, evt); derr != nil {
			return derr
		}

		view = queries.NewBookingView(b)
		return nil
	})
	if errs.Is(err, shared.ErrRetriesExhausted) {
		// every attempt collided with a concurrent booking of the same rental
		return nil, booking.ErrDatesUnavailable
	}
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "booking created",
		slog.String("booking_id", view.ID.String()),
		slog.String("rental_id", view.RentalID.String()),
		slog.Int("nights", view.Nights))
	return view, nil
}

func (uc *bookingUseCaseImpl) UpdateBookingStatus(ctx context.Context, in UpdateBookingStatusInput) (*queries.BookingView, error) {
	to, err := booking.ParseStatus(in.Status)
	if err != nil {
		return nil, err
	}

	return uc.transition(ctx, in.BookingID, func(b *booking.Booking) (booking.ActorRole, error) {
		role, rerr := b.RoleOf(in.ActorID)
		if rerr != nil {
			return "", rerr
		}
		return role, b.TransitionTo(role, to, uc.clock.Now())
	})
}

func (uc *bookingUseCaseImpl) CompleteBooking(ctx context.Context, bookingID uuid.UUID) (*queries.BookingView, error) {
	return uc.transition(ctx, bookingID, func(b *booking.Booking) (booking.ActorRole, error) {
		return booking.RoleSystem, b.Complete(uc.clock.Now())
	})
}

// transition loads the booking, applies mutate and writes it back with a version check.
// Losing the race reloads the booking so the table is evaluated against the winner's state.
func (uc *bookingUseCaseImpl) transition(
	ctx context.Context,
	bookingID uuid.UUID,
	mutate func(b *booking.Booking) (booking.ActorRole, error),
) (*queries.BookingView, error) {
	for attempt := 1; attempt <= maxStaleRetries; attempt++ {
		var view *queries.BookingView
		err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			b, derr := loadBooking(ctx, tx, bookingID)
			if derr != nil {
				return derr
			}

			from, expectedVersion := b.Status(), b.Version()
			role, derr := mutate(b)
			if derr != nil {
				return derr
			}
			if derr = tx.BookingWriter().UpdateStatus(ctx, b, expectedVersion); derr != nil {
				return derr
			}

			evt, derr := events.NewBookingStatusChanged(b, from, role, b.UpdatedAt())
			if derr != nil {
				return derr
			}
			if derr = tx.Events().Append(ctx, evt); derr != nil {
				return derr
			}

			slog.InfoContext(ctx, "booking status changed",
				slog.String("booking_id", b.ID().String()),
				slog.String("from", from.String()),
				slog.String("to", b.Status().String()),
				slog.String("actor_role", role.String()))
			view = queries.NewBookingView(b)
			return nil
		})
		if errs.Is(err, shared.ErrRetriesExhausted) {
			return nil, booking.ErrConcurrentUpdate
		}
		if !infra.IsKind(err, infra.KindStaleVersion) {
			if err != nil {
				return nil, err
			}
			return view, nil
		}

		slog.WarnContext(ctx, "booking version changed concurrently, reloading",
			slog.String("booking_id", bookingID.String()),
			slog.Int("attempt", attempt))
	}
	return nil, booking.ErrConcurrentUpdate
}

func loadRental(ctx context.Context, tx shared.ReadTx, id uuid.UUID) (*rental.Rental, error) {
	r, err := tx.Rentals().RentalByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, booking.ErrRentalNotFound
		}
		return nil, err
	}
	return r, nil
}

func loadBooking(ctx context.Context, tx shared.ReadTx, id uuid.UUID) (*booking.Booking, error) {
	b, err := tx.Bookings().BookingByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, booking.ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

// translateWriteErr turns a storage-level collision into the domain conflict.
func translateWriteErr(err error) error {
	if infra.IsKind(err, infra.KindConflict) || infra.IsKind(err, infra.KindDuplicateKey) {
		return booking.ErrDatesUnavailable
	}
	return err
}
