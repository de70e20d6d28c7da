package booking

import "rental-booking/internal/pkg/errs"

var (
	ErrMinimumStay        = errs.BadRequest("MINIMUM_STAY", "Booking must be at least 1 night")
	ErrInvalidDate        = errs.BadRequest("INVALID_DATE", "Dates must be formatted as YYYY-MM-DD")
	ErrInvalidGuestCount  = errs.BadRequest("INVALID_GUEST_COUNT", "Number of guests must be at least 1")
	ErrRentalNotFound     = errs.NotFound("RENTAL_NOT_FOUND", "Rental not found")
	ErrRentalUnavailable  = errs.BadRequest("RENTAL_UNAVAILABLE", "Rental is not available for booking")
	ErrSelfBooking        = errs.BadRequest("SELF_BOOKING", "You cannot book your own rental")
	ErrTooManyGuests      = errs.BadRequest("TOO_MANY_GUESTS", "Maximum guests allowed exceeded")
	ErrDatesUnavailable   = errs.Conflict("DATES_UNAVAILABLE", "Rental is not available for these dates")
	ErrBookingNotFound    = errs.NotFound("BOOKING_NOT_FOUND", "Booking not found")
	ErrAccessDenied       = errs.Forbidden("ACCESS_DENIED", "Access denied")
	ErrInvalidStatus      = errs.BadRequest("INVALID_STATUS", "Unknown booking status")
	ErrInvalidTransition  = errs.BadRequest("INVALID_TRANSITION", "Invalid status transition")
	ErrNotYetCheckedOut   = errs.BadRequest("NOT_YET_CHECKED_OUT", "Booking cannot be completed before check-out")
	ErrConcurrentUpdate   = errs.Conflict("CONCURRENT_UPDATE", "Booking was modified concurrently, please retry")
	ErrInvalidRentalPrice = errs.BadRequest("INVALID_RENTAL_PRICE", "Rental has no valid nightly price")
)
