package ports

import (
	"context"
	"time"

	"github.com/hbsystem/booking-api/internal/core/domain"
)

// ReserveInput carries everything the ledger needs to commit one booking.
// All fields are pre-validated by the reservation service; the repository
// re-checks the business invariants inside its transaction because time may
// have passed under concurrent load.
type ReserveInput struct {
	UserID   int64
	HotelID  int64
	Category string // already normalized to lower case at ingress
	Stay     domain.StayRange
	Today    time.Time // midnight; the active-booking cutoff
}

// BookingRepository is the authoritative booking ledger.
type BookingRepository interface {
	// Reserve executes the atomic unit: within a single write transaction it
	// verifies the user holds no active booking, finds a free room of the
	// requested category (no overlapping booking row), computes the total
	// price and inserts the booking. Exactly one row is written on success;
	// nothing is written on any failure.
	Reserve(ctx context.Context, input ReserveInput) (*domain.Booking, error)

	// HasActiveBooking reports whether the user holds a booking with
	// check-out after today.
	HasActiveBooking(ctx context.Context, userID int64, today time.Time) (bool, error)

	// FindActiveForUser returns the soonest upcoming booking with check-out
	// on or after today, or domain.ErrBookingNotFound.
	FindActiveForUser(ctx context.Context, userID int64, today time.Time) (*domain.Booking, error)

	// Cancel hard-deletes the booking keyed by (bookingID, userID). A miss on
	// either key yields domain.ErrBookingNotFound so existence of another
	// user's booking is never leaked.
	Cancel(ctx context.Context, bookingID string, userID int64) error
}

// RoomRepository provides read-only access to hotel/room reference data.
type RoomRepository interface {
	HotelExists(ctx context.Context, hotelID int64) (bool, error)
	// CategoryAvailability aggregates free rooms per category for a one-night
	// stay starting at day. Best-effort read, not part of the atomic unit.
	CategoryAvailability(ctx context.Context, hotelID int64, day time.Time) ([]domain.CategoryAvailability, error)
}
