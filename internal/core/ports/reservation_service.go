package ports

import (
	"context"
	"time"

	"github.com/hbsystem/booking-api/internal/core/domain"
)

// CreateReservationInput is the raw reservation request after authentication.
// Dates arrive as strings; the service owns their validation.
type CreateReservationInput struct {
	UserID   int64
	HotelID  int64
	Category string
	CheckIn  string
	CheckOut string
}

// ReservationResult is returned on a committed reservation.
type ReservationResult struct {
	BookingID  string
	RoomNumber string
	CheckIn    time.Time
	CheckOut   time.Time
	Nights     int
	TotalCents int64
}

// ReservationService orchestrates the reservation lifecycle.
type ReservationService interface {
	CreateReservation(ctx context.Context, input CreateReservationInput) (*ReservationResult, error)
	// GetActiveReservation returns the user's single active booking, or
	// domain.ErrBookingNotFound when there is none.
	GetActiveReservation(ctx context.Context, userID int64) (*domain.Booking, error)
	CancelReservation(ctx context.Context, userID int64, bookingID string) error
}

// AvailabilityService serves the read-only per-category availability
// aggregate. Best-effort; not part of the transactional core.
type AvailabilityService interface {
	CheckAvailability(ctx context.Context, hotelID int64, checkIn string) ([]domain.CategoryAvailability, error)
}
