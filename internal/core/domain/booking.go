package domain

import (
	"errors"
	"time"
)

// Validation and business-rule errors. Resolved to client-error responses by
// the HTTP error handler.
var (
	ErrMissingFields   = errors.New("missing required fields")
	ErrInvalidDate     = errors.New("invalid date, use YYYY-MM-DD")
	ErrNonPositiveStay = errors.New("check-out must be after check-in")
	ErrPastCheckIn     = errors.New("check-in date is in the past")
	ErrStayTooLong     = errors.New("stay exceeds the maximum length")

	ErrAlreadyBooked   = errors.New("user already has an active booking")
	ErrNoRoomAvailable = errors.New("no room of the requested category is available")
	ErrBookingNotFound = errors.New("booking not found")
	ErrHotelNotFound   = errors.New("hotel not found")

	ErrUserExists         = errors.New("username or email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("authentication required")

	// Infrastructure faults, recoverable by client retry.
	ErrTimeout          = errors.New("store operation timed out")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Booking is the only mutable fact in the reservation core. It is created by
// the reservation service and hard-deleted on cancellation; it is never
// updated in place.
type Booking struct {
	ID         string    `json:"id"`
	UserID     int64     `json:"user_id"`
	RoomID     int64     `json:"room_id"`
	RoomNumber string    `json:"room_number"`
	HotelID    int64     `json:"hotel_id"`
	CheckIn    time.Time `json:"check_in"`
	CheckOut   time.Time `json:"check_out"`
	TotalCents int64     `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

// Stay returns the booking's half-open date interval.
func (b *Booking) Stay() StayRange {
	return StayRange{
		CheckIn:  b.CheckIn,
		CheckOut: b.CheckOut,
		Nights:   int(b.CheckOut.Sub(b.CheckIn).Hours() / 24),
	}
}

// Active reports whether the booking's checkout is still in the future
// relative to the given day.
func (b *Booking) Active(today time.Time) bool {
	return b.CheckOut.After(Midnight(today))
}
