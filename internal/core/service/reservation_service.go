package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hbsystem/booking-api/internal/core/domain"
	"github.com/hbsystem/booking-api/internal/core/ports"
	"github.com/hbsystem/booking-api/internal/metrics"
)

// ReservationService orchestrates one reservation request: validate the date
// range, enforce the single-active-booking invariant, and delegate the atomic
// search-and-insert to the booking ledger. On any rejection zero rows change.
type ReservationService struct {
	ledger    ports.BookingRepository
	rooms     ports.RoomRepository
	maxNights int
	now       func() time.Time
	logger    zerolog.Logger
}

func NewReservationService(ledger ports.BookingRepository, rooms ports.RoomRepository, maxNights int, logger zerolog.Logger) *ReservationService {
	if maxNights <= 0 {
		maxNights = domain.DefaultMaxStayNights
	}
	return &ReservationService{
		ledger:    ledger,
		rooms:     rooms,
		maxNights: maxNights,
		now:       time.Now,
		logger:    logger,
	}
}

// WithClock overrides the time source. Intended for tests.
func (s *ReservationService) WithClock(now func() time.Time) *ReservationService {
	s.now = now
	return s
}

// NormalizeCategory is the single case policy for room categories: lower-case
// at every ingress point, exact match everywhere else.
func NormalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}

func (s *ReservationService) CreateReservation(ctx context.Context, input ports.CreateReservationInput) (*ports.ReservationResult, error) {
	if input.HotelID == 0 || input.Category == "" || input.CheckIn == "" || input.CheckOut == "" {
		return nil, s.reject(input.UserID, domain.ErrMissingFields)
	}

	now := s.now()
	stay, err := domain.ParseStayRange(input.CheckIn, input.CheckOut, now, s.maxNights)
	if err != nil {
		return nil, s.reject(input.UserID, err)
	}

	exists, err := s.rooms.HotelExists(ctx, input.HotelID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, s.reject(input.UserID, domain.ErrHotelNotFound)
	}

	today := domain.Midnight(now)

	// Fast pre-check. The ledger re-verifies inside its transaction; this
	// only rejects the obvious case without taking the write lock.
	active, err := s.ledger.HasActiveBooking(ctx, input.UserID, today)
	if err != nil {
		return nil, err
	}
	if active {
		return nil, s.reject(input.UserID, domain.ErrAlreadyBooked)
	}

	booking, err := s.ledger.Reserve(ctx, ports.ReserveInput{
		UserID:   input.UserID,
		HotelID:  input.HotelID,
		Category: NormalizeCategory(input.Category),
		Stay:     stay,
		Today:    today,
	})
	if err != nil {
		return nil, s.reject(input.UserID, err)
	}

	metrics.ReservationsCreatedTotal.WithLabelValues(NormalizeCategory(input.Category)).Inc()
	s.logger.Info().
		Str("booking_id", booking.ID).
		Int64("user_id", input.UserID).
		Int("nights", stay.Nights).
		Int64("total_cents", booking.TotalCents).
		Msg("reservation committed")

	return &ports.ReservationResult{
		BookingID:  booking.ID,
		RoomNumber: booking.RoomNumber,
		CheckIn:    booking.CheckIn,
		CheckOut:   booking.CheckOut,
		Nights:     stay.Nights,
		TotalCents: booking.TotalCents,
	}, nil
}

func (s *ReservationService) GetActiveReservation(ctx context.Context, userID int64) (*domain.Booking, error) {
	return s.ledger.FindActiveForUser(ctx, userID, domain.Midnight(s.now()))
}

func (s *ReservationService) CancelReservation(ctx context.Context, userID int64, bookingID string) error {
	if err := s.ledger.Cancel(ctx, bookingID, userID); err != nil {
		return err
	}
	metrics.BookingsCancelledTotal.Inc()
	s.logger.Info().Str("booking_id", bookingID).Int64("user_id", userID).Msg("reservation cancelled")
	return nil
}

// reject counts the rejection by taxonomy label; infrastructure faults keep
// their own path and are not labelled as business rejections.
func (s *ReservationService) reject(userID int64, err error) error {
	label := rejectionLabel(err)
	if label != "" {
		metrics.ReservationRejectionsTotal.WithLabelValues(label).Inc()
		s.logger.Debug().Int64("user_id", userID).Str("reason", label).Msg("reservation rejected")
	}
	return err
}

func rejectionLabel(err error) string {
	switch err {
	case domain.ErrMissingFields:
		return "missing_fields"
	case domain.ErrInvalidDate:
		return "invalid_date"
	case domain.ErrNonPositiveStay:
		return "non_positive_stay"
	case domain.ErrPastCheckIn:
		return "past_check_in"
	case domain.ErrStayTooLong:
		return "stay_too_long"
	case domain.ErrHotelNotFound:
		return "hotel_not_found"
	case domain.ErrAlreadyBooked:
		return "already_booked"
	case domain.ErrNoRoomAvailable:
		return "no_room_available"
	}
	return ""
}
