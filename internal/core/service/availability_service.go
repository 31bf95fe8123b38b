package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/hbsystem/booking-api/internal/core/domain"
	"github.com/hbsystem/booking-api/internal/core/ports"
)

// AvailabilityCache caches the per-category availability aggregate for a
// short TTL. A nil or failing cache degrades to a direct store query.
type AvailabilityCache interface {
	Get(ctx context.Context, hotelID int64, day time.Time) ([]domain.CategoryAvailability, bool, error)
	Set(ctx context.Context, hotelID int64, day time.Time, rows []domain.CategoryAvailability) error
}

// AvailabilityService serves the read-only availability aggregate. It is
// best-effort by contract: results may be a few seconds stale and are never
// used to authorize a booking.
type AvailabilityService struct {
	rooms  ports.RoomRepository
	cache  AvailabilityCache
	now    func() time.Time
	logger zerolog.Logger
}

func NewAvailabilityService(rooms ports.RoomRepository, cache AvailabilityCache, logger zerolog.Logger) *AvailabilityService {
	return &AvailabilityService{rooms: rooms, cache: cache, now: time.Now, logger: logger}
}

// WithClock overrides the time source. Intended for tests.
func (s *AvailabilityService) WithClock(now func() time.Time) *AvailabilityService {
	s.now = now
	return s
}

func (s *AvailabilityService) CheckAvailability(ctx context.Context, hotelID int64, checkIn string) ([]domain.CategoryAvailability, error) {
	if hotelID == 0 || checkIn == "" {
		return nil, domain.ErrMissingFields
	}

	day, err := time.ParseInLocation("2006-01-02", checkIn, time.UTC)
	if err != nil {
		return nil, domain.ErrInvalidDate
	}
	if day.Before(domain.Midnight(s.now())) {
		return nil, domain.ErrPastCheckIn
	}

	exists, err := s.rooms.HotelExists(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrHotelNotFound
	}

	if s.cache != nil {
		rows, ok, err := s.cache.Get(ctx, hotelID, day)
		if err != nil {
			s.logger.Warn().Err(err).Msg("availability cache read failed")
		} else if ok {
			return rows, nil
		}
	}

	rows, err := s.rooms.CategoryAvailability(ctx, hotelID, day)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, hotelID, day, rows); err != nil {
			s.logger.Warn().Err(err).Msg("availability cache write failed")
		}
	}
	return rows, nil
}
