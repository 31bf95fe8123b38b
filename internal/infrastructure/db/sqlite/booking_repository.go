package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hbsystem/booking-api/internal/core/domain"
	"github.com/hbsystem/booking-api/internal/core/ports"
)

const dateLayout = "2006-01-02"

// BookingRepository implements ports.BookingRepository on the SQLite store.
type BookingRepository struct {
	store *Store
	log   zerolog.Logger
}

func NewBookingRepository(store *Store, log zerolog.Logger) *BookingRepository {
	return &BookingRepository{
		store: store,
		log:   log.With().Str("component", "booking-repository").Logger(),
	}
}

// Reserve runs the whole atomic unit in one immediate transaction:
// re-check the active-booking invariant, find a free room, insert. The
// single-writer lock guarantees at most one of N concurrent attempts for the
// same room commits; the losers re-read the room as taken and get
// domain.ErrNoRoomAvailable.
func (r *BookingRepository) Reserve(ctx context.Context, input ports.ReserveInput) (*domain.Booking, error) {
	var booking *domain.Booking

	err := r.store.WithTransaction(ctx, func(tx *sql.Tx) error {
		active, err := hasActiveBookingTx(ctx, tx, input.UserID, input.Today)
		if err != nil {
			return err
		}
		if active {
			return domain.ErrAlreadyBooked
		}

		room, err := findFreeRoomTx(ctx, tx, input)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		b := &domain.Booking{
			ID:         uuid.NewString(),
			UserID:     input.UserID,
			RoomID:     room.ID,
			RoomNumber: room.RoomNumber,
			HotelID:    room.HotelID,
			CheckIn:    input.Stay.CheckIn,
			CheckOut:   input.Stay.CheckOut,
			TotalCents: domain.TotalCents(room.PriceCents, input.Stay.Nights),
			CreatedAt:  now,
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO bookings (id, user_id, room_id, check_in, check_out, total_cents, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			b.ID, b.UserID, b.RoomID,
			b.CheckIn.Format(dateLayout), b.CheckOut.Format(dateLayout),
			b.TotalCents, b.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert booking: %w", mapStoreErr(err))
		}

		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.log.Info().
		Str("booking_id", booking.ID).
		Int64("user_id", booking.UserID).
		Int64("room_id", booking.RoomID).
		Msg("booking committed")
	return booking, nil
}

func hasActiveBookingTx(ctx context.Context, tx *sql.Tx, userID int64, today time.Time) (bool, error) {
	var count int
	err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings WHERE user_id = ? AND check_out > ?`,
		userID, domain.Midnight(today).Format(dateLayout),
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check active booking: %w", mapStoreErr(err))
	}
	return count > 0, nil
}

// findFreeRoomTx picks any room of the requested category with no booking
// overlapping [check_in, check_out). Which of several free rooms is returned
// is deliberately unspecified.
func findFreeRoomTx(ctx context.Context, tx *sql.Tx, input ports.ReserveInput) (*domain.Room, error) {
	var room domain.Room
	err := tx.QueryRowContext(ctx,
		`SELECT r.id, r.hotel_id, r.category, r.room_number, r.price_cents
		 FROM rooms r
		 WHERE r.hotel_id = ? AND r.category = ?
		   AND NOT EXISTS (
		       SELECT 1 FROM bookings b
		       WHERE b.room_id = r.id AND b.check_in < ? AND ? < b.check_out
		   )
		 LIMIT 1`,
		input.HotelID, input.Category,
		input.Stay.CheckOut.Format(dateLayout), input.Stay.CheckIn.Format(dateLayout),
	).Scan(&room.ID, &room.HotelID, &room.Category, &room.RoomNumber, &room.PriceCents)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNoRoomAvailable
	}
	if err != nil {
		return nil, fmt.Errorf("find free room: %w", mapStoreErr(err))
	}
	return &room, nil
}

// HasActiveBooking reports whether the user holds a booking with check-out
// after today. Used as the fast pre-check; Reserve re-verifies inside its
// transaction.
func (r *BookingRepository) HasActiveBooking(ctx context.Context, userID int64, today time.Time) (bool, error) {
	var count int
	err := r.store.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings WHERE user_id = ? AND check_out > ?`,
		userID, domain.Midnight(today).Format(dateLayout),
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check active booking: %w", mapStoreErr(err))
	}
	return count > 0, nil
}

// FindActiveForUser returns the soonest upcoming booking with check-out on or
// after today.
func (r *BookingRepository) FindActiveForUser(ctx context.Context, userID int64, today time.Time) (*domain.Booking, error) {
	var (
		b        domain.Booking
		checkIn  string
		checkOut string
	)
	err := r.store.db.QueryRowContext(ctx,
		`SELECT b.id, b.user_id, b.room_id, r.room_number, r.hotel_id,
		        b.check_in, b.check_out, b.total_cents, b.created_at
		 FROM bookings b
		 JOIN rooms r ON r.id = b.room_id
		 WHERE b.user_id = ? AND b.check_out >= ?
		 ORDER BY b.check_in ASC
		 LIMIT 1`,
		userID, domain.Midnight(today).Format(dateLayout),
	).Scan(&b.ID, &b.UserID, &b.RoomID, &b.RoomNumber, &b.HotelID,
		&checkIn, &checkOut, &b.TotalCents, &b.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find active booking: %w", mapStoreErr(err))
	}

	if b.CheckIn, err = time.ParseInLocation(dateLayout, checkIn, time.UTC); err != nil {
		return nil, fmt.Errorf("parse check_in %q: %w", checkIn, err)
	}
	if b.CheckOut, err = time.ParseInLocation(dateLayout, checkOut, time.UTC); err != nil {
		return nil, fmt.Errorf("parse check_out %q: %w", checkOut, err)
	}
	return &b, nil
}

// Cancel hard-deletes the booking keyed by both id and owner. Zero rows
// affected means either no such booking or not the caller's booking; both are
// reported identically.
func (r *BookingRepository) Cancel(ctx context.Context, bookingID string, userID int64) error {
	result, err := r.store.db.ExecContext(ctx,
		`DELETE FROM bookings WHERE id = ? AND user_id = ?`,
		bookingID, userID,
	)
	if err != nil {
		return fmt.Errorf("cancel booking: %w", mapStoreErr(err))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("cancel booking: rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrBookingNotFound
	}

	r.log.Info().Str("booking_id", bookingID).Int64("user_id", userID).Msg("booking cancelled")
	return nil
}
