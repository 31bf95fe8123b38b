package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/hbsystem/booking-api/internal/core/domain"
)

// RoomRepository serves hotel/room reference data. Rooms are static; only
// bookings change, so availability is always derived by overlap queries.
type RoomRepository struct {
	store *Store
}

func NewRoomRepository(store *Store) *RoomRepository {
	return &RoomRepository{store: store}
}

func (r *RoomRepository) HotelExists(ctx context.Context, hotelID int64) (bool, error) {
	var count int
	err := r.store.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM hotels WHERE id = ?`, hotelID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("hotel exists: %w", mapStoreErr(err))
	}
	return count > 0, nil
}

// CategoryAvailability counts free rooms per category for the one-night stay
// [day, day+1). Read-only; runs outside any transaction.
func (r *RoomRepository) CategoryAvailability(ctx context.Context, hotelID int64, day time.Time) ([]domain.CategoryAvailability, error) {
	start := domain.Midnight(day)
	end := start.AddDate(0, 0, 1)

	rows, err := r.store.db.QueryContext(ctx,
		`SELECT r.category, MIN(r.price_cents), COUNT(*)
		 FROM rooms r
		 WHERE r.hotel_id = ?
		   AND NOT EXISTS (
		       SELECT 1 FROM bookings b
		       WHERE b.room_id = r.id AND b.check_in < ? AND ? < b.check_out
		   )
		 GROUP BY r.category
		 ORDER BY r.category`,
		hotelID, end.Format(dateLayout), start.Format(dateLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("category availability: %w", mapStoreErr(err))
	}
	defer rows.Close()

	var result []domain.CategoryAvailability
	for rows.Next() {
		var ca domain.CategoryAvailability
		if err := rows.Scan(&ca.Category, &ca.MinPriceCents, &ca.Count); err != nil {
			return nil, fmt.Errorf("scan availability row: %w", err)
		}
		result = append(result, ca)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("category availability: %w", mapStoreErr(err))
	}
	return result, nil
}

// SeedReferenceData inserts hotels and rooms when the tables are empty.
// Reference data is owned by operations, not by this service; the seed exists
// so a fresh instance is usable out of the box.
func (r *RoomRepository) SeedReferenceData(ctx context.Context, hotels []domain.Hotel, rooms []domain.Room) error {
	var count int
	if err := r.store.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM hotels`).Scan(&count); err != nil {
		return fmt.Errorf("seed: count hotels: %w", mapStoreErr(err))
	}
	if count > 0 {
		return nil
	}

	for _, h := range hotels {
		if _, err := r.store.db.ExecContext(ctx,
			`INSERT INTO hotels (id, name) VALUES (?, ?)`, h.ID, h.Name); err != nil {
			return fmt.Errorf("seed hotel %d: %w", h.ID, mapStoreErr(err))
		}
	}
	for _, room := range rooms {
		if _, err := r.store.db.ExecContext(ctx,
			`INSERT INTO rooms (hotel_id, category, room_number, price_cents) VALUES (?, ?, ?, ?)`,
			room.HotelID, room.Category, room.RoomNumber, room.PriceCents); err != nil {
			return fmt.Errorf("seed room %s: %w", room.RoomNumber, mapStoreErr(err))
		}
	}
	return nil
}
