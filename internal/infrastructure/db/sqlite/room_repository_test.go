package sqlite

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hbsystem/booking-api/internal/core/domain"
)

func TestRoomRepository_HotelExists(t *testing.T) {
	store := newTestStore(t)
	seedFixtures(t, store, 1, 0)
	repo := NewRoomRepository(store)

	exists, err := repo.HotelExists(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.HotelExists(context.Background(), 42)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRoomRepository_CategoryAvailability(t *testing.T) {
	store := newTestStore(t)
	users := seedFixtures(t, store, 2, 1)
	_, err := store.db.Exec(
		`INSERT INTO rooms (hotel_id, category, room_number, price_cents) VALUES (1, 'suite', '901', 24900)`)
	require.NoError(t, err)

	rooms := NewRoomRepository(store)
	bookings := NewBookingRepository(store, zerolog.Nop())

	rows, err := rooms.CategoryAvailability(context.Background(), 1, testToday)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, domain.CategoryAvailability{Category: "standard", MinPriceCents: 9999, Count: 2}, rows[0])
	assert.Equal(t, domain.CategoryAvailability{Category: "suite", MinPriceCents: 24900, Count: 1}, rows[1])

	// A booking covering the day takes one standard room out of the count.
	_, err = bookings.Reserve(context.Background(), reserveInput(t, users[0], "2024-01-10", "2024-01-12"))
	require.NoError(t, err)

	rows, err = rooms.CategoryAvailability(context.Background(), 1, testToday)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(1), rows[0].Count)

	// The checkout day itself is free again.
	checkout := testToday.AddDate(0, 0, 2)
	rows, err = rooms.CategoryAvailability(context.Background(), 1, checkout)
	require.NoError(t, err)
	assert.Equal(t, int64(2), rows[0].Count)
}

func TestRoomRepository_SeedReferenceData(t *testing.T) {
	store := newTestStore(t)
	repo := NewRoomRepository(store)

	hotels := []domain.Hotel{{ID: 1, Name: "Grand Plaza"}}
	rooms := []domain.Room{
		{HotelID: 1, Category: "standard", RoomNumber: "101", PriceCents: 9999},
		{HotelID: 1, Category: "standard", RoomNumber: "102", PriceCents: 9999},
	}

	require.NoError(t, repo.SeedReferenceData(context.Background(), hotels, rooms))

	// A second seed run is a no-op.
	require.NoError(t, repo.SeedReferenceData(context.Background(), hotels, rooms))

	var count int
	require.NoError(t, store.db.QueryRow(`SELECT COUNT(*) FROM rooms`).Scan(&count))
	assert.Equal(t, 2, count)
}
