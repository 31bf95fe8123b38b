package sqlite

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hbsystem/booking-api/internal/core/domain"
	"github.com/hbsystem/booking-api/internal/core/ports"
)

var testToday = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(Config{Path: filepath.Join(t.TempDir(), "booking.db")}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// seedFixtures inserts one hotel, the requested standard rooms at 99.99 a
// night and a handful of users, returning the user ids.
func seedFixtures(t *testing.T, store *Store, roomCount, userCount int) []int64 {
	t.Helper()

	_, err := store.db.Exec(`INSERT INTO hotels (id, name) VALUES (1, 'Grand Plaza')`)
	require.NoError(t, err)

	for i := 0; i < roomCount; i++ {
		_, err := store.db.Exec(
			`INSERT INTO rooms (hotel_id, category, room_number, price_cents) VALUES (1, 'standard', ?, 9999)`,
			string(rune('1'+i))+"01",
		)
		require.NoError(t, err)
	}

	users := make([]int64, 0, userCount)
	now := time.Now().UTC()
	for i := 0; i < userCount; i++ {
		res, err := store.db.Exec(
			`INSERT INTO users (username, email, password_hash, full_name, created_at, updated_at)
			 VALUES (?, ?, 'x', 'Test User', ?, ?)`,
			"user"+string(rune('a'+i)), "user"+string(rune('a'+i))+"@example.com", now, now,
		)
		require.NoError(t, err)
		id, err := res.LastInsertId()
		require.NoError(t, err)
		users = append(users, id)
	}
	return users
}

func stay(t *testing.T, checkIn, checkOut string) domain.StayRange {
	t.Helper()
	s, err := domain.ParseStayRange(checkIn, checkOut, testToday, 0)
	require.NoError(t, err)
	return s
}

func reserveInput(t *testing.T, userID int64, checkIn, checkOut string) ports.ReserveInput {
	return ports.ReserveInput{
		UserID:   userID,
		HotelID:  1,
		Category: "standard",
		Stay:     stay(t, checkIn, checkOut),
		Today:    testToday,
	}
}

func TestBookingRepository_Reserve(t *testing.T) {
	store := newTestStore(t)
	users := seedFixtures(t, store, 1, 1)
	repo := NewBookingRepository(store, zerolog.Nop())

	booking, err := repo.Reserve(context.Background(), reserveInput(t, users[0], "2024-01-10", "2024-01-13"))
	require.NoError(t, err)

	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, users[0], booking.UserID)
	assert.Equal(t, "101", booking.RoomNumber)
	assert.Equal(t, 3, booking.Stay().Nights)
	assert.Equal(t, int64(29997), booking.TotalCents, "3 nights at 99.99 must cost exactly 299.97")
}

func TestBookingRepository_Reserve_OverlapBoundaries(t *testing.T) {
	cases := []struct {
		name     string
		checkIn  string
		checkOut string
		free     bool
	}{
		{"identical range", "2024-01-10", "2024-01-13", false},
		{"starts inside", "2024-01-11", "2024-01-15", false},
		{"ends inside", "2024-01-08", "2024-01-11", false},
		{"fully covers", "2024-01-08", "2024-01-15", false},
		{"checkout day reuse", "2024-01-13", "2024-01-15", true},
		{"ends on checkin day", "2024-01-08", "2024-01-10", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newTestStore(t)
			users := seedFixtures(t, store, 1, 2)
			repo := NewBookingRepository(store, zerolog.Nop())

			_, err := repo.Reserve(context.Background(), reserveInput(t, users[0], "2024-01-10", "2024-01-13"))
			require.NoError(t, err)

			input := ports.ReserveInput{
				UserID:   users[1],
				HotelID:  1,
				Category: "standard",
				Stay:     mustStayUnchecked(t, tc.checkIn, tc.checkOut),
				Today:    testToday,
			}
			_, err = repo.Reserve(context.Background(), input)
			if tc.free {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, domain.ErrNoRoomAvailable)
			}
		})
	}
}

// mustStayUnchecked builds a StayRange bypassing the past-check-in rule so
// boundary cases around today stay expressible.
func mustStayUnchecked(t *testing.T, checkIn, checkOut string) domain.StayRange {
	t.Helper()
	in, err := time.ParseInLocation("2006-01-02", checkIn, time.UTC)
	require.NoError(t, err)
	out, err := time.ParseInLocation("2006-01-02", checkOut, time.UTC)
	require.NoError(t, err)
	return domain.StayRange{CheckIn: in, CheckOut: out, Nights: int(out.Sub(in).Hours() / 24)}
}

func TestBookingRepository_Reserve_OneActivePerUser(t *testing.T) {
	store := newTestStore(t)
	users := seedFixtures(t, store, 3, 1)
	repo := NewBookingRepository(store, zerolog.Nop())

	_, err := repo.Reserve(context.Background(), reserveInput(t, users[0], "2024-01-10", "2024-01-13"))
	require.NoError(t, err)

	// Plenty of free rooms and a disjoint range. Rejected anyway.
	_, err = repo.Reserve(context.Background(), reserveInput(t, users[0], "2024-02-01", "2024-02-03"))
	assert.ErrorIs(t, err, domain.ErrAlreadyBooked)
}

func TestBookingRepository_Reserve_UnknownCategory(t *testing.T) {
	store := newTestStore(t)
	users := seedFixtures(t, store, 1, 1)
	repo := NewBookingRepository(store, zerolog.Nop())

	input := reserveInput(t, users[0], "2024-01-10", "2024-01-13")
	input.Category = "penthouse"
	_, err := repo.Reserve(context.Background(), input)
	assert.ErrorIs(t, err, domain.ErrNoRoomAvailable)
}

func TestBookingRepository_Reserve_Concurrent(t *testing.T) {
	const attempts = 20

	store := newTestStore(t)
	users := seedFixtures(t, store, 1, attempts)
	repo := NewBookingRepository(store, zerolog.Nop())

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		rejected  int
	)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			_, err := repo.Reserve(context.Background(), reserveInput(t, userID, "2024-01-10", "2024-01-13"))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case assert.ErrorIs(t, err, domain.ErrNoRoomAvailable):
				rejected++
			}
		}(users[i])
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded, "exactly one of %d concurrent attempts may win the room", attempts)
	assert.Equal(t, attempts-1, rejected)

	var count int
	require.NoError(t, store.db.QueryRow(`SELECT COUNT(*) FROM bookings`).Scan(&count))
	assert.Equal(t, 1, count, "losers must write nothing")
}

func TestBookingRepository_FindActiveForUser(t *testing.T) {
	store := newTestStore(t)
	users := seedFixtures(t, store, 1, 2)
	repo := NewBookingRepository(store, zerolog.Nop())

	created, err := repo.Reserve(context.Background(), reserveInput(t, users[0], "2024-01-12", "2024-01-14"))
	require.NoError(t, err)

	found, err := repo.FindActiveForUser(context.Background(), users[0], testToday)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, created.CheckIn, found.CheckIn)
	assert.Equal(t, created.CheckOut, found.CheckOut)
	assert.Equal(t, int64(19998), found.TotalCents)

	// Repeated reads return the same row.
	again, err := repo.FindActiveForUser(context.Background(), users[0], testToday)
	require.NoError(t, err)
	assert.Equal(t, found, again)

	_, err = repo.FindActiveForUser(context.Background(), users[1], testToday)
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}

func TestBookingRepository_Cancel(t *testing.T) {
	store := newTestStore(t)
	users := seedFixtures(t, store, 1, 2)
	repo := NewBookingRepository(store, zerolog.Nop())

	booking, err := repo.Reserve(context.Background(), reserveInput(t, users[0], "2024-01-10", "2024-01-13"))
	require.NoError(t, err)

	t.Run("foreign booking reported as not found", func(t *testing.T) {
		err := repo.Cancel(context.Background(), booking.ID, users[1])
		assert.ErrorIs(t, err, domain.ErrBookingNotFound)

		// The owner's booking is untouched.
		_, err = repo.FindActiveForUser(context.Background(), users[0], testToday)
		assert.NoError(t, err)
	})

	t.Run("owner cancels and frees the room", func(t *testing.T) {
		require.NoError(t, repo.Cancel(context.Background(), booking.ID, users[0]))

		_, err := repo.FindActiveForUser(context.Background(), users[0], testToday)
		assert.ErrorIs(t, err, domain.ErrBookingNotFound)

		// The room is immediately reservable again.
		_, err = repo.Reserve(context.Background(), reserveInput(t, users[1], "2024-01-10", "2024-01-13"))
		assert.NoError(t, err)
	})

	t.Run("unknown id", func(t *testing.T) {
		err := repo.Cancel(context.Background(), "no-such-booking", users[0])
		assert.ErrorIs(t, err, domain.ErrBookingNotFound)
	})
}

func TestBookingRepository_HasActiveBooking(t *testing.T) {
	store := newTestStore(t)
	users := seedFixtures(t, store, 1, 1)
	repo := NewBookingRepository(store, zerolog.Nop())

	active, err := repo.HasActiveBooking(context.Background(), users[0], testToday)
	require.NoError(t, err)
	assert.False(t, active)

	_, err = repo.Reserve(context.Background(), reserveInput(t, users[0], "2024-01-10", "2024-01-13"))
	require.NoError(t, err)

	active, err = repo.HasActiveBooking(context.Background(), users[0], testToday)
	require.NoError(t, err)
	assert.True(t, active)

	// A stay that ended before today does not count.
	after := testToday.AddDate(0, 0, 10)
	active, err = repo.HasActiveBooking(context.Background(), users[0], after)
	require.NoError(t, err)
	assert.False(t, active)
}
