package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hbsystem/booking-api/internal/core/domain"
)

func testUser() *domain.User {
	return &domain.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$fakehash",
		FullName:     "Alice Doe",
		DateOfBirth:  "1990-04-01",
		Phone:        "+1-555-0100",
	}
}

func TestUserRepository_Create(t *testing.T) {
	repo := NewUserRepository(newTestStore(t))

	created, err := repo.Create(context.Background(), testUser())
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestUserRepository_Create_Duplicates(t *testing.T) {
	repo := NewUserRepository(newTestStore(t))

	_, err := repo.Create(context.Background(), testUser())
	require.NoError(t, err)

	t.Run("same username", func(t *testing.T) {
		dup := testUser()
		dup.Email = "other@example.com"
		_, err := repo.Create(context.Background(), dup)
		assert.ErrorIs(t, err, domain.ErrUserExists)
	})

	t.Run("same email", func(t *testing.T) {
		dup := testUser()
		dup.Username = "alice2"
		_, err := repo.Create(context.Background(), dup)
		assert.ErrorIs(t, err, domain.ErrUserExists)
	})
}

func TestUserRepository_FindByLogin(t *testing.T) {
	repo := NewUserRepository(newTestStore(t))

	created, err := repo.Create(context.Background(), testUser())
	require.NoError(t, err)

	byUsername, err := repo.FindByLogin(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byUsername.ID)
	assert.Equal(t, "$2a$10$fakehash", byUsername.PasswordHash)

	byEmail, err := repo.FindByLogin(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	_, err = repo.FindByLogin(context.Background(), "mallory")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepository_FindByID(t *testing.T) {
	repo := NewUserRepository(newTestStore(t))

	created, err := repo.Create(context.Background(), testUser())
	require.NoError(t, err)

	found, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", found.Username)

	_, err = repo.FindByID(context.Background(), created.ID+1)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
