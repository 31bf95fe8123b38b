package ports

import (
	"context"

	"github.com/hbsystem/booking-api/internal/core/domain"
)

// RegisterInput carries the fields required to create an account.
type RegisterInput struct {
	Username    string
	Password    string
	Email       string
	FullName    string
	DateOfBirth string
	Phone       string
}

// AuthService defines registration, login and profile lookup.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (string, *domain.User, error)
	// Login authenticates by username or email and returns a signed token.
	Login(ctx context.Context, login, password string) (string, *domain.User, error)
	Profile(ctx context.Context, userID int64) (*domain.User, error)
}
