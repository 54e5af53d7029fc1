package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("user not found")

// AuthToken is a single-use verification or password-reset token.
type AuthToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Token     string
	Purpose   string
	ExpiresAt time.Time
}

const (
	TokenPurposeVerifyEmail   = "verify_email"
	TokenPurposeResetPassword = "reset_password"
)

type Repository interface {
	CreateUser(ctx context.Context, u User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	MarkEmailVerified(ctx context.Context, id uuid.UUID) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error

	CreateAuthToken(ctx context.Context, t AuthToken) error
	ConsumeAuthToken(ctx context.Context, token, purpose string) (AuthToken, error)
}
