package identity

import (
	"context"
	"time"
)

// Store describes persistence operations required by the identity subsystem.
type Store interface {
	CreateUser(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	// SetLoginState records the failed-login counter and optional lockout
	// deadline after a login attempt.
	SetLoginState(ctx context.Context, userID string, failed int, lockedUntil *time.Time) error

	Claims(ctx context.Context, userID string) ([]string, error)
	GrantClaim(ctx context.Context, userID, claim string) error

	Roles(ctx context.Context, userID string) ([]string, error)
	GrantRole(ctx context.Context, userID, role string) error
}
