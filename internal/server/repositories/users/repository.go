package users

import (
	"context"

	"authd/internal/server/models"
)

// Repository persists user accounts. Identity uniqueness (login, email,
// phone) is ultimately enforced by the storage layer; FindByIdentity is a
// fast-path pre-check only.
type Repository interface {
	// FindByIdentity returns the account matching any of login, email or
	// phone, or common.ErrorNotFound when none exists.
	FindByIdentity(ctx context.Context, login, email, phone string) (*models.User, error)

	// Create inserts a new account and returns it with the assigned ID.
	// A storage-level unique violation maps to common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetCredentialsByLogin returns the password hash and session counters
	// for login, or common.ErrorNotFound.
	GetCredentialsByLogin(ctx context.Context, login string) (*models.Credentials, error)

	// IncrementUpdateToken atomically bumps the per-sign-in counter and
	// returns the new value. Concurrent calls for the same account each
	// observe a distinct, strictly increasing value.
	IncrementUpdateToken(ctx context.Context, login string) (int64, error)

	// IncrementTokenNumber atomically bumps the all-sessions counter and
	// returns the new value, invalidating every outstanding token.
	IncrementTokenNumber(ctx context.Context, login string) (int64, error)
}
