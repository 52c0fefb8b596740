package user

import (
	"context"
	"time"

	"github.com/andrescamacho/starfleet-go/internal/domain/shared"
)

// UserRepository defines user persistence operations
type UserRepository interface {
	FindByID(ctx context.Context, userID shared.UserID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Add(ctx context.Context, user *User) error
	// DeleteByEmail removes the user together with their ships and sessions
	DeleteByEmail(ctx context.Context, email string) error
}

// SessionRepository defines session persistence operations
type SessionRepository interface {
	FindByID(ctx context.Context, sessionID string) (*Session, error)
	Add(ctx context.Context, session *Session) error
	Delete(ctx context.Context, sessionID string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// PasswordHasher hashes and verifies passwords
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare returns nil when password matches hash
	Compare(hash, password string) error
}
