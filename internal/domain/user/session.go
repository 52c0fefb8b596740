package user

import (
	"time"

	"github.com/google/uuid"

	"github.com/andrescamacho/starfleet-go/internal/domain/shared"
)

// Session binds an opaque cookie token to a user until it expires
type Session struct {
	ID        string
	UserID    shared.UserID
	CreatedAt time.Time
	ExpiresAt time.Time
}

// NewSession starts a session lasting ttl
func NewSession(userID shared.UserID, ttl time.Duration, clock shared.Clock) *Session {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	now := clock.Now()
	return &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// IsExpired reports whether the session is no longer valid at now
func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
