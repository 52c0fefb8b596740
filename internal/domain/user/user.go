package user

import (
	"strings"
	"time"

	"github.com/andrescamacho/starfleet-go/internal/domain/shared"
)

// MaxPasswordBytes is the longest password bcrypt accepts
const MaxPasswordBytes = 72

// User is an account that owns ships
type User struct {
	ID           shared.UserID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser creates a user with a fresh ID. Email is normalized to lower case.
func NewUser(email, passwordHash string, clock shared.Clock) *User {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	now := clock.Now()
	return &User{
		ID:           shared.GenerateUserID(),
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// NormalizeEmail trims and lower-cases an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
