package user_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/starfleet-go/internal/domain/shared"
	"github.com/andrescamacho/starfleet-go/internal/domain/user"
)

func TestSession_Expiry(t *testing.T) {
	clock := shared.NewMockClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	s := user.NewSession(shared.GenerateUserID(), time.Hour, clock)

	assert.NotEmpty(t, s.ID)
	assert.False(t, s.IsExpired(clock.Now()))
	assert.False(t, s.IsExpired(clock.Now().Add(59*time.Minute)))
	assert.True(t, s.IsExpired(clock.Now().Add(time.Hour)))
}

func TestNewUser_NormalizesEmail(t *testing.T) {
	u := user.NewUser("  Pilot@Example.COM ", "hash", nil)

	assert.Equal(t, "pilot@example.com", u.Email)
	assert.False(t, u.ID.IsZero())
}
