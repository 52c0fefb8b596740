package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/starfleet-go/internal/adapters/persistence"
	"github.com/andrescamacho/starfleet-go/internal/domain/shared"
	"github.com/andrescamacho/starfleet-go/internal/domain/user"
	"github.com/andrescamacho/starfleet-go/test/helpers"
)

func TestSessionRepository_DeleteExpired(t *testing.T) {
	// Arrange
	ctx := context.Background()
	db := helpers.NewTestDB(t)
	users := persistence.NewGormUserRepository(db)
	repo := persistence.NewGormSessionRepository(db)
	clock := shared.NewMockClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	u := addUser(t, users, "pilot@example.com")

	short := user.NewSession(u.ID, time.Hour, clock)
	long := user.NewSession(u.ID, 48*time.Hour, clock)
	require.NoError(t, repo.Add(ctx, short))
	require.NoError(t, repo.Add(ctx, long))

	// Act
	removed, err := repo.DeleteExpired(ctx, clock.Now().Add(2*time.Hour))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
	_, err = repo.FindByID(ctx, short.ID)
	assert.True(t, shared.IsNotFound(err))
	found, err := repo.FindByID(ctx, long.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.UserID)
	assert.True(t, found.ExpiresAt.Equal(long.ExpiresAt))
}

func TestCachedSessionRepository_ServesRepeatLookupsFromCache(t *testing.T) {
	// Arrange
	ctx := context.Background()
	backing := helpers.NewMockSessionRepository()
	repo, err := persistence.NewCachedSessionRepository(backing, 8)
	require.NoError(t, err)
	session := user.NewSession(shared.GenerateUserID(), time.Hour, nil)
	require.NoError(t, backing.Add(ctx, session))

	// Act
	for i := 0; i < 3; i++ {
		_, err := repo.FindByID(ctx, session.ID)
		require.NoError(t, err)
	}

	// Assert
	assert.Equal(t, 1, backing.FindCalls)
	assert.Equal(t, 1, repo.Len())
}

func TestCachedSessionRepository_DeleteEvicts(t *testing.T) {
	ctx := context.Background()
	backing := helpers.NewMockSessionRepository()
	repo, err := persistence.NewCachedSessionRepository(backing, 8)
	require.NoError(t, err)
	session := user.NewSession(shared.GenerateUserID(), time.Hour, nil)
	require.NoError(t, repo.Add(ctx, session))

	require.NoError(t, repo.Delete(ctx, session.ID))

	_, err = repo.FindByID(ctx, session.ID)
	assert.True(t, shared.IsNotFound(err))
	assert.Zero(t, repo.Len())
}

func TestCachedSessionRepository_DeleteExpiredPurgesCache(t *testing.T) {
	ctx := context.Background()
	clock := shared.NewMockClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	backing := helpers.NewMockSessionRepository()
	repo, err := persistence.NewCachedSessionRepository(backing, 8)
	require.NoError(t, err)
	require.NoError(t, repo.Add(ctx, user.NewSession(shared.GenerateUserID(), time.Minute, clock)))

	removed, err := repo.DeleteExpired(ctx, clock.Now().Add(time.Hour))

	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
	assert.Zero(t, repo.Len())
}
