package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/starfleet-go/internal/adapters/persistence"
	"github.com/andrescamacho/starfleet-go/internal/domain/shared"
	"github.com/andrescamacho/starfleet-go/internal/domain/ship"
	"github.com/andrescamacho/starfleet-go/internal/domain/user"
	"github.com/andrescamacho/starfleet-go/test/helpers"
)

func addUser(t *testing.T, repo *persistence.GormUserRepository, email string) *user.User {
	t.Helper()
	u := user.NewUser(email, "hash", nil)
	require.NoError(t, repo.Add(context.Background(), u))
	return u
}

func TestShipRepository_OwnerScoping(t *testing.T) {
	// Arrange
	ctx := context.Background()
	db := helpers.NewTestDB(t)
	users := persistence.NewGormUserRepository(db)
	repo := persistence.NewGormShipRepository(db)
	alice := addUser(t, users, "alice@example.com")
	bob := addUser(t, users, "bob@example.com")

	s, err := ship.NewShip("PhazBar", alice.ID, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Add(ctx, s))

	// Act & Assert - owner sees it
	found, err := repo.FindByID(ctx, s.ID(), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "PhazBar", found.Name())
	assert.True(t, found.IsOwnedBy(alice.ID))

	// Act & Assert - someone else does not
	_, err = repo.FindByID(ctx, s.ID(), bob.ID)
	assert.True(t, shared.IsNotFound(err))

	bobShips, err := repo.ListByOwner(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, bobShips)

	// Act & Assert - cross-owner delete is a no-op
	count, err := repo.Delete(ctx, s.ID(), bob.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	count, err = repo.Delete(ctx, s.ID(), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	_, err = repo.FindByID(ctx, s.ID(), alice.ID)
	assert.True(t, shared.IsNotFound(err))
}

func TestShipRepository_ListNewestFirst(t *testing.T) {
	// Arrange
	ctx := context.Background()
	db := helpers.NewTestDB(t)
	users := persistence.NewGormUserRepository(db)
	repo := persistence.NewGormShipRepository(db)
	owner := addUser(t, users, "owner@example.com")
	clock := shared.NewMockClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	for _, name := range []string{"First", "Second", "Third"} {
		s, err := ship.NewShip(name, owner.ID, clock)
		require.NoError(t, err)
		require.NoError(t, repo.Add(ctx, s))
		clock.Advance(time.Minute)
	}

	// Act
	ships, err := repo.ListByOwner(ctx, owner.ID)

	// Assert
	require.NoError(t, err)
	require.Len(t, ships, 3)
	assert.Equal(t, "Third", ships[0].Name())
	assert.Equal(t, "Second", ships[1].Name())
	assert.Equal(t, "First", ships[2].Name())
}
