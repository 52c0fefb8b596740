package grpc

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/starfleet-go/internal/domain/shared"
	"github.com/andrescamacho/starfleet-go/internal/domain/user"
	"github.com/andrescamacho/starfleet-go/test/helpers"
)

func TestSessionSweeperRemovesExpiredSessions(t *testing.T) {
	// Arrange
	clock := shared.NewMockClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	repo := helpers.NewMockSessionRepository()
	userID := shared.GenerateUserID()

	short := user.NewSession(userID, time.Minute, clock)
	long := user.NewSession(userID, 24*time.Hour, clock)
	require.NoError(t, repo.Add(context.Background(), short))
	require.NoError(t, repo.Add(context.Background(), long))

	sweeper := NewSessionSweeper(repo, clock, time.Hour, nil)
	clock.Advance(time.Hour)

	// Act
	removed := sweeper.Sweep(context.Background())

	// Assert
	assert.Equal(t, int64(1), removed)
	assert.False(t, repo.Has(short.ID))
	assert.True(t, repo.Has(long.ID))
}

func TestSessionSweeperRunsOnInterval(t *testing.T) {
	clock := shared.NewMockClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	repo := helpers.NewMockSessionRepository()
	sweeper := NewSessionSweeper(repo, clock, time.Hour, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sweeper.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return clock.PendingTimers() == 1 }, time.Second, time.Millisecond)

	session := user.NewSession(shared.GenerateUserID(), time.Minute, clock)
	require.NoError(t, repo.Add(context.Background(), session))

	clock.Advance(time.Hour)
	assert.Eventually(t, func() bool { return !repo.Has(session.ID) }, time.Second, time.Millisecond)

	cancel()
	<-done
	assert.Equal(t, 0, clock.PendingTimers())
}

func TestSessionSweeperDefaults(t *testing.T) {
	sweeper := NewSessionSweeper(helpers.NewMockSessionRepository(), nil, 0, nil)

	assert.Equal(t, DefaultSweepInterval, sweeper.interval)
}
