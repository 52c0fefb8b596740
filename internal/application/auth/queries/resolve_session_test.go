package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/starfleet-go/internal/application/auth/queries"
	"github.com/andrescamacho/starfleet-go/internal/domain/shared"
	"github.com/andrescamacho/starfleet-go/internal/domain/user"
	"github.com/andrescamacho/starfleet-go/test/helpers"
)

func TestResolveSession(t *testing.T) {
	clock := shared.NewMockClock(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	users := helpers.NewMockUserRepository()
	sessions := helpers.NewMockSessionRepository()
	handler := queries.NewResolveSessionHandler(sessions, users, clock)

	u := user.NewUser("pilot@example.com", "hash", clock)
	users.AddUser(u)
	session := user.NewSession(u.ID, time.Hour, clock)
	require.NoError(t, sessions.Add(context.Background(), session))

	t.Run("valid session resolves user", func(t *testing.T) {
		resp, err := handler.Handle(context.Background(), &queries.ResolveSessionQuery{SessionID: session.ID})

		require.NoError(t, err)
		assert.Equal(t, u.ID, resp.(*queries.ResolveSessionResponse).User.ID)
	})

	t.Run("missing session is unauthenticated", func(t *testing.T) {
		_, err := handler.Handle(context.Background(), &queries.ResolveSessionQuery{})

		assert.True(t, shared.IsUnauthenticated(err))
	})

	t.Run("unknown session is unauthenticated", func(t *testing.T) {
		_, err := handler.Handle(context.Background(), &queries.ResolveSessionQuery{SessionID: "bogus"})

		assert.True(t, shared.IsUnauthenticated(err))
	})

	t.Run("expired session is unauthenticated and removed", func(t *testing.T) {
		clock.Advance(time.Hour)

		_, err := handler.Handle(context.Background(), &queries.ResolveSessionQuery{SessionID: session.ID})

		assert.True(t, shared.IsUnauthenticated(err))
		assert.False(t, sessions.Has(session.ID))
	})
}

func TestGetUser_ByEmail(t *testing.T) {
	users := helpers.NewMockUserRepository()
	u := user.NewUser("pilot@example.com", "hash", nil)
	users.AddUser(u)
	handler := queries.NewGetUserHandler(users)

	resp, err := handler.Handle(context.Background(), &queries.GetUserQuery{Email: "Pilot@Example.com"})

	require.NoError(t, err)
	assert.Equal(t, u.ID, resp.(*queries.GetUserResponse).User.ID)
}
