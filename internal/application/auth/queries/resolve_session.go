package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/starfleet-go/internal/application/common"
	"github.com/andrescamacho/starfleet-go/internal/domain/shared"
	"github.com/andrescamacho/starfleet-go/internal/domain/user"
)

// ResolveSessionQuery maps a session cookie value to its user
type ResolveSessionQuery struct {
	SessionID string
}

// ResolveSessionResponse carries the signed-in user
type ResolveSessionResponse struct {
	User *user.User
}

// ResolveSessionHandler handles the ResolveSession query
type ResolveSessionHandler struct {
	sessionRepo user.SessionRepository
	userRepo    user.UserRepository
	clock       shared.Clock
}

// NewResolveSessionHandler creates a new ResolveSessionHandler
func NewResolveSessionHandler(sessionRepo user.SessionRepository, userRepo user.UserRepository, clock shared.Clock) *ResolveSessionHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &ResolveSessionHandler{
		sessionRepo: sessionRepo,
		userRepo:    userRepo,
		clock:       clock,
	}
}

// Handle executes the ResolveSession query. Missing, unknown and expired
// sessions all yield an UnauthenticatedError.
func (h *ResolveSessionHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*ResolveSessionQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ResolveSessionQuery")
	}

	if query.SessionID == "" {
		return nil, shared.NewUnauthenticatedError("no session")
	}

	session, err := h.sessionRepo.FindByID(ctx, query.SessionID)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.NewUnauthenticatedError("unknown session")
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}

	if session.IsExpired(h.clock.Now()) {
		if err := h.sessionRepo.Delete(ctx, session.ID); err != nil {
			return nil, fmt.Errorf("failed to delete expired session: %w", err)
		}
		return nil, shared.NewUnauthenticatedError("session expired")
	}

	u, err := h.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.NewUnauthenticatedError("session user no longer exists")
		}
		return nil, fmt.Errorf("failed to find session user: %w", err)
	}

	return &ResolveSessionResponse{User: u}, nil
}
