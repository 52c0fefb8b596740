package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/starfleet-go/internal/application/common"
	"github.com/andrescamacho/starfleet-go/internal/domain/user"
)

// LogoutCommand ends a session
type LogoutCommand struct {
	SessionID string
}

// LogoutResponse is empty
type LogoutResponse struct{}

// LogoutHandler handles the Logout command
type LogoutHandler struct {
	sessionRepo user.SessionRepository
}

// NewLogoutHandler creates a new LogoutHandler
func NewLogoutHandler(sessionRepo user.SessionRepository) *LogoutHandler {
	return &LogoutHandler{sessionRepo: sessionRepo}
}

// Handle executes the Logout command. Logging out without a session is a no-op.
func (h *LogoutHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*LogoutCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *LogoutCommand")
	}

	if cmd.SessionID != "" {
		if err := h.sessionRepo.Delete(ctx, cmd.SessionID); err != nil {
			return nil, fmt.Errorf("failed to delete session: %w", err)
		}
	}

	return &LogoutResponse{}, nil
}
