package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/starfleet-go/internal/application/common"
	"github.com/andrescamacho/starfleet-go/internal/domain/shared"
	"github.com/andrescamacho/starfleet-go/internal/domain/user"
)

// LoginCommand verifies credentials and starts a session
type LoginCommand struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// LoginHandler handles the Login command
type LoginHandler struct {
	userRepo    user.UserRepository
	sessionRepo user.SessionRepository
	hasher      user.PasswordHasher
	sessionTTL  time.Duration
	clock       shared.Clock
}

// NewLoginHandler creates a new LoginHandler
func NewLoginHandler(
	userRepo user.UserRepository,
	sessionRepo user.SessionRepository,
	hasher user.PasswordHasher,
	sessionTTL time.Duration,
	clock shared.Clock,
) *LoginHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &LoginHandler{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		hasher:      hasher,
		sessionTTL:  sessionTTL,
		clock:       clock,
	}
}

// Handle executes the Login command. Unknown email and wrong password yield the same error.
func (h *LoginHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*LoginCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *LoginCommand")
	}

	cmd.Email = user.NormalizeEmail(cmd.Email)
	if err := common.ValidateRequest(cmd); err != nil {
		return nil, err
	}

	invalid := shared.NewValidationError("email", "Invalid email or password")

	u, err := h.userRepo.FindByEmail(ctx, cmd.Email)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, invalid
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := h.hasher.Compare(u.PasswordHash, cmd.Password); err != nil {
		return nil, invalid
	}

	session := user.NewSession(u.ID, h.sessionTTL, h.clock)
	if err := h.sessionRepo.Add(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	return &AuthResponse{User: u, Session: session}, nil
}
