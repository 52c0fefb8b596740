package commands

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/andrescamacho/starfleet-go/internal/application/common"
	"github.com/andrescamacho/starfleet-go/internal/domain/shared"
	"github.com/andrescamacho/starfleet-go/internal/domain/user"
)

// RegisterUserCommand signs up a new user and starts a session
type RegisterUserCommand struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

// AuthResponse carries the signed-in user and their new session
type AuthResponse struct {
	User    *user.User
	Session *user.Session
}

// RegisterUserHandler handles the RegisterUser command
type RegisterUserHandler struct {
	userRepo    user.UserRepository
	sessionRepo user.SessionRepository
	hasher      user.PasswordHasher
	sessionTTL  time.Duration
	clock       shared.Clock
}

// NewRegisterUserHandler creates a new RegisterUserHandler
func NewRegisterUserHandler(
	userRepo user.UserRepository,
	sessionRepo user.SessionRepository,
	hasher user.PasswordHasher,
	sessionTTL time.Duration,
	clock shared.Clock,
) *RegisterUserHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &RegisterUserHandler{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		hasher:      hasher,
		sessionTTL:  sessionTTL,
		clock:       clock,
	}
}

// Handle executes the RegisterUser command
func (h *RegisterUserHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*RegisterUserCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RegisterUserCommand")
	}

	cmd.Email = user.NormalizeEmail(cmd.Email)
	if err := common.ValidateRequest(cmd); err != nil {
		return nil, err
	}
	if len(cmd.Password) > user.MaxPasswordBytes {
		return nil, shared.NewValidationError("password", "Password is too long")
	}

	existing, err := h.userRepo.FindByEmail(ctx, cmd.Email)
	if err != nil && !shared.IsNotFound(err) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, shared.NewValidationError("email", "A user already exists with this email")
	}

	hash, err := h.hasher.Hash(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := user.NewUser(cmd.Email, hash, h.clock)
	if err := h.userRepo.Add(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	session := user.NewSession(u.ID, h.sessionTTL, h.clock)
	if err := h.sessionRepo.Add(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	common.LoggerFromContext(ctx).Info("user registered", zap.String("user_id", u.ID.String()))

	return &AuthResponse{User: u, Session: session}, nil
}
