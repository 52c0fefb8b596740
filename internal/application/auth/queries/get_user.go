package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/starfleet-go/internal/application/common"
	"github.com/andrescamacho/starfleet-go/internal/domain/user"
)

// GetUserQuery looks a user up by ID or email
type GetUserQuery struct {
	UserID string // Optional: get by user ID
	Email  string // Optional: get by email
}

// GetUserResponse carries the user
type GetUserResponse struct {
	User *user.User
}

// GetUserHandler handles the GetUser query
type GetUserHandler struct {
	userRepo user.UserRepository
	resolver *common.OwnerResolver
}

// NewGetUserHandler creates a new GetUserHandler
func NewGetUserHandler(userRepo user.UserRepository) *GetUserHandler {
	return &GetUserHandler{
		userRepo: userRepo,
		resolver: common.NewOwnerResolver(userRepo),
	}
}

// Handle executes the GetUser query
func (h *GetUserHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetUserQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetUserQuery")
	}

	userID, err := h.resolver.ResolveOwnerID(ctx, query.UserID, user.NormalizeEmail(query.Email))
	if err != nil {
		return nil, err
	}

	u, err := h.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return &GetUserResponse{User: u}, nil
}
