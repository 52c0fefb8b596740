package common

import (
	"context"
	"fmt"

	"github.com/andrescamacho/starfleet-go/internal/domain/shared"
	"github.com/andrescamacho/starfleet-go/internal/domain/user"
)

// OwnerResolver resolves the owning user of a request from either a user ID or an email.
//
// Business rules:
//   - At least one of userID or email must be provided
//   - If both are provided, userID takes precedence
type OwnerResolver struct {
	userRepo user.UserRepository
}

// NewOwnerResolver creates a new owner resolver
func NewOwnerResolver(userRepo user.UserRepository) *OwnerResolver {
	return &OwnerResolver{
		userRepo: userRepo,
	}
}

// ResolveOwnerID resolves a user ID from either a UUID string or an email
func (r *OwnerResolver) ResolveOwnerID(ctx context.Context, userID, email string) (shared.UserID, error) {
	if userID == "" && email == "" {
		return shared.UserID{}, fmt.Errorf("either user_id or email must be provided")
	}

	if userID != "" {
		id, err := shared.NewUserID(userID)
		if err != nil {
			return shared.UserID{}, fmt.Errorf("invalid user ID: %w", err)
		}
		return id, nil
	}

	u, err := r.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return shared.UserID{}, fmt.Errorf("failed to resolve user by email: %w", err)
	}
	return u.ID, nil
}
