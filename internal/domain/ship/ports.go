package ship

import (
	"context"

	"github.com/andrescamacho/starfleet-go/internal/domain/shared"
)

// ShipRepository persists ships. Every method is scoped by owner and there is
// no unscoped accessor: a ship owned by someone else behaves as absent.
type ShipRepository interface {
	// FindByID returns a *shared.NotFoundError when the ship is absent or not owned by ownerID
	FindByID(ctx context.Context, shipID string, ownerID shared.UserID) (*Ship, error)
	// ListByOwner returns the owner's ships, most recently updated first
	ListByOwner(ctx context.Context, ownerID shared.UserID) ([]*Ship, error)
	Add(ctx context.Context, ship *Ship) error
	// Delete removes the ship if owned by ownerID and returns the number of rows removed
	Delete(ctx context.Context, shipID string, ownerID shared.UserID) (int64, error)
}
