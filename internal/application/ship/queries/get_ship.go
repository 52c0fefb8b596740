package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/starfleet-go/internal/application/common"
	"github.com/andrescamacho/starfleet-go/internal/domain/shared"
	"github.com/andrescamacho/starfleet-go/internal/domain/ship"
)

// GetShipQuery fetches one ship owned by OwnerID
type GetShipQuery struct {
	OwnerID shared.UserID
	ShipID  string
}

// GetShipResponse carries the ship
type GetShipResponse struct {
	Ship *ship.Ship
}

// GetShipHandler handles the GetShip query
type GetShipHandler struct {
	shipRepo ship.ShipRepository
}

// NewGetShipHandler creates a new GetShipHandler
func NewGetShipHandler(shipRepo ship.ShipRepository) *GetShipHandler {
	return &GetShipHandler{shipRepo: shipRepo}
}

// Handle executes the GetShip query
func (h *GetShipHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetShipQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetShipQuery")
	}

	if query.ShipID == "" {
		return nil, shared.NewNotFoundError("ship", query.ShipID)
	}

	s, err := h.shipRepo.FindByID(ctx, query.ShipID, query.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find ship: %w", err)
	}

	// Repositories already scope by owner; this guards against one that doesn't.
	if !s.IsOwnedBy(query.OwnerID) {
		return nil, shared.NewNotFoundError("ship", query.ShipID)
	}

	return &GetShipResponse{Ship: s}, nil
}
