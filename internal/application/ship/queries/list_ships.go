package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/starfleet-go/internal/application/common"
	"github.com/andrescamacho/starfleet-go/internal/domain/shared"
	"github.com/andrescamacho/starfleet-go/internal/domain/ship"
)

// ListShipsQuery lists the ships owned by OwnerID
type ListShipsQuery struct {
	OwnerID shared.UserID
}

// ListShipsResponse carries the owner's ships, most recently updated first
type ListShipsResponse struct {
	Ships []*ship.Ship
}

// ListShipsHandler handles the ListShips query
type ListShipsHandler struct {
	shipRepo ship.ShipRepository
}

// NewListShipsHandler creates a new ListShipsHandler
func NewListShipsHandler(shipRepo ship.ShipRepository) *ListShipsHandler {
	return &ListShipsHandler{shipRepo: shipRepo}
}

// Handle executes the ListShips query
func (h *ListShipsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*ListShipsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListShipsQuery")
	}

	ships, err := h.shipRepo.ListByOwner(ctx, query.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ships: %w", err)
	}

	return &ListShipsResponse{Ships: ships}, nil
}
