package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/andrescamacho/starfleet-go/internal/application/common"
	"github.com/andrescamacho/starfleet-go/internal/domain/shared"
	"github.com/andrescamacho/starfleet-go/internal/domain/ship"
)

// DeleteShipCommand deletes a ship if it belongs to OwnerID
type DeleteShipCommand struct {
	OwnerID shared.UserID
	ShipID  string `validate:"required"`
}

// DeleteShipResponse reports how many ships were removed (0 or 1)
type DeleteShipResponse struct {
	Deleted int64
}

// DeleteShipHandler handles the DeleteShip command
type DeleteShipHandler struct {
	shipRepo ship.ShipRepository
}

// NewDeleteShipHandler creates a new DeleteShipHandler
func NewDeleteShipHandler(shipRepo ship.ShipRepository) *DeleteShipHandler {
	return &DeleteShipHandler{shipRepo: shipRepo}
}

// Handle executes the DeleteShip command. Deleting an absent or foreign ship
// is not an error; it simply removes nothing.
func (h *DeleteShipHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*DeleteShipCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *DeleteShipCommand")
	}

	if err := common.ValidateRequest(cmd); err != nil {
		return nil, err
	}

	deleted, err := h.shipRepo.Delete(ctx, cmd.ShipID, cmd.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete ship: %w", err)
	}

	common.LoggerFromContext(ctx).Info("ship deleted",
		zap.String("ship_id", cmd.ShipID),
		zap.Int64("deleted", deleted))

	return &DeleteShipResponse{Deleted: deleted}, nil
}
