package commands

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/andrescamacho/starfleet-go/internal/application/common"
	"github.com/andrescamacho/starfleet-go/internal/domain/shared"
	"github.com/andrescamacho/starfleet-go/internal/domain/ship"
)

// CreateShipCommand creates a ship owned by OwnerID
type CreateShipCommand struct {
	OwnerID shared.UserID
	Name    string `validate:"required,max=100"`
}

// CreateShipResponse carries the created ship
type CreateShipResponse struct {
	Ship *ship.Ship
}

// CreateShipHandler handles the CreateShip command
type CreateShipHandler struct {
	shipRepo ship.ShipRepository
	clock    shared.Clock
}

// NewCreateShipHandler creates a new CreateShipHandler
func NewCreateShipHandler(shipRepo ship.ShipRepository, clock shared.Clock) *CreateShipHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &CreateShipHandler{
		shipRepo: shipRepo,
		clock:    clock,
	}
}

// Handle executes the CreateShip command. Invalid names never reach the repository.
func (h *CreateShipHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*CreateShipCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *CreateShipCommand")
	}

	cmd.Name = strings.TrimSpace(cmd.Name)
	if err := common.ValidateRequest(cmd); err != nil {
		return nil, err
	}

	s, err := ship.NewShip(cmd.Name, cmd.OwnerID, h.clock)
	if err != nil {
		return nil, err
	}

	if err := h.shipRepo.Add(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to save ship: %w", err)
	}

	common.LoggerFromContext(ctx).Info("ship created",
		zap.String("ship_id", s.ID()),
		zap.String("owner_id", s.OwnerID().String()))

	return &CreateShipResponse{Ship: s}, nil
}
