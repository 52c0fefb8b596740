package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/starfleet-go/internal/domain/shared"
	"github.com/andrescamacho/starfleet-go/internal/domain/ship"
)

// GormShipRepository implements ShipRepository using GORM.
// Every query filters on owner_id.
type GormShipRepository struct {
	db *gorm.DB
}

// NewGormShipRepository creates a new GORM ship repository
func NewGormShipRepository(db *gorm.DB) *GormShipRepository {
	return &GormShipRepository{db: db}
}

// FindByID retrieves a ship by id and owner
func (r *GormShipRepository) FindByID(ctx context.Context, shipID string, ownerID shared.UserID) (*ship.Ship, error) {
	var model ShipModel
	result := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", shipID, ownerID.Value()).
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("ship", shipID)
		}
		return nil, fmt.Errorf("failed to find ship: %w", result.Error)
	}

	return modelToShip(&model)
}

// ListByOwner retrieves the owner's ships, most recently updated first
func (r *GormShipRepository) ListByOwner(ctx context.Context, ownerID shared.UserID) ([]*ship.Ship, error) {
	var models []ShipModel
	result := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID.Value()).
		Order("updated_at DESC").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list ships: %w", result.Error)
	}

	ships := make([]*ship.Ship, 0, len(models))
	for i := range models {
		s, err := modelToShip(&models[i])
		if err != nil {
			return nil, err
		}
		ships = append(ships, s)
	}

	return ships, nil
}

// Add persists a new ship
func (r *GormShipRepository) Add(ctx context.Context, s *ship.Ship) error {
	model := &ShipModel{
		ID:        s.ID(),
		Name:      s.Name(),
		OwnerID:   s.OwnerID().Value(),
		CreatedAt: s.CreatedAt(),
		UpdatedAt: s.UpdatedAt(),
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to add ship: %w", err)
	}
	return nil
}

// Delete removes the ship if owned by ownerID and returns the rows removed
func (r *GormShipRepository) Delete(ctx context.Context, shipID string, ownerID shared.UserID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", shipID, ownerID.Value()).
		Delete(&ShipModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete ship: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func modelToShip(model *ShipModel) (*ship.Ship, error) {
	ownerID, err := shared.NewUserID(model.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("invalid owner ID in database: %w", err)
	}
	return ship.Reconstitute(model.ID, model.Name, ownerID, model.CreatedAt, model.UpdatedAt), nil
}
