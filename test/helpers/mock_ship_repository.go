package helpers

import (
	"context"
	"sort"
	"sync"

	"github.com/andrescamacho/starfleet-go/internal/domain/shared"
	"github.com/andrescamacho/starfleet-go/internal/domain/ship"
)

// MockShipRepository is an in-memory implementation of ShipRepository for testing.
// It records every call so tests can assert the repository was never reached.
type MockShipRepository struct {
	mu    sync.RWMutex
	ships map[string]*ship.Ship // key: ship id

	AddCalls    int
	DeleteCalls int
	FindCalls   int
	ListCalls   int

	// AddErr, when set, is returned by Add
	AddErr error
}

// NewMockShipRepository creates a new mock ship repository
func NewMockShipRepository() *MockShipRepository {
	return &MockShipRepository{
		ships: make(map[string]*ship.Ship),
	}
}

// AddShip seeds a ship without counting as a call
func (m *MockShipRepository) AddShip(s *ship.Ship) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ships[s.ID()] = s
}

// Count returns the number of stored ships across all owners
func (m *MockShipRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.ships)
}

// FindByID retrieves a ship owned by ownerID
func (m *MockShipRepository) FindByID(ctx context.Context, shipID string, ownerID shared.UserID) (*ship.Ship, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FindCalls++

	s, ok := m.ships[shipID]
	if !ok || !s.IsOwnedBy(ownerID) {
		return nil, shared.NewNotFoundError("ship", shipID)
	}
	return s, nil
}

// ListByOwner returns the owner's ships, most recently updated first
func (m *MockShipRepository) ListByOwner(ctx context.Context, ownerID shared.UserID) ([]*ship.Ship, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListCalls++

	ships := make([]*ship.Ship, 0)
	for _, s := range m.ships {
		if s.IsOwnedBy(ownerID) {
			ships = append(ships, s)
		}
	}
	sort.Slice(ships, func(i, j int) bool {
		return ships[i].UpdatedAt().After(ships[j].UpdatedAt())
	})
	return ships, nil
}

// Add stores a ship
func (m *MockShipRepository) Add(ctx context.Context, s *ship.Ship) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AddCalls++

	if m.AddErr != nil {
		return m.AddErr
	}
	m.ships[s.ID()] = s
	return nil
}

// Delete removes a ship owned by ownerID
func (m *MockShipRepository) Delete(ctx context.Context, shipID string, ownerID shared.UserID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls++

	s, ok := m.ships[shipID]
	if !ok || !s.IsOwnedBy(ownerID) {
		return 0, nil
	}
	delete(m.ships, shipID)
	return 1, nil
}
