package ship

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/andrescamacho/starfleet-go/internal/domain/shared"
)

// MaxNameLength bounds ship names, in characters
const MaxNameLength = 100

// Ship is a named vessel owned by exactly one user
type Ship struct {
	id        string
	name      string
	ownerID   shared.UserID
	createdAt time.Time
	updatedAt time.Time
}

// NewShip creates a ship for an owner. The name is trimmed and must not be empty.
func NewShip(name string, ownerID shared.UserID, clock shared.Clock) (*Ship, error) {
	if clock == nil {
		clock = shared.NewRealClock()
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("name", "Name is required")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return nil, shared.NewValidationError("name", "Name is too long")
	}
	if ownerID.IsZero() {
		return nil, shared.NewValidationError("owner_id", "owner is required")
	}

	now := clock.Now()
	return &Ship{
		id:        uuid.NewString(),
		name:      name,
		ownerID:   ownerID,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstitute rebuilds a ship from storage
func Reconstitute(id, name string, ownerID shared.UserID, createdAt, updatedAt time.Time) *Ship {
	return &Ship{
		id:        id,
		name:      name,
		ownerID:   ownerID,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (s *Ship) ID() string             { return s.id }
func (s *Ship) Name() string           { return s.name }
func (s *Ship) OwnerID() shared.UserID { return s.ownerID }
func (s *Ship) CreatedAt() time.Time   { return s.createdAt }
func (s *Ship) UpdatedAt() time.Time   { return s.updatedAt }

// IsOwnedBy checks ownership
func (s *Ship) IsOwnedBy(userID shared.UserID) bool {
	return s.ownerID.Equals(userID)
}
