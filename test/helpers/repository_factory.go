package helpers

import (
	"time"

	"gorm.io/gorm"

	"github.com/andrescamacho/starfleet-go/internal/adapters/persistence"
	"github.com/andrescamacho/starfleet-go/internal/application/common"
	"github.com/andrescamacho/starfleet-go/internal/application/setup"
	"github.com/andrescamacho/starfleet-go/internal/domain/shared"
	"github.com/andrescamacho/starfleet-go/internal/domain/ship"
	"github.com/andrescamacho/starfleet-go/internal/domain/user"
)

// TestRepositories holds all real repository instances for integration tests
type TestRepositories struct {
	DB          *gorm.DB
	ShipRepo    ship.ShipRepository
	UserRepo    user.UserRepository
	SessionRepo user.SessionRepository
}

// NewTestRepositories creates all real repository instances using the shared test DB
func NewTestRepositories() *TestRepositories {
	db := SharedTestDB

	return &TestRepositories{
		DB:          db,
		ShipRepo:    persistence.NewGormShipRepository(db),
		UserRepo:    persistence.NewGormUserRepository(db),
		SessionRepo: persistence.NewGormSessionRepository(db),
	}
}

// NewMediator wires every handler against the repositories.
// clock is usually a MockClock so session expiry and timestamps are deterministic.
func (r *TestRepositories) NewMediator(clock shared.Clock) (common.Mediator, error) {
	registry := setup.NewHandlerRegistry(r.ShipRepo, r.UserRepo, r.SessionRepo, PlainPasswordHasher{}, time.Hour, clock)
	return registry.CreateConfiguredMediator()
}
