package setup

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	authCommands "github.com/andrescamacho/starfleet-go/internal/application/auth/commands"
	"github.com/andrescamacho/starfleet-go/internal/application/common"
	shipCommands "github.com/andrescamacho/starfleet-go/internal/application/ship/commands"
	"github.com/andrescamacho/starfleet-go/internal/domain/ship"
	"github.com/andrescamacho/starfleet-go/internal/domain/user"
)

// Demo account created by Seed
const (
	SeedEmail    = "insaddingaround@gmail.com"
	SeedPassword = "Episode2"
)

// SeedShipNames are the ships given to the demo account
var SeedShipNames = []string{"Banjo Fett", "PhazBar"}

// SeedResult summarizes a Seed run
type SeedResult struct {
	User  *user.User
	Ships []*ship.Ship
}

// Seeder recreates the demo account from scratch
type Seeder struct {
	mediator common.Mediator
	userRepo user.UserRepository
}

// NewSeeder creates a seeder
func NewSeeder(mediator common.Mediator, userRepo user.UserRepository) *Seeder {
	return &Seeder{mediator: mediator, userRepo: userRepo}
}

// Seed deletes any existing demo user with their ships and sessions, then
// registers the user and creates the demo ships.
func (s *Seeder) Seed(ctx context.Context) (*SeedResult, error) {
	logger := common.LoggerFromContext(ctx)

	if err := s.userRepo.DeleteByEmail(ctx, SeedEmail); err != nil {
		return nil, fmt.Errorf("failed to clear existing seed user: %w", err)
	}

	resp, err := s.mediator.Send(ctx, &authCommands.RegisterUserCommand{
		Email:    SeedEmail,
		Password: SeedPassword,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register seed user: %w", err)
	}
	u := resp.(*authCommands.AuthResponse).User

	ships := make([]*ship.Ship, 0, len(SeedShipNames))
	for _, name := range SeedShipNames {
		created, err := common.SendTyped[*shipCommands.CreateShipResponse](ctx, s.mediator, &shipCommands.CreateShipCommand{OwnerID: u.ID, Name: name})
		if err != nil {
			return nil, fmt.Errorf("failed to create seed ship %q: %w", name, err)
		}
		ships = append(ships, created.Ship)
	}

	logger.Info("database seeded", zap.String("email", SeedEmail), zap.Int("ships", len(ships)))
	return &SeedResult{User: u, Ships: ships}, nil
}
