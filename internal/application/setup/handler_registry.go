package setup

import (
	"reflect"
	"time"

	authCommands "github.com/andrescamacho/starfleet-go/internal/application/auth/commands"
	authQueries "github.com/andrescamacho/starfleet-go/internal/application/auth/queries"
	"github.com/andrescamacho/starfleet-go/internal/application/common"
	shipCommands "github.com/andrescamacho/starfleet-go/internal/application/ship/commands"
	shipQueries "github.com/andrescamacho/starfleet-go/internal/application/ship/queries"
	"github.com/andrescamacho/starfleet-go/internal/domain/shared"
	"github.com/andrescamacho/starfleet-go/internal/domain/ship"
	"github.com/andrescamacho/starfleet-go/internal/domain/user"
)

// HandlerRegistry holds all application dependencies for handler creation
type HandlerRegistry struct {
	shipRepo    ship.ShipRepository
	userRepo    user.UserRepository
	sessionRepo user.SessionRepository
	hasher      user.PasswordHasher
	sessionTTL  time.Duration
	clock       shared.Clock
}

// NewHandlerRegistry creates a new handler registry with required dependencies
func NewHandlerRegistry(
	shipRepo ship.ShipRepository,
	userRepo user.UserRepository,
	sessionRepo user.SessionRepository,
	hasher user.PasswordHasher,
	sessionTTL time.Duration,
	clock shared.Clock,
) *HandlerRegistry {
	// Default to real clock if not provided
	if clock == nil {
		clock = shared.NewRealClock()
	}

	return &HandlerRegistry{
		shipRepo:    shipRepo,
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		hasher:      hasher,
		sessionTTL:  sessionTTL,
		clock:       clock,
	}
}

// RegisterShipHandlers registers ship command and query handlers with the mediator
//
// This method registers:
//   - CreateShipCommand → CreateShipHandler
//   - DeleteShipCommand → DeleteShipHandler
//   - GetShipQuery → GetShipHandler
//   - ListShipsQuery → ListShipsHandler
func (r *HandlerRegistry) RegisterShipHandlers(m common.Mediator) error {
	handlers := map[reflect.Type]common.RequestHandler{
		reflect.TypeOf(&shipCommands.CreateShipCommand{}): shipCommands.NewCreateShipHandler(r.shipRepo, r.clock),
		reflect.TypeOf(&shipCommands.DeleteShipCommand{}): shipCommands.NewDeleteShipHandler(r.shipRepo),
		reflect.TypeOf(&shipQueries.GetShipQuery{}):       shipQueries.NewGetShipHandler(r.shipRepo),
		reflect.TypeOf(&shipQueries.ListShipsQuery{}):     shipQueries.NewListShipsHandler(r.shipRepo),
	}
	return registerAll(m, handlers)
}

// RegisterAuthHandlers registers authentication handlers with the mediator
//
// This method registers:
//   - RegisterUserCommand → RegisterUserHandler
//   - LoginCommand → LoginHandler
//   - LogoutCommand → LogoutHandler
//   - ResolveSessionQuery → ResolveSessionHandler
//   - GetUserQuery → GetUserHandler
func (r *HandlerRegistry) RegisterAuthHandlers(m common.Mediator) error {
	handlers := map[reflect.Type]common.RequestHandler{
		reflect.TypeOf(&authCommands.RegisterUserCommand{}): authCommands.NewRegisterUserHandler(
			r.userRepo, r.sessionRepo, r.hasher, r.sessionTTL, r.clock),
		reflect.TypeOf(&authCommands.LoginCommand{}): authCommands.NewLoginHandler(
			r.userRepo, r.sessionRepo, r.hasher, r.sessionTTL, r.clock),
		reflect.TypeOf(&authCommands.LogoutCommand{}):      authCommands.NewLogoutHandler(r.sessionRepo),
		reflect.TypeOf(&authQueries.ResolveSessionQuery{}): authQueries.NewResolveSessionHandler(r.sessionRepo, r.userRepo, r.clock),
		reflect.TypeOf(&authQueries.GetUserQuery{}):        authQueries.NewGetUserHandler(r.userRepo),
	}
	return registerAll(m, handlers)
}

// CreateConfiguredMediator creates a new mediator with every handler registered
// and the given middlewares installed, outermost first.
func (r *HandlerRegistry) CreateConfiguredMediator(middlewares ...common.Middleware) (common.Mediator, error) {
	m := common.NewMediator()

	for _, mw := range middlewares {
		m.RegisterMiddleware(mw)
	}

	if err := r.RegisterShipHandlers(m); err != nil {
		return nil, err
	}
	if err := r.RegisterAuthHandlers(m); err != nil {
		return nil, err
	}

	return m, nil
}

func registerAll(m common.Mediator, handlers map[reflect.Type]common.RequestHandler) error {
	for t, h := range handlers {
		if err := m.Register(t, h); err != nil {
			return err
		}
	}
	return nil
}
