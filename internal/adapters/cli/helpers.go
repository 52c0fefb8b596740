package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"gorm.io/gorm"

	daemongrpc "github.com/andrescamacho/starfleet-go/internal/adapters/grpc"
	"github.com/andrescamacho/starfleet-go/internal/adapters/persistence"
	"github.com/andrescamacho/starfleet-go/internal/adapters/security"
	"github.com/andrescamacho/starfleet-go/internal/application/common"
	"github.com/andrescamacho/starfleet-go/internal/application/setup"
	"github.com/andrescamacho/starfleet-go/internal/infrastructure/config"
	"github.com/andrescamacho/starfleet-go/internal/infrastructure/database"
)

// loadConfig loads configuration honoring the --config flag
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// resolveUserEmail resolves the acting account from flags or defaults.
// Priority: --email flag > SF_USER_EMAIL > user config default
func resolveUserEmail() (string, error) {
	if userEmail != "" {
		return userEmail, nil
	}
	if email := os.Getenv("SF_USER_EMAIL"); email != "" {
		return email, nil
	}

	userConfigHandler, err := config.NewUserConfigHandler()
	if err != nil {
		return "", fmt.Errorf("no user specified and failed to load user config: %w", err)
	}
	userCfg, err := userConfigHandler.Load()
	if err != nil {
		return "", fmt.Errorf("no user specified and failed to load user config: %w", err)
	}
	if userCfg.DefaultEmail != "" {
		return userCfg.DefaultEmail, nil
	}

	return "", fmt.Errorf("no user specified: use --email, or set a default with 'starfleet config set-user'")
}

// daemonSession bundles a connected daemon client with the acting user
type daemonSession struct {
	client  *daemongrpc.DaemonClient
	email   string
	timeout time.Duration
}

func openDaemonSession() (*daemonSession, error) {
	email, err := resolveUserEmail()
	if err != nil {
		return nil, err
	}

	cfg := config.LoadConfigOrDefault(configPath)
	path := socketPath
	if path == "" {
		path = cfg.Daemon.SocketPath
	}

	client, err := daemongrpc.NewDaemonClient(path)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w", err)
	}
	return &daemonSession{client: client, email: email, timeout: cfg.Daemon.RequestTimeout}, nil
}

func (s *daemonSession) Close() error {
	return s.client.Close()
}

// requestContext bounds a single unary call
func (s *daemonSession) requestContext(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, s.timeout)
}

// openDatabase connects and migrates the configured database
func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		database.Close(db)
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}

// localApplication wires the mediator straight onto the database for
// commands that run without a server
type localApplication struct {
	mediator common.Mediator
	userRepo *persistence.GormUserRepository
}

func newLocalApplication(db *gorm.DB, cfg *config.Config) (*localApplication, error) {
	userRepo := persistence.NewGormUserRepository(db)
	registry := setup.NewHandlerRegistry(
		persistence.NewGormShipRepository(db),
		userRepo,
		persistence.NewGormSessionRepository(db),
		security.NewBcryptHasher(cfg.Auth.BcryptCost),
		cfg.Auth.SessionTTL,
		nil,
	)
	mediator, err := registry.CreateConfiguredMediator(common.LoggingMiddleware())
	if err != nil {
		return nil, fmt.Errorf("failed to configure mediator: %w", err)
	}
	return &localApplication{mediator: mediator, userRepo: userRepo}, nil
}
