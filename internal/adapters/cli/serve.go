package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/andrescamacho/starfleet-go/internal/adapters/catalog"
	daemongrpc "github.com/andrescamacho/starfleet-go/internal/adapters/grpc"
	"github.com/andrescamacho/starfleet-go/internal/adapters/metrics"
	"github.com/andrescamacho/starfleet-go/internal/adapters/persistence"
	"github.com/andrescamacho/starfleet-go/internal/adapters/security"
	"github.com/andrescamacho/starfleet-go/internal/adapters/web"
	"github.com/andrescamacho/starfleet-go/internal/application/common"
	"github.com/andrescamacho/starfleet-go/internal/application/setup"
	appstarfield "github.com/andrescamacho/starfleet-go/internal/application/starfield"
	"github.com/andrescamacho/starfleet-go/internal/domain/shared"
	"github.com/andrescamacho/starfleet-go/internal/domain/starfield"
	"github.com/andrescamacho/starfleet-go/internal/infrastructure/config"
	"github.com/andrescamacho/starfleet-go/internal/infrastructure/database"
	"github.com/andrescamacho/starfleet-go/internal/infrastructure/logging"
	"github.com/andrescamacho/starfleet-go/internal/infrastructure/pidfile"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web server and the daemon socket",
		Long: `Run the HTTP server, the gRPC daemon on its Unix socket, and the
expired-session sweeper until interrupted.

Only one server runs per PID file. Use --force to take over a stale
or running instance's PID file.

Examples:
  starfleet serve
  SF_SERVER_ADDRESS=:9000 starfleet serve --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runServer(ctx, cfg, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Replace the PID file of an existing server")

	return cmd
}

func runServer(ctx context.Context, cfg *config.Config, force bool) error {
	logger, flush, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to configure logging: %w", err)
	}
	defer flush()
	ctx = common.WithLogger(ctx, logger)

	// 1. Single instance
	pf := pidfile.New(cfg.Daemon.PIDFile)
	if err := pf.Acquire(force); err != nil {
		return fmt.Errorf("%w\nUse --force to replace it", err)
	}
	defer func() {
		if err := pf.Release(); err != nil {
			logger.Warn("failed to release PID file", zap.Error(err))
		}
	}()
	logger.Info("PID file lock acquired", zap.String("path", pf.Path()))

	// 2. Database
	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)
	logger.Info("Database connected", zap.String("type", cfg.Database.Type))

	// 3. Repositories
	shipRepo := persistence.NewGormShipRepository(db)
	userRepo := persistence.NewGormUserRepository(db)
	sessionRepo, err := persistence.NewCachedSessionRepository(persistence.NewGormSessionRepository(db), cfg.Auth.SessionCacheSize)
	if err != nil {
		return fmt.Errorf("failed to create session cache: %w", err)
	}

	// 4. Metrics
	var (
		httpMetrics *metrics.HTTPMetricsCollector
		observers   []appstarfield.Observer
		middlewares = []common.Middleware{common.LoggingMiddleware()}
		metricsPath string
	)
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		commandMetrics := metrics.NewCommandMetricsCollector()
		starfieldMetrics := metrics.NewStarfieldMetricsCollector()
		httpMetrics = metrics.NewHTTPMetricsCollector()
		if err := metrics.RegisterAll(commandMetrics, starfieldMetrics, httpMetrics); err != nil {
			return fmt.Errorf("failed to register metrics: %w", err)
		}
		middlewares = append(middlewares, metrics.PrometheusMiddleware(commandMetrics))
		observers = append(observers, starfieldMetrics)
		metricsPath = cfg.Metrics.Path
		logger.Info("Metrics enabled", zap.String("path", metricsPath))
	}

	// 5. Mediator
	clock := shared.NewRealClock()
	registry := setup.NewHandlerRegistry(shipRepo, userRepo, sessionRepo,
		security.NewBcryptHasher(cfg.Auth.BcryptCost), cfg.Auth.SessionTTL, clock)
	mediator, err := registry.CreateConfiguredMediator(middlewares...)
	if err != nil {
		return fmt.Errorf("failed to configure mediator: %w", err)
	}

	// 6. Starfield
	navigator, err := newNavigator(cfg.Starfield, clock, observers)
	if err != nil {
		return err
	}

	// 7. Transports
	webServer, err := web.NewServer(mediator, navigator, logger, httpMetrics, web.Options{
		Address:            cfg.Server.Address,
		CookieName:         cfg.Auth.CookieName,
		CookieSecure:       cfg.Server.CookieSecure,
		ReadHeaderTimeout:  cfg.Server.ReadHeaderTimeout,
		IdleTimeout:        cfg.Server.IdleTimeout,
		ShutdownTimeout:    cfg.Server.ShutdownTimeout,
		RateLimitPerMinute: cfg.Server.RateLimit.PerMinute,
		RateLimitBurst:     cfg.Server.RateLimit.Burst,
		MetricsPath:        metricsPath,
	})
	if err != nil {
		return fmt.Errorf("failed to create web server: %w", err)
	}

	daemonServer, err := daemongrpc.NewDaemonServer(mediator, navigator, cfg.Daemon.SocketPath, logger)
	if err != nil {
		return fmt.Errorf("failed to create daemon server: %w", err)
	}
	defer os.Remove(cfg.Daemon.SocketPath)

	sweeper := daemongrpc.NewSessionSweeper(sessionRepo, clock, cfg.Auth.SweepInterval, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return webServer.ListenAndServe(gctx) })
	g.Go(func() error { return daemonServer.Serve(gctx) })
	g.Go(func() error {
		sweeper.Run(gctx)
		return nil
	})

	err = g.Wait()
	logger.Info("Server stopped")
	return err
}

// newNavigator builds the voyage navigator from configuration. A zero
// player offset centers the marker.
func newNavigator(cfg config.StarfieldConfig, clock shared.Clock, observers []appstarfield.Observer) (*appstarfield.Navigator, error) {
	destinations, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}

	layout := starfield.NewLayout(cfg.VisibleWidth)
	if cfg.PlayerOffset > 0 {
		layout.PlayerOffset = cfg.PlayerOffset
	}
	if err := layout.Validate(destinations); err != nil {
		return nil, fmt.Errorf("invalid starfield layout: %w", err)
	}

	return appstarfield.NewNavigator(appstarfield.Settings{
		Catalog:      destinations,
		Layout:       layout,
		TickInterval: cfg.TickInterval,
		Dwell:        cfg.Dwell,
	}, clock, observers...), nil
}
