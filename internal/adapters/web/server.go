package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/andrescamacho/starfleet-go/internal/adapters/metrics"
	"github.com/andrescamacho/starfleet-go/internal/application/common"
	appstarfield "github.com/andrescamacho/starfleet-go/internal/application/starfield"
)

// Options tunes the HTTP server
type Options struct {
	Address           string
	CookieName        string
	CookieSecure      bool
	ReadHeaderTimeout time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration

	// Login and join submissions per client per minute. Zero disables limiting.
	RateLimitPerMinute int
	RateLimitBurst     int

	// MetricsPath is served when the metrics registry is initialized
	MetricsPath string
}

const defaultCookieName = "starfleet_session"

// Server renders the ships UI and streams starfield voyages
type Server struct {
	mediator    common.Mediator
	navigator   *appstarfield.Navigator
	templates   map[string]*template.Template
	logger      *zap.Logger
	httpMetrics *metrics.HTTPMetricsCollector
	limiter     *clientLimiter
	opts        Options
}

// NewServer creates a web server. httpMetrics may be nil.
func NewServer(
	mediator common.Mediator,
	navigator *appstarfield.Navigator,
	logger *zap.Logger,
	httpMetrics *metrics.HTTPMetricsCollector,
	opts Options,
) (*Server, error) {
	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.CookieName == "" {
		opts.CookieName = defaultCookieName
	}

	s := &Server{
		mediator:    mediator,
		navigator:   navigator,
		templates:   templates,
		logger:      logger,
		httpMetrics: httpMetrics,
		opts:        opts,
	}

	if opts.RateLimitPerMinute > 0 {
		burst := opts.RateLimitBurst
		if burst < 1 {
			burst = 1
		}
		if s.limiter, err = newClientLimiter(opts.RateLimitPerMinute, burst); err != nil {
			return nil, fmt.Errorf("failed to create rate limiter: %w", err)
		}
	}

	return s, nil
}

// Handler returns the routed and instrumented handler
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /join", s.handleJoinForm)
	mux.HandleFunc("POST /join", s.rateLimited("POST /join", s.handleJoin))
	mux.HandleFunc("GET /login", s.handleLoginForm)
	mux.HandleFunc("POST /login", s.rateLimited("POST /login", s.handleLogin))
	mux.HandleFunc("POST /logout", s.handleLogout)

	mux.HandleFunc("GET /ships", s.handleShipsIndex)
	mux.HandleFunc("GET /ships/new", s.handleNewShipForm)
	mux.HandleFunc("POST /ships/new", s.handleCreateShip)
	mux.HandleFunc("GET /ships/{id}", s.handleShipDetail)
	mux.HandleFunc("POST /ships/{id}", s.handleDeleteShip)
	mux.HandleFunc("POST /ships/{id}/delete", s.handleDeleteShip)
	mux.HandleFunc("GET /ships/{id}/starfield", s.handleStarfieldStream)
	mux.HandleFunc("POST /ships/{id}/starfield/{voyage}/{action}", s.handleVoyageControl)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})
	if s.opts.MetricsPath != "" && metrics.IsEnabled() {
		mux.Handle("GET "+s.opts.MetricsPath, metrics.Handler())
	}

	return s.instrument(s.recoverer(mux))
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.opts.Address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.opts.Address, err)
	}
	return s.Serve(ctx, listener)
}

// Serve accepts connections on listener until ctx is cancelled
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.opts.ReadHeaderTimeout,
		IdleTimeout:       s.opts.IdleTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", zap.String("address", listener.Addr().String()))
		errCh <- srv.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	timeout := s.opts.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info("HTTP server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}
