package grpc

import (
	"context"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/andrescamacho/starfleet-go/internal/application/common"
	appstarfield "github.com/andrescamacho/starfleet-go/internal/application/starfield"
)

// DaemonServer serves the Fleet service on a Unix domain socket
// so the CLI can manage ships and watch voyages of a running server
type DaemonServer struct {
	mediator   common.Mediator
	navigator  *appstarfield.Navigator
	listener   net.Listener
	socketPath string
	logger     *zap.Logger
}

// NewDaemonServer creates a daemon server listening on socketPath
func NewDaemonServer(
	mediator common.Mediator,
	navigator *appstarfield.Navigator,
	socketPath string,
	logger *zap.Logger,
) (*DaemonServer, error) {
	// Remove a stale socket left by a previous run
	if err := os.RemoveAll(socketPath); err != nil {
		return nil, fmt.Errorf("failed to remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create unix socket listener: %w", err)
	}

	// Owner only
	if err := os.Chmod(socketPath, 0600); err != nil {
		listener.Close()
		return nil, fmt.Errorf("failed to set socket permissions: %w", err)
	}

	return newDaemonServer(mediator, navigator, listener, logger), nil
}

func newDaemonServer(mediator common.Mediator, navigator *appstarfield.Navigator, listener net.Listener, logger *zap.Logger) *DaemonServer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DaemonServer{
		mediator:   mediator,
		navigator:  navigator,
		listener:   listener,
		socketPath: listener.Addr().String(),
		logger:     logger,
	}
}

// Serve handles gRPC requests until ctx is cancelled, then stops gracefully.
// Open WatchStarfield streams end with ctx.
func (s *DaemonServer) Serve(ctx context.Context) error {
	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(s.unaryLogging),
		grpc.ChainStreamInterceptor(s.streamLogging(ctx)),
	)
	RegisterFleetServer(grpcServer, newFleetService(s))

	healthServer := health.NewServer()
	healthServer.SetServingStatus(Fleet_ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("Daemon server listening", zap.String("socket", s.socketPath))
		if err := grpcServer.Serve(s.listener); err != nil {
			errChan <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		s.logger.Info("Initiating graceful shutdown of gRPC server")
		healthServer.Shutdown()
		grpcServer.GracefulStop()
		return nil
	}
}

// unaryLogging gives each call a request-scoped logger and logs its outcome
func (s *DaemonServer) unaryLogging(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	logger := s.logger.With(zap.String("request_id", uuid.NewString()), zap.String("method", info.FullMethod))

	resp, err := handler(common.WithLogger(ctx, logger), req)

	fields := []zap.Field{zap.Duration("duration", time.Since(start))}
	if err != nil {
		logger.Warn("rpc failed", append(fields, zap.Error(err))...)
	} else {
		logger.Debug("rpc completed", fields...)
	}
	return resp, err
}

// streamLogging attaches a logger to each stream and ties it to the server lifetime,
// so GracefulStop does not wait on streams that would otherwise run forever
func (s *DaemonServer) streamLogging(serverCtx context.Context) grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		logger := s.logger.With(zap.String("request_id", uuid.NewString()), zap.String("method", info.FullMethod))

		ctx, cancel := context.WithCancel(common.WithLogger(ss.Context(), logger))
		defer cancel()
		stop := context.AfterFunc(serverCtx, cancel)
		defer stop()

		logger.Info("stream opened")
		err := handler(srv, &contextStream{ServerStream: ss, ctx: ctx})
		logger.Info("stream closed", zap.Error(err))
		return err
	}
}

type contextStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *contextStream) Context() context.Context { return s.ctx }
