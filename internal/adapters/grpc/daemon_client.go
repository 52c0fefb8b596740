package grpc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"github.com/andrescamacho/starfleet-go/internal/domain/shared"
	"github.com/andrescamacho/starfleet-go/internal/domain/starfield"
)

// DaemonClient talks to a running daemon over its Unix socket
type DaemonClient struct {
	conn   *grpc.ClientConn
	client FleetClient
}

// NewDaemonClient creates a client for the daemon listening on socketPath
func NewDaemonClient(socketPath string) (*DaemonClient, error) {
	conn, err := grpc.NewClient(
		"unix:"+socketPath,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon socket: %w", err)
	}
	return NewDaemonClientWithConn(conn), nil
}

// NewDaemonClientWithConn wraps an existing connection
func NewDaemonClientWithConn(conn *grpc.ClientConn) *DaemonClient {
	return &DaemonClient{conn: conn, client: NewFleetClient(conn)}
}

// Close closes the gRPC connection
func (c *DaemonClient) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// HealthCheck reports the serving status of the Fleet service
func (c *DaemonClient) HealthCheck(ctx context.Context) (string, error) {
	resp, err := healthpb.NewHealthClient(c.conn).Check(ctx, &healthpb.HealthCheckRequest{Service: Fleet_ServiceName})
	if err != nil {
		return "", fromStatus(err)
	}
	return resp.GetStatus().String(), nil
}

// ListShips lists the ships owned by ownerEmail, most recently updated first
func (c *DaemonClient) ListShips(ctx context.Context, ownerEmail string) ([]*ShipInfo, error) {
	resp, err := c.client.ListShips(ctx, &ListShipsRequest{OwnerEmail: ownerEmail})
	if err != nil {
		return nil, fromStatus(err)
	}
	return resp.Ships, nil
}

// GetShip fetches one ship owned by ownerEmail
func (c *DaemonClient) GetShip(ctx context.Context, ownerEmail, shipID string) (*ShipInfo, error) {
	resp, err := c.client.GetShip(ctx, &GetShipRequest{OwnerEmail: ownerEmail, ShipID: shipID})
	if err != nil {
		return nil, fromStatus(err)
	}
	return resp.Ship, nil
}

// CreateShip creates a ship for ownerEmail
func (c *DaemonClient) CreateShip(ctx context.Context, ownerEmail, name string) (*ShipInfo, error) {
	resp, err := c.client.CreateShip(ctx, &CreateShipRequest{OwnerEmail: ownerEmail, Name: name})
	if err != nil {
		return nil, fromStatus(err)
	}
	return resp.Ship, nil
}

// DeleteShip deletes a ship owned by ownerEmail and reports how many were removed
func (c *DaemonClient) DeleteShip(ctx context.Context, ownerEmail, shipID string) (int64, error) {
	resp, err := c.client.DeleteShip(ctx, &DeleteShipRequest{OwnerEmail: ownerEmail, ShipID: shipID})
	if err != nil {
		return 0, fromStatus(err)
	}
	return resp.Deleted, nil
}

// ControlVoyage starts or stops a voyage opened by WatchStarfield
func (c *DaemonClient) ControlVoyage(ctx context.Context, ownerEmail, voyageID string, event starfield.Event) error {
	_, err := c.client.ControlVoyage(ctx, &ControlVoyageRequest{
		OwnerEmail: ownerEmail,
		VoyageID:   voyageID,
		Action:     string(event),
	})
	return fromStatus(err)
}

// StarfieldWatch is an open WatchStarfield stream
type StarfieldWatch struct {
	VoyageID string
	stream   grpc.ServerStreamingClient[StarfieldEvent]
}

// Next blocks for the next frame. It returns io.EOF once the voyage ends.
func (w *StarfieldWatch) Next() (starfield.Frame, error) {
	for {
		event, err := w.stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return starfield.Frame{}, io.EOF
			}
			return starfield.Frame{}, fromStatus(err)
		}
		if event.Frame != nil {
			return event.Frame.ToFrame(), nil
		}
	}
}

// WatchStarfield opens a voyage on the daemon that lasts until ctx is cancelled
func (c *DaemonClient) WatchStarfield(ctx context.Context, ownerEmail, shipID string) (*StarfieldWatch, error) {
	stream, err := c.client.WatchStarfield(ctx, &WatchStarfieldRequest{OwnerEmail: ownerEmail, ShipID: shipID})
	if err != nil {
		return nil, fromStatus(err)
	}

	first, err := stream.Recv()
	if err != nil {
		return nil, fromStatus(err)
	}
	return &StarfieldWatch{VoyageID: first.VoyageID, stream: stream}, nil
}

// fromStatus turns gRPC status codes back into domain errors
func fromStatus(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.NotFound:
		return &shared.NotFoundError{DomainError: shared.NewDomainError(st.Message())}
	case codes.InvalidArgument:
		field, message, found := strings.Cut(st.Message(), ": ")
		if !found {
			return shared.NewValidationError("request", st.Message())
		}
		return shared.NewValidationError(field, message)
	case codes.Unauthenticated:
		return shared.NewUnauthenticatedError(st.Message())
	case codes.Unavailable:
		return fmt.Errorf("daemon unavailable (is `starfleet serve` running?): %w", err)
	default:
		return fmt.Errorf("daemon error: %s", st.Message())
	}
}
