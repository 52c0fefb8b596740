package grpc

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	authQueries "github.com/andrescamacho/starfleet-go/internal/application/auth/queries"
	"github.com/andrescamacho/starfleet-go/internal/application/common"
	shipCommands "github.com/andrescamacho/starfleet-go/internal/application/ship/commands"
	shipQueries "github.com/andrescamacho/starfleet-go/internal/application/ship/queries"
	"github.com/andrescamacho/starfleet-go/internal/domain/shared"
	"github.com/andrescamacho/starfleet-go/internal/domain/starfield"
)

// fleetService bridges Fleet RPCs to the mediator and the navigator
type fleetService struct {
	daemon *DaemonServer
}

func newFleetService(daemon *DaemonServer) *fleetService {
	return &fleetService{daemon: daemon}
}

// resolveOwner maps the request's owner email onto a user ID
func (s *fleetService) resolveOwner(ctx context.Context, email string) (shared.UserID, error) {
	if email == "" {
		return shared.UserID{}, shared.NewValidationError("owner_email", "owner email is required")
	}
	resp, err := common.SendTyped[*authQueries.GetUserResponse](ctx, s.daemon.mediator, &authQueries.GetUserQuery{Email: email})
	if err != nil {
		return shared.UserID{}, err
	}
	return resp.User.ID, nil
}

func (s *fleetService) ListShips(ctx context.Context, req *ListShipsRequest) (*ListShipsResponse, error) {
	ownerID, err := s.resolveOwner(ctx, req.OwnerEmail)
	if err != nil {
		return nil, toStatus(err)
	}

	resp, err := common.SendTyped[*shipQueries.ListShipsResponse](ctx, s.daemon.mediator, &shipQueries.ListShipsQuery{OwnerID: ownerID})
	if err != nil {
		return nil, toStatus(err)
	}

	out := &ListShipsResponse{Ships: make([]*ShipInfo, 0, len(resp.Ships))}
	for _, sh := range resp.Ships {
		out.Ships = append(out.Ships, toShipInfo(sh))
	}
	return out, nil
}

func (s *fleetService) GetShip(ctx context.Context, req *GetShipRequest) (*ShipResponse, error) {
	ownerID, err := s.resolveOwner(ctx, req.OwnerEmail)
	if err != nil {
		return nil, toStatus(err)
	}

	resp, err := common.SendTyped[*shipQueries.GetShipResponse](ctx, s.daemon.mediator, &shipQueries.GetShipQuery{
		OwnerID: ownerID,
		ShipID:  req.ShipID,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &ShipResponse{Ship: toShipInfo(resp.Ship)}, nil
}

func (s *fleetService) CreateShip(ctx context.Context, req *CreateShipRequest) (*ShipResponse, error) {
	ownerID, err := s.resolveOwner(ctx, req.OwnerEmail)
	if err != nil {
		return nil, toStatus(err)
	}

	resp, err := common.SendTyped[*shipCommands.CreateShipResponse](ctx, s.daemon.mediator, &shipCommands.CreateShipCommand{
		OwnerID: ownerID,
		Name:    req.Name,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &ShipResponse{Ship: toShipInfo(resp.Ship)}, nil
}

func (s *fleetService) DeleteShip(ctx context.Context, req *DeleteShipRequest) (*DeleteShipResponse, error) {
	ownerID, err := s.resolveOwner(ctx, req.OwnerEmail)
	if err != nil {
		return nil, toStatus(err)
	}

	resp, err := common.SendTyped[*shipCommands.DeleteShipResponse](ctx, s.daemon.mediator, &shipCommands.DeleteShipCommand{
		OwnerID: ownerID,
		ShipID:  req.ShipID,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &DeleteShipResponse{Deleted: resp.Deleted}, nil
}

// WatchStarfield runs a voyage for as long as the client keeps the stream open
func (s *fleetService) WatchStarfield(req *WatchStarfieldRequest, stream grpc.ServerStreamingServer[StarfieldEvent]) error {
	ctx, cancel := context.WithCancel(stream.Context())
	defer cancel()

	ownerID, err := s.resolveOwner(ctx, req.OwnerEmail)
	if err != nil {
		return toStatus(err)
	}
	if _, err := common.SendTyped[*shipQueries.GetShipResponse](ctx, s.daemon.mediator, &shipQueries.GetShipQuery{
		OwnerID: ownerID,
		ShipID:  req.ShipID,
	}); err != nil {
		return toStatus(err)
	}

	handle := s.daemon.navigator.Launch(ctx, ownerID)
	defer func() {
		cancel()
		<-handle.Done()
	}()

	if err := stream.Send(&StarfieldEvent{VoyageID: handle.ID()}); err != nil {
		return err
	}

	for frame := range handle.Frames() {
		if err := stream.Send(&StarfieldEvent{VoyageID: handle.ID(), Frame: toFrameMessage(frame)}); err != nil {
			common.LoggerFromContext(ctx).Debug("starfield stream closed",
				zap.String("voyage_id", handle.ID()), zap.Error(err))
			return err
		}
	}
	return nil
}

func (s *fleetService) ControlVoyage(ctx context.Context, req *ControlVoyageRequest) (*ControlVoyageResponse, error) {
	ownerID, err := s.resolveOwner(ctx, req.OwnerEmail)
	if err != nil {
		return nil, toStatus(err)
	}

	event, ok := starfield.ParseEvent(req.Action)
	if !ok {
		return nil, status.Errorf(codes.InvalidArgument, "unknown action %q", req.Action)
	}

	if err := s.daemon.navigator.Control(ctx, ownerID, req.VoyageID, event); err != nil {
		return nil, toStatus(err)
	}
	return &ControlVoyageResponse{}, nil
}

// toStatus maps the domain error taxonomy onto gRPC status codes
func toStatus(err error) error {
	var notFound *shared.NotFoundError
	switch {
	case errors.As(err, &notFound):
		return status.Error(codes.NotFound, err.Error())
	case shared.IsUnauthenticated(err):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}
	if v, ok := shared.AsValidation(err); ok {
		return status.Error(codes.InvalidArgument, v.Error())
	}
	return status.Error(codes.Internal, err.Error())
}
