package grpc

import (
	"context"

	"google.golang.org/grpc"
)

// Fleet service method names
const (
	Fleet_ServiceName                   = "starfleet.Fleet"
	Fleet_ListShips_FullMethodName      = "/starfleet.Fleet/ListShips"
	Fleet_GetShip_FullMethodName        = "/starfleet.Fleet/GetShip"
	Fleet_CreateShip_FullMethodName     = "/starfleet.Fleet/CreateShip"
	Fleet_DeleteShip_FullMethodName     = "/starfleet.Fleet/DeleteShip"
	Fleet_WatchStarfield_FullMethodName = "/starfleet.Fleet/WatchStarfield"
	Fleet_ControlVoyage_FullMethodName  = "/starfleet.Fleet/ControlVoyage"
)

// FleetServer is the server API for the Fleet service
type FleetServer interface {
	ListShips(context.Context, *ListShipsRequest) (*ListShipsResponse, error)
	GetShip(context.Context, *GetShipRequest) (*ShipResponse, error)
	CreateShip(context.Context, *CreateShipRequest) (*ShipResponse, error)
	DeleteShip(context.Context, *DeleteShipRequest) (*DeleteShipResponse, error)
	WatchStarfield(*WatchStarfieldRequest, grpc.ServerStreamingServer[StarfieldEvent]) error
	ControlVoyage(context.Context, *ControlVoyageRequest) (*ControlVoyageResponse, error)
}

// RegisterFleetServer registers srv on s
func RegisterFleetServer(s grpc.ServiceRegistrar, srv FleetServer) {
	s.RegisterService(&Fleet_ServiceDesc, srv)
}

// unaryHandler adapts one typed FleetServer method to the grpc.MethodDesc handler shape
func unaryHandler[Req any, Res any](
	fullMethod string,
	call func(FleetServer, context.Context, *Req) (*Res, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(FleetServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(FleetServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func watchStarfieldHandler(srv any, stream grpc.ServerStream) error {
	in := new(WatchStarfieldRequest)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(FleetServer).WatchStarfield(in, &grpc.GenericServerStream[WatchStarfieldRequest, StarfieldEvent]{ServerStream: stream})
}

// Fleet_ServiceDesc describes the Fleet service. Messages travel with the msgpack codec.
var Fleet_ServiceDesc = grpc.ServiceDesc{
	ServiceName: Fleet_ServiceName,
	HandlerType: (*FleetServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ListShips",
			Handler:    unaryHandler(Fleet_ListShips_FullMethodName, FleetServer.ListShips),
		},
		{
			MethodName: "GetShip",
			Handler:    unaryHandler(Fleet_GetShip_FullMethodName, FleetServer.GetShip),
		},
		{
			MethodName: "CreateShip",
			Handler:    unaryHandler(Fleet_CreateShip_FullMethodName, FleetServer.CreateShip),
		},
		{
			MethodName: "DeleteShip",
			Handler:    unaryHandler(Fleet_DeleteShip_FullMethodName, FleetServer.DeleteShip),
		},
		{
			MethodName: "ControlVoyage",
			Handler:    unaryHandler(Fleet_ControlVoyage_FullMethodName, FleetServer.ControlVoyage),
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "WatchStarfield",
			Handler:       watchStarfieldHandler,
			ServerStreams: true,
		},
	},
	Metadata: "starfleet/fleet",
}

// FleetClient is the client API for the Fleet service
type FleetClient interface {
	ListShips(ctx context.Context, in *ListShipsRequest, opts ...grpc.CallOption) (*ListShipsResponse, error)
	GetShip(ctx context.Context, in *GetShipRequest, opts ...grpc.CallOption) (*ShipResponse, error)
	CreateShip(ctx context.Context, in *CreateShipRequest, opts ...grpc.CallOption) (*ShipResponse, error)
	DeleteShip(ctx context.Context, in *DeleteShipRequest, opts ...grpc.CallOption) (*DeleteShipResponse, error)
	WatchStarfield(ctx context.Context, in *WatchStarfieldRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[StarfieldEvent], error)
	ControlVoyage(ctx context.Context, in *ControlVoyageRequest, opts ...grpc.CallOption) (*ControlVoyageResponse, error)
}

type fleetClient struct {
	cc grpc.ClientConnInterface
}

// NewFleetClient creates a Fleet client over cc
func NewFleetClient(cc grpc.ClientConnInterface) FleetClient {
	return &fleetClient{cc}
}

func invoke[Res any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Res, error) {
	out := new(Res)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *fleetClient) ListShips(ctx context.Context, in *ListShipsRequest, opts ...grpc.CallOption) (*ListShipsResponse, error) {
	return invoke[ListShipsResponse](ctx, c.cc, Fleet_ListShips_FullMethodName, in, opts)
}

func (c *fleetClient) GetShip(ctx context.Context, in *GetShipRequest, opts ...grpc.CallOption) (*ShipResponse, error) {
	return invoke[ShipResponse](ctx, c.cc, Fleet_GetShip_FullMethodName, in, opts)
}

func (c *fleetClient) CreateShip(ctx context.Context, in *CreateShipRequest, opts ...grpc.CallOption) (*ShipResponse, error) {
	return invoke[ShipResponse](ctx, c.cc, Fleet_CreateShip_FullMethodName, in, opts)
}

func (c *fleetClient) DeleteShip(ctx context.Context, in *DeleteShipRequest, opts ...grpc.CallOption) (*DeleteShipResponse, error) {
	return invoke[DeleteShipResponse](ctx, c.cc, Fleet_DeleteShip_FullMethodName, in, opts)
}

func (c *fleetClient) ControlVoyage(ctx context.Context, in *ControlVoyageRequest, opts ...grpc.CallOption) (*ControlVoyageResponse, error) {
	return invoke[ControlVoyageResponse](ctx, c.cc, Fleet_ControlVoyage_FullMethodName, in, opts)
}

func (c *fleetClient) WatchStarfield(ctx context.Context, in *WatchStarfieldRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[StarfieldEvent], error) {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, opts...)
	stream, err := c.cc.NewStream(ctx, &Fleet_ServiceDesc.Streams[0], Fleet_WatchStarfield_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[WatchStarfieldRequest, StarfieldEvent]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}
