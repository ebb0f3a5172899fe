package v1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "booster.v1.BoosterService"

// Full method names
const (
	GenerateBoosterMethod = "/" + ServiceName + "/GenerateBooster"
	SimulateMethod        = "/" + ServiceName + "/Simulate"
	ListSetsMethod        = "/" + ServiceName + "/ListSets"
)

// BoosterServiceServer is the server API for the booster service. Messages
// are google.protobuf.Struct so the service needs no generated code.
type BoosterServiceServer interface {
	GenerateBooster(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	Simulate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ListSets(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// RegisterBoosterServiceServer registers srv on s
func RegisterBoosterServiceServer(s grpc.ServiceRegistrar, srv BoosterServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// ServiceDesc describes the booster service for grpc.Server
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BoosterServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GenerateBooster",
			Handler:    unaryHandler(GenerateBoosterMethod, BoosterServiceServer.GenerateBooster),
		},
		{
			MethodName: "Simulate",
			Handler:    unaryHandler(SimulateMethod, BoosterServiceServer.Simulate),
		},
		{
			MethodName: "ListSets",
			Handler:    unaryHandler(ListSetsMethod, BoosterServiceServer.ListSets),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: ProtoFile,
}

type unaryMethod func(BoosterServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryMethod) grpc.MethodHandler {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(BoosterServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(BoosterServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// Client calls the booster service over a client connection
type Client struct {
	conn grpc.ClientConnInterface
}

// NewClient creates a booster service client
func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

// GenerateBooster opens one pack
func (c *Client) GenerateBooster(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, GenerateBoosterMethod, req, opts...)
}

// Simulate runs a simulation
func (c *Client) Simulate(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, SimulateMethod, req, opts...)
}

// ListSets lists known sets
func (c *Client) ListSets(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ListSetsMethod, req, opts...)
}

func (c *Client) invoke(ctx context.Context, method string, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	if req == nil {
		req = &structpb.Struct{}
	}
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, method, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
