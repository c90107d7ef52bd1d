package grpcx

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const execMethod = "/sodiumbridge.v1.Bridge/Exec"

// BridgeServer is the server API for the Bridge gRPC service.
//
// Proto definition: proto/sodiumbridge/v1/bridge.proto.
type BridgeServer interface {
	Exec(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// UnimplementedBridgeServer can be embedded to have forward compatible implementations.
type UnimplementedBridgeServer struct{}

func (UnimplementedBridgeServer) Exec(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method Exec not implemented")
}

// RegisterBridgeServer registers the Bridge service on a gRPC server.
func RegisterBridgeServer(s grpc.ServiceRegistrar, srv BridgeServer) {
	s.RegisterService(&Bridge_ServiceDesc, srv)
}

// BridgeClient is the client API for the Bridge gRPC service.
type BridgeClient interface {
	Exec(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type bridgeClient struct{ cc grpc.ClientConnInterface }

func NewBridgeClient(cc grpc.ClientConnInterface) BridgeClient { return &bridgeClient{cc: cc} }

func (c *bridgeClient) Exec(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, execMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func _Bridge_Exec_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BridgeServer).Exec(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: execMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(BridgeServer).Exec(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// Bridge_ServiceDesc is the grpc.ServiceDesc for the Bridge service.
var Bridge_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "sodiumbridge.v1.Bridge",
	HandlerType: (*BridgeServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Exec", Handler: _Bridge_Exec_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "sodiumbridge/v1/bridge.proto",
}
