// Package id describes the IDService gRPC contract.
//
// Requests and responses are google.protobuf.Struct messages keyed by the
// Field* constants, so the service is registered from a hand-written
// ServiceDesc instead of protoc output.
package id

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "wesio.id.v1.IDService"

const (
	IDService_GenerateID_FullMethodName       = "/" + ServiceName + "/GenerateID"
	IDService_GenerateBatchIDs_FullMethodName = "/" + ServiceName + "/GenerateBatchIDs"
	IDService_ValidateID_FullMethodName       = "/" + ServiceName + "/ValidateID"
	IDService_ParseID_FullMethodName          = "/" + ServiceName + "/ParseID"
)

// IDServiceServer is the server API for IDService.
type IDServiceServer interface {
	GenerateID(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GenerateBatchIDs(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ValidateID(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ParseID(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// UnimplementedIDServiceServer can be embedded to get Unimplemented errors
// for methods a server does not provide.
type UnimplementedIDServiceServer struct{}

func (UnimplementedIDServiceServer) GenerateID(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GenerateID not implemented")
}

func (UnimplementedIDServiceServer) GenerateBatchIDs(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GenerateBatchIDs not implemented")
}

func (UnimplementedIDServiceServer) ValidateID(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method ValidateID not implemented")
}

func (UnimplementedIDServiceServer) ParseID(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method ParseID not implemented")
}

// RegisterIDServiceServer registers srv on s.
func RegisterIDServiceServer(s grpc.ServiceRegistrar, srv IDServiceServer) {
	s.RegisterService(&IDService_ServiceDesc, srv)
}

type unaryMethod func(IDServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryMethod) func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(IDServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(IDServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// IDService_ServiceDesc is the grpc.ServiceDesc for IDService.
var IDService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*IDServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GenerateID",
			Handler:    unaryHandler(IDService_GenerateID_FullMethodName, IDServiceServer.GenerateID),
		},
		{
			MethodName: "GenerateBatchIDs",
			Handler:    unaryHandler(IDService_GenerateBatchIDs_FullMethodName, IDServiceServer.GenerateBatchIDs),
		},
		{
			MethodName: "ValidateID",
			Handler:    unaryHandler(IDService_ValidateID_FullMethodName, IDServiceServer.ValidateID),
		},
		{
			MethodName: "ParseID",
			Handler:    unaryHandler(IDService_ParseID_FullMethodName, IDServiceServer.ParseID),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "id/v1/id.proto",
}

// IDServiceClient is the client API for IDService.
type IDServiceClient interface {
	GenerateID(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GenerateBatchIDs(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ValidateID(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ParseID(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type idServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewIDServiceClient creates a client over cc.
func NewIDServiceClient(cc grpc.ClientConnInterface) IDServiceClient {
	return &idServiceClient{cc}
}

func (c *idServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts []grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *idServiceClient) GenerateID(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, IDService_GenerateID_FullMethodName, in, opts)
}

func (c *idServiceClient) GenerateBatchIDs(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, IDService_GenerateBatchIDs_FullMethodName, in, opts)
}

func (c *idServiceClient) ValidateID(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, IDService_ValidateID_FullMethodName, in, opts)
}

func (c *idServiceClient) ParseID(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, IDService_ParseID_FullMethodName, in, opts)
}
