package handlers

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Fully-qualified method names of edurecords.v1.PersonService
const (
	PersonServiceName                        = "edurecords.v1.PersonService"
	PersonService_SavePerson_FullMethod      = "/edurecords.v1.PersonService/SavePerson"
	PersonService_ListPersons_FullMethod     = "/edurecords.v1.PersonService/ListPersons"
	PersonService_UpdatePersonAge_FullMethod = "/edurecords.v1.PersonService/UpdatePersonAge"
	PersonService_DeletePerson_FullMethod    = "/edurecords.v1.PersonService/DeletePerson"
)

// PersonServiceServer is the server API for the person service
// Requests and responses are google.protobuf.Struct messages.
type PersonServiceServer interface {
	SavePerson(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListPersons(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdatePersonAge(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeletePerson(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterPersonServiceServer registers srv with the gRPC server
func RegisterPersonServiceServer(s grpc.ServiceRegistrar, srv PersonServiceServer) {
	s.RegisterService(&PersonService_ServiceDesc, srv)
}

// PersonService_ServiceDesc is the grpc.ServiceDesc for the person service
var PersonService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: PersonServiceName,
	HandlerType: (*PersonServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "SavePerson",
			Handler:    unaryHandler(PersonService_SavePerson_FullMethod, PersonServiceServer.SavePerson),
		},
		{
			MethodName: "ListPersons",
			Handler:    unaryHandler(PersonService_ListPersons_FullMethod, PersonServiceServer.ListPersons),
		},
		{
			MethodName: "UpdatePersonAge",
			Handler:    unaryHandler(PersonService_UpdatePersonAge_FullMethod, PersonServiceServer.UpdatePersonAge),
		},
		{
			MethodName: "DeletePerson",
			Handler:    unaryHandler(PersonService_DeletePerson_FullMethod, PersonServiceServer.DeletePerson),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "edurecords/v1/person.proto",
}

type unaryMethod func(PersonServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

// unaryHandler adapts a server method to grpc.MethodDesc.Handler, honoring interceptors
func unaryHandler(fullMethod string, method unaryMethod) func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return method(srv.(PersonServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return method(srv.(PersonServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// PersonServiceClient is the client API for the person service
type PersonServiceClient interface {
	SavePerson(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListPersons(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	UpdatePersonAge(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	DeletePerson(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type personServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewPersonServiceClient creates a client for the person service
func NewPersonServiceClient(cc grpc.ClientConnInterface) PersonServiceClient {
	return &personServiceClient{cc: cc}
}

func (c *personServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *personServiceClient) SavePerson(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, PersonService_SavePerson_FullMethod, in, opts...)
}

func (c *personServiceClient) ListPersons(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, PersonService_ListPersons_FullMethod, in, opts...)
}

func (c *personServiceClient) UpdatePersonAge(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, PersonService_UpdatePersonAge_FullMethod, in, opts...)
}

func (c *personServiceClient) DeletePerson(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, PersonService_DeletePerson_FullMethod, in, opts...)
}
