package grpc

import (
	"context"

	ggrpc "google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName del servicio de elegibilidad. Los mensajes son
// google.protobuf.Struct, así que no hace falta código generado.
const ServiceName = "panelreservas.calendar.v1.EligibilityService"

const protoFile = "panelreservas/calendar/v1/eligibility.proto"

// El descriptor se registra a mano para que la reflexión del servidor pueda
// describir el servicio igual que con código generado.
func init() {
	method := func(name string) *descriptorpb.MethodDescriptorProto {
		return &descriptorpb.MethodDescriptorProto{
			Name:       proto.String(name),
			InputType:  proto.String(".google.protobuf.Struct"),
			OutputType: proto.String(".google.protobuf.Struct"),
		}
	}
	fdp := &descriptorpb.FileDescriptorProto{
		Name:       proto.String(protoFile),
		Package:    proto.String("panelreservas.calendar.v1"),
		Dependency: []string{"google/protobuf/struct.proto"},
		Syntax:     proto.String("proto3"),
		Service: []*descriptorpb.ServiceDescriptorProto{{
			Name:   proto.String("EligibilityService"),
			Method: []*descriptorpb.MethodDescriptorProto{method("Classify"), method("CheckActions"), method("ListSlots")},
		}},
	}

	fd, err := protodesc.NewFile(fdp, protoregistry.GlobalFiles)
	if err != nil {
		panic(err)
	}
	if err := protoregistry.GlobalFiles.RegisterFile(fd); err != nil {
		panic(err)
	}
}

type EligibilityServer interface {
	Classify(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CheckActions(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListSlots(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

var EligibilityServiceDesc = ggrpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*EligibilityServer)(nil),
	Methods: []ggrpc.MethodDesc{
		{MethodName: "Classify", Handler: unary("Classify", EligibilityServer.Classify)},
		{MethodName: "CheckActions", Handler: unary("CheckActions", EligibilityServer.CheckActions)},
		{MethodName: "ListSlots", Handler: unary("ListSlots", EligibilityServer.ListSlots)},
	},
	Streams:  []ggrpc.StreamDesc{},
	Metadata: protoFile,
}

func RegisterEligibilityServer(s ggrpc.ServiceRegistrar, srv EligibilityServer) {
	s.RegisterService(&EligibilityServiceDesc, srv)
}

type unaryCall func(EligibilityServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unary(method string, call unaryCall) func(srv any, ctx context.Context, dec func(any) error, interceptor ggrpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor ggrpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(EligibilityServer), ctx, in)
		}
		info := &ggrpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: "/" + ServiceName + "/" + method,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(EligibilityServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// EligibilityClient envuelve una conexión existente.
type EligibilityClient struct {
	cc ggrpc.ClientConnInterface
}

func NewEligibilityClient(cc ggrpc.ClientConnInterface) *EligibilityClient {
	return &EligibilityClient{cc: cc}
}

func (c *EligibilityClient) Classify(ctx context.Context, in *structpb.Struct, opts ...ggrpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "Classify", in, opts...)
}

func (c *EligibilityClient) CheckActions(ctx context.Context, in *structpb.Struct, opts ...ggrpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "CheckActions", in, opts...)
}

func (c *EligibilityClient) ListSlots(ctx context.Context, in *structpb.Struct, opts ...ggrpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "ListSlots", in, opts...)
}

func (c *EligibilityClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...ggrpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
