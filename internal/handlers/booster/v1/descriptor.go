package v1

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/known/structpb"
)

// ProtoFile is the path the service descriptor is registered under
const ProtoFile = "booster/v1/booster.proto"

// File is the registered descriptor of booster.proto, built in code so that
// reflection can describe the service without generated stubs
var File protoreflect.FileDescriptor

func init() {
	fd, err := buildFile(protoregistry.GlobalFiles)
	if err != nil {
		panic(err)
	}
	if err := protoregistry.GlobalFiles.RegisterFile(fd); err != nil {
		panic(err)
	}
	File = fd
}

func buildFile(resolver protodesc.Resolver) (protoreflect.FileDescriptor, error) {
	structType := "." + string((&structpb.Struct{}).ProtoReflect().Descriptor().FullName())
	method := func(name string) *descriptorpb.MethodDescriptorProto {
		return &descriptorpb.MethodDescriptorProto{
			Name:       proto.String(name),
			InputType:  proto.String(structType),
			OutputType: proto.String(structType),
		}
	}

	return protodesc.NewFile(&descriptorpb.FileDescriptorProto{
		Name:       proto.String(ProtoFile),
		Package:    proto.String("booster.v1"),
		Dependency: []string{structpb.File_google_protobuf_struct_proto.Path()},
		Syntax:     proto.String("proto3"),
		Service: []*descriptorpb.ServiceDescriptorProto{{
			Name: proto.String("BoosterService"),
			Method: []*descriptorpb.MethodDescriptorProto{
				method("GenerateBooster"),
				method("Simulate"),
				method("ListSets"),
			},
		}},
	}, resolver)
}
