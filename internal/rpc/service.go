// Package rpc exposes a server.Session over gRPC. Messages are protobuf
// well-known types, so the service needs no generated stubs.
package rpc

import (
	"context"
	"errors"
	"math"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "slotbandit.v1.Casino"

const (
	methodStart    = "/" + ServiceName + "/Start"
	methodPlay     = "/" + ServiceName + "/Play"
	methodScore    = "/" + ServiceName + "/Score"
	methodReset    = "/" + ServiceName + "/Reset"
	methodProfiles = "/" + ServiceName + "/Profiles"
)

// Struct keys used by Start and Score.
const (
	keyMaxTrials = "max_trials"
	keyScore     = "score"
	keyPlayCount = "play_count"
	keyMean      = "mean"
)

// CasinoServer is the server side of slotbandit.v1.Casino.
type CasinoServer interface {
	Start(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	Play(context.Context, *wrapperspb.UInt32Value) (*wrapperspb.DoubleValue, error)
	Score(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	Reset(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
	Profiles(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
}

// ServiceDesc describes slotbandit.v1.Casino for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CasinoServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Start", Handler: unary(methodStart, func() *structpb.Struct { return new(structpb.Struct) }, CasinoServer.Start)},
		{MethodName: "Play", Handler: unary(methodPlay, func() *wrapperspb.UInt32Value { return new(wrapperspb.UInt32Value) }, CasinoServer.Play)},
		{MethodName: "Score", Handler: unary(methodScore, newEmpty, CasinoServer.Score)},
		{MethodName: "Reset", Handler: unary(methodReset, newEmpty, CasinoServer.Reset)},
		{MethodName: "Profiles", Handler: unary(methodProfiles, newEmpty, CasinoServer.Profiles)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "slotbandit/v1/casino.proto",
}

// Register attaches srv to s.
func Register(s grpc.ServiceRegistrar, srv CasinoServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func newEmpty() *emptypb.Empty { return new(emptypb.Empty) }

// unary builds the method handler protoc-gen-go-grpc would generate for one
// unary call.
func unary[Req, Resp proto.Message](
	fullMethod string,
	newReq func() Req,
	call func(CasinoServer, context.Context, Req) (Resp, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := newReq()
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(CasinoServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(CasinoServer), ctx, req.(Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var errBadMaxTrials = errors.New("max_trials must be a non-negative integer")

// maxTrials reads the optional max_trials field of a Start request.
func maxTrials(in *structpb.Struct) (int, bool, error) {
	v, ok := in.GetFields()[keyMaxTrials]
	if !ok {
		return 0, false, nil
	}
	if _, isNull := v.GetKind().(*structpb.Value_NullValue); isNull {
		return 0, false, nil
	}
	num, isNum := v.GetKind().(*structpb.Value_NumberValue)
	if !isNum {
		return 0, false, errBadMaxTrials
	}
	n := num.NumberValue
	if n < 0 || n != math.Trunc(n) || n > math.MaxInt32 {
		return 0, false, errBadMaxTrials
	}
	return int(n), true, nil
}
