package matchmaking

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	apperr "github.com/oggyb/mentormatch/internal/errors"
	"github.com/oggyb/mentormatch/internal/service/auth"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "mentormatch.matchmaking.v1.Matchmaking"

// MatchmakingServer is the gRPC surface of the matchmaking service.
// Payloads use protobuf well-known types and carry the same JSON shapes as
// the REST API.
type MatchmakingServer interface {
	ListCandidates(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	Swipe(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListMatched(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
}

// ServiceDesc describes the Matchmaking service for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*MatchmakingServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListCandidates", Handler: listCandidatesHandler},
		{MethodName: "Swipe", Handler: swipeHandler},
		{MethodName: "ListMatched", Handler: listMatchedHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "mentormatch/matchmaking/v1/matchmaking.proto",
}

func listCandidatesHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MatchmakingServer).ListCandidates(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/ListCandidates"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MatchmakingServer).ListCandidates(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func swipeHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MatchmakingServer).Swipe(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/Swipe"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MatchmakingServer).Swipe(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func listMatchedHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MatchmakingServer).ListMatched(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/ListMatched"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MatchmakingServer).ListMatched(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// grpcServer adapts Service to MatchmakingServer.
// The caller comes from the auth interceptor.
type grpcServer struct {
	service *Service
}

func NewGRPCServer(service *Service) MatchmakingServer {
	return &grpcServer{service: service}
}

func (g *grpcServer) ListCandidates(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	identity, ok := auth.IdentityFromContext(ctx)
	if !ok {
		return nil, apperr.Map(apperr.ErrUnauthenticated)
	}
	users, err := g.service.Candidates(ctx, identity.UserID)
	if err != nil {
		return nil, apperr.Map(err)
	}
	return toListValue(users)
}

func (g *grpcServer) Swipe(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	identity, ok := auth.IdentityFromContext(ctx)
	if !ok {
		return nil, apperr.Map(apperr.ErrUnauthenticated)
	}

	var in SwipeInput
	if err := fromStruct(req, &in); err != nil {
		return nil, apperr.Map(apperr.Invalid("body", "candidate_id must be an integer and direction a string"))
	}
	res, err := g.service.Swipe(ctx, identity.UserID, in)
	if err != nil {
		return nil, apperr.Map(err)
	}
	return structpb.NewStruct(map[string]interface{}{
		"message": res.Message,
		"matched": res.Matched,
	})
}

func (g *grpcServer) ListMatched(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	identity, ok := auth.IdentityFromContext(ctx)
	if !ok {
		return nil, apperr.Map(apperr.ErrUnauthenticated)
	}
	swipes, err := g.service.Matched(ctx, identity.UserID)
	if err != nil {
		return nil, apperr.Map(err)
	}
	return toListValue(swipes)
}

// toListValue converts a slice of models through their JSON form.
func toListValue(v interface{}) (*structpb.ListValue, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, apperr.Map(fmt.Errorf("encode response: %w", err))
	}
	var items []interface{}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, apperr.Map(fmt.Errorf("encode response: %w", err))
	}
	if items == nil {
		items = []interface{}{}
	}
	list, err := structpb.NewList(items)
	if err != nil {
		return nil, apperr.Map(fmt.Errorf("encode response: %w", err))
	}
	return list, nil
}

func fromStruct(s *structpb.Struct, dst interface{}) error {
	raw, err := json.Marshal(s.AsMap())
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}

// MatchmakingClient is a thin client for the Matchmaking service.
type MatchmakingClient struct {
	cc grpc.ClientConnInterface
}

func NewMatchmakingClient(cc grpc.ClientConnInterface) *MatchmakingClient {
	return &MatchmakingClient{cc: cc}
}

func (c *MatchmakingClient) ListCandidates(ctx context.Context, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/ListCandidates", &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *MatchmakingClient) Swipe(ctx context.Context, candidateID uint64, direction string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	in, err := structpb.NewStruct(map[string]interface{}{
		"candidate_id": float64(candidateID),
		"direction":    direction,
	})
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/Swipe", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *MatchmakingClient) ListMatched(ctx context.Context, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/ListMatched", &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
