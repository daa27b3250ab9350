package auth

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	apperr "github.com/oggyb/mentormatch/internal/errors"
	"github.com/oggyb/mentormatch/internal/logger"
)

// UnaryServerInterceptor authenticates every unary call from its
// "authorization: Bearer <token>" metadata.
func UnaryServerInterceptor(service *Service) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		md, _ := metadata.FromIncomingContext(ctx)
		var raw string
		if values := md.Get("authorization"); len(values) > 0 {
			raw = values[0]
		}

		token, ok := ExtractBearerToken(raw)
		if !ok {
			return nil, apperr.Map(apperr.ErrUnauthenticated)
		}
		identity, err := service.Authenticate(ctx, token)
		if err != nil {
			return nil, apperr.Map(err)
		}
		ctx = logger.WithAttrs(WithIdentity(ctx, identity), "user_id", identity.UserID)
		return handler(ctx, req)
	}
}
