package server

import (
	"context"
	"fmt"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/oggyb/mentormatch/internal/config"
	"github.com/oggyb/mentormatch/internal/logger"
)

// NewGRPCServer builds a gRPC server with the given interceptors and registers all services
func NewGRPCServer(interceptors []grpc.UnaryServerInterceptor, registrars ...Registrar) *grpc.Server {
	chain := append([]grpc.UnaryServerInterceptor{loggingInterceptor}, interceptors...)
	grpcServer := grpc.NewServer(grpc.ChainUnaryInterceptor(chain...))

	for _, r := range registrars {
		r.Register(grpcServer)
	}

	// enable reflection for easier debugging with grpcurl
	reflection.Register(grpcServer)
	return grpcServer
}

// ServeGRPC listens on the configured address and serves until the server stops
func ServeGRPC(cfg *config.Config, grpcServer *grpc.Server) error {
	addr := fmt.Sprintf("%s:%s", cfg.GRPC.Host, cfg.GRPC.Port)
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return grpcServer.Serve(lis)
}

func loggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	logger.FromContext(ctx).Info("grpc_request",
		"method", info.FullMethod,
		"code", status.Code(err).String(),
		logger.Since(start),
	)
	return resp, err
}
