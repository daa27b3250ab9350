package server

import (
	"github.com/go-chi/chi/v5"
	"google.golang.org/grpc"
)

// Registrar is a common interface for all gRPC service registrars
type Registrar interface {
	Register(s *grpc.Server)
}

// RouteRegistrar mounts HTTP routes that require an authenticated caller
type RouteRegistrar interface {
	RegisterRoutes(r chi.Router)
}

// PublicRouteRegistrar mounts HTTP routes reachable without a token
type PublicRouteRegistrar interface {
	RegisterPublicRoutes(r chi.Router)
}
