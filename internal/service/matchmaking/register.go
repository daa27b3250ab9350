package matchmaking

import (
	"github.com/go-chi/chi/v5"
	"google.golang.org/grpc"

	"github.com/oggyb/mentormatch/internal/app"
)

// Registrar ties the matchmaking service into the gRPC server and the HTTP router
type Registrar struct {
	appCtx  *app.AppContext
	service *Service
}

// NewRegistrar creates a new Registrar for the matchmaking service
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx, service: NewService(appCtx)}
}

// Register attaches the Matchmaking implementation to the gRPC server
func (r *Registrar) Register(s *grpc.Server) {
	s.RegisterService(&ServiceDesc, NewGRPCServer(r.service))
}

// RegisterRoutes mounts the authenticated HTTP routes
func (r *Registrar) RegisterRoutes(router chi.Router) {
	NewHandler(r.service).Routes(router)
}
