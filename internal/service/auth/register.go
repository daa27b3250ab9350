package auth

import "github.com/go-chi/chi/v5"

// Registrar ties the auth endpoints into the HTTP router
type Registrar struct {
	handler *Handler
}

// NewRegistrar creates a Registrar around an existing Service, which the
// router also uses for its authentication middleware
func NewRegistrar(service *Service) *Registrar {
	return &Registrar{handler: NewHandler(service)}
}

func (r *Registrar) RegisterPublicRoutes(router chi.Router) { r.handler.PublicRoutes(router) }

func (r *Registrar) RegisterRoutes(router chi.Router) { r.handler.Routes(router) }
