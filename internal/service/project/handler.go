package project

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/oggyb/mentormatch/internal/app"
	"github.com/oggyb/mentormatch/internal/db"
	apperr "github.com/oggyb/mentormatch/internal/errors"
	"github.com/oggyb/mentormatch/internal/httpx"
	"github.com/oggyb/mentormatch/internal/service/auth"
)

// Registrar mounts /projects.
type Registrar struct {
	service *Service
}

func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{service: NewService(appCtx)}
}

func (r *Registrar) RegisterRoutes(router chi.Router) {
	router.Route("/projects", func(router chi.Router) {
		router.Get("/", r.list)
		router.Post("/", r.create)
		router.Post("/{project}/join", r.join)
	})
}

func (r *Registrar) list(w http.ResponseWriter, req *http.Request) {
	projects, err := r.service.List(req.Context())
	if err != nil {
		httpx.Error(w, req, err)
		return
	}
	if projects == nil {
		projects = []db.Project{}
	}
	httpx.Write(w, http.StatusOK, projects)
}

func (r *Registrar) create(w http.ResponseWriter, req *http.Request) {
	identity, ok := auth.IdentityFromContext(req.Context())
	if !ok {
		httpx.Error(w, req, apperr.ErrUnauthenticated)
		return
	}
	var in CreateInput
	if err := httpx.Decode(w, req, &in); err != nil {
		httpx.Error(w, req, err)
		return
	}
	p, err := r.service.Create(req.Context(), identity.UserID, in)
	if err != nil {
		httpx.Error(w, req, err)
		return
	}
	httpx.Write(w, http.StatusCreated, p)
}

func (r *Registrar) join(w http.ResponseWriter, req *http.Request) {
	identity, ok := auth.IdentityFromContext(req.Context())
	if !ok {
		httpx.Error(w, req, apperr.ErrUnauthenticated)
		return
	}
	projectID, err := httpx.URLParamID(req, "project")
	if err != nil {
		httpx.Error(w, req, err)
		return
	}
	p, err := r.service.Join(req.Context(), projectID, identity.UserID)
	if err != nil {
		httpx.Error(w, req, err)
		return
	}
	httpx.Write(w, http.StatusOK, map[string]any{
		"message": "Joined project successfully",
		"project": p,
	})
}
