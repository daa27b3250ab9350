package chat

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/oggyb/mentormatch/internal/app"
	"github.com/oggyb/mentormatch/internal/db"
	apperr "github.com/oggyb/mentormatch/internal/errors"
	"github.com/oggyb/mentormatch/internal/httpx"
	"github.com/oggyb/mentormatch/internal/service/auth"
)

// Registrar mounts /chat.
type Registrar struct {
	service *Service
}

func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{service: NewService(appCtx)}
}

func (r *Registrar) RegisterRoutes(router chi.Router) {
	router.Route("/chat", func(router chi.Router) {
		router.Get("/", r.conversations)
		router.Post("/", r.send)
		router.Get("/{userId}", r.thread)
	})
}

func (r *Registrar) conversations(w http.ResponseWriter, req *http.Request) {
	identity, ok := auth.IdentityFromContext(req.Context())
	if !ok {
		httpx.Error(w, req, apperr.ErrUnauthenticated)
		return
	}
	users, err := r.service.Conversations(req.Context(), identity.UserID)
	if err != nil {
		httpx.Error(w, req, err)
		return
	}
	if users == nil {
		users = []db.User{}
	}
	httpx.Write(w, http.StatusOK, users)
}

func (r *Registrar) thread(w http.ResponseWriter, req *http.Request) {
	identity, ok := auth.IdentityFromContext(req.Context())
	if !ok {
		httpx.Error(w, req, apperr.ErrUnauthenticated)
		return
	}
	otherID, err := httpx.URLParamID(req, "userId")
	if err != nil {
		httpx.Error(w, req, err)
		return
	}
	page, err := r.service.Thread(req.Context(), identity.UserID, otherID, req.URL.Query().Get("cursor"))
	if err != nil {
		httpx.Error(w, req, err)
		return
	}
	httpx.Write(w, http.StatusOK, page)
}

func (r *Registrar) send(w http.ResponseWriter, req *http.Request) {
	identity, ok := auth.IdentityFromContext(req.Context())
	if !ok {
		httpx.Error(w, req, apperr.ErrUnauthenticated)
		return
	}
	var in SendInput
	if err := httpx.Decode(w, req, &in); err != nil {
		httpx.Error(w, req, err)
		return
	}
	m, err := r.service.Send(req.Context(), identity.UserID, in)
	if err != nil {
		httpx.Error(w, req, err)
		return
	}
	httpx.Write(w, http.StatusCreated, m)
}
