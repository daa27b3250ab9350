package matchmaking

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/oggyb/mentormatch/internal/db"
	apperr "github.com/oggyb/mentormatch/internal/errors"
	"github.com/oggyb/mentormatch/internal/httpx"
	"github.com/oggyb/mentormatch/internal/service/auth"
)

// Handler exposes matchmaking over HTTP.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts /matches/*. Callers must already be authenticated.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/matches", func(r chi.Router) {
		r.Get("/candidates", h.Candidates)
		r.Post("/swipe", h.Swipe)
		r.Get("/matched", h.Matched)
	})
}

func (h *Handler) Candidates(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		httpx.Error(w, r, apperr.ErrUnauthenticated)
		return
	}
	users, err := h.service.Candidates(r.Context(), identity.UserID)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	if users == nil {
		users = []db.User{}
	}
	httpx.Write(w, http.StatusOK, users)
}

func (h *Handler) Swipe(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		httpx.Error(w, r, apperr.ErrUnauthenticated)
		return
	}

	var in SwipeInput
	if err := httpx.Decode(w, r, &in); err != nil {
		httpx.Error(w, r, err)
		return
	}
	res, err := h.service.Swipe(r.Context(), identity.UserID, in)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.Write(w, http.StatusOK, res)
}

func (h *Handler) Matched(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		httpx.Error(w, r, apperr.ErrUnauthenticated)
		return
	}
	swipes, err := h.service.Matched(r.Context(), identity.UserID)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	if swipes == nil {
		swipes = []db.Swipe{}
	}
	httpx.Write(w, http.StatusOK, swipes)
}
