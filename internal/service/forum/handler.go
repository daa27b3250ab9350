package forum

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/oggyb/mentormatch/internal/app"
	"github.com/oggyb/mentormatch/internal/db"
	apperr "github.com/oggyb/mentormatch/internal/errors"
	"github.com/oggyb/mentormatch/internal/httpx"
	"github.com/oggyb/mentormatch/internal/service/auth"
)

// Registrar mounts /forum.
type Registrar struct {
	service *Service
}

func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{service: NewService(appCtx)}
}

func (r *Registrar) RegisterRoutes(router chi.Router) {
	router.Route("/forum", func(router chi.Router) {
		router.Get("/", r.list)
		router.Post("/", r.createPost)
		router.Get("/{id}", r.show)
		router.Post("/{id}/comments", r.createComment)
	})
}

func (r *Registrar) list(w http.ResponseWriter, req *http.Request) {
	posts, err := r.service.Posts(req.Context())
	if err != nil {
		httpx.Error(w, req, err)
		return
	}
	if posts == nil {
		posts = []db.ForumPost{}
	}
	httpx.Write(w, http.StatusOK, posts)
}

func (r *Registrar) show(w http.ResponseWriter, req *http.Request) {
	id, err := httpx.URLParamID(req, "id")
	if err != nil {
		httpx.Error(w, req, err)
		return
	}
	post, err := r.service.Post(req.Context(), id)
	if err != nil {
		httpx.Error(w, req, err)
		return
	}
	httpx.Write(w, http.StatusOK, post)
}

func (r *Registrar) createPost(w http.ResponseWriter, req *http.Request) {
	identity, ok := auth.IdentityFromContext(req.Context())
	if !ok {
		httpx.Error(w, req, apperr.ErrUnauthenticated)
		return
	}
	var in PostInput
	if err := httpx.Decode(w, req, &in); err != nil {
		httpx.Error(w, req, err)
		return
	}
	post, err := r.service.CreatePost(req.Context(), identity.UserID, in)
	if err != nil {
		httpx.Error(w, req, err)
		return
	}
	httpx.Write(w, http.StatusCreated, post)
}

func (r *Registrar) createComment(w http.ResponseWriter, req *http.Request) {
	identity, ok := auth.IdentityFromContext(req.Context())
	if !ok {
		httpx.Error(w, req, apperr.ErrUnauthenticated)
		return
	}
	postID, err := httpx.URLParamID(req, "id")
	if err != nil {
		httpx.Error(w, req, err)
		return
	}
	var in CommentInput
	if err := httpx.Decode(w, req, &in); err != nil {
		httpx.Error(w, req, err)
		return
	}
	c, err := r.service.CreateComment(req.Context(), postID, identity.UserID, in)
	if err != nil {
		httpx.Error(w, req, err)
		return
	}
	httpx.Write(w, http.StatusCreated, c)
}
