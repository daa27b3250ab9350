package profile

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/oggyb/mentormatch/internal/app"
	"github.com/oggyb/mentormatch/internal/db"
	apperr "github.com/oggyb/mentormatch/internal/errors"
	"github.com/oggyb/mentormatch/internal/httpx"
	"github.com/oggyb/mentormatch/internal/repository"
	"github.com/oggyb/mentormatch/internal/service/auth"
	"github.com/oggyb/mentormatch/internal/validation"
)

// UpdateInput replaces the caller's free-text profile.
type UpdateInput struct {
	Bio       string `json:"bio" validate:"max=2000"`
	Skills    string `json:"skills" validate:"max=1000"`
	Interests string `json:"interests" validate:"max=1000"`
	Major     string `json:"major" validate:"max=128"`
}

type Service struct {
	appCtx *app.AppContext
	users  *repository.UserRepository
}

func NewService(appCtx *app.AppContext) *Service {
	return &Service{appCtx: appCtx, users: repository.NewUserRepository(appCtx.DB)}
}

// Update upserts the profile owned by userID. Only the owner can reach it.
func (s *Service) Update(ctx context.Context, userID uint64, in UpdateInput) (*db.Profile, error) {
	if err := validation.Struct(&in); err != nil {
		return nil, err
	}
	if _, err := s.users.FindByID(ctx, userID); errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrUnauthenticated
	} else if err != nil {
		return nil, err
	}

	p, err := s.users.UpsertProfile(ctx, userID, db.Profile{
		Bio:       strings.TrimSpace(in.Bio),
		Skills:    strings.TrimSpace(in.Skills),
		Interests: strings.TrimSpace(in.Interests),
		Major:     strings.TrimSpace(in.Major),
	})
	if err != nil {
		return nil, err
	}
	s.appCtx.Logger.Debug("profile updated", "user_id", userID)
	return p, nil
}

// Registrar mounts POST /profile.
type Registrar struct {
	service *Service
}

func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{service: NewService(appCtx)}
}

func (r *Registrar) RegisterRoutes(router chi.Router) {
	router.Post("/profile", r.update)
}

func (r *Registrar) update(w http.ResponseWriter, req *http.Request) {
	identity, ok := auth.IdentityFromContext(req.Context())
	if !ok {
		httpx.Error(w, req, apperr.ErrUnauthenticated)
		return
	}
	var in UpdateInput
	if err := httpx.Decode(w, req, &in); err != nil {
		httpx.Error(w, req, err)
		return
	}
	p, err := r.service.Update(req.Context(), identity.UserID, in)
	if err != nil {
		httpx.Error(w, req, err)
		return
	}
	httpx.Write(w, http.StatusOK, map[string]any{
		"message": "Profile updated successfully",
		"profile": p,
	})
}
