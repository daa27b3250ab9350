package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	apperr "github.com/oggyb/mentormatch/internal/errors"
	"github.com/oggyb/mentormatch/internal/httpx"
	"github.com/oggyb/mentormatch/internal/logger"
)

// Handler exposes the auth service over HTTP.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// loginAttemptsPerMinute bounds password guessing per client IP.
const loginAttemptsPerMinute = 10

// PublicRoutes mounts the endpoints reachable without a token.
func (h *Handler) PublicRoutes(r chi.Router) {
	r.Post("/register", h.Register)
	r.With(httprate.LimitByIP(loginAttemptsPerMinute, time.Minute)).Post("/login", h.Login)
}

// Routes mounts the endpoints that need an authenticated caller.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/user", h.User)
	r.Post("/logout", h.Logout)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var in RegisterInput
	if err := httpx.Decode(w, r, &in); err != nil {
		httpx.Error(w, r, err)
		return
	}
	res, err := h.service.Register(r.Context(), in)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.Write(w, http.StatusCreated, res)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var in LoginInput
	if err := httpx.Decode(w, r, &in); err != nil {
		httpx.Error(w, r, err)
		return
	}
	res, err := h.service.Login(r.Context(), in)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.Write(w, http.StatusOK, res)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		httpx.Error(w, r, apperr.ErrUnauthenticated)
		return
	}
	if err := h.service.Logout(r.Context(), identity); err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.Write(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

func (h *Handler) User(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		httpx.Error(w, r, apperr.ErrUnauthenticated)
		return
	}
	user, err := h.service.CurrentUser(r.Context(), identity)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.Write(w, http.StatusOK, user)
}

// Middleware rejects requests without a live bearer session and stores the
// caller's Identity on the request context.
func Middleware(service *Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := ExtractBearerToken(r.Header.Get("Authorization"))
			if !ok {
				httpx.Error(w, r, apperr.ErrUnauthenticated)
				return
			}

			identity, err := service.Authenticate(r.Context(), raw)
			if err != nil {
				logger.FromContext(r.Context()).Debug("auth middleware validation failed", "err", err)
				httpx.Error(w, r, err)
				return
			}

			ctx := WithIdentity(r.Context(), identity)
			ctx = logger.WithAttrs(ctx, "user_id", identity.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ExtractBearerToken returns the token from an "Authorization: Bearer <t>" value.
func ExtractBearerToken(value string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(value), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}
