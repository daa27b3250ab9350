package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/oggyb/mentormatch/internal/app"
	"github.com/oggyb/mentormatch/internal/db"
	apperr "github.com/oggyb/mentormatch/internal/errors"
	"github.com/oggyb/mentormatch/internal/metrics"
	"github.com/oggyb/mentormatch/internal/repository"
	"github.com/oggyb/mentormatch/internal/session"
	"github.com/oggyb/mentormatch/internal/validation"
)

var (
	ErrInvalidToken       = fmt.Errorf("%w: invalid access token", apperr.ErrUnauthenticated)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", apperr.ErrUnauthenticated)
)

// SessionStore keeps the server-side half of every issued token.
type SessionStore interface {
	Create(ctx context.Context, sess session.Session) error
	Get(ctx context.Context, sid string) (session.Session, error)
	Delete(ctx context.Context, sid string) error
}

type RegisterInput struct {
	Name                 string `json:"name" validate:"required,max=128"`
	Email                string `json:"email" validate:"required,email,max=128"`
	Password             string `json:"password" validate:"required,min=8,max=72"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
	Role                 string `json:"role" validate:"required,oneof=mentor student"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Result is returned by register and login.
type Result struct {
	User      *db.User  `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Service handles registration, password login and bearer sessions.
type Service struct {
	appCtx   *app.AppContext
	users    *repository.UserRepository
	tokens   *JWTManager
	sessions SessionStore
}

// NewService builds the auth service from AppContext.
// Dependencies include:
//   - DB connection (via UserRepository)
//   - Redis session store
//   - JWT secret and session TTL from config
func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:   appCtx,
		users:    repository.NewUserRepository(appCtx.DB),
		tokens:   NewJWTManager(appCtx.Config.Auth.JWTSecret, appCtx.Config.Auth.SessionTTL),
		sessions: appCtx.Sessions,
	}
}

// Register creates a user with an empty profile and signs them in.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Result, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Struct(&in); err != nil {
		return nil, err
	}

	taken, err := s.users.EmailTaken(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Invalid("email", "email has already been taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &db.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         db.Role(in.Role),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Invalid("email", "email has already been taken")
		}
		return nil, err
	}

	s.appCtx.Logger.Info("user registered", "user_id", user.ID, "role", user.Role)
	return s.issue(ctx, user)
}

// Login checks the password and opens a new session.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, in LoginInput) (*Result, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validation.Struct(&in); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, in.Email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		metrics.RecordLogin(false)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		metrics.RecordLogin(false)
		s.appCtx.Logger.Debug("login rejected", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	metrics.RecordLogin(true)
	return s.issue(ctx, user)
}

// Logout revokes the caller's current session only.
func (s *Service) Logout(ctx context.Context, identity Identity) error {
	return s.sessions.Delete(ctx, identity.SID)
}

// Authenticate resolves a bearer token to an Identity.
// The token must verify and its session must still exist.
func (s *Service) Authenticate(ctx context.Context, raw string) (Identity, error) {
	claims, err := s.tokens.Parse(raw)
	if err != nil {
		return Identity{}, err
	}

	sess, err := s.sessions.Get(ctx, claims.SID)
	if errors.Is(err, session.ErrNotFound) {
		return Identity{}, ErrInvalidToken
	}
	if err != nil {
		return Identity{}, fmt.Errorf("load session: %w", err)
	}
	if sess.UserID != claims.UserID {
		return Identity{}, ErrInvalidToken
	}

	return Identity{UserID: claims.UserID, SID: claims.SID}, nil
}

// CurrentUser returns the caller with their profile.
func (s *Service) CurrentUser(ctx context.Context, identity Identity) (*db.User, error) {
	user, err := s.users.FindByID(ctx, identity.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// session outlived its user
		return nil, ErrInvalidToken
	}
	return user, err
}

func (s *Service) issue(ctx context.Context, user *db.User) (*Result, error) {
	sid := uuid.NewString()
	token, expiresAt, err := s.tokens.Generate(user.ID, sid)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Create(ctx, session.Session{ID: sid, UserID: user.ID, ExpiresAt: expiresAt}); err != nil {
		return nil, err
	}
	return &Result{User: user, Token: token, ExpiresAt: expiresAt}, nil
}
