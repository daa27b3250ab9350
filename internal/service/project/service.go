package project

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/oggyb/mentormatch/internal/app"
	"github.com/oggyb/mentormatch/internal/db"
	apperr "github.com/oggyb/mentormatch/internal/errors"
	"github.com/oggyb/mentormatch/internal/repository"
	"github.com/oggyb/mentormatch/internal/validation"
)

const deadlineLayout = "2006-01-02"

// CreateInput describes a new collaboration board.
type CreateInput struct {
	Title       string   `json:"title" validate:"required,max=255"`
	Description string   `json:"description" validate:"max=5000"`
	Deadline    string   `json:"deadline" validate:"omitempty,datetime=2006-01-02"`
	Tags        []string `json:"tags" validate:"max=10,dive,required,max=32"`
}

type Service struct {
	appCtx   *app.AppContext
	projects *repository.ProjectRepository
}

func NewService(appCtx *app.AppContext) *Service {
	return &Service{appCtx: appCtx, projects: repository.NewProjectRepository(appCtx.DB)}
}

// List returns every project, newest first, with owner and members.
func (s *Service) List(ctx context.Context) ([]db.Project, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// Create stores a project owned by ownerID; the owner joins it immediately.
func (s *Service) Create(ctx context.Context, ownerID uint64, in CreateInput) (*db.Project, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := validation.Struct(&in); err != nil {
		return nil, err
	}

	p := &db.Project{
		Title:       in.Title,
		Description: in.Description,
		Tags:        in.Tags,
		OwnerID:     ownerID,
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if in.Deadline != "" {
		d, err := time.Parse(deadlineLayout, in.Deadline)
		if err != nil {
			return nil, apperr.Invalid("deadline", "deadline must match the format 2006-01-02")
		}
		p.Deadline = &d
	}

	if err := s.projects.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	s.appCtx.Logger.Info("project created", "project_id", p.ID, "owner", ownerID)
	return s.projects.FindByID(ctx, p.ID)
}

// Join adds userID to the project. Joining twice is a no-op.
func (s *Service) Join(ctx context.Context, projectID, userID uint64) (*db.Project, error) {
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	if err := s.projects.AddMember(ctx, projectID, userID); err != nil {
		return nil, fmt.Errorf("join project: %w", err)
	}
	return s.projects.FindByID(ctx, projectID)
}
