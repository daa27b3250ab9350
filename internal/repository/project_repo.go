package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oggyb/mentormatch/internal/db"
)

// ProjectRepository stores collaboration boards and their members.
type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(database *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: database}
}

// List returns every project, newest first, with owner and members.
func (r *ProjectRepository) List(ctx context.Context) ([]db.Project, error) {
	var projects []db.Project
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Members").
		Order("id DESC").
		Find(&projects).Error
	return projects, err
}

// FindByID loads one project with owner and members.
func (r *ProjectRepository) FindByID(ctx context.Context, id uint64) (*db.Project, error) {
	var p db.Project
	if err := r.db.WithContext(ctx).Preload("Owner").Preload("Members").Take(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts the project and makes the owner its first member.
func (r *ProjectRepository) Create(ctx context.Context, p *db.Project) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Members", "Owner").Create(p).Error; err != nil {
			return err
		}
		return addMember(tx, p.ID, p.OwnerID)
	})
}

// AddMember joins userID to the project. Joining twice is a no-op.
func (r *ProjectRepository) AddMember(ctx context.Context, projectID, userID uint64) error {
	return addMember(r.db.WithContext(ctx), projectID, userID)
}

func addMember(tx *gorm.DB, projectID, userID uint64) error {
	member := db.ProjectMember{ProjectID: projectID, UserID: userID}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&member).Error
}
