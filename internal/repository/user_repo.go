package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oggyb/mentormatch/internal/db"
)

// UserRepository is the user directory and profile store.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{db: database}
}

// Create inserts a user together with an empty profile.
// A duplicate email surfaces as gorm.ErrDuplicatedKey when TranslateError is on.
func (r *UserRepository) Create(ctx context.Context, u *db.User) error {
	if u.Profile == nil {
		u.Profile = &db.Profile{}
	}
	return r.db.WithContext(ctx).Create(u).Error
}

// FindByID loads a user with its profile.
func (r *UserRepository) FindByID(ctx context.Context, id uint64) (*db.User, error) {
	var u db.User
	if err := r.db.WithContext(ctx).Preload("Profile").Take(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByEmail loads a user by login email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*db.User, error) {
	var u db.User
	if err := r.db.WithContext(ctx).Preload("Profile").Where("email = ?", email).Take(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// Exists reports whether a user with id exists.
func (r *UserRepository) Exists(ctx context.Context, id uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&db.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// EmailTaken reports whether email is already registered.
func (r *UserRepository) EmailTaken(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

// ListByIDs loads users with profiles, ordered by id.
func (r *UserRepository) ListByIDs(ctx context.Context, ids []uint64) ([]db.User, error) {
	if len(ids) == 0 {
		return []db.User{}, nil
	}
	var users []db.User
	err := r.db.WithContext(ctx).Preload("Profile").Where("id IN ?", ids).Order("id ASC").Find(&users).Error
	return users, err
}

// UpsertProfile creates or overwrites the free-text profile of userID.
func (r *UserRepository) UpsertProfile(ctx context.Context, userID uint64, p db.Profile) (*db.Profile, error) {
	p.ID = 0
	p.UserID = userID
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"bio", "skills", "interests", "major", "updated_at"}),
		}).
		Create(&p).Error
	if err != nil {
		return nil, err
	}

	var stored db.Profile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Take(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}
