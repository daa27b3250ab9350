package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oggyb/mentormatch/internal/db"
)

// ErrPromotionLost is returned when a promotion updated fewer than both rows.
// The surrounding transaction rolls back, so neither row changes.
var ErrPromotionLost = errors.New("mutual match promotion lost a row")

// SwipeRepository provides data access methods for the Swipe model.
// It encapsulates all queries related to likes/passes/matches between users.
type SwipeRepository struct {
	db *gorm.DB
}

// NewSwipeRepository creates a new repository bound to the given DB connection.
func NewSwipeRepository(database *gorm.DB) *SwipeRepository {
	return &SwipeRepository{db: database}
}

// Tx runs fn inside a retried transaction with a repository bound to it.
func (r *SwipeRepository) Tx(ctx context.Context, fn func(tx *SwipeRepository) error) error {
	return WithRetryTx(ctx, r.db, func(tx *gorm.DB) error {
		return fn(&SwipeRepository{db: tx})
	})
}

// LockPair takes the row lock that serializes swipes between a and b.
//
// Behavior:
//   - The lock row is keyed by (min, max) so A→B and B→A contend on the same row.
//   - Swipes between other pairs never touch it.
//   - On SQLite the FOR UPDATE clause is dropped; immediate transactions serialize writers instead.
func (r *SwipeRepository) LockPair(ctx context.Context, a, b uint64) error {
	low, high := a, b
	if low > high {
		low, high = high, low
	}

	lock := db.SwipePairLock{LowID: low, HighID: high}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&lock).Error; err != nil {
		return fmt.Errorf("create pair lock: %w", err)
	}

	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("low_id = ? AND high_id = ?", low, high).
		Take(&lock).Error; err != nil {
		return fmt.Errorf("lock pair: %w", err)
	}
	return nil
}

// Find returns the swipe actor → candidate, or nil when there is none.
func (r *SwipeRepository) Find(ctx context.Context, actorID, candidateID uint64) (*db.Swipe, error) {
	var s db.Swipe
	err := r.db.WithContext(ctx).
		Where("actor_id = ? AND candidate_id = ?", actorID, candidateID).
		Order("id DESC").
		Take(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// FindLiked returns the swipe actor → candidate only while it is still "liked".
// Used by the promoter to detect reciprocity.
func (r *SwipeRepository) FindLiked(ctx context.Context, actorID, candidateID uint64) (*db.Swipe, error) {
	s, err := r.Find(ctx, actorID, candidateID)
	if err != nil || s == nil || s.Status != db.StatusLiked {
		return nil, err
	}
	return s, nil
}

// Create inserts a new directional swipe.
func (r *SwipeRepository) Create(ctx context.Context, actorID, candidateID uint64, status db.SwipeStatus) (*db.Swipe, error) {
	s := db.Swipe{
		ActorID:     actorID,
		CandidateID: candidateID,
		Status:      status,
	}
	if err := r.db.WithContext(ctx).Create(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// Promote flips both rows from "liked" to "matched".
//
// Behavior:
//   - Only rows still at "liked" are touched.
//   - Anything other than exactly two updated rows returns ErrPromotionLost,
//     which must roll back the caller's transaction.
func (r *SwipeRepository) Promote(ctx context.Context, first, second *db.Swipe) error {
	res := r.db.WithContext(ctx).
		Model(&db.Swipe{}).
		Where("id IN ? AND status = ?", []uint64{first.ID, second.ID}, db.StatusLiked).
		Update("status", db.StatusMatched)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected != 2 {
		return fmt.Errorf("%w: updated %d", ErrPromotionLost, res.RowsAffected)
	}
	first.Status = db.StatusMatched
	second.Status = db.StatusMatched
	return nil
}

// ListCandidates returns users the actor has not swiped on yet, excluding the actor.
//
// Behavior:
//   - Natural (id) order, no ranking.
//   - Profile and owned projects are preloaded for the candidate card.
//
// Example:
//
//	repo.ListCandidates(ctx, 42, 10) // up to 10 fresh users for user 42
func (r *SwipeRepository) ListCandidates(ctx context.Context, actorID uint64, limit int) ([]db.User, error) {
	swiped := r.db.Model(&db.Swipe{}).
		Select("candidate_id").
		Where("actor_id = ?", actorID)

	var users []db.User
	err := r.db.WithContext(ctx).
		Preload("Profile").
		Preload("ProjectsOwned").
		Where("id <> ? AND id NOT IN (?)", actorID, swiped).
		Order("id ASC").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// ListMatched returns the actor's swipes that reached "matched", with the candidate profile.
func (r *SwipeRepository) ListMatched(ctx context.Context, actorID uint64) ([]db.Swipe, error) {
	var swipes []db.Swipe
	err := r.db.WithContext(ctx).
		Preload("Candidate.Profile").
		Where("actor_id = ? AND status = ?", actorID, db.StatusMatched).
		Order("id ASC").
		Find(&swipes).Error
	if err != nil {
		return nil, err
	}
	return swipes, nil
}

// MatchedUserIDs returns the ids of every user mutually matched with actorID.
func (r *SwipeRepository) MatchedUserIDs(ctx context.Context, actorID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.db.WithContext(ctx).
		Model(&db.Swipe{}).
		Where("actor_id = ? AND status = ?", actorID, db.StatusMatched).
		Pluck("candidate_id", &ids).Error
	return ids, err
}
