package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/oggyb/mentormatch/internal/db"
	"github.com/oggyb/mentormatch/internal/repository"
)

// setup in-memory DB
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		NowFunc:        func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.Migrate(database); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return database
}

func seedUsers(t *testing.T, database *gorm.DB, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		u := db.User{
			ID:           uint64(i),
			Name:         fmt.Sprintf("user%d", i),
			Email:        fmt.Sprintf("u%d@test.com", i),
			PasswordHash: "x",
			Role:         db.RoleStudent,
			Profile:      &db.Profile{Major: "CS"},
		}
		require.NoError(t, database.Create(&u).Error)
	}
}

func TestCreateAndFind(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	seedUsers(t, dbase, 2)
	repo := repository.NewSwipeRepository(dbase)

	missing, err := repo.Find(ctx, 1, 2)
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = repo.Create(ctx, 1, 2, db.StatusLiked)
	require.NoError(t, err)

	found, err := repo.Find(ctx, 1, 2)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, db.StatusLiked, found.Status)

	liked, err := repo.FindLiked(ctx, 1, 2)
	require.NoError(t, err)
	assert.NotNil(t, liked)
}

func TestCreate_RejectsDuplicatePair(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	seedUsers(t, dbase, 2)
	repo := repository.NewSwipeRepository(dbase)

	_, err := repo.Create(ctx, 1, 2, db.StatusLiked)
	require.NoError(t, err)

	_, err = repo.Create(ctx, 1, 2, db.StatusPassed)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestFindLiked_IgnoresPassed(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	seedUsers(t, dbase, 2)
	repo := repository.NewSwipeRepository(dbase)

	_, _ = repo.Create(ctx, 2, 1, db.StatusPassed)

	liked, err := repo.FindLiked(ctx, 2, 1)
	require.NoError(t, err)
	assert.Nil(t, liked)
}

func TestPromote_BothRowsOrNeither(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	seedUsers(t, dbase, 3)
	repo := repository.NewSwipeRepository(dbase)

	a, _ := repo.Create(ctx, 1, 2, db.StatusLiked)
	b, _ := repo.Create(ctx, 2, 1, db.StatusLiked)
	require.NoError(t, repo.Promote(ctx, a, b))
	assert.Equal(t, db.StatusMatched, a.Status)

	var rows []db.Swipe
	require.NoError(t, dbase.Order("id").Find(&rows).Error)
	for _, r := range rows {
		assert.Equal(t, db.StatusMatched, r.Status)
	}

	// a "passed" mirror must not be promoted, and the liked side must survive the rollback
	c, _ := repo.Create(ctx, 1, 3, db.StatusLiked)
	d, _ := repo.Create(ctx, 3, 1, db.StatusPassed)
	err := repo.Tx(ctx, func(tx *repository.SwipeRepository) error {
		return tx.Promote(ctx, c, d)
	})
	assert.ErrorIs(t, err, repository.ErrPromotionLost)

	again, _ := repo.Find(ctx, 1, 3)
	assert.Equal(t, db.StatusLiked, again.Status)
}

func TestLockPair_IsSymmetric(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewSwipeRepository(dbase)

	require.NoError(t, repo.LockPair(ctx, 5, 3))
	require.NoError(t, repo.LockPair(ctx, 3, 5))

	var locks []db.SwipePairLock
	require.NoError(t, dbase.Find(&locks).Error)
	require.Len(t, locks, 1)
	assert.Equal(t, uint64(3), locks[0].LowID)
	assert.Equal(t, uint64(5), locks[0].HighID)
}

func TestListCandidates(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	seedUsers(t, dbase, 5)
	repo := repository.NewSwipeRepository(dbase)

	_, _ = repo.Create(ctx, 1, 2, db.StatusLiked)
	_, _ = repo.Create(ctx, 1, 3, db.StatusPassed)
	// swipes by others on the actor do not hide them
	_, _ = repo.Create(ctx, 4, 1, db.StatusLiked)

	users, err := repo.ListCandidates(ctx, 1, 10)
	require.NoError(t, err)

	var ids []uint64
	for _, u := range users {
		ids = append(ids, u.ID)
		require.NotNil(t, u.Profile)
	}
	assert.Equal(t, []uint64{4, 5}, ids)

	capped, err := repo.ListCandidates(ctx, 5, 2)
	require.NoError(t, err)
	assert.Len(t, capped, 2)
}

func TestListMatched(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	seedUsers(t, dbase, 3)
	repo := repository.NewSwipeRepository(dbase)

	a, _ := repo.Create(ctx, 1, 2, db.StatusLiked)
	b, _ := repo.Create(ctx, 2, 1, db.StatusLiked)
	require.NoError(t, repo.Promote(ctx, a, b))
	_, _ = repo.Create(ctx, 1, 3, db.StatusLiked)

	matched, err := repo.ListMatched(ctx, 1)
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, uint64(2), matched[0].CandidateID)
	require.NotNil(t, matched[0].Candidate)
	require.NotNil(t, matched[0].Candidate.Profile)
	assert.Equal(t, "user2", matched[0].Candidate.Name)

	ids, err := repo.MatchedUserIDs(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1}, ids)
}
