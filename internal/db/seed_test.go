package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.db")
	database, err := gorm.Open(sqlite.Open(SQLiteDSN(path)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(database))
	return database
}

func count(t *testing.T, database *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, database.Model(model).Count(&n).Error)
	return n
}

func TestSeedTestData(t *testing.T) {
	database := setupSeedDB(t)
	require.NoError(t, SeedTestData(database))

	assert.Equal(t, int64(12), count(t, database, &User{}))
	assert.Equal(t, int64(12), count(t, database, &Profile{}))
	assert.Equal(t, int64(6), count(t, database, &Project{}))
	assert.Equal(t, int64(6), count(t, database, &ForumPost{}))
	assert.Equal(t, int64(11), count(t, database, &Message{}))
	assert.Equal(t, int64(12), count(t, database, &Swipe{}))

	var mentors int64
	require.NoError(t, database.Model(&User{}).Where("role = ?", RoleMentor).Count(&mentors).Error)
	assert.Equal(t, int64(5), mentors)

	var testUser User
	require.NoError(t, database.Where("email = ?", "test@example.com").First(&testUser).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(testUser.PasswordHash), []byte(SeedPassword)))

	// every matched row has its mirror
	var matched []Swipe
	require.NoError(t, database.Where("status = ?", StatusMatched).Find(&matched).Error)
	assert.Len(t, matched, 8)
	for _, s := range matched {
		var mirror Swipe
		require.NoError(t, database.Where("actor_id = ? AND candidate_id = ?", s.CandidateID, s.ActorID).First(&mirror).Error)
		assert.Equal(t, StatusMatched, mirror.Status)
	}
}

func TestSeedTestData_Idempotent(t *testing.T) {
	database := setupSeedDB(t)
	require.NoError(t, SeedTestData(database))
	require.NoError(t, SeedTestData(database))

	assert.Equal(t, int64(12), count(t, database, &User{}))

	var members int64
	require.NoError(t, database.Table("project_members").Count(&members).Error)
	assert.Equal(t, int64(14), members)
}
