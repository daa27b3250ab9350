// Package apptest builds a fully wired AppContext for tests: a temp-file
// SQLite database and a miniredis-backed session store.
package apptest

import (
	"fmt"
	"io"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/oggyb/mentormatch/internal/app"
	"github.com/oggyb/mentormatch/internal/config"
	"github.com/oggyb/mentormatch/internal/db"
	"github.com/oggyb/mentormatch/internal/logger"
	"github.com/oggyb/mentormatch/internal/session"
)

// Password is the plain-text password of every user made by SeedUsers.
const Password = "password"

// New returns an AppContext backed by fresh stores that are closed on cleanup.
func New(t *testing.T) *app.AppContext {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	cfg := config.New()
	cfg.DB.Driver = "sqlite"
	cfg.DB.SQLitePath = filepath.Join(t.TempDir(), "test.db")
	cfg.Redis.Addr = mr.Addr()
	cfg.Auth.JWTSecret = "test-secret"

	database, err := db.NewDB(cfg)
	require.NoError(t, err)
	sqlDB, err := database.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	sessions := session.NewRedisStore(cfg)
	t.Cleanup(func() { _ = sessions.Close() })

	logger.SetOutput(io.Discard)
	return app.New(cfg, database, sessions, logger.L())
}

// SeedUsers inserts users 1..n named userN with email uN@test.com.
// Odd ids are mentors, even ids are students.
func SeedUsers(t *testing.T, database *gorm.DB, n int) []db.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	require.NoError(t, err)

	users := make([]db.User, 0, n)
	for i := 1; i <= n; i++ {
		role := db.RoleStudent
		if i%2 == 1 {
			role = db.RoleMentor
		}
		u := db.User{
			ID:           uint64(i),
			Name:         fmt.Sprintf("user%d", i),
			Email:        fmt.Sprintf("u%d@test.com", i),
			PasswordHash: string(hash),
			Role:         role,
			Profile:      &db.Profile{Major: "CS", Skills: "Go"},
		}
		require.NoError(t, database.Create(&u).Error)
		users = append(users, u)
	}
	return users
}
