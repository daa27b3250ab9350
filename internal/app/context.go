package app

import (
	"log/slog"

	"gorm.io/gorm"

	"github.com/oggyb/mentormatch/internal/config"
	"github.com/oggyb/mentormatch/internal/session"
)

// AppContext holds shared dependencies (DB, Redis sessions, Logger, Config)
type AppContext struct {
	Config   *config.Config
	DB       *gorm.DB
	Sessions *session.RedisStore
	Logger   *slog.Logger
}

// New creates a new AppContext
func New(cfg *config.Config, db *gorm.DB, sessions *session.RedisStore, logger *slog.Logger) *AppContext {
	return &AppContext{
		Config:   cfg,
		DB:       db,
		Sessions: sessions,
		Logger:   logger,
	}
}
