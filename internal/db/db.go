package db

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/oggyb/mentormatch/internal/config"
	applog "github.com/oggyb/mentormatch/internal/logger"
)

// NewDB initializes the database connection for the configured driver.
//
// Drivers:
//   - mysql  (default) uses cfg.DB.DSN
//   - sqlite uses cfg.DB.SQLitePath with immediate transactions and a busy timeout,
//     so concurrent writers queue instead of failing
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DB.Driver {
	case "sqlite":
		dialector = sqlite.Open(SQLiteDSN(cfg.DB.SQLitePath))
	case "mysql", "":
		dialector = mysql.Open(cfg.DB.DSN)
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.DB.Driver)
	}

	level := logger.Silent
	if applog.IsDebug() {
		level = logger.Info // log SQL queries
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// SQLiteDSN builds a go-sqlite3 DSN tuned for concurrent swipe transactions.
func SQLiteDSN(path string) string {
	return fmt.Sprintf("file:%s?_busy_timeout=5000&_txlock=immediate&_foreign_keys=on", path)
}

// Migrate ensures schema is in sync with models.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&Project{}, "Members", &ProjectMember{}); err != nil {
		return fmt.Errorf("failed to set up project members: %w", err)
	}
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
