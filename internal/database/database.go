package database

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gridgames-server/pkg/models"
)

// Connect opens a GORM connection for the given DSN and runs migrations.
// Postgres DSNs (postgres:// or postgresql://) use the postgres driver;
// anything else is treated as a sqlite path, which keeps local development
// and tests free of external services.
func Connect(dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	isSQLite := false

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open(dsn)
		isSQLite = true
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		// Creation timestamps are stored and served in UTC.
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if isSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to access sql.DB: %w", err)
		}
		// SQLite allows a single writer; one pooled connection serializes
		// transactions instead of surfacing SQLITE_BUSY to handlers.
		sqlDB.SetMaxOpenConns(1)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the schema for all persisted models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Session{}, &models.Move{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// IsPostgres reports whether db speaks the postgres dialect. Row locking
// clauses are only emitted for postgres.
func IsPostgres(db *gorm.DB) bool {
	return db.Dialector.Name() == "postgres"
}
