package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"github.com/sangkips/tillpoint/internal/config"
	"github.com/sangkips/tillpoint/internal/domain/entity"
	"github.com/sangkips/tillpoint/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open connects to the configured store. SQLite is the default embedded
// store; postgres is available for a back-office deployment.
func Open(cfg *config.DatabaseConfig, production bool) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: logger.Gorm(production),
	}

	switch cfg.Driver {
	case "postgres":
		return openPostgres(cfg, gormCfg)
	case "sqlite", "":
		return openSQLite(cfg, gormCfg)
	}
	return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

func openSQLite(cfg *config.DatabaseConfig, gormCfg *gorm.Config) (*gorm.DB, error) {
	if cfg.Path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(cfg.SQLitePath()), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// One connection serializes writers and keeps an in-memory database alive.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	logger.Info().Str("path", cfg.Path).Msg("Opened SQLite database")
	return db, nil
}

func openPostgres(cfg *config.DatabaseConfig, gormCfg *gorm.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true,
	}), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(20)

	logger.Info().Str("host", cfg.Host).Str("db", cfg.Name).Msg("Connected to PostgreSQL database")
	return db, nil
}

// Models lists every table in dependency order.
func Models() []interface{} {
	return []interface{}{
		&entity.Settings{},
		&entity.Cashier{},
		&entity.Category{},
		&entity.Supplier{},
		&entity.Unit{},
		&entity.Product{},
		&entity.Customer{},
		&entity.Sale{},
		&entity.Expense{},
		&entity.QuickQuantity{},
		&entity.IdempotencyKey{},
	}
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	logger.Info().Msg("Running database migrations...")

	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info().Msg("Database migrations completed successfully")
	return nil
}
