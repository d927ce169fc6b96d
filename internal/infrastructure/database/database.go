package database

import (
	"fmt"
	"time"

	"github.com/sangkips/yumzee-api/internal/config"
	"github.com/sangkips/yumzee-api/internal/domain/entity"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the database selected by cfg.Driver
func Open(cfg *config.DatabaseConfig, debug bool, log *zap.Logger) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	gormLogger, err := newGormLogger(log, debug)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	log.Info("Connected to database", zap.String("driver", cfg.Driver))
	return db, nil
}

// newGormLogger sends gorm output through zap. Lookups that find nothing are
// normal here (first login, unknown ids) and are not logged.
func newGormLogger(log *zap.Logger, debug bool) (logger.Interface, error) {
	logLevel, zapLevel := logger.Warn, zapcore.WarnLevel
	if debug {
		logLevel, zapLevel = logger.Info, zapcore.InfoLevel
	}

	writer, err := zap.NewStdLogAt(log.Named("gorm"), zapLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create gorm logger: %w", err)
	}
	return logger.New(writer, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logLevel,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	}), nil
}

func dialectorFor(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "mysql", "":
		return mysql.Open(cfg.DSN()), nil
	case "postgres":
		return postgres.New(postgres.Config{
			DSN:                  cfg.DSN(),
			PreferSimpleProtocol: true, // disables implicit prepared statement usage
		}), nil
	case "sqlite":
		return sqlite.Open(cfg.DSN()), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (use mysql, postgres or sqlite)", cfg.Driver)
	}
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&entity.Account{},
		&entity.MenuCategory{},
		&entity.MenuItem{},
		&entity.Order{},
		&entity.Expense{},
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
