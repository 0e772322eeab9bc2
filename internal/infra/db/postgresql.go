// Package db opens the PostgreSQL store holding emission factors, activity records and offset purchases.
package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Chanakan5591/carbonyx/config"
	"github.com/Chanakan5591/carbonyx/internal/integration/persistence/model"
)

const (
	defaultConnectTimeout = 5 * time.Second
	healthCheckTimeout    = 2 * time.Second
)

// Database is the emission store behind the persistence repositories.
type Database struct {
	db *gorm.DB
}

// NewPostgresConnection opens the store, sizes its pool and waits up to
// cfg.ConnectTimeout for the first ping.
func NewPostgresConnection(ctx context.Context, cfg *config.DatabaseConfig) (*Database, error) {
	gormDB, err := gorm.Open(postgres.Open(cfg.URL), &gorm.Config{
		Logger: newQueryLogger(cfg.SlowQueryThreshold),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open emission store: %w", err)
	}

	database := NewDatabase(gormDB)
	if err := database.configurePool(cfg); err != nil {
		return nil, err
	}

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := database.ping(pingCtx); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("emission store unreachable after %s: %w", timeout, err)
	}

	slog.Info("Emission store connected",
		"max_open_conns", cfg.MaxOpenConns,
		"max_idle_conns", cfg.MaxIdleConns,
		"conn_max_lifetime", cfg.ConnMaxLifetime.String(),
		"slow_query_threshold", cfg.SlowQueryThreshold.String(),
	)
	return database, nil
}

// NewDatabase wraps an already opened GORM connection.
func NewDatabase(db *gorm.DB) *Database {
	return &Database{db: db}
}

// DB returns the underlying GORM database instance.
func (d *Database) DB() *gorm.DB {
	return d.db
}

func (d *Database) configurePool(cfg *config.DatabaseConfig) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return nil
}

func (d *Database) ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// HealthCheck reports whether the store answers a ping within two seconds.
func (d *Database) HealthCheck(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	if err := d.ping(ctx); err != nil {
		slog.Error("Emission store health check failed", "error", err)
		return false
	}
	return true
}

// Close releases the pool.
func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close emission store: %w", err)
	}

	slog.Info("Emission store closed")
	return nil
}

// Migrate creates or updates the factors, collected_data and offset_data tables.
func (d *Database) Migrate(ctx context.Context) error {
	if err := d.db.WithContext(ctx).AutoMigrate(model.AllModels()...); err != nil {
		return fmt.Errorf("failed to migrate emission store: %w", err)
	}
	return nil
}

// slogWriter sends GORM's slow-query and error lines to slog.
type slogWriter struct{}

func (slogWriter) Printf(format string, args ...interface{}) {
	slog.Warn("Emission store query", "component", "gorm", "detail", fmt.Sprintf(format, args...))
}

// newQueryLogger logs failed queries and queries slower than threshold.
// A non-positive threshold silences GORM entirely.
func newQueryLogger(threshold time.Duration) logger.Interface {
	if threshold <= 0 {
		return logger.Default.LogMode(logger.Silent)
	}
	return logger.New(slogWriter{}, logger.Config{
		SlowThreshold:             threshold,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}
