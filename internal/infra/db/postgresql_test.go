package db

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Chanakan5591/carbonyx/internal/integration/persistence/model"
)

func openTestDatabase(t *testing.T, slowQueryThreshold time.Duration) *Database {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: newQueryLogger(slowQueryThreshold)})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	return NewDatabase(gormDB)
}

func TestDatabase_MigrateAndHealth(t *testing.T) {
	database := openTestDatabase(t, 0)
	ctx := context.Background()

	if err := database.Migrate(ctx); err != nil {
		t.Fatalf("unexpected migration error: %v", err)
	}
	for _, m := range model.AllModels() {
		if !database.DB().Migrator().HasTable(m) {
			t.Errorf("expected table for %T", m)
		}
	}

	if !database.HealthCheck(ctx) {
		t.Error("expected healthy store")
	}

	if err := database.Close(); err != nil {
		t.Fatalf("unexpected close error: %v", err)
	}
	if database.HealthCheck(ctx) {
		t.Error("expected closed store to be unhealthy")
	}
}

func TestQueryLogger_LogsSlowQueries(t *testing.T) {
	tests := []struct {
		name      string
		threshold time.Duration
		wantLog   bool
	}{
		{"every query is slow", time.Nanosecond, true},
		{"disabled", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			previous := slog.Default()
			slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
			t.Cleanup(func() { slog.SetDefault(previous) })

			database := openTestDatabase(t, tt.threshold)
			if err := database.Migrate(context.Background()); err != nil {
				t.Fatalf("unexpected migration error: %v", err)
			}
			var count int64
			database.DB().Model(&model.EmissionFactorModel{}).Count(&count)

			logged := strings.Contains(buf.String(), `"component":"gorm"`)
			if logged != tt.wantLog {
				t.Errorf("expected gorm log=%v, got output %s", tt.wantLog, buf.String())
			}
		})
	}
}
