package audit_service

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/init-pkg/sheet-loader/domain/app"
	"github.com/init-pkg/sheet-loader/internal/app/audit/migrations"
	database_client "github.com/init-pkg/sheet-loader/internal/clients/database"
	"github.com/init-pkg/sheet-loader/internal/config"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func migrate(t *testing.T, registry *database_client.Registry) *gorm.DB {
	t.Helper()
	db, _, err := registry.DB(context.Background(), "")
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	goose.SetBaseFS(migrations.FS)
	t.Cleanup(func() { goose.SetBaseFS(nil) })
	require.NoError(t, goose.SetDialect("sqlite3"))
	require.NoError(t, goose.UpContext(context.Background(), sqlDB, "."))
	return db
}

func newService(t *testing.T, enabled bool) (*AuditService, *database_client.Registry) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{
		DefaultDatabase: "main",
		Databases: map[string]config.DatabaseConfig{
			"main": {Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "audit.db")},
		},
		Audit: config.AuditConfig{Enabled: enabled, Table: "import_runs"},
	}
	registry := database_client.New(cfg, log)
	t.Cleanup(func() { _ = registry.Close() })
	return New(registry, cfg, log), registry
}

func TestRecordWritesRow(t *testing.T) {
	svc, registry := newService(t, true)
	db := migrate(t, registry)

	now := time.Now().UTC()
	require.NoError(t, svc.Record(context.Background(), &app.ImportResult{
		ID:         "9f0e4b8a-1d2c-4e5f-8a9b-0c1d2e3f4a5b",
		Status:     app.ImportSucceeded,
		FileName:   "prices.xlsx",
		Database:   "main",
		Table:      "price_list",
		Total:      4,
		Inserted:   3,
		Failures:   []app.RowFailure{{Row: 2, Error: "bad"}},
		StartedAt:  now.Add(-time.Second),
		FinishedAt: now,
	}))

	var row struct {
		TableName string
		Failed    int
		Error     *string
	}
	require.NoError(t, db.Raw("SELECT table_name, failed, error FROM import_runs").Scan(&row).Error)
	assert.Equal(t, "price_list", row.TableName)
	assert.Equal(t, 1, row.Failed)
	assert.Nil(t, row.Error)
}

func TestRecordDisabled(t *testing.T) {
	svc, _ := newService(t, false)
	assert.NoError(t, svc.Record(context.Background(), &app.ImportResult{ID: "x"}))
}

func TestRecordMissingTable(t *testing.T) {
	svc, _ := newService(t, true)
	err := svc.Record(context.Background(), &app.ImportResult{ID: "x", StartedAt: time.Now(), FinishedAt: time.Now()})
	assert.Error(t, err)
}
