package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadExpandsDSNAndAppliesDefaults(t *testing.T) {
	t.Setenv("TEST_PG_PASSWORD", "s3cret")
	path := writeConfig(t, `
default_database: main
databases:
  main:
    driver: " Postgres "
    dsn: "postgres://loader:${TEST_PG_PASSWORD}@db/main"
targets:
  - keyword: stock
    table: stock_levels
import:
  create_missing_tables: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	db := cfg.Databases["main"]
	assert.Equal(t, "postgres", db.Driver)
	assert.Equal(t, "postgres://loader:s3cret@db/main", db.DSN)
	assert.Equal(t, []TargetRule{{Keyword: "stock", Table: "stock_levels"}}, cfg.Targets)

	assert.Equal(t, ":8080", cfg.Http.Addr)
	assert.Equal(t, 100, cfg.Import.ProgressEvery)
	assert.Equal(t, 5*time.Minute, cfg.Import.CommandTimeout)
	assert.Equal(t, int64(20971520), cfg.Import.MaxFileSize)
	assert.True(t, cfg.Import.CreateMissingTables)
	assert.False(t, cfg.Import.Truncate)
	assert.Equal(t, "import_runs", cfg.Audit.Table)
}

func TestLoadRejectsUnknownDefaultDatabase(t *testing.T) {
	path := writeConfig(t, `
default_database: nope
databases:
  main:
    driver: sqlite
    dsn: "file::memory:"
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")
}

func TestLoadRejectsEmptyDSN(t *testing.T) {
	t.Setenv("TEST_EMPTY_DSN", "")
	path := writeConfig(t, `
databases:
  main:
    driver: postgres
    dsn: "${TEST_EMPTY_DSN}"
`)
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadWithoutFileUsesEnvironment(t *testing.T) {
	t.Setenv("IMPORT_MAX_FILE_SIZE", "1024")
	t.Setenv("HTTP_ADDR", ":9999")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, int64(1024), cfg.Import.MaxFileSize)
	assert.Equal(t, ":9999", cfg.Http.Addr)
}

func TestIsAllowedExtension(t *testing.T) {
	c := ImportConfig{AllowedExtensions: []string{".xlsx", "XLSM"}}
	assert.True(t, c.IsAllowedExtension(".xlsx"))
	assert.True(t, c.IsAllowedExtension(".XLSX"))
	assert.True(t, c.IsAllowedExtension(".xlsm"))
	assert.False(t, c.IsAllowedExtension(".csv"))
	assert.False(t, c.IsAllowedExtension(""))
}
