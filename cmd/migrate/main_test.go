package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	t.Setenv("CONFIG_PATH", path)
}

func TestRunRejectsNonPostgres(t *testing.T) {
	writeConfig(t, `
default_database: local
databases:
  local:
    driver: sqlite
    dsn: local.db
`)
	assert.Equal(t, 1, run(nil))
}

func TestRunUnknownDatabase(t *testing.T) {
	writeConfig(t, `
default_database: local
databases:
  local:
    driver: postgres
    dsn: "host=127.0.0.1 port=1 sslmode=disable"
`)
	assert.Equal(t, 1, run([]string{"-database", "missing"}))
}

func TestRunReturnsFailureWhenMigrationFails(t *testing.T) {
	writeConfig(t, `
default_database: audit
databases:
  audit:
    driver: postgres
    dsn: "host=127.0.0.1 port=1 user=x dbname=x sslmode=disable connect_timeout=1"
`)
	assert.Equal(t, 1, run([]string{"status"}))
}

func TestRunBadFlag(t *testing.T) {
	writeConfig(t, `
databases: {}
`)
	assert.Equal(t, 2, run([]string{"-nope"}))
}
