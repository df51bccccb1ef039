package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("should fall back to defaults without a file", func(t *testing.T) {
		cfg, err := LoadConfig("")
		require.NoError(t, err)

		assert.Equal(t, "5000", cfg.HTTPPort)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, DriverSQLite, cfg.Database.Driver)
		assert.Equal(t, DefaultSQLiteFile, cfg.GetDSN())
		assert.Equal(t, "", cfg.Storage.BadgerPath)
		assert.Equal(t, 1024, cfg.Workspace.CacheSize)
		assert.Equal(t, 24*time.Hour, cfg.Workspace.TTL)
		assert.Equal(t, "en", cfg.I18n.DefaultLanguage)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("should read a toml file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "agrichain.toml")
		content := `
http_port = "7001"
log_level = "debug"

[database]
driver = "postgres"
host = "db"
name = "chain"

[workspace]
ttl = "2h"
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		cfg, err := LoadConfig(path)
		require.NoError(t, err)

		assert.Equal(t, "7001", cfg.HTTPPort)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, 2*time.Hour, cfg.Workspace.TTL)
		assert.Equal(t, "host=db port=5432 user=postgres password=postgrespassword dbname=chain sslmode=disable", cfg.GetDSN())
	})

	t.Run("should let the environment override defaults", func(t *testing.T) {
		t.Setenv("AGRICHAIN_HTTP_PORT", "8088")
		t.Setenv("AGRICHAIN_DATABASE_DSN", "file:test.db")

		cfg, err := LoadConfig("")
		require.NoError(t, err)

		assert.Equal(t, "8088", cfg.HTTPPort)
		assert.Equal(t, "file:test.db", cfg.GetDSN())
	})

	t.Run("should fail on a missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg, err := LoadConfig("")
		require.NoError(t, err)
		return cfg
	}

	t.Run("should reject an unknown driver", func(t *testing.T) {
		cfg := valid()
		cfg.Database.Driver = "mysql"
		assert.Error(t, cfg.Validate())
	})

	t.Run("should reject an empty port", func(t *testing.T) {
		cfg := valid()
		cfg.HTTPPort = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("should reject a non-positive cache size", func(t *testing.T) {
		cfg := valid()
		cfg.Workspace.CacheSize = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("should reject a zero ttl", func(t *testing.T) {
		cfg := valid()
		cfg.Workspace.TTL = 0
		assert.Error(t, cfg.Validate())
	})
}
