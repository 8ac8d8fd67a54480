package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"procurement-bidding-api/internal/config"

	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APP_POSTGRES__URL", "postgres://localhost:5432/bidding?sslmode=disable")
	t.Setenv("APP_SERVER__ADDRESS", ":9090")

	cfg, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, "postgres://localhost:5432/bidding?sslmode=disable", cfg.Postgres.URL)
	require.Equal(t, ":9090", cfg.Server.Address)
	// defaults
	require.Equal(t, "file://migrations", cfg.Postgres.MigrationsURL)
	require.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFromFileWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := `{"server":{"address":":8081"},"postgres":{"url":"postgres://file"},"logging":{"level":"debug","pretty":true}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("APP_SERVER__ADDRESS", ":7070")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, ":7070", cfg.Server.Address)
	require.Equal(t, "postgres://file", cfg.Postgres.URL)
	require.Equal(t, "debug", cfg.Logging.Level)
	require.True(t, cfg.Logging.Pretty)
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("x = 1"), 0o600))

	_, err := config.Load(path)
	require.Error(t, err)
}

func TestLoadRequiresPostgresURL(t *testing.T) {
	t.Setenv("APP_POSTGRES__URL", "")

	_, err := config.Load("")
	require.Error(t, err)
}
