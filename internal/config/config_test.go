package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaign-ids/internal/config/configs"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, uint16(8080), cfg.HTTP.Port)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ReadHeaderTimeout)
	assert.Equal(t, "sqlite", cfg.Store.Backend)
	assert.Equal(t, "campaign_records.db", cfg.SQLite.Path)
	assert.True(t, cfg.SQLite.RunMigrations)
	assert.Equal(t, "hash", cfg.IDs.Suffix)
	assert.Equal(t, 5, cfg.IDs.MaxAttempts)
	assert.Equal(t, "localhost:5432", cfg.Psql.Addr.Host)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("STORE_BACKEND", "postgres")
	t.Setenv("PSQL_ADDRESS", "postgres://u:p@db:5433/campaigns?sslmode=disable")
	t.Setenv("ID_SUFFIX", "random")
	t.Setenv("ID_MAX_ATTEMPTS", "9")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, uint16(9090), cfg.HTTP.Port)
	assert.Equal(t, slog.LevelDebug, cfg.Log.SlogLevel())
	assert.Equal(t, "json", cfg.Log.SlogFormat())
	assert.Equal(t, "db:5433", cfg.Psql.Addr.Host)
	assert.Equal(t, "random", cfg.IDs.Suffix)
	assert.Equal(t, 9, cfg.IDs.MaxAttempts)

	kind, err := cfg.Store.Kind()
	require.NoError(t, err)
	assert.Equal(t, configs.BackendPostgres, kind)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("HTTP_PORT", "not-a-port")
	_, err := Load()
	assert.Error(t, err)
}

func TestStoreKind(t *testing.T) {
	_, err := configs.Store{Backend: "mongo"}.Kind()
	assert.Error(t, err)

	kind, err := configs.Store{Backend: " Memory "}.Kind()
	require.NoError(t, err)
	assert.Equal(t, configs.BackendMemory, kind)
}

func TestLoggerLevels(t *testing.T) {
	assert.Equal(t, slog.LevelWarn, configs.Logger{Level: "warning"}.SlogLevel())
	assert.Equal(t, slog.LevelError, configs.Logger{Level: "err"}.SlogLevel())
	assert.Equal(t, slog.LevelInfo, configs.Logger{Level: "loud"}.SlogLevel())
	assert.Equal(t, "text", configs.Logger{Format: "xml"}.SlogFormat())
}
