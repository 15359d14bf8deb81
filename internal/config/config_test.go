package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("APP_NAME", "jobradar")
	t.Setenv("APP_ENV", "test")
	t.Setenv("HTTP_PORT", "8000")
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("APP_NAME", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("HTTP_PORT", "")

	_, err := Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, errMissingRequiredEnv)
	assert.Contains(t, err.Error(), "APP_NAME")
	assert.Contains(t, err.Error(), "HTTP_PORT")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "jobradar", cfg.App.AppName)
	assert.Equal(t, "1.0.0", cfg.App.Version)
	assert.Equal(t, "models/saved", cfg.Models.Dir)
	assert.Equal(t, []string{"simulated"}, cfg.Ingest.Sources)
	assert.Equal(t, 1000, cfg.Ingest.MaxJobs)
	assert.Equal(t, 100, cfg.RateLimit.Requests)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, 600*time.Second, cfg.Redis.TTL)
	assert.Equal(t, "@every 6h", cfg.Scheduler.RefreshSchedule)
	assert.Equal(t, "@every 24h", cfg.Scheduler.RetrainSchedule)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.True(t, cfg.App.SeedOnStart)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("INGEST_SOURCES", "Simulated, RemoteOK")
	t.Setenv("RATE_LIMIT_WINDOW", "30")
	t.Setenv("DB_POOL_MAX_CONNS", "12")
	t.Setenv("JWT_ACCESS_EXPIRES_IN", "1h")
	t.Setenv("SEED_ON_START", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"simulated", "remoteok"}, cfg.Ingest.Sources)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
	assert.Equal(t, int32(12), cfg.Database.PoolMaxConns)
	assert.Equal(t, time.Hour, cfg.JWT.AccessExpiresIn)
	assert.False(t, cfg.App.SeedOnStart)
}

func TestLoad_InvalidValue(t *testing.T) {
	setRequired(t)
	t.Setenv("INGEST_MAX_JOBS", "lots")

	_, err := Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, errInvalidEnv)
	assert.Contains(t, err.Error(), "INGEST_MAX_JOBS")
}
