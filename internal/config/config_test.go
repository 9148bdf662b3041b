// AngelaMos | 2026
// config_test.go

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("MONGO_URL", "mongodb://localhost:27017")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("JWT_SECRET", "test-secret-at-least-32-bytes-long!")
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "Lalon Store", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Address())
	assert.Equal(t, 10*time.Minute, cfg.JWT.AccessTokenExpire)
	assert.Equal(t, int64(50<<20), cfg.Upload.MaxFileSize)
	assert.Equal(t, 10, cfg.Upload.MaxFiles)
	assert.Equal(t, 15*time.Minute, cfg.RateLimit.Window)
	assert.False(t, cfg.Otel.Enabled)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_EnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_MissingMongoURL(t *testing.T) {
	t.Setenv("MONGO_URL", "")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("JWT_SECRET", "secret")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONGO_URL")
}

func TestLoad_MissingJWTSecret(t *testing.T) {
	t.Setenv("MONGO_URL", "mongodb://localhost:27017")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("JWT_SECRET", "")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}
