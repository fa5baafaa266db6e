package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secreto")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "gestiva", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, "memory", cfg.Drafts.Store)
	assert.Equal(t, 15*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "secreto")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("BACKEND_BASE_URL", "https://ledger.local/api/")
	t.Setenv("BACKEND_TIMEOUT", "30")
	t.Setenv("CATALOG_CACHE_TTL", "90s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "https://ledger.local/api", cfg.Backend.BaseURL, "la barra final se elimina")
	assert.Equal(t, 30*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, 90*time.Second, cfg.Cache.TTL)
}

func TestLoad_SinSecretoFalla(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_DraftStoreRedisRequiereURL(t *testing.T) {
	t.Setenv("JWT_SECRET", "secreto")
	t.Setenv("DRAFT_STORE", "redis")
	t.Setenv("REDIS_URL", "")
	_, err := Load()
	assert.Error(t, err)
}
