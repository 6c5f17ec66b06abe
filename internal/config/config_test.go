package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("USE_REMOTE_STORE", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 5000, cfg.HTTPPort)
	assert.Equal(t, 3, cfg.RetryMaxAttempts)
	assert.Equal(t, time.Second, cfg.RetryDelay)
	assert.False(t, cfg.RedisEnabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
}

func TestLoad_RemoteStoreRequiresURL(t *testing.T) {
	t.Setenv("USE_REMOTE_STORE", "true")
	t.Setenv("STORE_URL", "")
	t.Setenv("STORE_ANON_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORE_URL")
}

func TestLoad_RemoteStoreRequiresKey(t *testing.T) {
	t.Setenv("USE_REMOTE_STORE", "true")
	t.Setenv("STORE_URL", "https://example.supabase.co")
	t.Setenv("STORE_ANON_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORE_ANON_KEY")
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("USE_REMOTE_STORE", "true")
	t.Setenv("STORE_URL", "https://example.supabase.co")
	t.Setenv("STORE_ANON_KEY", "anon-key")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("RETRY_MAX_ATTEMPTS", "5")
	t.Setenv("RETRY_DELAY", "250ms")
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("REDIS_PORT", "6380")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, 5, cfg.RetryMaxAttempts)
	assert.Equal(t, 250*time.Millisecond, cfg.RetryDelay)
	assert.Equal(t, "cache.internal:6380", cfg.RedisAddr())
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("USE_REMOTE_STORE", "false")
	t.Setenv("HTTP_PORT", "99999")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid HTTP port")
}
