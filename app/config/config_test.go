package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.Addr)
	assert.Equal(t, "", cfg.CacheURL)
	assert.Equal(t, 5*time.Second, cfg.FeedCacheTTL)
	assert.Equal(t, time.Minute, cfg.LibraryCacheTTL)
	assert.Equal(t, "wallboard", cfg.MetricsNamespace)
	assert.Equal(t, 50, cfg.MaxPageSize)
	assert.Equal(t, 10, cfg.DefaultPageSize)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ADDR", ":9999")
	t.Setenv("CACHE_URL", "badger:/tmp/cache")
	t.Setenv("CACHE_TTL", "30")
	t.Setenv("LIBRARY_CACHE_TTL", "2m")
	t.Setenv("MAX_PAGE_SIZE", "25")
	t.Setenv("DEFAULT_PAGE_SIZE", "5")
	t.Setenv("METRICS_NAMESPACE", "demo")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, "badger:/tmp/cache", cfg.CacheURL)
	assert.Equal(t, 30*time.Second, cfg.FeedCacheTTL)
	assert.Equal(t, 2*time.Minute, cfg.LibraryCacheTTL)
	assert.Equal(t, 25, cfg.MaxPageSize)
	assert.Equal(t, 5, cfg.DefaultPageSize)
	assert.Equal(t, "demo", cfg.MetricsNamespace)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("MAX_PAGE_SIZE", "not-a-number")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsDefaultAboveMax(t *testing.T) {
	t.Setenv("MAX_PAGE_SIZE", "10")
	t.Setenv("DEFAULT_PAGE_SIZE", "20")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("CACHE_TTL", "soon")
	_, err := Load()
	assert.Error(t, err)
}
