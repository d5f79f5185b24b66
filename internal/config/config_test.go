package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, "mongo", cfg.StoreDriver)
	assert.Equal(t, time.Hour, cfg.JWT.TTL)
	assert.Equal(t, "token", cfg.Cookie.Name)
	assert.Equal(t, int64(1<<20), cfg.Storage.MaxImageSize)
	assert.False(t, cfg.IsProduction())
}

func TestParse_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Parse()
	assert.Error(t, err)
}

func TestParse_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("JWT_TTL", "24h")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("STORAGE_DRIVER", "minio")
	t.Setenv("APP_ENV", "production")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, "memory", cfg.StoreDriver)
	assert.Equal(t, "minio", cfg.Storage.Driver)
	assert.True(t, cfg.IsProduction())
}

func TestParse_RejectsUnknownDrivers(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("STORE_DRIVER", "postgres")

	_, err := Parse()
	assert.Error(t, err)
}
