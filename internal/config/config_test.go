package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("APP_ENV", "development")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 5, cfg.BookingRateLimit)
	assert.Equal(t, time.Minute, cfg.BookingRateWindow)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.False(t, cfg.AvatarStorageEnabled())
}

func TestLoadFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", "salon.db")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("BOOKING_RATE_WINDOW", "30s")
	t.Setenv("S3_BUCKET", "avatars")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, 30*time.Second, cfg.BookingRateWindow)
	assert.True(t, cfg.AvatarStorageEnabled())
}

func TestValidate(t *testing.T) {
	base := Config{AppEnv: "development", DBDriver: "postgres", DBUrl: "postgres://x", JWTSecret: defaultJWTSecret}
	require.NoError(t, base.Validate())

	badDriver := base
	badDriver.DBDriver = "mysql"
	assert.Error(t, badDriver.Validate())

	prodDefaultSecret := base
	prodDefaultSecret.AppEnv = "production"
	assert.Error(t, prodDefaultSecret.Validate())

	noURL := base
	noURL.DBUrl = " "
	assert.Error(t, noURL.Validate())
}
