package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noLookup(string) (string, bool) { return "", false }

func mapLookup(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("TARGET", "web")

	cfg, err := FromEnv(noLookup)
	require.NoError(t, err)

	assert.Equal(t, TargetWeb, cfg.Target)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "es", cfg.DefaultLanguage)
	assert.Equal(t, "memory", cfg.Session.Store)
	assert.False(t, cfg.Production())
	assert.True(t, cfg.Features.Camera)
	assert.False(t, cfg.Features.NativeStorage)
}

func TestFromEnvMobileFeatures(t *testing.T) {
	t.Setenv("TARGET", "MOBILE")

	cfg, err := FromEnv(noLookup)
	require.NoError(t, err)
	assert.Equal(t, TargetMobile, cfg.Target)
	assert.True(t, cfg.Features.FileSystem)
	assert.True(t, cfg.Features.NativeStorage)
	assert.False(t, cfg.Features.PushNotifications)
}

func TestFromEnvProdResolvesPlaceholders(t *testing.T) {
	t.Setenv("TARGET", "prod")
	t.Setenv("COOKIE_SECRET", "s3cret")
	t.Setenv("APP_API_URL", "#{APP_API_URL}#")

	cfg, err := FromEnv(mapLookup(map[string]string{"APP_API_URL": "https://api.example.com"}))
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.Services.API)
}

func TestFromEnvProdRejectsUnresolved(t *testing.T) {
	t.Setenv("TARGET", "prod")
	t.Setenv("COOKIE_SECRET", "s3cret")
	t.Setenv("APP_MAPBOX_TOKEN", "#{APP_MAPBOX_TOKEN}#")

	_, err := FromEnv(noLookup)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "APP_MAPBOX_TOKEN")
}

func TestValidate(t *testing.T) {
	cfg := Config{Target: "desktop"}
	cfg.Session.Store = "gorm"
	cfg.Cart.Store = "redis"
	cfg.Auth.Provider = "cognito"

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"TARGET", "DB_DSN", "REDIS_URL", "APP_COGNITO_USER_POOL_ID"} {
		assert.Contains(t, err.Error(), want)
	}

	cfg = Config{Target: TargetWeb}
	cfg.Session.Store = "gorm"
	cfg.Session.DSN = "user:pass@tcp(localhost:3306)/portal?parseTime=true"
	assert.NoError(t, cfg.Validate())
}

func TestSlogLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", Config{LogLevel: "debug"}.SlogLevel().String())
	assert.Equal(t, "INFO", Config{LogLevel: "nope"}.SlogLevel().String())
}
