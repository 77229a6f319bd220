package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"DATABASE_URL", "SECRET_KEY", "JWT_EXPIRATION_HOURS", "CORS_ORIGINS", "ENVIRONMENT", "PORT", "SITE_URL"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "sqlite://./cattery.db", cfg.DatabaseURL)
	assert.Equal(t, 24, cfg.TokenTTLHours)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.CorsOrigins)
	assert.Equal(t, "admin123", cfg.DefaultAdminPassword)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "https://royalabycattery.com", cfg.SiteURL)
	assert.True(t, cfg.EphemeralSecret)
	assert.Len(t, cfg.JWTSecret, 64)
	require.NoError(t, cfg.Validate())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SECRET_KEY", "pinned-secret")
	t.Setenv("JWT_EXPIRATION_HOURS", "2")
	t.Setenv("CORS_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("SITE_URL", "https://cats.example/")
	t.Setenv("ENVIRONMENT", "staging")

	cfg := Load()

	assert.Equal(t, "pinned-secret", cfg.JWTSecret)
	assert.False(t, cfg.EphemeralSecret)
	assert.Equal(t, 2, cfg.TokenTTLHours)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CorsOrigins)
	assert.Equal(t, "https://cats.example", cfg.SiteURL)
}

func TestLoadInvalidTTLFallsBack(t *testing.T) {
	t.Setenv("JWT_EXPIRATION_HOURS", "soon")
	assert.Equal(t, 24, Load().TokenTTLHours)

	t.Setenv("JWT_EXPIRATION_HOURS", "-3")
	assert.Equal(t, 24, Load().TokenTTLHours)
}

func TestProductionRequiresSecret(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("SECRET_KEY", "")

	cfg := Load()

	assert.Empty(t, cfg.JWTSecret)
	assert.False(t, cfg.EphemeralSecret)
	assert.ErrorContains(t, cfg.Validate(), "SECRET_KEY")

	t.Setenv("SECRET_KEY", "prod-secret")
	require.NoError(t, Load().Validate())
}
