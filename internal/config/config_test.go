package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, 360000, cfg.JWTTTLSeconds)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.False(t, cfg.Prod)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9999")
	t.Setenv("JWT_TTL_SECONDS", "60")
	t.Setenv("APP_ENV", "prod")

	cfg := Load()
	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, 60, cfg.JWTTTLSeconds)
	assert.True(t, cfg.Prod)
}

func TestAtoiFallback(t *testing.T) {
	assert.Equal(t, 0, atoi("not-a-number"))
	assert.Equal(t, 42, atoi("42"))
}
