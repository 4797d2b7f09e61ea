package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Should fail without a JWT secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("Should apply defaults and overrides", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s3cret")
		t.Setenv("JWT_TTL", "2h")
		t.Setenv("SMTP_PORT", "not-a-number")
		t.Setenv("FRONTEND_URL", "https://jobs.example.com/")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
		assert.Equal(t, 587, cfg.SMTPPort)
		assert.Equal(t, "https://jobs.example.com", cfg.FrontendURL)
	})
}
