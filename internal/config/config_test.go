package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 10*time.Minute, cfg.UploadURLTTL)
	assert.Equal(t, int64(5<<20), cfg.MaxUploadBytes)
	assert.False(t, cfg.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("UPLOAD_URL_TTL", "2m")
	t.Setenv("MAX_UPLOAD_BYTES", "1048576")

	cfg := Load()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 2*time.Minute, cfg.UploadURLTTL)
	assert.Equal(t, int64(1048576), cfg.MaxUploadBytes)
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("UPLOAD_URL_TTL", "soon")
	t.Setenv("MAX_UPLOAD_BYTES", "lots")

	cfg := Load()

	assert.Equal(t, 10*time.Minute, cfg.UploadURLTTL)
	assert.Equal(t, int64(5<<20), cfg.MaxUploadBytes)
}
