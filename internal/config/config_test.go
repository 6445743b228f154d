package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	// t.Setenv registers the restore; the vars must be truly unset because
	// envconfig treats empty-but-set values as values.
	for _, key := range []string{"PORT", "DATABASE_URL", "JWT_SECRET", "SNAPSHOT_DIR", "FONT_PATH", "ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Contains(t, cfg.DatabaseURL, "postgres://")
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.NotEmpty(t, cfg.SnapshotDir)
	assert.Empty(t, cfg.FontPath)
	assert.Contains(t, cfg.AllowedOrigins, "localhost")
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("JWT_SECRET", "from-env")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9999, cfg.Port)
	assert.Equal(t, "from-env", cfg.JWTSecret)
}
