package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "unit-test-secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "development", cfg.AppEnv)
	require.Equal(t, "http://127.0.0.1:8080/api", cfg.APIBaseURL)
	require.Equal(t, "1", cfg.APIVersion)
	require.Equal(t, 30*time.Second, cfg.APITimeout)
	require.Equal(t, "cli", cfg.Platform)
	require.NotEmpty(t, cfg.SessionPath, "session path defaults under the home directory")
	require.False(t, cfg.IsProduction())
}

func TestLoadConfigRequiresSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("SESSION_SECRET", "unit-test-secret")
	t.Setenv("APP_ENV", "production")
	t.Setenv("API_BASE_URL", "https://crm.example.test/api")
	t.Setenv("API_TIMEOUT", "5s")
	t.Setenv("SESSION_PATH", "/tmp/partslink-session")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.True(t, cfg.IsProduction())
	require.Equal(t, "https://crm.example.test/api", cfg.APIBaseURL)
	require.Equal(t, 5*time.Second, cfg.APITimeout)
	require.Equal(t, "/tmp/partslink-session", cfg.SessionPath)
}
