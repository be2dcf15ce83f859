package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "http://localhost:8000", cfg.APIBaseURL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MEDICOST_API_URL", "http://predictor:9000/")
	t.Setenv("PORT", "9090")
	t.Setenv("MEDICOST_API_TIMEOUT", "3s")
	t.Setenv("MEDICOST_HEALTH_FAILURES", "5")
	t.Setenv("MEDICOST_PREFS_DB", "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://predictor:9000", cfg.APIBaseURL, "trailing slash is trimmed")
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 3*time.Second, cfg.APITimeout)
	assert.Equal(t, 5, cfg.FailureThreshold)
	assert.Equal(t, "", cfg.PrefsDB, "empty value selects in-memory preferences")
}

func TestLoad_PrefsStorage(t *testing.T) {
	t.Run("UnsetUsesDefaultFile", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "medicost_prefs.db", cfg.PrefsDB)
		assert.Equal(t, 30*24*time.Hour, cfg.PrefsRetention)
	})

	t.Run("DotEnvEmptyKeepsMemory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("MEDICOST_PREFS_DB=\n"), 0o600))
		t.Cleanup(func() { os.Unsetenv("MEDICOST_PREFS_DB") })

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Empty(t, cfg.PrefsDB)
	})

	t.Run("Retention", func(t *testing.T) {
		t.Setenv("MEDICOST_PREFS_RETENTION", "48h")
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, 48*time.Hour, cfg.PrefsRetention)
	})

	t.Run("NegativeRetention", func(t *testing.T) {
		t.Setenv("MEDICOST_PREFS_RETENTION", "-1h")
		_, err := Load("")
		assert.ErrorContains(t, err, "MEDICOST_PREFS_RETENTION")
	})
}

func TestLoad_DotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("MEDICOST_DEFAULT_THEME=dark\nMEDICOST_SESSION_TTL=90s\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("MEDICOST_DEFAULT_THEME")
		os.Unsetenv("MEDICOST_SESSION_TTL")
	})

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "dark", cfg.DefaultTheme)
	assert.Equal(t, 90*time.Second, cfg.SessionTTL)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Run("BadDuration", func(t *testing.T) {
		t.Setenv("MEDICOST_HEALTH_INTERVAL", "soon")
		_, err := Load("")
		assert.ErrorContains(t, err, "MEDICOST_HEALTH_INTERVAL")
	})

	t.Run("ZeroThreshold", func(t *testing.T) {
		t.Setenv("MEDICOST_HEALTH_SUCCESSES", "0")
		_, err := Load("")
		assert.Error(t, err)
	})
}
