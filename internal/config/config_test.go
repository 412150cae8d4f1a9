package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/fieldtrip-widget/internal/config"
)

// unsetenv removes keys for the duration of the test.
// t.Setenv records the original values so they are restored afterwards.
func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

var optional = []string{
	"PORT", "LOG_LEVEL", "CORS_ORIGINS", "API_TIMEOUT",
	"SESSION_TTL", "DISPLAY_TIMEZONE", "MAX_BODY_BYTES",
}

// TestLoad_defaults verifies that optional env vars fall back to their defaults
// when only the required API_BASE_URL is provided.
func TestLoad_defaults(t *testing.T) {
	unsetenv(t, optional...)
	t.Setenv("API_BASE_URL", "http://localhost:8000")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "http://localhost:8000", cfg.APIBaseURL)
	require.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
	require.Equal(t, 10*time.Second, cfg.APITimeout)
	require.Equal(t, 30*time.Minute, cfg.SessionTTL)
	require.Equal(t, "Pacific/Auckland", cfg.DisplayTimezone)
	require.EqualValues(t, 65536, cfg.MaxBodyBytes)
}

// TestLoad_overrides verifies that all values can be overridden via env vars.
func TestLoad_overrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.example.com")
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://admin.example.com")
	t.Setenv("API_TIMEOUT", "3s")
	t.Setenv("SESSION_TTL", "5m")
	t.Setenv("DISPLAY_TIMEZONE", "UTC")
	t.Setenv("MAX_BODY_BYTES", "1024")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "https://api.example.com", cfg.APIBaseURL)
	require.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
	require.Equal(t, 3*time.Second, cfg.APITimeout)
	require.Equal(t, 5*time.Minute, cfg.SessionTTL)
	require.EqualValues(t, 1024, cfg.MaxBodyBytes)

	loc, err := cfg.Location()
	require.NoError(t, err)
	require.Equal(t, time.UTC, loc)
}

// TestLoad_missingRequired verifies that an error is returned when API_BASE_URL
// is not set, and that the error message names the missing variable.
func TestLoad_missingRequired(t *testing.T) {
	unsetenv(t, "API_BASE_URL")

	_, err := config.Load()

	require.Error(t, err)
	require.ErrorContains(t, err, "API_BASE_URL")
}

// TestLoad_badDuration verifies that a malformed duration is reported.
func TestLoad_badDuration(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://localhost:8000")
	t.Setenv("API_TIMEOUT", "soon")

	_, err := config.Load()

	require.Error(t, err)
}

// TestConfig_Location_unknownZone verifies that a bad zone name is reported.
func TestConfig_Location_unknownZone(t *testing.T) {
	cfg := config.Config{DisplayTimezone: "Nowhere/Special"}

	_, err := cfg.Location()

	require.ErrorContains(t, err, "DISPLAY_TIMEZONE")
}
