// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration values for the widget server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string `env:"PORT" env-default:"8080"`

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string `env:"CORS_ORIGINS" env-separator:"," env-default:"http://localhost:5173"`

	// APIBaseURL is the scheme and host of the field trip backend, e.g.
	// "https://api.example.com". Required: the server has no page origin to
	// resolve relative endpoints against.
	APIBaseURL string `env:"API_BASE_URL"`

	// APITimeout bounds every backend call. Defaults to 10s.
	APITimeout time.Duration `env:"API_TIMEOUT" env-default:"10s"`

	// SessionTTL is how long an idle registration form is kept. Defaults to 30m.
	SessionTTL time.Duration `env:"SESSION_TTL" env-default:"30m"`

	// DisplayTimezone is the IANA zone trip dates are shown in.
	// Defaults to "Pacific/Auckland".
	DisplayTimezone string `env:"DISPLAY_TIMEZONE" env-default:"Pacific/Auckland"`

	// MaxBodyBytes caps the size of incoming request bodies. Defaults to 64 KiB.
	MaxBodyBytes int64 `env:"MAX_BODY_BYTES" env-default:"65536"`
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}
	cfg.CORSOrigins = trimAll(cfg.CORSOrigins)

	var missing []string
	if cfg.APIBaseURL == "" {
		missing = append(missing, "API_BASE_URL")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// Location resolves DisplayTimezone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.DisplayTimezone)
	if err != nil {
		return nil, fmt.Errorf("config: DISPLAY_TIMEZONE: %w", err)
	}
	return loc, nil
}

// trimAll trims each entry and drops the empty ones.
func trimAll(in []string) []string {
	var out []string
	for _, part := range in {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
