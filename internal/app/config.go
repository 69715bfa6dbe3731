package app

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the client.
type Config struct {
	AppEnv string `envconfig:"APP_ENV" default:"development"`

	APIBaseURL string        `envconfig:"API_BASE_URL" default:"http://127.0.0.1:8080/api"`
	APIVersion string        `envconfig:"API_VERSION" default:"1"`
	APITimeout time.Duration `envconfig:"API_TIMEOUT" default:"30s"`
	AppVersion string        `envconfig:"APP_VERSION" default:"1.0.0"`
	Platform   string        `envconfig:"PLATFORM" default:"cli"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	SessionPath   string `envconfig:"SESSION_PATH" default:""`
	SessionSecret string `envconfig:"SESSION_SECRET" required:"true"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.APIBaseURL == "" {
		return nil, errors.New("api base url must be provided")
	}
	if cfg.SessionSecret == "" {
		return nil, errors.New("session secret must be provided")
	}
	if cfg.SessionPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		cfg.SessionPath = filepath.Join(home, ".partslink", "session")
	}
	return &cfg, nil
}

// IsProduction returns true when the client runs against a production backend.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}
