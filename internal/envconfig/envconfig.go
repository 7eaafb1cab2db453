// Package envconfig loads golangci-ls process configuration from the
// environment.
package envconfig

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// AppName names the default install directory under the user cache dir.
const AppName = "golangci-ls"

// Config is the environment-derived configuration.
type Config struct {
	// InstallDir is the root for downloaded versions. Empty means
	// <user cache dir>/golangci-ls.
	InstallDir  string        `env:"GOLANGCI_LS_INSTALL_DIR"`
	GitHubAPI   string        `env:"GOLANGCI_LS_GITHUB_API" envDefault:"https://api.github.com"`
	GitHubToken string        `env:"GITHUB_TOKEN"`
	HTTPTimeout time.Duration `env:"GOLANGCI_LS_HTTP_TIMEOUT" envDefault:"0s"`
	LogLevel    string        `env:"GOLANGCI_LS_LOG_LEVEL" envDefault:"info"`
}

// Load reads the configuration from the process environment.
func Load() (*Config, error) {
	return load(env.Options{})
}

// LoadFrom reads the configuration from environ instead of the process
// environment.
func LoadFrom(environ map[string]string) (*Config, error) {
	if environ == nil {
		environ = map[string]string{}
	}
	return load(env.Options{Environment: environ})
}

func load(opts env.Options) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.InstallDir == "" {
		dir, err := defaultInstallDir()
		if err != nil {
			return nil, err
		}
		cfg.InstallDir = dir
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges not expressible in struct tags.
func (c *Config) Validate() error {
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("GOLANGCI_LS_HTTP_TIMEOUT must not be negative: %s", c.HTTPTimeout)
	}
	if strings.TrimSpace(c.GitHubAPI) == "" {
		return fmt.Errorf("GOLANGCI_LS_GITHUB_API must not be empty")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid GOLANGCI_LS_LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return level, nil
}

func defaultInstallDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("determine user cache dir: %w", err)
	}
	return filepath.Join(cacheDir, AppName), nil
}
