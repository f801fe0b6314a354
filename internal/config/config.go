// Package config loads application configuration from a TOML settings file
// and environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ErrMissingToken is returned by Validate when no GitHub token is configured.
var ErrMissingToken = errors.New("github token is not set")

// Config holds the application configuration. It is built once at startup
// and passed explicitly to the components that need it.
type Config struct {
	GitHubToken  string
	APIBaseURL   string // Empty means https://api.github.com/.
	GitHubHost   string // Host remote URLs must point at, e.g. github.com.
	ListenAddr   string
	Workspace    string // Default repository root when a query does not name one.
	LogLevel     slog.Level
	SettingsPath string
}

// settings mirrors the TOML settings file.
type settings struct {
	GitHubToken string `toml:"github_token"`
	APIBaseURL  string `toml:"api_base_url"`
	GitHubHost  string `toml:"github_host"`
	ListenAddr  string `toml:"listen_addr"`
	Workspace   string `toml:"workspace"`
	LogLevel    string `toml:"log_level"`
}

// Validate returns ErrMissingToken when the credential is absent.
func (c *Config) Validate() error {
	if c.GitHubToken == "" {
		return ErrMissingToken
	}
	return nil
}

func defaultSettingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "approverhover", "config.toml")
}

// Load reads the settings file (APPROVERHOVER_CONFIG, default
// ~/.config/approverhover/config.toml; a missing file is not an error), then
// applies environment overrides: APPROVERHOVER_API_BASE_URL,
// APPROVERHOVER_GITHUB_HOST, APPROVERHOVER_LISTEN_ADDR (127.0.0.1:7878),
// APPROVERHOVER_WORKSPACE (.), APPROVERHOVER_LOG_LEVEL (info).
//
// The token comes from the settings file first, then APPROVERHOVER_GITHUB_TOKEN,
// then GITHUB_TOKEN. A missing token is not an error here; see Validate.
func Load() (*Config, error) {
	path := defaultSettingsPath()
	if v, ok := os.LookupEnv("APPROVERHOVER_CONFIG"); ok && v != "" {
		path = v
	}

	var s settings
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, &s); err != nil {
				return nil, fmt.Errorf("parsing settings file %s: %w", path, err)
			}
		}
	}

	cfg := &Config{
		GitHubToken:  s.GitHubToken,
		APIBaseURL:   s.APIBaseURL,
		GitHubHost:   firstNonEmpty(s.GitHubHost, "github.com"),
		ListenAddr:   firstNonEmpty(s.ListenAddr, "127.0.0.1:7878"),
		Workspace:    firstNonEmpty(s.Workspace, "."),
		LogLevel:     slog.LevelInfo,
		SettingsPath: path,
	}

	if cfg.GitHubToken == "" {
		cfg.GitHubToken = firstNonEmpty(os.Getenv("APPROVERHOVER_GITHUB_TOKEN"), os.Getenv("GITHUB_TOKEN"))
	}

	if v, ok := os.LookupEnv("APPROVERHOVER_API_BASE_URL"); ok && v != "" {
		cfg.APIBaseURL = v
	}
	if v, ok := os.LookupEnv("APPROVERHOVER_GITHUB_HOST"); ok && v != "" {
		cfg.GitHubHost = v
	}
	if v, ok := os.LookupEnv("APPROVERHOVER_LISTEN_ADDR"); ok && v != "" {
		cfg.ListenAddr = v
	}
	if v, ok := os.LookupEnv("APPROVERHOVER_WORKSPACE"); ok && v != "" {
		cfg.Workspace = v
	}

	level := s.LogLevel
	if v, ok := os.LookupEnv("APPROVERHOVER_LOG_LEVEL"); ok && v != "" {
		level = v
	}
	if level != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("APPROVERHOVER_LOG_LEVEL has invalid level %q: %w", level, err)
		}
	}

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
