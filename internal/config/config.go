// Package config loads and saves tasklink configuration. All settings live
// in .tasklink/config.json under the workspace root; this file is the single
// source of truth. Environment variables override file values for the
// credentials and project selection so CI and hooks can run without a config
// file on disk.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Env override names.
const (
	EnvAPIKey  = "TASKLINK_API_KEY"
	EnvBaseURL = "TASKLINK_BASE_URL"
	EnvProject = "TASKLINK_PROJECT"
)

// DefaultBaseURL points at the hosted tracker API.
const DefaultBaseURL = "https://api.tasklink.dev/v1"

// Config holds all tasklink configuration from .tasklink/config.json.
type Config struct {
	// Remote tracker access
	APIKey    string `json:"api_key,omitempty"`
	BaseURL   string `json:"base_url,omitempty"`
	ProjectID string `json:"project_id,omitempty"`

	// AutoApply pushes suggested status transitions to the tracker without
	// confirmation. Hooks set this; interactive use defaults to off.
	AutoApply bool `json:"auto_apply,omitempty"`

	// Watch settings
	Watch WatchConfig `json:"watch,omitempty"`

	// Logging settings (read by internal/logging)
	Logging LoggingConfig `json:"logging,omitempty"`
}

// WatchConfig controls the filesystem watcher.
type WatchConfig struct {
	// Roots are directories to watch, relative to the workspace.
	Roots []string `json:"roots,omitempty"`
	// Ignores are path substrings that suppress events.
	Ignores []string `json:"ignores,omitempty"`
	// DebounceMillis is how long a file must stay quiet before its event
	// fires. Zero means the built-in default.
	DebounceMillis int `json:"debounce_millis,omitempty"`
}

// LoggingConfig mirrors the logging package's expectations.
type LoggingConfig struct {
	DebugMode  bool            `json:"debug_mode"`
	Categories map[string]bool `json:"categories,omitempty"`
	Level      string          `json:"level,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		BaseURL: DefaultBaseURL,
		Watch: WatchConfig{
			Roots:   []string{"."},
			Ignores: []string{".git", "node_modules", "vendor", "dist", "build", ".tasklink"},
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Path returns the config file location for a workspace.
func Path(workspace string) string {
	return filepath.Join(workspace, ".tasklink", "config.json")
}

// Load reads the config for a workspace, applying defaults for missing
// fields and environment overrides on top. A missing file is not an error;
// it yields the defaults.
func Load(workspace string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(Path(workspace))
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	applyEnvOverrides(cfg)

	return cfg, nil
}

// applyEnvOverrides lets the environment win over the file for credentials
// and project selection.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvAPIKey); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv(EnvProject); v != "" {
		cfg.ProjectID = v
	}
}

// Save writes the config to .tasklink/config.json, creating the directory
// if needed.
func Save(workspace string, cfg *Config) error {
	dir := filepath.Join(workspace, ".tasklink")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(Path(workspace), data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
