// Package config loads the addigy CLI configuration.
package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file values.
const (
	EnvConfigPath    = "ADDIGY_CONFIG"
	EnvClientID      = "ADDIGY_CLIENT_ID"
	EnvClientSecret  = "ADDIGY_CLIENT_SECRET"
	EnvAdminUsername = "ADDIGY_ADMIN_USERNAME"
	EnvAdminPassword = "ADDIGY_ADMIN_PASSWORD"
)

// Config holds API credentials and optional host overrides.
type Config struct {
	ClientID      string `yaml:"client_id"`
	ClientSecret  string `yaml:"client_secret"`
	AdminUsername string `yaml:"admin_username,omitempty"`
	AdminPassword string `yaml:"admin_password,omitempty"`

	BaseURL        string `yaml:"base_url,omitempty"`
	AppURL         string `yaml:"app_url,omitempty"`
	FileManagerURL string `yaml:"file_manager_url,omitempty"`
}

// Load reads a config file from path. A missing file yields an empty config.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, errors.Wrap(err, "reading config")
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config %s", path)
	}
	return cfg, nil
}

// Save writes cfg to path, creating parent directories as needed. The file
// holds secrets and is written owner-only.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}

// ApplyEnv overrides credentials with any ADDIGY_* variables that are set.
func (c *Config) ApplyEnv() {
	for env, field := range map[string]*string{
		EnvClientID:      &c.ClientID,
		EnvClientSecret:  &c.ClientSecret,
		EnvAdminUsername: &c.AdminUsername,
		EnvAdminPassword: &c.AdminPassword,
	} {
		if v := os.Getenv(env); v != "" {
			*field = v
		}
	}
}

// LoadWithEnv loads path, or the default location when path is empty, and
// applies environment overrides.
func LoadWithEnv(path string) (*Config, error) {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// ConfigDir returns the default config directory.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "determining home directory")
	}
	return filepath.Join(home, ".addigy"), nil
}

// ConfigPath returns the config file path, respecting ADDIGY_CONFIG.
func ConfigPath() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}
