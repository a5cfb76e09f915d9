// Package config loads parley's settings from a TOML file, a .env file and
// the environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/papercomputeco/parley/pkg/anthropic"
)

const (
	DefaultModel = "claude-3-5-sonnet-20240620"

	dirName  = ".parley"
	fileName = "config.toml"
)

// Environment variables consulted by Load.
const (
	EnvAPIKey  = "ANTHROPIC_API_KEY"
	EnvBaseURL = "ANTHROPIC_BASE_URL"
	EnvModel   = "PARLEY_MODEL"
)

// Config mirrors the TOML file.
type Config struct {
	APIKey        string   `toml:"api_key"`
	Model         string   `toml:"model"`
	MaxTokens     int      `toml:"max_tokens"`
	Temperature   *float64 `toml:"temperature"`
	BaseURL       string   `toml:"base_url"`
	Timeout       Duration `toml:"timeout"`
	MaxImageBytes int64    `toml:"max_image_bytes"`
}

// Duration decodes TOML strings such as "90s" or "5m".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// ClientConfig converts c into the client's configuration.
func (c Config) ClientConfig() anthropic.Config {
	return anthropic.Config{
		APIKey:        c.APIKey,
		Model:         c.Model,
		MaxTokens:     c.MaxTokens,
		Temperature:   c.Temperature,
		BaseURL:       c.BaseURL,
		Timeout:       c.Timeout.Duration,
		MaxImageBytes: c.MaxImageBytes,
	}
}

// Load reads the config file at path, then .env in the working directory,
// then the environment. An empty path means the default location, which
// may be missing; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Model:     DefaultModel,
		MaxTokens: anthropic.DefaultMaxTokens,
	}

	explicit := path != ""
	if !explicit {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("could not load config %s: %w", path, err)
		}
	}

	// godotenv.Load never overrides variables already set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("could not load .env: %w", err)
	}

	if v := os.Getenv(EnvAPIKey); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv(EnvModel); v != "" {
		cfg.Model = v
	}

	return cfg, nil
}

// DefaultPath returns ~/.parley/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, dirName, fileName), nil
}
