// Package clientopts holds the flags shared by parley subcommands and turns
// them, together with the config file and environment, into a client.
package clientopts

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/papercomputeco/parley/pkg/anthropic"
	"github.com/papercomputeco/parley/pkg/config"
	"github.com/papercomputeco/parley/pkg/logger"
)

// Options are the client flags. Flags left unset defer to the config file
// and environment.
type Options struct {
	ConfigPath  string
	Model       string
	MaxTokens   int
	Temperature float64
	BaseURL     string
	Debug       bool
}

// AddFlags registers the client flags as persistent flags of cmd, so every
// subcommand inherits them.
func (o *Options) AddFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVarP(&o.ConfigPath, "config", "c", "", "Path to config file (default ~/.parley/config.toml)")
	flags.StringVarP(&o.Model, "model", "m", "", "Model to use")
	flags.IntVar(&o.MaxTokens, "max-tokens", 0, "Maximum tokens in the reply")
	flags.Float64VarP(&o.Temperature, "temperature", "t", 0, "Sampling temperature (the API accepts 0.0 to 1.0)")
	flags.StringVar(&o.BaseURL, "base-url", "", "API base URL")
	flags.BoolVar(&o.Debug, "debug", false, "Enable debug logging")
}

// NewClient resolves the configuration for cmd and builds a client. The
// returned logger should be synced by the caller.
func (o *Options) NewClient(cmd *cobra.Command) (*anthropic.Client, *zap.Logger, error) {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return nil, nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("model") {
		cfg.Model = o.Model
	}
	if flags.Changed("max-tokens") {
		cfg.MaxTokens = o.MaxTokens
	}
	if flags.Changed("temperature") {
		cfg.Temperature = anthropic.Float(o.Temperature)
	}
	if flags.Changed("base-url") {
		cfg.BaseURL = o.BaseURL
	}

	log := logger.NewLogger(o.Debug)

	if cfg.APIKey == "" {
		log.Warn("no API key configured", zap.String("env", config.EnvAPIKey))
	}

	client, err := anthropic.New(cfg.ClientConfig(), log)
	if err != nil {
		_ = log.Sync()
		return nil, nil, err
	}

	log.Debug("client ready",
		zap.String("model", cfg.Model),
		zap.Int("max_tokens", client.Config().MaxTokens),
		zap.Float64("temperature", *client.Config().Temperature),
		zap.String("base_url", client.Config().BaseURL),
	)

	return client, log, nil
}

// Describe summarises the effective settings for display.
func Describe(c *anthropic.Client) string {
	cfg := c.Config()
	return fmt.Sprintf("%s (max_tokens=%d, temperature=%g)", cfg.Model, cfg.MaxTokens, *cfg.Temperature)
}
