package anthropic

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the provider's API root.
	DefaultBaseURL = "https://api.anthropic.com"

	// MessagesPath is appended to the base URL for every request.
	MessagesPath = "/v1/messages"

	// APIVersion is sent as the anthropic-version header.
	APIVersion = "2023-06-01"

	DefaultMaxTokens     = 1024
	DefaultTimeout       = 5 * time.Minute
	DefaultMaxImageBytes = 5 << 20
)

var validModels = [...]string{
	"claude-3-5-sonnet-20240620",
	"claude-3-opus-20240229",
	"claude-3-sonnet-20240229",
	"claude-3-haiku-20240307",
}

var supportedImageTypes = [...]string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
}

// ValidModels returns the model allow-list.
func ValidModels() []string {
	return slices.Clone(validModels[:])
}

// SupportedImageTypes returns the image media type allow-list.
func SupportedImageTypes() []string {
	return slices.Clone(supportedImageTypes[:])
}

// Config is the client configuration. It is copied by New and never
// modified afterwards.
type Config struct {
	// APIKey is sent as x-api-key. It is never logged.
	APIKey string

	// Model must be one of ValidModels.
	Model string

	// MaxTokens bounds the reply length. Zero selects DefaultMaxTokens.
	MaxTokens int

	// Temperature is passed through unchecked; the provider rejects values
	// outside its range with a 400. Nil means 0.0.
	Temperature *float64

	// BaseURL overrides DefaultBaseURL, e.g. for a local gateway or tests.
	BaseURL string

	// Timeout bounds a whole call, image download included. Zero selects DefaultTimeout.
	Timeout time.Duration

	// MaxImageBytes caps the size of an image read from disk or fetched by URL.
	// Zero selects DefaultMaxImageBytes.
	MaxImageBytes int64

	// HTTPClient is used for all outbound requests when set.
	HTTPClient *http.Client
}

// Float returns a pointer to v, for Config.Temperature.
func Float(v float64) *float64 {
	return &v
}

var (
	ErrInvalidModel     = errors.New("invalid model")
	ErrInvalidMaxTokens = errors.New("invalid max tokens")
)

// ConfigError reports a configuration that cannot produce a usable client.
type ConfigError struct {
	Err    error
	Detail string
}

func (e *ConfigError) Error() string {
	return e.Detail
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ValidateModel succeeds only for models in the allow-list.
func ValidateModel(model string) error {
	if slices.Contains(validModels[:], model) {
		return nil
	}
	return &ConfigError{
		Err:    ErrInvalidModel,
		Detail: "Invalid model. Supported models are: " + strings.Join(validModels[:], ", "),
	}
}

// normalize validates c and fills in defaults.
func (c Config) normalize() (Config, error) {
	if err := ValidateModel(c.Model); err != nil {
		return Config{}, err
	}

	switch {
	case c.MaxTokens < 0:
		return Config{}, &ConfigError{
			Err:    ErrInvalidMaxTokens,
			Detail: fmt.Sprintf("Invalid max tokens %d: must be a positive integer", c.MaxTokens),
		}
	case c.MaxTokens == 0:
		c.MaxTokens = DefaultMaxTokens
	}

	temperature := 0.0
	if c.Temperature != nil {
		temperature = *c.Temperature
	}
	c.Temperature = &temperature

	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")

	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxImageBytes <= 0 {
		c.MaxImageBytes = DefaultMaxImageBytes
	}

	return c, nil
}
