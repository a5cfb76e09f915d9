// Package anthropic provides a minimal client for the Anthropic Messages API:
// one user prompt, an optional image, one reply.
package anthropic

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"go.uber.org/zap"

	"github.com/papercomputeco/parley/pkg/llm"
)

// Client sends single-turn messages and extracts the text reply.
// Its configuration is immutable after New. Concurrent calls are safe only
// insofar as the configured *http.Client is; callers that share a Client
// across goroutines own that decision.
type Client struct {
	config     Config
	logger     *zap.Logger
	httpClient *http.Client
}

// New validates config and creates a Client. An unlisted model or a negative
// MaxTokens fail with a *ConfigError.
func New(config Config, logger *zap.Logger) (*Client, error) {
	config, err := config.normalize()
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.Timeout}
	}

	return &Client{
		config:     config,
		logger:     logger,
		httpClient: httpClient,
	}, nil
}

// Config returns a copy of the normalized configuration.
func (c *Client) Config() Config {
	config := c.config
	temperature := *c.config.Temperature
	config.Temperature = &temperature
	return config
}

// SendMessage sends text alone.
func (c *Client) SendMessage(ctx context.Context, text string) Result {
	return toResult(c.Send(ctx, text, ""))
}

// SendMessageWithImage sends text preceded by the image at imageRef, a local
// path or a URL.
func (c *Client) SendMessageWithImage(ctx context.Context, text, imageRef string) Result {
	if imageRef == "" {
		return Result{Err: newError(KindImage, nil, "image reference is empty")}
	}
	return toResult(c.Send(ctx, text, imageRef))
}

// Send performs one request. An empty imageRef sends text only. Every
// returned error is an *Error.
func (c *Client) Send(ctx context.Context, text, imageRef string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	var image *llm.ImageSource
	if imageRef != "" {
		var err error
		image, err = c.ResolveImage(ctx, imageRef)
		if err != nil {
			c.logFailure(err)
			return "", err
		}
	}

	status, body, err := c.post(ctx, c.BuildRequest(text, image))
	if err != nil {
		c.logFailure(err)
		return "", err
	}

	if statusErr := statusError(status); statusErr != nil {
		c.logProviderError(status, body)
		return "", statusErr
	}

	reply, err := ParseReply(body)
	if err != nil {
		c.logFailure(err)
		return "", err
	}
	c.logReply(body)

	c.logger.Debug("reply received", zap.String("content_preview", truncate(reply, 100)))

	return reply, nil
}

func toResult(text string, err error) Result {
	if err == nil {
		return Result{Text: text}
	}
	var e *Error
	if errors.As(err, &e) {
		return Result{Err: e}
	}
	return Result{Err: newError(KindRequest, err, "")}
}

func (c *Client) logFailure(err error) {
	var e *Error
	if errors.As(err, &e) {
		c.logger.Warn("message failed", zap.Stringer("kind", e.Kind), zap.Error(err))
		return
	}
	c.logger.Warn("message failed", zap.Error(err))
}

func truncate(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return ansi.Truncate(s, maxLen, "...")
}
