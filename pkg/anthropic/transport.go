package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/papercomputeco/parley/pkg/llm"
)

// post sends req and returns the status code and the fully buffered body.
func (c *Client) post(ctx context.Context, req llm.MessagesRequest) (int, []byte, error) {
	reqBody, err := json.Marshal(req)
	if err != nil {
		return 0, nil, newError(KindRequest, err, fmt.Sprintf("could not marshal request: %v", err))
	}

	url := c.config.BaseURL + MessagesPath
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return 0, nil, newError(KindRequest, err, fmt.Sprintf("could not create request: %v", err))
	}
	httpReq.Header.Set("x-api-key", c.config.APIKey)
	httpReq.Header.Set("anthropic-version", APIVersion)
	httpReq.Header.Set("content-type", "application/json")

	c.logger.Debug("sending message",
		zap.String("url", url),
		zap.String("model", req.Model),
		zap.Int("max_tokens", req.MaxTokens),
		zap.Float64("temperature", req.Temperature),
		zap.Int("body_size", len(reqBody)),
	)

	startTime := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return 0, nil, newError(KindTransport, err, fmt.Sprintf("request failed: %v", err))
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return 0, nil, newError(KindTransport, err, fmt.Sprintf("could not read response: %v", err))
	}

	c.logger.Debug("received response",
		zap.Int("status", httpResp.StatusCode),
		zap.Int("body_size", len(body)),
		zap.Duration("duration", time.Since(startTime)),
	)

	return httpResp.StatusCode, body, nil
}
