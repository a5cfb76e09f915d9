package anthropic

import (
	"encoding/json"
	"errors"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/papercomputeco/parley/pkg/llm"
)

// ParseReply extracts content[0].text from a successful response body.
func ParseReply(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", parseError(errors.New("response is not valid JSON"))
	}

	content := gjson.GetBytes(body, "content")
	if !content.IsArray() {
		return "", parseError(errors.New("response has no content array"))
	}

	first := content.Get("0")
	if !first.Exists() {
		return "", parseError(errors.New("response content array is empty"))
	}

	text := first.Get("text")
	if text.Type != gjson.String {
		return "", parseError(errors.New("first content block has no text"))
	}

	return text.String(), nil
}

func parseError(err error) *Error {
	return newError(KindParse, err, "Error parsing JSON: "+err.Error())
}

// logProviderError records the provider's own error body, if it sent one.
func (c *Client) logProviderError(status int, body []byte) {
	var errResp llm.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil || errResp.Error.Message == "" {
		c.logger.Warn("provider returned error status",
			zap.Int("status", status),
			zap.String("body", truncate(string(body), 200)),
		)
		return
	}

	c.logger.Warn("provider returned error status",
		zap.Int("status", status),
		zap.String("error_type", errResp.Error.Type),
		zap.String("error_message", errResp.Error.Message),
	)
}

// logReply records response metadata at debug level.
func (c *Client) logReply(body []byte) {
	if ce := c.logger.Check(zap.DebugLevel, "reply metadata"); ce != nil {
		var resp llm.MessagesResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return
		}
		fields := []zap.Field{
			zap.String("id", resp.ID),
			zap.String("model", resp.Model),
			zap.String("stop_reason", resp.StopReason),
			zap.Int("content_blocks", len(resp.Content)),
		}
		if resp.Usage != nil {
			fields = append(fields,
				zap.Int("input_tokens", resp.Usage.InputTokens),
				zap.Int("output_tokens", resp.Usage.OutputTokens),
			)
		}
		ce.Write(fields...)
	}
}
