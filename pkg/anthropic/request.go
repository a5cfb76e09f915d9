package anthropic

import (
	"github.com/papercomputeco/parley/pkg/llm"
)

// BuildRequest assembles a single-message request. The image block, when
// given, precedes the text block.
func (c *Client) BuildRequest(text string, image *llm.ImageSource) llm.MessagesRequest {
	blocks := make([]llm.ContentBlock, 0, 2)
	if image != nil {
		blocks = append(blocks, llm.ImageBlock(*image))
	}
	blocks = append(blocks, llm.TextBlock(text))

	return llm.MessagesRequest{
		Model:       c.config.Model,
		MaxTokens:   c.config.MaxTokens,
		Temperature: *c.config.Temperature,
		Messages:    []llm.Message{llm.NewUserMessage(blocks...)},
	}
}
