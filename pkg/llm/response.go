package llm

// MessagesResponse represents a Messages API response. Only the first
// content block's text is used as the reply; the rest is kept for logging.
type MessagesResponse struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Role       string         `json:"role"`
	Model      string         `json:"model"`
	Content    []ContentBlock `json:"content"`
	StopReason string         `json:"stop_reason,omitempty"` // "end_turn", "max_tokens", ...
	Usage      *Usage         `json:"usage,omitempty"`
}

// Usage reports token accounting for a single call.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}
