package llm

// MessagesRequest represents a non-streaming Messages API request.
type MessagesRequest struct {
	Model       string    `json:"model"`       // Model identifier (e.g., "claude-3-haiku-20240307")
	MaxTokens   int       `json:"max_tokens"`  // Upper bound on generated tokens
	Temperature float64   `json:"temperature"` // Always sent, 0.0 when unset by the caller
	Messages    []Message `json:"messages"`    // A single user message; no history is carried
}
