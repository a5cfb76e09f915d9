package llm

// RoleUser is the only role this client sends.
const RoleUser = "user"

// Message represents a single message in a Messages API request.
type Message struct {
	Role    string         `json:"role"`    // "user" or "assistant"
	Content []ContentBlock `json:"content"` // Ordered content blocks; images precede text
}

// NewUserMessage builds a user message from the given blocks in order.
func NewUserMessage(blocks ...ContentBlock) Message {
	return Message{Role: RoleUser, Content: blocks}
}
