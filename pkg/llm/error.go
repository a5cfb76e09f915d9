// Package llm provides the wire representations of Messages API requests
// and responses exchanged with the provider.
package llm

// ErrorResponse is the error body returned by the Messages API on non-200
// responses, e.g. {"type":"error","error":{"type":"rate_limit_error","message":"..."}}.
type ErrorResponse struct {
	Type  string      `json:"type"`
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries the provider's error classification and message.
type ErrorDetail struct {
	Type    string `json:"type"`    // e.g. "invalid_request_error", "overloaded_error"
	Message string `json:"message"` // Human-readable description from the provider
}
