package anthropic

import "net/http"

// StatusOverloaded is the provider-specific "overloaded" status.
const StatusOverloaded = 529

// StatusMessage maps a response status to a user-facing description.
// It returns ok=true only for 200, in which case the message is empty.
func StatusMessage(code int) (msg string, ok bool) {
	switch code {
	case http.StatusOK:
		return "", true
	case http.StatusBadRequest:
		return "Invalid request error: There was an issue with the format or content of your request.", false
	case http.StatusUnauthorized:
		return "Authentication error: There's an issue with your API key.", false
	case http.StatusForbidden:
		return "Permission error: Your API key does not have permission to use the specified resource.", false
	case http.StatusNotFound:
		return "Not found error: The requested resource was not found.", false
	case http.StatusTooManyRequests:
		return "Rate limit error: Your account has hit a rate limit.", false
	case http.StatusInternalServerError:
		return "API error: An unexpected error has occurred internal to Anthropic's systems.", false
	case StatusOverloaded:
		return "Overloaded error: Anthropic's API is temporarily overloaded.", false
	default:
		return "Unknown error: An unexpected HTTP status code was received.", false
	}
}

func statusError(code int) *Error {
	msg, ok := StatusMessage(code)
	if ok {
		return nil
	}
	return &Error{Kind: KindStatus, StatusCode: code, Detail: msg}
}
