package anthropic

// ErrorPrefix starts every rendered call-time failure.
const ErrorPrefix = "Error: "

// Kind classifies a call-time failure.
type Kind int

const (
	KindRequest          Kind = iota + 1 // request could not be built
	KindUnsupportedImage                 // image media type outside the allow-list
	KindImage                            // image unreadable, unreachable or too large
	KindTransport                        // POST failed before a status was received
	KindStatus                           // non-200 status
	KindParse                            // reply body malformed or missing content[0].text
)

func (k Kind) String() string {
	switch k {
	case KindRequest:
		return "request"
	case KindUnsupportedImage:
		return "unsupported_image"
	case KindImage:
		return "image"
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindParse:
		return "parse"
	default:
		return "unknown"
	}
}

// Error is a call-time failure. Detail is the human-readable cause shown
// to users; Err is the underlying error, if any.
type Error struct {
	Kind       Kind
	StatusCode int // set for KindStatus
	Detail     string
	Err        error
}

func (e *Error) Error() string {
	return e.Detail
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, err error, detail string) *Error {
	if detail == "" && err != nil {
		detail = err.Error()
	}
	return &Error{Kind: kind, Detail: detail, Err: err}
}

// Result is the outcome of one call: either the reply text or an error.
type Result struct {
	Text string
	Err  *Error
}

// OK reports whether the call produced a reply.
func (r Result) OK() bool {
	return r.Err == nil
}

// String renders the reply, or the error prefixed with "Error: ".
func (r Result) String() string {
	if r.Err != nil {
		return ErrorPrefix + r.Err.Detail
	}
	return r.Text
}
