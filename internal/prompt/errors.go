package prompt

import (
	"errors"
	"net/http"
)

// Kind categorizes a dispatch failure.
type Kind int

const (
	// KindEmptyInput indicates a blank description or missing required field.
	KindEmptyInput Kind = iota
	// KindMissingFile indicates no video bytes were supplied.
	KindMissingFile
	// KindUnknownPlatform indicates the platform id is not registered.
	KindUnknownPlatform
	// KindInvalidUpload indicates a disallowed MIME type or oversize upload.
	KindInvalidUpload
	// KindRateLimited indicates the provider throttled the request.
	KindRateLimited
	// KindGenerationFailed indicates the text completion provider failed.
	KindGenerationFailed
	// KindAnalysisFailed indicates the video analysis provider failed.
	KindAnalysisFailed
)

var kindNames = map[Kind]string{
	KindEmptyInput:       "EmptyInput",
	KindMissingFile:      "MissingFile",
	KindUnknownPlatform:  "UnknownPlatform",
	KindInvalidUpload:    "InvalidUpload",
	KindRateLimited:      "RateLimited",
	KindGenerationFailed: "GenerationFailed",
	KindAnalysisFailed:   "AnalysisFailed",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// HTTPStatus maps the kind to the response status code.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindEmptyInput, KindMissingFile, KindUnknownPlatform, KindInvalidUpload:
		return http.StatusBadRequest
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Retryable reports whether a client may reasonably retry after this failure.
func (k Kind) Retryable() bool {
	return k == KindRateLimited
}

// Error is returned by every Service operation. Message is safe to show to
// the client; Err carries the underlying cause for logs.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Kind.String() + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Kind.String() + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the Kind from err. ok is false if err is not an *Error.
func KindOf(err error) (kind Kind, ok bool) {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind, true
	}
	return 0, false
}

// rateLimiter is implemented by provider errors that can tell a throttled
// request apart from other failures.
type rateLimiter interface {
	RateLimited() bool
}

func isRateLimited(err error) bool {
	var rl rateLimiter
	return errors.As(err, &rl) && rl.RateLimited()
}

// providerMessage returns the message a provider error should surface to the
// client. Providers may implement ClientMessage() to hide wrapping noise.
func providerMessage(err error) string {
	var cm interface{ ClientMessage() string }
	if errors.As(err, &cm) {
		if msg := cm.ClientMessage(); msg != "" {
			return msg
		}
	}
	return err.Error()
}
