package fault

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so the boundary layer can map it to a status
// without inspecting message text.
type Kind string

const (
	// Configuration means required credentials or endpoints are missing.
	// These failures are raised before any network call.
	Configuration Kind = "configuration"
	// Validation means the caller's input was rejected before dispatch.
	Validation Kind = "validation"
	// Transport means the request never completed (timeout, connection error).
	Transport Kind = "transport"
	// Remote means the provider answered with a non-2xx response.
	Remote Kind = "remote"
	// EmptyResult means the provider answered 2xx with nothing usable in it.
	EmptyResult Kind = "empty_result"
	// Extraction means a document could not be read or parsed.
	Extraction Kind = "extraction"
)

// Error is a classified failure. Components return these instead of raising
// across their boundary; the message is reported verbatim to callers.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		if e.Msg == "" {
			return e.Err.Error()
		}
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds a classified error from a format string.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{
		Kind: kind,
		Msg:  fmt.Sprintf(format, args...),
	}
}

// Wrap classifies an underlying error, keeping it reachable via errors.Is/As.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{
		Kind: kind,
		Msg:  fmt.Sprintf(format, args...),
		Err:  err,
	}
}

// KindOf reports the kind of err, unwrapping as needed. Unclassified errors
// return the zero Kind.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
