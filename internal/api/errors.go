package api

import "errors"

// Kind classifies a failed request so callers can react without parsing
// messages. Navigation and other global side effects belong to the top-level
// handler that inspects the kind, never to the HTTP layer itself.
type Kind int

const (
	// KindNetwork covers transport failures and the fixed request timeout.
	KindNetwork Kind = iota
	// KindUnauthorized is a 401: the stored session has been torn down and
	// the caller should route to login.
	KindUnauthorized
	// KindForbidden is a 403: the caller shows a local message, no session
	// state changes.
	KindForbidden
	// KindDomain is any other 4xx/5xx, carrying the server-supplied message
	// verbatim when one exists.
	KindDomain
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindDomain:
		return "domain"
	default:
		return "unknown"
	}
}

// Error is the typed failure returned by the gateway client.
type Error struct {
	Kind    Kind
	Status  int    // HTTP status, 0 for transport failures
	Op      string // the domain operation that failed, e.g. "movies.list"
	Message string
	err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Op + ": " + e.Message
	}
	if e.err != nil {
		return e.Op + ": " + e.err.Error()
	}
	return e.Op + ": request failed"
}

func (e *Error) Unwrap() error {
	return e.err
}

// KindOf extracts the classification from err, reporting ok=false when err is
// not a gateway [*Error].
func KindOf(err error) (Kind, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind, true
	}
	return 0, false
}

// IsUnauthorized reports whether err carries [KindUnauthorized].
func IsUnauthorized(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindUnauthorized
}

// IsForbidden reports whether err carries [KindForbidden].
func IsForbidden(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindForbidden
}
