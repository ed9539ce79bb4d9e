package api

import (
	"errors"
	"fmt"
)

// Kind classifies a failed request for logging and caller handling.
type Kind string

const (
	// KindUnauthorized — response received, status 401.
	KindUnauthorized Kind = "unauthorized"
	// KindForbidden — response received, status 403.
	KindForbidden Kind = "forbidden"
	// KindNotFound — response received, status 404.
	KindNotFound Kind = "not_found"
	// KindServerError — response received, any other 4xx/5xx.
	KindServerError Kind = "server_error"
	// KindNetworkError — request sent, no response.
	KindNetworkError Kind = "network_error"
	// KindRequestSetup — the request could never be sent (bad input or config).
	KindRequestSetup Kind = "request_setup"
)

// Error is a classified request failure. Message carries the server's own
// wording verbatim — the client never rewrites it.
type Error struct {
	Kind    Kind
	Status  int // HTTP status, 0 when no response was received
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %s: %s", e.Kind, e.Message)
	}
	if e.cause != nil {
		return fmt.Sprintf("api: %s: %v", e.Kind, e.cause)
	}
	return fmt.Sprintf("api: %s (status %d)", e.Kind, e.Status)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == kind
}

// classifyStatus maps a non-2xx HTTP status to an error kind.
func classifyStatus(status int) Kind {
	switch status {
	case 401:
		return KindUnauthorized
	case 403:
		return KindForbidden
	case 404:
		return KindNotFound
	default:
		return KindServerError
	}
}
