package api

import (
	"errors"
	"fmt"
)

// Kind classifies a remote API failure.
type Kind string

const (
	// KindNetwork is a transport failure: no HTTP response was received.
	KindNetwork Kind = "network"
	// KindValidation is a 4xx with field-level detail, or a malformed response body.
	KindValidation Kind = "validation"
	// KindAuth is a 401/403: expired or invalid token.
	KindAuth Kind = "auth"
	// KindNotFound is a 404.
	KindNotFound Kind = "not_found"
	// KindConflict is a server-reported business-rule rejection (409 and the
	// platform's legacy 601/602 statuses, e.g. duplicate company name).
	KindConflict Kind = "conflict"
	// KindServer is a 5xx.
	KindServer Kind = "server"
)

// Error is a remote API failure with its taxonomy kind and, when the server
// provided them, field-level validation details.
type Error struct {
	Kind    Kind
	Status  int // HTTP status; 0 when no response was received
	Message string
	Fields  map[string]string // field -> message; nil unless KindValidation
	cause   error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("api: %s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("api: %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

// kindForStatus maps an HTTP status to its taxonomy kind.
func kindForStatus(status int) Kind {
	switch {
	case status == 401 || status == 403:
		return KindAuth
	case status == 404:
		return KindNotFound
	case status == 409 || status == 601 || status == 602:
		return KindConflict
	case status >= 500:
		return KindServer
	default:
		return KindValidation
	}
}
