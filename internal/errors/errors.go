package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error into one of the buckets the HTTP layer knows how
// to render. The data access layer is responsible for raising KindDuplicateKey
// and KindForeignKey, so nothing above it ever inspects driver error codes.
type Kind int

const (
	// KindInternal is the fallback for unclassified failures.
	KindInternal Kind = iota
	// KindValidation marks rejected input (bad pagination, bad datetime, bad status).
	KindValidation
	// KindUnauthorized marks authentication failures.
	KindUnauthorized
	// KindNotFound marks lookups that matched no row.
	KindNotFound
	// KindDuplicateKey marks unique constraint violations (email, slug).
	KindDuplicateKey
	// KindForeignKey marks foreign key violations (unknown category, delete restricted).
	KindForeignKey
)

// Error carries a classification kind together with a client-presentable message.
// The wrapped error keeps the driver detail available for logging.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a classified error with a presentable message.
func E(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Ef creates a classified error with a formatted presentable message.
func Ef(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap classifies an underlying error, keeping it reachable via Unwrap.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind from err, or KindInternal when err was never classified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the presentable message for err. Unclassified errors get a
// generic message so internal detail never leaks to clients.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Internal server error"
}

// StatusOf maps an error to the HTTP status its kind renders as. Duplicate key
// and foreign key violations are client mistakes, so they map to 400 rather
// than a conflict status.
func StatusOf(err error) int {
	switch KindOf(err) {
	case KindValidation, KindDuplicateKey, KindForeignKey:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
