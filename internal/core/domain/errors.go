package domain

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorKind string

const (
	// KindTransport covers connection failures and responses that cannot be parsed.
	KindTransport ErrorKind = "transport"
	// KindDomain covers well-formed responses reporting a business-rule failure.
	KindDomain ErrorKind = "domain"
	// KindValidation covers client-side input failures; no request was sent.
	KindValidation ErrorKind = "validation"
)

const defaultMessage = "request failed"

// Error is the single error type surfaced by gateway clients and controllers.
type Error struct {
	Kind ErrorKind
	Op   string

	// Status is the HTTP status of the response, zero when none arrived.
	Status int
	// Code and Type mirror the backend error body when it carried them.
	Code int
	Type string

	Msg      string
	Fallback string
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s error: %s: %v", e.Op, e.Kind, e.Message(), e.Err)
	}
	return fmt.Sprintf("%s: %s error: %s", e.Op, e.Kind, e.Message())
}

func (e *Error) Unwrap() error { return e.Err }

// Message is the operator-facing text: the backend msg when present,
// otherwise the operation's generic fallback.
func (e *Error) Message() string {
	switch {
	case e.Msg != "":
		return e.Msg
	case e.Fallback != "":
		return e.Fallback
	default:
		return defaultMessage
	}
}

func NewValidationError(op, format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of err, or "" when err is not an *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func IsTransport(err error) bool  { return KindOf(err) == KindTransport }
func IsDomain(err error) bool     { return KindOf(err) == KindDomain }
func IsValidation(err error) bool { return KindOf(err) == KindValidation }

func IsNotFound(err error) bool {
	var e *Error
	if !errors.As(err, &e) || e.Kind != KindDomain {
		return false
	}
	return e.Type == "NOT_FOUND" || e.Status == http.StatusNotFound
}

// Message extracts operator-facing text from any error.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message()
	}
	return err.Error()
}
