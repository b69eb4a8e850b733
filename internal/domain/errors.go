package domain

import "errors"

// ErrorKind is the closed set of failure categories a client can branch on.
type ErrorKind string

const (
	KindAuthFailed          ErrorKind = "AUTH_FAILED"
	KindUpstreamUnavailable ErrorKind = "UPSTREAM_UNAVAILABLE"
	KindUpstreamRejected    ErrorKind = "UPSTREAM_REJECTED"
	KindNotFound            ErrorKind = "NOT_FOUND"
)

// Error is a client-facing failure. Message is safe to return to callers;
// Cause keeps the downstream detail for logs and errors.Is/As.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func NewError(kind ErrorKind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Extensions is picked up by the GraphQL layer and rendered under
// errors[].extensions.
func (e *Error) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": string(e.Kind)}
}

// KindOf reports the kind of err, or "" when err is not a domain error.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
