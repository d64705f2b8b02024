package application

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so the transport layer can pick a status.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindAuthentication
	// KindForbidden is a valid session without the required role. It shares the
	// wire status of KindNotFound so callers cannot tell the two apart.
	KindForbidden
	KindNotFound
	KindDependency
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthentication:
		return "authentication"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindDependency:
		return "dependency"
	}
	return "unknown"
}

// Error is the structured outcome every operation returns on failure.
// Message is safe to show to the caller; Err is for logs only.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

func Validation(msg string) *Error     { return newError(KindValidation, msg, nil) }
func Authentication(msg string) *Error { return newError(KindAuthentication, msg, nil) }
func Forbidden(msg string) *Error      { return newError(KindForbidden, msg, nil) }
func NotFound(msg string) *Error       { return newError(KindNotFound, msg, nil) }

// Dependency wraps a store or broker failure. The caller only ever sees msg.
func Dependency(msg string, err error) *Error { return newError(KindDependency, msg, err) }

// KindOf returns the kind of err, or KindDependency for anything unclassified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindDependency
}

var (
	ErrInvalidCredentials = Authentication("invalid credentials")
	ErrUserNotFound       = NotFound("user not found")
	ErrEventNotFound      = NotFound("event not found")
	ErrUsernameTaken      = Validation("username already exists")
)
